package constants

import "time"

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixSession CachePrefix = "SESSION_"
	CachePrefixRoles   CachePrefix = "ROLES"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	SessionCacheTTL = 60 * time.Second
	RoleCacheTTL    = 10 * time.Minute

	SMSStream        = "sms:outbound"
	SMSConsumerGroup = "sms-workers"
)
