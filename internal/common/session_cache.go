package common

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"streamhouse/api/internal/constants"
)

// SessionData is the verified-session snapshot kept in cache.
type SessionData struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	RoleID    string    `json:"role_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionCache remembers verified sessions for a short TTL so the auth
// middleware does not hit the database on every request.
type SessionCache struct {
	cache CacheInterface
	ttl   time.Duration
}

func NewSessionCache(cache CacheInterface, ttl time.Duration) *SessionCache {
	return &SessionCache{cache: cache, ttl: ttl}
}

func sessionKey(userID, token string) string {
	sum := sha256.Sum256([]byte(token))
	return string(constants.CachePrefixSession) + userID + ":" + hex.EncodeToString(sum[:])
}

// Get returns the cached session, or nil on miss or once it expired.
func (s *SessionCache) Get(ctx context.Context, userID, token string) *SessionData {
	var data SessionData
	if err := s.cache.Get(ctx, sessionKey(userID, token), &data); err != nil {
		return nil
	}
	if time.Now().After(data.ExpiresAt) {
		_ = s.Forget(ctx, userID, token)
		return nil
	}
	return &data
}

func (s *SessionCache) Remember(ctx context.Context, token string, data *SessionData) error {
	ttl := s.ttl
	if left := time.Until(data.ExpiresAt); left < ttl {
		ttl = left
	}
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, sessionKey(data.UserID, token), data, ttl)
}

func (s *SessionCache) Forget(ctx context.Context, userID, token string) error {
	return s.cache.Delete(ctx, sessionKey(userID, token))
}
