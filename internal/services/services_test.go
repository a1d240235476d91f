package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"streamhouse/api/internal/common"
	"streamhouse/api/internal/db/dbtest"
	"streamhouse/api/internal/db/repositories"
)

type capturedOTP struct {
	mu   sync.Mutex
	otps map[string]string
}

func (c *capturedOTP) NotifyOTP(_ context.Context, userID, _ string, otp string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.otps == nil {
		c.otps = map[string]string{}
	}
	c.otps[userID] = otp
	return nil
}

func (c *capturedOTP) last(userID string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.otps[userID]
}

type fixture struct {
	db       *gorm.DB
	cache    *common.CacheService
	auth     *AuthService
	users    *UserService
	roles    *RoleService
	lives    *LiveService
	notifier *capturedOTP
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb := dbtest.Open(t)
	userRepo := repositories.NewUserRepositoryGORM(gdb)
	roleRepo := repositories.NewRoleRepository(gdb)
	hasher := common.NewHashService(4)
	tokens := common.NewTokenService([]byte("test-secret"), time.Hour)
	cache := common.NewCacheService(time.Minute, time.Minute)
	t.Cleanup(func() { cache.Close() })
	notifier := &capturedOTP{}

	return &fixture{
		db:    gdb,
		cache: cache,
		auth: NewAuthService(
			userRepo,
			repositories.NewSessionRepository(gdb),
			hasher,
			tokens,
			common.NewSessionCache(cache, time.Minute),
			notifier,
			nil,
			5*time.Minute,
		),
		users: NewUserService(userRepo, roleRepo, hasher),
		roles: NewRoleService(roleRepo, cache),
		lives: NewLiveService(
			repositories.NewLiveRepository(gdb),
			repositories.NewLiveSessionRepository(gdb),
			repositories.NewLiveStatsRepository(dbtest.Sqlx(t, gdb)),
			userRepo,
			nil,
		),
		notifier: notifier,
	}
}
