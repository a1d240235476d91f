package api

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"streamhouse/api/internal/common"
	"streamhouse/api/internal/config"
	"streamhouse/api/internal/constants"
	"streamhouse/api/internal/db/repositories"
	"streamhouse/api/internal/metrics"
	"streamhouse/api/internal/notify"
	"streamhouse/api/internal/services"
)

type Repositories struct {
	User        *repositories.UserRepositoryGORM
	Role        *repositories.RoleRepository
	Session     *repositories.SessionRepository
	Live        *repositories.LiveRepository
	LiveSession *repositories.LiveSessionRepository
	LiveStats   *repositories.LiveStatsRepository
}

type Services struct {
	Cache common.CacheInterface
	Auth  *services.AuthService
	User  *services.UserService
	Role  *services.RoleService
	Live  *services.LiveService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
}

// Backends are the already connected stores and side channels the
// services are built on.
type Backends struct {
	ORM      *gorm.DB
	SQL      *sqlx.DB
	Cache    common.CacheInterface
	Notifier notify.OTPNotifier
	Metrics  *metrics.MetricsRegistry
}

func InitDependencies(cfg *config.Config, b Backends) (*Dependencies, error) {
	if b.ORM == nil || b.SQL == nil || b.Cache == nil || b.Notifier == nil {
		return nil, errors.New("dependencies: database, cache and notifier are required")
	}

	repositories := &Repositories{
		User:        repositories.NewUserRepositoryGORM(b.ORM),
		Role:        repositories.NewRoleRepository(b.ORM),
		Session:     repositories.NewSessionRepository(b.ORM),
		Live:        repositories.NewLiveRepository(b.ORM),
		LiveSession: repositories.NewLiveSessionRepository(b.ORM),
		LiveStats:   repositories.NewLiveStatsRepository(b.SQL),
	}

	hasher := common.NewHashService(cfg.OTPHashCost)
	tokens := common.NewTokenService([]byte(cfg.JWTSecret), cfg.JWTAccessExpired)
	sessionCache := common.NewSessionCache(b.Cache, constants.SessionCacheTTL)

	services := &Services{
		Cache: b.Cache,
		Auth: services.NewAuthService(
			repositories.User,
			repositories.Session,
			hasher,
			tokens,
			sessionCache,
			b.Notifier,
			b.Metrics,
			cfg.OTPExpired,
		),
		User: services.NewUserService(repositories.User, repositories.Role, hasher),
		Role: services.NewRoleService(repositories.Role, b.Cache),
		Live: services.NewLiveService(
			repositories.Live,
			repositories.LiveSession,
			repositories.LiveStats,
			repositories.User,
			b.Metrics,
		),
	}

	return &Dependencies{
		Repo:     repositories,
		Services: services,
	}, nil

}
