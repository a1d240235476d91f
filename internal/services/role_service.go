package services

import (
	"context"

	"streamhouse/api/internal/common"
	"streamhouse/api/internal/constants"
	"streamhouse/api/internal/db/repositories"
	gormModels "streamhouse/api/internal/models/gorm"
)

// RoleService lists the fixed roles. The list is cached since roles only
// change through migrations.
type RoleService struct {
	roles *repositories.RoleRepository
	cache common.CacheInterface
}

func NewRoleService(roles *repositories.RoleRepository, cache common.CacheInterface) *RoleService {
	return &RoleService{roles: roles, cache: cache}
}

func (s *RoleService) FindAll(ctx context.Context) ([]gormModels.Role, error) {
	load := func() ([]gormModels.Role, error) {
		return s.roles.GetAll(ctx)
	}
	if s.cache == nil {
		return load()
	}
	return common.GetOrSet(ctx, s.cache, string(constants.CachePrefixRoles), constants.RoleCacheTTL, load)
}
