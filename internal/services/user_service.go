package services

import (
	"context"

	"streamhouse/api/internal/common"
	"streamhouse/api/internal/constants"
	"streamhouse/api/internal/db/repositories"
	"streamhouse/api/internal/errs"
	"streamhouse/api/internal/i18n"
	"streamhouse/api/internal/models/dtos"
	gormModels "streamhouse/api/internal/models/gorm"
	"streamhouse/api/internal/query"
	"streamhouse/api/internal/validation"
)

// UserService is the admin-facing account management service
type UserService struct {
	users  *repositories.UserRepositoryGORM
	roles  *repositories.RoleRepository
	hasher *common.HashService
}

func NewUserService(users *repositories.UserRepositoryGORM, roles *repositories.RoleRepository, hasher *common.HashService) *UserService {
	return &UserService{
		users:  users,
		roles:  roles,
		hasher: hasher,
	}
}

func (s *UserService) FindAll(ctx context.Context, q query.Params) ([]gormModels.User, int64, error) {
	return s.users.List(ctx, q)
}

// FindByID returns the user or NotFound. withDeleted includes soft-deleted rows.
func (s *UserService) FindByID(ctx context.Context, id string, withDeleted bool) (*gormModels.User, error) {
	if err := checkID(ctx, id); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id, withDeleted)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound(ctx, constants.EntityUser)
	}
	return user, nil
}

// Me returns the profile of the signed-in user.
func (s *UserService) Me(ctx context.Context, userID string) (*gormModels.User, error) {
	user, err := s.users.GetByID(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.NotFound(i18n.Tc(ctx, "errors.account_not_found"))
	}
	return user, nil
}

// Create adds an already verified account with any role.
func (s *UserService) Create(ctx context.Context, req *dtos.CreateUserReq) (*gormModels.User, error) {
	if err := validation.Struct(ctx, req); err != nil {
		return nil, err
	}
	if err := s.checkRole(ctx, req.RoleID); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, req.Email, req.Phone, ""); err != nil {
		return nil, err
	}

	password, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &gormModels.User{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: password,
		Photo:    req.Photo,
		RoleID:   req.RoleID,
		IsActive: true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, user.ID, false)
}

// Update changes the provided fields only.
func (s *UserService) Update(ctx context.Context, id string, req *dtos.UpdateUserReq) (*gormModels.User, error) {
	if _, err := s.FindByID(ctx, id, false); err != nil {
		return nil, err
	}
	if err := validation.Struct(ctx, req); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Username != nil {
		fields["username"] = *req.Username
	}
	if req.Phone != nil {
		if err := s.checkUnique(ctx, "", *req.Phone, id); err != nil {
			return nil, err
		}
		fields["phone"] = *req.Phone
	}
	if req.Photo != nil {
		fields["photo"] = *req.Photo
	}
	if req.RoleID != nil {
		if err := s.checkRole(ctx, *req.RoleID); err != nil {
			return nil, err
		}
		if !constants.CanHost(*req.RoleID) {
			hosted, err := s.users.HostedLives(ctx, id)
			if err != nil {
				return nil, err
			}
			if hosted > 0 {
				return nil, errs.BadRequest(i18n.Tc(ctx, "errors.still_hosting"))
			}
		}
		fields["role_id"] = *req.RoleID
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if req.IsBlocked != nil {
		fields["is_blocked"] = *req.IsBlocked
	}

	if err := s.users.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id, false)
}

// Restore undeletes a user and the rooms hidden by its soft delete.
// Restoring a user that is not deleted is a no-op.
func (s *UserService) Restore(ctx context.Context, id string) error {
	return s.apply(ctx, id, func(ctx context.Context, ids []string) (int64, error) {
		if _, err := s.users.Restore(ctx, ids); err != nil {
			return 0, err
		}
		return s.users.CountWithDeleted(ctx, ids)
	})
}

// SoftDelete hides a user and the rooms it hosts.
func (s *UserService) SoftDelete(ctx context.Context, id string) error {
	return s.apply(ctx, id, s.users.SoftDelete)
}

func (s *UserService) ForceDelete(ctx context.Context, id string) error {
	return s.apply(ctx, id, s.users.ForceDelete)
}

func (s *UserService) apply(ctx context.Context, id string, op func(context.Context, []string) (int64, error)) error {
	if err := checkID(ctx, id); err != nil {
		return err
	}
	n, err := op(ctx, []string{id})
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(ctx, constants.EntityUser)
	}
	return nil
}

func (s *UserService) checkRole(ctx context.Context, roleID string) error {
	role, err := s.roles.GetByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return notFound(ctx, constants.EntityRole)
	}
	return nil
}

func (s *UserService) checkUnique(ctx context.Context, email, phone, exceptID string) error {
	emailTaken, phoneTaken, err := s.users.Taken(ctx, email, phone, exceptID)
	if err != nil {
		return err
	}
	if emailTaken {
		return errs.BadRequest(i18n.Tc(ctx, "errors.already_exists", constants.EntityEmail))
	}
	if phoneTaken {
		return errs.BadRequest(i18n.Tc(ctx, "errors.already_exists", constants.EntityPhone))
	}
	return nil
}
