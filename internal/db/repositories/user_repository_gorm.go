package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	gormModels "streamhouse/api/internal/models/gorm"
	"streamhouse/api/internal/query"
)

var userColumns = query.Columns{
	"username":   query.Text,
	"email":      query.Text,
	"phone":      query.Text,
	"role_id":    query.Exact,
	"is_active":  query.Bool,
	"is_blocked": query.Bool,
}

type UserRepositoryGORM struct {
	paranoid[gormModels.User]
	db *gorm.DB
}

// NewUserRepositoryGORM creates a new GORM-based user repository
func NewUserRepositoryGORM(db *gorm.DB) *UserRepositoryGORM {
	return &UserRepositoryGORM{
		paranoid: paranoid[gormModels.User]{db: db, label: "user"},
		db:       db,
	}
}

// GetByID retrieves a user with its role. Returns nil when absent.
func (r *UserRepositoryGORM) GetByID(ctx context.Context, id string, withDeleted bool) (*gormModels.User, error) {
	var user gormModels.User

	tx := r.db.WithContext(ctx)
	if withDeleted {
		tx = tx.Unscoped()
	}
	err := tx.Preload("Role").Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

// GetByEmail retrieves a non-deleted user by email, password hash included.
func (r *UserRepositoryGORM) GetByEmail(ctx context.Context, email string) (*gormModels.User, error) {
	var user gormModels.User

	err := r.db.WithContext(ctx).
		Preload("Role").
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

// Taken reports whether email or phone is already used by another user,
// soft-deleted rows included since the unique indexes cover them.
func (r *UserRepositoryGORM) Taken(ctx context.Context, email, phone, exceptID string) (emailTaken, phoneTaken bool, err error) {
	count := func(column, value string) (bool, error) {
		if value == "" {
			return false, nil
		}
		var n int64
		tx := r.db.WithContext(ctx).Unscoped().Model(&gormModels.User{}).Where(column+" = ?", value)
		if exceptID != "" {
			tx = tx.Where("id <> ?", exceptID)
		}
		if err := tx.Count(&n).Error; err != nil {
			return false, fmt.Errorf("failed to check %s: %w", column, err)
		}
		return n > 0, nil
	}

	if emailTaken, err = count("email", email); err != nil {
		return false, false, err
	}
	if phoneTaken, err = count("phone", phone); err != nil {
		return false, false, err
	}
	return emailTaken, phoneTaken, nil
}

func (r *UserRepositoryGORM) Create(ctx context.Context, user *gormModels.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update writes the given columns of a non-deleted user.
func (r *UserRepositoryGORM) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&gormModels.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user not found with ID: %s", id)
	}
	return nil
}

// SetOTP stores a hashed OTP and its expiry.
func (r *UserRepositoryGORM) SetOTP(ctx context.Context, id, otpHash string, expiresAt time.Time) error {
	return r.Update(ctx, id, map[string]interface{}{
		"otp":              otpHash,
		"otp_expired_date": expiresAt,
	})
}

// Activate marks the user active and clears the pending OTP.
func (r *UserRepositoryGORM) Activate(ctx context.Context, id string) error {
	return r.Update(ctx, id, map[string]interface{}{
		"is_active":        true,
		"otp":              nil,
		"otp_expired_date": nil,
	})
}

// List returns a filtered, sorted page of users plus the unpaged total.
func (r *UserRepositoryGORM) List(ctx context.Context, q query.Params) ([]gormModels.User, int64, error) {
	scoped := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&gormModels.User{}).Scopes(q.Where(userColumns))
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var users []gormModels.User
	err := scoped().
		Preload("Role").
		Scopes(q.OrderBy(userColumns), q.Paginate()).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, total, nil
}

// HostedLives counts the non-deleted rooms hosted by id.
func (r *UserRepositoryGORM) HostedLives(ctx context.Context, id string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&gormModels.Live{}).Where("host_id = ?", id).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count hosted lives: %w", err)
	}
	return n, nil
}

// SoftDelete hides users together with the rooms they host. Both get the
// same deleted_at so Restore can tell cascaded rooms from ones deleted earlier.
func (r *UserRepositoryGORM) SoftDelete(ctx context.Context, ids []string) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := tx.NowFunc()
		res := tx.Model(&gormModels.User{}).Where("id IN ?", ids).Update("deleted_at", now)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return tx.Model(&gormModels.Live{}).Where("host_id IN ?", ids).Update("deleted_at", now).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to soft delete users: %w", err)
	}
	return affected, nil
}

// Restore undeletes users and the rooms that were hidden with them.
func (r *UserRepositoryGORM) Restore(ctx context.Context, ids []string) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cascaded := tx.Unscoped().Model(&gormModels.User{}).
			Select(`"user".deleted_at`).
			Where(`"user".id = live.host_id`)
		err := tx.Unscoped().Model(&gormModels.Live{}).
			Where("host_id IN ? AND deleted_at IS NOT NULL AND deleted_at = (?)", ids, cascaded).
			Update("deleted_at", nil).Error
		if err != nil {
			return err
		}

		res := tx.Unscoped().Model(&gormModels.User{}).
			Where("id IN ? AND deleted_at IS NOT NULL", ids).
			Update("deleted_at", nil)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to restore users: %w", err)
	}
	return affected, nil
}

// ForceDelete removes users and everything that references them.
func (r *UserRepositoryGORM) ForceDelete(ctx context.Context, ids []string) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id IN ?", ids).Delete(&gormModels.Session{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id IN ?", ids).Delete(&gormModels.LiveSession{}).Error; err != nil {
			return err
		}

		hosted := tx.Unscoped().Model(&gormModels.Live{}).Select("id").Where("host_id IN ?", ids)
		if err := tx.Where("live_id IN (?)", hosted).Delete(&gormModels.LiveSession{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("host_id IN ?", ids).Delete(&gormModels.Live{}).Error; err != nil {
			return err
		}

		res := tx.Unscoped().Where("id IN ?", ids).Delete(&gormModels.User{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to force delete users: %w", err)
	}
	return affected, nil
}
