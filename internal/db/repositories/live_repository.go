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

var liveColumns = query.Columns{
	"host_id":    query.Exact,
	"is_live":    query.Bool,
	"is_private": query.Bool,
	"price":      query.Int,
}

// LiveRepository handles live room persistence. Rows are paranoid: the
// default scope hides soft-deleted rooms.
type LiveRepository struct {
	paranoid[gormModels.Live]
	db *gorm.DB
}

func NewLiveRepository(db *gorm.DB) *LiveRepository {
	return &LiveRepository{
		paranoid: paranoid[gormModels.Live]{db: db, label: "live"},
		db:       db,
	}
}

// GetByID retrieves a live room with its host. Returns nil when absent.
func (r *LiveRepository) GetByID(ctx context.Context, id string, withDeleted bool) (*gormModels.Live, error) {
	var live gormModels.Live

	tx := r.db.WithContext(ctx)
	if withDeleted {
		tx = tx.Unscoped()
	}
	err := tx.Preload("Host").Where("id = ?", id).First(&live).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch live: %w", err)
	}

	return &live, nil
}

func (r *LiveRepository) Create(ctx context.Context, live *gormModels.Live) error {
	if err := r.db.WithContext(ctx).Create(live).Error; err != nil {
		return fmt.Errorf("failed to create live: %w", err)
	}
	return nil
}

// Update writes the given columns of a non-deleted room.
func (r *LiveRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&gormModels.Live{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update live: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("live not found with ID: %s", id)
	}
	return nil
}

// List returns a filtered, sorted page of rooms plus the unpaged total.
func (r *LiveRepository) List(ctx context.Context, q query.Params) ([]gormModels.Live, int64, error) {
	scoped := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&gormModels.Live{}).Scopes(q.Where(liveColumns))
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count lives: %w", err)
	}

	var lives []gormModels.Live
	err := scoped().
		Preload("Host").
		Scopes(q.OrderBy(liveColumns), q.Paginate()).
		Find(&lives).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch lives: %w", err)
	}

	return lives, total, nil
}

// Stop ends the broadcast and closes its open viewer rows in one
// transaction. It returns the number of viewers closed.
func (r *LiveRepository) Stop(ctx context.Context, id string, at time.Time) (int64, error) {
	var closed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&gormModels.Live{}).Where("id = ?", id).Update("is_live", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("live not found with ID: %s", id)
		}

		res = tx.Model(&gormModels.LiveSession{}).
			Where("live_id = ? AND left_at IS NULL", id).
			Update("left_at", at)
		closed = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to stop live: %w", err)
	}
	return closed, nil
}

// ForceDelete permanently removes rooms and their viewer rows.
func (r *LiveRepository) ForceDelete(ctx context.Context, ids []string) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("live_id IN ?", ids).Delete(&gormModels.LiveSession{}).Error; err != nil {
			return err
		}
		res := tx.Unscoped().Where("id IN ?", ids).Delete(&gormModels.Live{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to force delete lives: %w", err)
	}
	return affected, nil
}
