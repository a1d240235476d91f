package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	gormModels "streamhouse/api/internal/models/gorm"
)

type LiveSessionRepository struct {
	db *gorm.DB
}

func NewLiveSessionRepository(db *gorm.DB) *LiveSessionRepository {
	return &LiveSessionRepository{db: db}
}

// ErrLiveEnded is returned by Upsert when the room is missing or no longer live.
var ErrLiveEnded = errors.New("live has ended")

// Upsert records that userID is watching liveID. A previous row for the
// same pair is reopened rather than duplicated. The room row is locked so a
// concurrent LiveRepository.Stop either sees this viewer or blocks the join.
func (r *LiveSessionRepository) Upsert(ctx context.Context, userID, liveID string) (*gormModels.LiveSession, error) {
	now := time.Now().UTC()
	row := gormModels.LiveSession{UserID: userID, LiveID: liveID}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var live gormModels.Live
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "is_live").
			Where("id = ?", liveID).
			First(&live).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLiveEnded
		}
		if err != nil {
			return err
		}
		if !live.IsLive {
			return ErrLiveEnded
		}

		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "live_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"left_at":    nil,
				"updated_at": now,
			}),
		}).Create(&row).Error
	})
	if errors.Is(err, ErrLiveEnded) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upsert live session: %w", err)
	}

	return r.Get(ctx, userID, liveID)
}

// Get returns the viewer row for a (user, live) pair, or nil.
func (r *LiveSessionRepository) Get(ctx context.Context, userID, liveID string) (*gormModels.LiveSession, error) {
	var row gormModels.LiveSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND live_id = ?", userID, liveID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch live session: %w", err)
	}
	return &row, nil
}

// MarkLeft stamps left_at on an open viewer row.
func (r *LiveSessionRepository) MarkLeft(ctx context.Context, userID, liveID string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&gormModels.LiveSession{}).
		Where("user_id = ? AND live_id = ? AND left_at IS NULL", userID, liveID).
		Update("left_at", at)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to leave live: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Viewers lists the viewer rows of a room, optionally only open ones.
func (r *LiveSessionRepository) Viewers(ctx context.Context, liveID string, activeOnly bool) ([]gormModels.LiveSession, error) {
	var rows []gormModels.LiveSession
	tx := r.db.WithContext(ctx).Preload("User").Where("live_id = ?", liveID)
	if activeOnly {
		tx = tx.Where("left_at IS NULL")
	}
	if err := tx.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch viewers: %w", err)
	}
	return rows, nil
}
