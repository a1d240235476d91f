package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	gormModels "streamhouse/api/internal/models/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *gormModels.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetByUserToken finds the session a token was issued for. Returns nil
// when the session was logged out or pruned.
func (r *SessionRepository) GetByUserToken(ctx context.Context, userID, token string) (*gormModels.Session, error) {
	var session gormModels.Session
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	return &session, nil
}

func (r *SessionRepository) DeleteByUserToken(ctx context.Context, userID, token string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&gormModels.Session{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete session: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteExpired removes sessions whose token expired before now.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&gormModels.Session{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to prune sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}
