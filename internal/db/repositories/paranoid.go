package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// paranoid implements the soft-delete lifecycle shared by tables with a
// deleted_at column.
type paranoid[T any] struct {
	db    *gorm.DB
	label string
}

// Restore clears deleted_at on the given soft-deleted rows.
func (p paranoid[T]) Restore(ctx context.Context, ids []string) (int64, error) {
	res := p.db.WithContext(ctx).
		Unscoped().
		Model(new(T)).
		Where("id IN ? AND deleted_at IS NOT NULL", ids).
		Update("deleted_at", nil)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to restore %s: %w", p.label, res.Error)
	}
	return res.RowsAffected, nil
}

// SoftDelete stamps deleted_at on live rows.
func (p paranoid[T]) SoftDelete(ctx context.Context, ids []string) (int64, error) {
	res := p.db.WithContext(ctx).Where("id IN ?", ids).Delete(new(T))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to soft delete %s: %w", p.label, res.Error)
	}
	return res.RowsAffected, nil
}

// CountWithDeleted counts the given ids regardless of deleted_at.
func (p paranoid[T]) CountWithDeleted(ctx context.Context, ids []string) (int64, error) {
	var n int64
	err := p.db.WithContext(ctx).Unscoped().Model(new(T)).Where("id IN ?", ids).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", p.label, err)
	}
	return n, nil
}
