package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"streamhouse/api/internal/models/dtos"
)

const liveStatsQuery = `
	SELECT
		l.id AS live_id,
		l.is_live AS is_live,
		COUNT(ls.id) AS total_viewers,
		COALESCE(SUM(CASE WHEN ls.id IS NOT NULL AND ls.left_at IS NULL THEN 1 ELSE 0 END), 0) AS active_viewers
	FROM "live" l
	LEFT JOIN "live_session" ls ON ls.live_id = l.id
	WHERE l.id = ? AND l.deleted_at IS NULL
	GROUP BY l.id, l.is_live
`

// LiveStatsRepository runs the viewer aggregate over sqlx.
type LiveStatsRepository struct {
	db *sqlx.DB
}

func NewLiveStatsRepository(db *sqlx.DB) *LiveStatsRepository {
	return &LiveStatsRepository{db: db}
}

// Stats returns viewer counts for a non-deleted room, or nil.
func (r *LiveStatsRepository) Stats(ctx context.Context, liveID string) (*dtos.LiveStats, error) {
	var stats dtos.LiveStats
	err := r.db.GetContext(ctx, &stats, r.db.Rebind(liveStatsQuery), liveID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch live stats: %w", err)
	}
	return &stats, nil
}
