package jobs

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"streamhouse/api/internal/metrics"
)

// InitializeJobs starts all background jobs on g
func InitializeJobs(
	ctx context.Context,
	g *errgroup.Group,
	sessions SessionPruner,
	m *metrics.MetricsRegistry,
	pruneInterval time.Duration,
) *SessionPruneJob {
	pruneJob := NewSessionPruneJob(sessions, m)

	g.Go(func() error {
		pruneJob.RunScheduled(ctx, pruneInterval)
		return nil
	})

	return pruneJob
}
