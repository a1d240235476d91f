package jobs

import (
	"context"
	"time"

	"streamhouse/api/internal/logging"
	"streamhouse/api/internal/metrics"
)

// SessionPruner deletes sessions that expired before now.
type SessionPruner interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionPruneJob removes expired sign-in sessions
type SessionPruneJob struct {
	sessions SessionPruner
	metrics  *metrics.MetricsRegistry
	now      func() time.Time
}

// NewSessionPruneJob creates a new session prune job instance
func NewSessionPruneJob(sessions SessionPruner, m *metrics.MetricsRegistry) *SessionPruneJob {
	return &SessionPruneJob{sessions: sessions, metrics: m, now: time.Now}
}

// Run executes one prune pass
func (j *SessionPruneJob) Run(ctx context.Context) (int64, error) {
	start := time.Now()

	removed, err := j.sessions.DeleteExpired(ctx, j.now().UTC())
	if j.metrics != nil {
		j.metrics.JobDuration.WithLabelValues("session_prune").Observe(time.Since(start).Seconds())
	}
	if err != nil {
		logging.Error("Session prune failed", "error", err)
		return 0, err
	}

	if j.metrics != nil {
		j.metrics.SessionsPrunedTotal.Add(float64(removed))
	}
	logging.Info("Session prune completed", "removed", removed, "duration", time.Since(start).String())
	return removed, nil
}

// RunScheduled runs the job once immediately and then every interval
func (j *SessionPruneJob) RunScheduled(ctx context.Context, interval time.Duration) {
	logging.Info("Scheduling session prune", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	_, _ = j.Run(ctx)

	for {
		select {
		case <-ctx.Done():
			logging.Info("Session prune job stopped")
			return
		case <-ticker.C:
			_, _ = j.Run(ctx)
		}
	}
}
