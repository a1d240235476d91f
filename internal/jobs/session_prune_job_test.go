package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"streamhouse/api/internal/constants"
	"streamhouse/api/internal/db/dbtest"
	"streamhouse/api/internal/db/repositories"
	"streamhouse/api/internal/metrics"
	gormModels "streamhouse/api/internal/models/gorm"
)

func TestSessionPruneJob_Run(t *testing.T) {
	gdb := dbtest.Open(t)
	ctx := context.Background()
	user := dbtest.CreateUser(t, gdb, "a@mail.com", constants.RoleIDUser)

	sessions := repositories.NewSessionRepository(gdb)
	now := time.Now().UTC()
	sessions.Create(ctx, &gormModels.Session{UserID: user.ID, Token: "a", ExpiresAt: now.Add(-2 * time.Hour)})
	sessions.Create(ctx, &gormModels.Session{UserID: user.ID, Token: "b", ExpiresAt: now.Add(-time.Minute)})
	sessions.Create(ctx, &gormModels.Session{UserID: user.ID, Token: "c", ExpiresAt: now.Add(time.Hour)})

	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	job := NewSessionPruneJob(sessions, m)
	job.now = func() time.Time { return now }

	removed, err := job.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if removed != 2 {
		t.Errorf("Expected 2 removed, got %d", removed)
	}
	if got := testutil.ToFloat64(m.SessionsPrunedTotal); got != 2 {
		t.Errorf("Expected pruned counter 2, got %v", got)
	}
}

func TestSessionPruneJob_RunScheduledStopsOnCancel(t *testing.T) {
	gdb := dbtest.Open(t)
	job := NewSessionPruneJob(repositories.NewSessionRepository(gdb), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.RunScheduled(ctx, time.Hour)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("RunScheduled did not return after cancel")
	}
}
