package workers

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"streamhouse/api/internal/common"
	"streamhouse/api/internal/metrics"
	"streamhouse/api/internal/providers"
)

// WorkersContainer holds the background consumers started with the server
type WorkersContainer struct {
	SMSDispatch *SMSDispatchWorker
	SMSMonitor  *SMSQueueMonitor
}

func NewWorkers(
	redQ *common.RedisQueueService,
	provider providers.SMSProvider,
	m *metrics.MetricsRegistry,
) *WorkersContainer {
	return &WorkersContainer{
		SMSDispatch: NewSMSDispatchWorker("sms_dispatch", redQ, provider, m),
		SMSMonitor:  NewSMSQueueMonitor(redQ),
	}
}

// Run starts every worker on g; they stop when ctx is cancelled.
func (wc *WorkersContainer) Run(ctx context.Context, g *errgroup.Group) {
	g.Go(func() error {
		return wc.SMSDispatch.Start(ctx, 2)
	})
	g.Go(func() error {
		wc.SMSMonitor.Start(ctx, 30*time.Second)
		return nil
	})
}
