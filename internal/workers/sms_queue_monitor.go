package workers

import (
	"context"
	"time"

	"streamhouse/api/internal/common"
	"streamhouse/api/internal/constants"
	"streamhouse/api/internal/logging"
)

// smsStreamMaxLen bounds the outbound stream; acked entries beyond it are trimmed.
const smsStreamMaxLen = 10000

// SMSQueueMonitor logs outbound SMS queue health and trims the stream
type SMSQueueMonitor struct {
	redisQueue *common.RedisQueueService
}

func NewSMSQueueMonitor(redisQueue *common.RedisQueueService) *SMSQueueMonitor {
	return &SMSQueueMonitor{redisQueue: redisQueue}
}

// QueueStats is a point-in-time view of the stream
type QueueStats struct {
	StreamName   string
	QueueLength  int64
	PendingCount int64
	LastChecked  time.Time
}

// Start checks the queue every interval until ctx is cancelled
func (m *SMSQueueMonitor) Start(ctx context.Context, interval time.Duration) {
	logging.Info("Starting SMS queue monitoring", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info("SMS queue monitor shutting down")
			return
		case <-ticker.C:
			if _, err := m.Check(ctx); err != nil {
				logging.Warn("SMS queue check failed", "error", err)
			}
		}
	}
}

// Check reads queue stats, logs them and trims the stream.
func (m *SMSQueueMonitor) Check(ctx context.Context) (*QueueStats, error) {
	length, err := m.redisQueue.GetQueueLength(ctx, constants.SMSStream)
	if err != nil {
		return nil, err
	}
	pending, err := m.redisQueue.GetPendingCount(ctx, constants.SMSStream, constants.SMSConsumerGroup)
	if err != nil {
		return nil, err
	}

	stats := &QueueStats{
		StreamName:   constants.SMSStream,
		QueueLength:  length,
		PendingCount: pending,
		LastChecked:  time.Now(),
	}

	if pending > 0 {
		logging.Info("SMS queue status", "stream", stats.StreamName, "length", length, "pending", pending)
	}

	if length > smsStreamMaxLen {
		if err := m.redisQueue.TrimStream(ctx, constants.SMSStream, smsStreamMaxLen); err != nil {
			return stats, err
		}
	}
	return stats, nil
}
