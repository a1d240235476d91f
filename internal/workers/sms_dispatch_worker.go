package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"streamhouse/api/internal/common"
	"streamhouse/api/internal/constants"
	"streamhouse/api/internal/logging"
	"streamhouse/api/internal/metrics"
	"streamhouse/api/internal/notify"
	"streamhouse/api/internal/providers"
)

const (
	smsBlockTime     = 5 * time.Second
	smsClaimInterval = 2 * time.Minute
	smsStaleAfter    = 5 * time.Minute
)

// SMSDispatchWorker drains the outbound SMS stream through a consumer group
type SMSDispatchWorker struct {
	workerID   string
	redisQueue *common.RedisQueueService
	provider   providers.SMSProvider
	metrics    *metrics.MetricsRegistry
	blockTime  time.Duration
}

// NewSMSDispatchWorker creates a new SMS dispatch worker
func NewSMSDispatchWorker(
	workerID string,
	redisQueue *common.RedisQueueService,
	provider providers.SMSProvider,
	m *metrics.MetricsRegistry,
) *SMSDispatchWorker {
	return &SMSDispatchWorker{
		workerID:   workerID,
		redisQueue: redisQueue,
		provider:   provider,
		metrics:    m,
		blockTime:  smsBlockTime,
	}
}

// Start runs numWorkers consumers plus the stale-message claimer until ctx
// is cancelled.
func (w *SMSDispatchWorker) Start(ctx context.Context, numWorkers int) error {
	log := logging.Named("sms-worker")
	log.Infow("Starting SMS workers", "count", numWorkers, "worker_id", w.workerID)

	if err := w.redisQueue.CreateConsumerGroup(ctx, constants.SMSStream, constants.SMSConsumerGroup); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		consumer := fmt.Sprintf("%s-%d", w.workerID, i)
		go func() {
			defer wg.Done()
			w.processQueue(ctx, consumer)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		w.claimStaleMessages(ctx)
	}()

	wg.Wait()
	log.Infow("All SMS workers stopped")
	return nil
}

// processQueue continuously sends messages read by one consumer
func (w *SMSDispatchWorker) processQueue(ctx context.Context, consumer string) {
	log := logging.Named("sms-worker").With("consumer", consumer)
	processed, failed := 0, 0

	for {
		select {
		case <-ctx.Done():
			log.Infow("Shutting down", "processed", processed, "errors", failed)
			return
		default:
		}

		msg, err := w.redisQueue.Dequeue(ctx, constants.SMSStream, constants.SMSConsumerGroup, consumer, w.blockTime)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			log.Warnw("Error dequeuing", "error", err)
			time.Sleep(time.Second)
			continue
		}
		if msg == nil {
			continue
		}

		if err := w.ProcessMessage(ctx, *msg); err != nil {
			log.Errorw("Error sending SMS", "id", msg.ID, "error", err)
			failed++
		} else {
			processed++
		}

		// acked either way; the provider already saw the request
		if err := w.redisQueue.Ack(ctx, constants.SMSStream, constants.SMSConsumerGroup, msg.ID); err != nil {
			log.Warnw("Error acknowledging message", "id", msg.ID, "error", err)
		}
	}
}

// ProcessMessage decodes and sends one stream entry.
func (w *SMSDispatchWorker) ProcessMessage(ctx context.Context, msg common.QueueMessage) error {
	var sms notify.SMSMessage
	if err := msg.Decode(&sms); err != nil {
		w.count("invalid")
		return err
	}

	id, err := w.provider.Send(ctx, sms.To, sms.Text)
	if err != nil {
		w.count("failed")
		return err
	}

	w.count("sent")
	logging.Info("SMS sent", "user_id", sms.UserID, "message_id", id, "queued_for", time.Since(sms.CreatedAt).String())
	return nil
}

// claimStaleMessages periodically takes over messages left pending by dead consumers
func (w *SMSDispatchWorker) claimStaleMessages(ctx context.Context) {
	ticker := time.NewTicker(smsClaimInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.ClaimStale(ctx, smsStaleAfter)
		}
	}
}

// ClaimStale sends and acks every message idle for at least minIdle.
func (w *SMSDispatchWorker) ClaimStale(ctx context.Context, minIdle time.Duration) int {
	claimer := w.workerID + "-claimer"
	messages, err := w.redisQueue.ClaimStale(ctx, constants.SMSStream, constants.SMSConsumerGroup, claimer, minIdle)
	if err != nil {
		logging.Warn("Error claiming stale SMS messages", "error", err)
		return 0
	}

	for _, msg := range messages {
		if err := w.ProcessMessage(ctx, msg); err != nil {
			logging.Error("Error sending claimed SMS", "id", msg.ID, "error", err)
		}
		if err := w.redisQueue.Ack(ctx, constants.SMSStream, constants.SMSConsumerGroup, msg.ID); err != nil {
			logging.Warn("Error acknowledging claimed message", "id", msg.ID, "error", err)
		}
	}

	if len(messages) > 0 {
		logging.Info("Claimed stale SMS messages", "count", len(messages))
	}
	return len(messages)
}

func (w *SMSDispatchWorker) count(result string) {
	if w.metrics != nil {
		w.metrics.SMSSentTotal.WithLabelValues(result).Inc()
	}
}
