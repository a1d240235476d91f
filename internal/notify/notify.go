// Package notify delivers one-time passwords to users over SMS, either
// directly or through the outbound Redis stream.
package notify

import (
	"context"
	"fmt"
	"time"

	"streamhouse/api/internal/constants"
	"streamhouse/api/internal/i18n"
	"streamhouse/api/internal/logging"
	"streamhouse/api/internal/metrics"
	"streamhouse/api/internal/providers"
)

// SMSMessage is the payload placed on the outbound stream.
type SMSMessage struct {
	To        string    `json:"to"`
	Text      string    `json:"text"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// OTPNotifier hands a freshly generated OTP to the user.
type OTPNotifier interface {
	NotifyOTP(ctx context.Context, userID, phone, otp string) error
}

// Enqueuer is the subset of the Redis queue used by QueueNotifier.
type Enqueuer interface {
	Enqueue(ctx context.Context, streamName string, item interface{}) (string, error)
}

// Composer renders the OTP text in the request language.
type Composer struct {
	AppName  string
	Validity time.Duration
}

func (c Composer) message(ctx context.Context, userID, phone, otp string) SMSMessage {
	return SMSMessage{
		To:        phone,
		Text:      i18n.Tc(ctx, "otp.sms_text", c.AppName, otp, int(c.Validity/time.Minute)),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
}

// QueueNotifier publishes the message for the SMS dispatch worker.
type QueueNotifier struct {
	Composer
	queue Enqueuer
}

func NewQueueNotifier(queue Enqueuer, composer Composer) *QueueNotifier {
	return &QueueNotifier{Composer: composer, queue: queue}
}

func (n *QueueNotifier) NotifyOTP(ctx context.Context, userID, phone, otp string) error {
	id, err := n.queue.Enqueue(ctx, constants.SMSStream, n.message(ctx, userID, phone, otp))
	if err != nil {
		return fmt.Errorf("queue otp sms: %w", err)
	}
	logging.Debug("OTP SMS queued", "user_id", userID, "stream_id", id)
	return nil
}

// DirectNotifier sends through the provider inside the request.
type DirectNotifier struct {
	Composer
	provider providers.SMSProvider
	metrics  *metrics.MetricsRegistry
}

func NewDirectNotifier(provider providers.SMSProvider, composer Composer, m *metrics.MetricsRegistry) *DirectNotifier {
	return &DirectNotifier{Composer: composer, provider: provider, metrics: m}
}

func (n *DirectNotifier) NotifyOTP(ctx context.Context, userID, phone, otp string) error {
	msg := n.message(ctx, userID, phone, otp)
	id, err := n.provider.Send(ctx, msg.To, msg.Text)
	if err != nil {
		n.count("failed")
		return fmt.Errorf("send otp sms: %w", err)
	}
	n.count("sent")
	logging.Info("OTP SMS sent", "user_id", userID, "provider", n.provider.GetProviderType(), "message_id", id)
	return nil
}

func (n *DirectNotifier) count(result string) {
	if n.metrics != nil {
		n.metrics.SMSSentTotal.WithLabelValues(result).Inc()
	}
}

// LogNotifier records issued OTPs in the log. Used when SMS is disabled.
// The code and phone number are only written when RevealCode is set.
type LogNotifier struct {
	RevealCode bool
	Validity   time.Duration
}

func (n LogNotifier) NotifyOTP(_ context.Context, userID, phone, otp string) error {
	expiresAt := time.Now().Add(n.Validity).UTC()
	if n.RevealCode {
		logging.Debug("OTP issued (SMS disabled)", "user_id", userID, "expires_at", expiresAt, "phone", phone, "otp", otp)
		return nil
	}
	logging.Info("OTP issued (SMS disabled)", "user_id", userID, "expires_at", expiresAt)
	return nil
}
