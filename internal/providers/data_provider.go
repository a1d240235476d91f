package providers

import (
	"context"
	"fmt"
)

// SMSProvider delivers text messages to a phone number.
type SMSProvider interface {
	// Send delivers text to the E.164 or local number to and returns the
	// provider's message id.
	Send(ctx context.Context, to, text string) (string, error)

	// GetProviderType returns the provider type identifier
	GetProviderType() string
}

const (
	ErrCodeInvalidAPIKey     = "INVALID_API_KEY"
	ErrCodeNetworkError      = "NETWORK_ERROR"
	ErrCodeInvalidDataFormat = "INVALID_DATA_FORMAT"
	ErrCodeRejected          = "REJECTED"
)

type ProviderError struct {
	Code    string
	Message string
	Details string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
