package providers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fastjson"

	"streamhouse/api/internal/common"
)

const defaultSMSTimeout = 10 * time.Second

// VonageSMSProvider implements SMSProvider against the Vonage (Nexmo) SMS REST API
type VonageSMSProvider struct {
	BaseURL   string
	APIKey    string
	APISecret string
	From      string
	Client    *fasthttp.Client
}

// NewVonageSMSProvider creates a new Vonage SMS provider
func NewVonageSMSProvider(baseURL, apiKey, apiSecret, from string) *VonageSMSProvider {
	return &VonageSMSProvider{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		APIKey:    apiKey,
		APISecret: apiSecret,
		From:      from,
		Client: &fasthttp.Client{
			Name:         "streamhouse",
			ReadTimeout:  defaultSMSTimeout,
			WriteTimeout: defaultSMSTimeout,
		},
	}
}

// GetProviderType returns the provider type identifier
func (p *VonageSMSProvider) GetProviderType() string {
	return "vonage_sms"
}

// Send posts one message. Vonage answers 200 even for rejected messages, so
// success is read from messages[0].status == "0".
func (p *VonageSMSProvider) Send(ctx context.Context, to, text string) (string, error) {
	if to == "" || text == "" {
		return "", &ProviderError{
			Code:    ErrCodeInvalidDataFormat,
			Message: "recipient and text cannot be empty",
		}
	}
	if p.APIKey == "" || p.APISecret == "" {
		return "", &ProviderError{
			Code:    ErrCodeInvalidAPIKey,
			Message: "VONAGE_API_KEY and VONAGE_API_SECRET must be set",
		}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(p.BaseURL + "/sms/json")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	args := req.PostArgs()
	args.Set("api_key", p.APIKey)
	args.Set("api_secret", p.APISecret)
	args.Set("from", p.From)
	args.Set("to", to)
	args.Set("text", text)

	common.LogHTTPRequest(req)

	deadline := time.Now().Add(defaultSMSTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := p.Client.DoDeadline(req, resp, deadline); err != nil {
		return "", &ProviderError{
			Code:    ErrCodeNetworkError,
			Message: "failed to reach SMS provider",
			Err:     err,
		}
	}

	common.LogHTTPResponse(resp)

	if resp.StatusCode() != fasthttp.StatusOK {
		code := ErrCodeRejected
		if resp.StatusCode() == fasthttp.StatusUnauthorized {
			code = ErrCodeInvalidAPIKey
		}
		return "", &ProviderError{
			Code:    code,
			Message: fmt.Sprintf("SMS provider returned HTTP %d", resp.StatusCode()),
			Details: string(resp.Body()),
		}
	}

	return parseVonageResponse(resp.Body())
}

func parseVonageResponse(body []byte) (string, error) {
	var parser fastjson.Parser
	v, err := parser.ParseBytes(body)
	if err != nil {
		return "", &ProviderError{
			Code:    ErrCodeInvalidDataFormat,
			Message: "invalid SMS provider response",
			Err:     err,
		}
	}

	messages := v.GetArray("messages")
	if len(messages) == 0 {
		return "", &ProviderError{
			Code:    ErrCodeInvalidDataFormat,
			Message: "SMS provider response has no messages",
			Details: string(v.GetStringBytes("error-text")),
		}
	}

	first := messages[0]
	if status := string(first.GetStringBytes("status")); status != "0" {
		return "", &ProviderError{
			Code:    ErrCodeRejected,
			Message: "SMS rejected with status " + status,
			Details: string(first.GetStringBytes("error-text")),
		}
	}

	return string(first.GetStringBytes("message-id")), nil
}
