package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestSMSProvider(url string) *VonageSMSProvider {
	return NewVonageSMSProvider(url, "key", "secret", "Streamhouse")
}

func TestVonageSMSProvider_Send_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/sms/json" {
			t.Errorf("Expected path /sms/json, got %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm: %v", err)
		}
		if r.PostForm.Get("api_key") != "key" || r.PostForm.Get("to") != "62812" {
			t.Errorf("Unexpected form %v", r.PostForm)
		}
		if r.PostForm.Get("text") != "code 123456" {
			t.Errorf("Expected text to be forwarded, got %q", r.PostForm.Get("text"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message-count":"1","messages":[{"to":"62812","message-id":"abc-1","status":"0"}]}`))
	}))
	defer server.Close()

	id, err := newTestSMSProvider(server.URL).Send(context.Background(), "62812", "code 123456")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if id != "abc-1" {
		t.Errorf("Expected message id abc-1, got %s", id)
	}
}

func TestVonageSMSProvider_Send_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message-count":"1","messages":[{"status":"4","error-text":"Bad Credentials"}]}`))
	}))
	defer server.Close()

	_, err := newTestSMSProvider(server.URL).Send(context.Background(), "62812", "hi")

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("Expected ProviderError, got %v", err)
	}
	if provErr.Code != ErrCodeRejected || provErr.Details != "Bad Credentials" {
		t.Errorf("Unexpected error %+v", provErr)
	}
}

func TestVonageSMSProvider_Send_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newTestSMSProvider(server.URL).Send(context.Background(), "62812", "hi")

	var provErr *ProviderError
	if !errors.As(err, &provErr) || provErr.Code != ErrCodeInvalidAPIKey {
		t.Fatalf("Expected INVALID_API_KEY error, got %v", err)
	}
}

func TestVonageSMSProvider_Send_MissingCredentials(t *testing.T) {
	provider := NewVonageSMSProvider("http://127.0.0.1:0", "", "", "x")

	_, err := provider.Send(context.Background(), "62812", "hi")

	var provErr *ProviderError
	if !errors.As(err, &provErr) || provErr.Code != ErrCodeInvalidAPIKey {
		t.Fatalf("Expected INVALID_API_KEY error, got %v", err)
	}
}

func TestVonageSMSProvider_Send_EmptyRecipient(t *testing.T) {
	_, err := newTestSMSProvider("http://127.0.0.1:0").Send(context.Background(), "", "hi")

	var provErr *ProviderError
	if !errors.As(err, &provErr) || provErr.Code != ErrCodeInvalidDataFormat {
		t.Fatalf("Expected INVALID_DATA_FORMAT error, got %v", err)
	}
}
