package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"streamhouse/api/internal/auth"
	"streamhouse/api/internal/constants"
	"streamhouse/api/internal/errs"
	"streamhouse/api/internal/models/dtos"
	"streamhouse/api/internal/models/entities"
	gormModels "streamhouse/api/internal/models/gorm"
	"streamhouse/api/internal/query"
	"streamhouse/api/internal/services"
)

const liveID = "6f1c1a3e-0a52-4f43-8d9a-3f0f3f0f3f0f"

// Mock AuthService
type mockAuthService struct {
	AuthService
	signInFunc        func(ctx context.Context, req *dtos.SignInReq, client dtos.ClientInfo) (*dtos.LoginResponse, error)
	verifySessionFunc func(ctx context.Context, userID, token string) (*gormModels.User, error)
	logoutFunc        func(ctx context.Context, userID, token string) error
}

func (m *mockAuthService) SignIn(ctx context.Context, req *dtos.SignInReq, client dtos.ClientInfo) (*dtos.LoginResponse, error) {
	return m.signInFunc(ctx, req, client)
}

func (m *mockAuthService) VerifySession(ctx context.Context, userID, token string) (*gormModels.User, error) {
	return m.verifySessionFunc(ctx, userID, token)
}

func (m *mockAuthService) Logout(ctx context.Context, userID, token string) error {
	return m.logoutFunc(ctx, userID, token)
}

// Mock LiveService
type mockLiveService struct {
	LiveService
	findAllFunc      func(ctx context.Context, q query.Params) ([]gormModels.Live, int64, error)
	createFunc       func(ctx context.Context, req *dtos.LiveReq, hostID string) (*gormModels.Live, error)
	multipleSoftFunc func(ctx context.Context, ids []string) (int64, error)
	joinFunc         func(ctx context.Context, id, userID string) (*gormModels.LiveSession, error)
	stopFunc         func(ctx context.Context, id string, actor services.Actor) (*gormModels.Live, error)
	findByIDFunc     func(ctx context.Context, id string, paranoid bool) (*gormModels.Live, error)
}

func (m *mockLiveService) FindAll(ctx context.Context, q query.Params) ([]gormModels.Live, int64, error) {
	return m.findAllFunc(ctx, q)
}

func (m *mockLiveService) FindByID(ctx context.Context, id string, paranoid bool) (*gormModels.Live, error) {
	return m.findByIDFunc(ctx, id, paranoid)
}

func (m *mockLiveService) Create(ctx context.Context, req *dtos.LiveReq, hostID string) (*gormModels.Live, error) {
	return m.createFunc(ctx, req, hostID)
}

func (m *mockLiveService) MultipleSoftDelete(ctx context.Context, ids []string) (int64, error) {
	return m.multipleSoftFunc(ctx, ids)
}

func (m *mockLiveService) Join(ctx context.Context, id, userID string) (*gormModels.LiveSession, error) {
	return m.joinFunc(ctx, id, userID)
}

func (m *mockLiveService) Stop(ctx context.Context, id string, actor services.Actor) (*gormModels.Live, error) {
	return m.stopFunc(ctx, id, actor)
}

func withClaims(req *http.Request, userID, roleID, token string) *http.Request {
	ctx := auth.SetUserClaims(req.Context(), &auth.SessionClaims{UserUUID: userID, RoleUUID: roleID})
	ctx = auth.SetToken(ctx, token)
	return req.WithContext(ctx)
}

// withID routes the request through chi so {id} is populated.
func withID(pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(req.Method, pattern, h)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) dtos.APIResponse {
	t.Helper()
	var response dtos.APIResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return response
}

func TestSignInHandler_Success(t *testing.T) {
	mockService := &mockAuthService{
		signInFunc: func(ctx context.Context, req *dtos.SignInReq, client dtos.ClientInfo) (*dtos.LoginResponse, error) {
			if req.Email != "user@mail.com" {
				t.Errorf("Expected email user@mail.com, got %s", req.Email)
			}
			if client.IPAddress != "203.0.113.9" || client.Device != "test-agent" {
				t.Errorf("Unexpected client info %+v", client)
			}
			return &dtos.LoginResponse{AccessToken: "jwt", TokenType: "Bearer", User: dtos.LoginUser{UID: "u-1"}}, nil
		},
	}

	body := `{"email":"user@mail.com","password":"Basecamp123"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/sign-in", strings.NewReader(body))
	req.Header.Set("User-Agent", "test-agent")
	req.RemoteAddr = "203.0.113.9:41000"

	rr := httptest.NewRecorder()
	SignInHandler(mockService).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	response := decodeResponse(t, rr)
	if response.Status != "ok" || response.Message != "login successfully" {
		t.Errorf("Unexpected response %+v", response)
	}
}

func TestSignInHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"wrong password", errs.BadRequest("incorrect email or password"), http.StatusBadRequest},
		{"blocked", errs.Forbidden("your account has been blocked"), http.StatusForbidden},
		{"validation", &errs.ValidationError{Message: "validation failed", Fields: map[string]string{"email": "email is required"}}, http.StatusUnprocessableEntity},
		{"database down", errors.New("dial tcp: refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &mockAuthService{
				signInFunc: func(context.Context, *dtos.SignInReq, dtos.ClientInfo) (*dtos.LoginResponse, error) {
					return nil, tt.err
				},
			}
			req := httptest.NewRequest(http.MethodPost, "/v1/auth/sign-in", strings.NewReader(`{}`))
			rr := httptest.NewRecorder()
			SignInHandler(mockService).ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Fatalf("Expected status %d, got %d", tt.want, rr.Code)
			}
			response := decodeResponse(t, rr)
			if tt.want == http.StatusInternalServerError && strings.Contains(response.Message, "dial tcp") {
				t.Error("Expected internal error details to be hidden")
			}
			if tt.want == http.StatusUnprocessableEntity && response.Errors["email"] == "" {
				t.Error("Expected field errors in response")
			}
		})
	}
}

func TestSignUpHandler_InvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/sign-up", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	SignUpHandler(&mockAuthService{}).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestLogoutHandler_UsesRequestToken(t *testing.T) {
	var gotUser, gotToken string
	mockService := &mockAuthService{
		logoutFunc: func(ctx context.Context, userID, token string) error {
			gotUser, gotToken = userID, token
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	req = withClaims(req, "u-1", constants.RoleIDUser, "jwt-token")
	rr := httptest.NewRecorder()
	LogoutHandler(mockService).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if gotUser != "u-1" || gotToken != "jwt-token" {
		t.Errorf("Expected logout of u-1/jwt-token, got %s/%s", gotUser, gotToken)
	}
}

func TestVerifySessionHandler_MissingClaims(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/auth/verify-session", nil)
	rr := httptest.NewRecorder()
	VerifySessionHandler(&mockAuthService{}).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rr.Code)
	}
}

func TestCreateLiveHandler(t *testing.T) {
	mockService := &mockLiveService{
		createFunc: func(ctx context.Context, req *dtos.LiveReq, hostID string) (*gormModels.Live, error) {
			if *req.Price < 0 {
				return nil, &errs.ValidationError{Message: "validation failed", Fields: map[string]string{"price": "price must be 0 or greater"}}
			}
			return &gormModels.Live{ID: liveID, HostID: hostID, Price: *req.Price, IsLive: true}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/live/create-room", strings.NewReader(`{"price":100,"is_private":false}`))
	req = withClaims(req, "host-1", constants.RoleIDHost, "t")
	rr := httptest.NewRecorder()
	CreateLiveHandler(mockService).ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rr.Code)
	}
	response := decodeResponse(t, rr)
	data, _ := response.Data.(map[string]interface{})
	if data["host_id"] != "host-1" {
		t.Errorf("Expected host_id from claims, got %v", data["host_id"])
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/live/create-room", strings.NewReader(`{"price":-1,"is_private":false}`))
	req = withClaims(req, "host-1", constants.RoleIDHost, "t")
	rr = httptest.NewRecorder()
	CreateLiveHandler(mockService).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status 422, got %d", rr.Code)
	}
	if decodeResponse(t, rr).Errors["price"] == "" {
		t.Error("Expected price field error")
	}
}

func TestListLivesHandler(t *testing.T) {
	mockService := &mockLiveService{
		findAllFunc: func(ctx context.Context, q query.Params) ([]gormModels.Live, int64, error) {
			if q.Page != 2 || q.PageSize != 5 {
				t.Errorf("Expected page 2 size 5, got %+v", q)
			}
			return []gormModels.Live{{ID: liveID}}, 6, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/live?page=2&pageSize=5", nil)
	rr := httptest.NewRecorder()
	ListLivesHandler(mockService).ServeHTTP(rr, req)

	response := decodeResponse(t, rr)
	if response.Total == nil || *response.Total != 6 {
		t.Errorf("Expected total 6, got %v", response.Total)
	}
	if response.Message != "6 data received" {
		t.Errorf("Unexpected message %q", response.Message)
	}
}

func TestGetLiveHandler_Paranoid(t *testing.T) {
	var gotParanoid bool
	mockService := &mockLiveService{
		findByIDFunc: func(ctx context.Context, id string, paranoid bool) (*gormModels.Live, error) {
			gotParanoid = paranoid
			return &gormModels.Live{ID: id}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/live/"+liveID+"?paranoid=false", nil)
	rr := withID("/v1/live/{id}", GetLiveHandler(mockService), req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if gotParanoid {
		t.Error("Expected paranoid=false to be passed through")
	}
}

func TestMultipleSoftDeleteHandler(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantIDs int
		want    int
	}{
		{"array", `{"ids":["a","b"]}`, 2, http.StatusOK},
		{"encoded string", `{"ids":"[\"a\",\"b\",\"c\"]"}`, 3, http.StatusOK},
		{"empty", `{"ids":[]}`, 0, http.StatusBadRequest},
		{"not a list", `{"ids":42}`, 0, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &mockLiveService{
				multipleSoftFunc: func(ctx context.Context, ids []string) (int64, error) {
					if len(ids) == 0 {
						return 0, errs.BadRequest("ids can't be empty")
					}
					if len(ids) != tt.wantIDs {
						t.Errorf("Expected %d ids, got %d", tt.wantIDs, len(ids))
					}
					return int64(len(ids)), nil
				},
			}

			req := httptest.NewRequest(http.MethodPost, "/v1/live/multiple/soft-delete", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			MultipleSoftDeleteLivesHandler(mockService).ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, rr.Code)
			}
		})
	}
}

func TestJoinAndStopLiveHandlers(t *testing.T) {
	mockService := &mockLiveService{
		joinFunc: func(ctx context.Context, id, userID string) (*gormModels.LiveSession, error) {
			if id != liveID || userID != "viewer-1" {
				t.Errorf("Unexpected join %s by %s", id, userID)
			}
			return &gormModels.LiveSession{LiveID: id, UserID: userID}, nil
		},
		stopFunc: func(ctx context.Context, id string, actor services.Actor) (*gormModels.Live, error) {
			if actor.UserID != "host-1" {
				return nil, errs.Forbidden("you are not the host of this live room")
			}
			return &gormModels.Live{ID: id}, nil
		},
	}

	req := withClaims(httptest.NewRequest(http.MethodPost, "/v1/live/join/"+liveID, nil), "viewer-1", constants.RoleIDUser, "t")
	rr := withID("/v1/live/join/{id}", JoinLiveHandler(mockService), req)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected join status 200, got %d", rr.Code)
	}

	req = withClaims(httptest.NewRequest(http.MethodPost, "/v1/live/stop-live/"+liveID, nil), "host-2", constants.RoleIDHost, "t")
	rr = withID("/v1/live/stop-live/{id}", StopLiveHandler(mockService), req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("Expected stop status 403, got %d", rr.Code)
	}
}

func TestHealthCheckHandler(t *testing.T) {
	upSince := time.Now().Add(-time.Minute)

	rr := httptest.NewRecorder()
	HealthCheckHandler("streamhouse", map[string]Pinger{
		"postgres": func(context.Context) error { return nil },
	}, upSince).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthCheck", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	HealthCheckHandler("streamhouse", map[string]Pinger{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	}, upSince).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthCheck", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected status 503, got %d", rr.Code)
	}

	var resp entities.HealthCheckResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.App != "streamhouse" || resp.Status != entities.HealthDown {
		t.Errorf("Unexpected health response %+v", resp)
	}
	if redis := resp.Dependencies["redis"]; redis.Status != entities.HealthDown || redis.Details != "connection refused" {
		t.Errorf("Expected redis reported down, got %+v", redis)
	}
	if pg := resp.Dependencies["postgres"]; pg.Status != entities.HealthUp || pg.Latency == "" {
		t.Errorf("Expected postgres up with latency, got %+v", pg)
	}
}
