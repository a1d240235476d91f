package services

import (
	"context"
	"strconv"
	"time"

	"streamhouse/api/internal/common"
	"streamhouse/api/internal/constants"
	"streamhouse/api/internal/db/repositories"
	"streamhouse/api/internal/errs"
	"streamhouse/api/internal/i18n"
	"streamhouse/api/internal/logging"
	"streamhouse/api/internal/metrics"
	"streamhouse/api/internal/models/dtos"
	gormModels "streamhouse/api/internal/models/gorm"
	"streamhouse/api/internal/notify"
	"streamhouse/api/internal/validation"
)

// AuthService handles registration, OTP verification and sign-in sessions
type AuthService struct {
	users    *repositories.UserRepositoryGORM
	sessions *repositories.SessionRepository
	hasher   *common.HashService
	tokens   *common.TokenService
	cache    *common.SessionCache
	notifier notify.OTPNotifier
	metrics  *metrics.MetricsRegistry
	otpTTL   time.Duration
	now      func() time.Time
}

func NewAuthService(
	users *repositories.UserRepositoryGORM,
	sessions *repositories.SessionRepository,
	hasher *common.HashService,
	tokens *common.TokenService,
	cache *common.SessionCache,
	notifier notify.OTPNotifier,
	m *metrics.MetricsRegistry,
	otpTTL time.Duration,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		tokens:   tokens,
		cache:    cache,
		notifier: notifier,
		metrics:  m,
		otpTTL:   otpTTL,
		now:      time.Now,
	}
}

func (s *AuthService) count(operation, result string) {
	if s.metrics != nil {
		s.metrics.AuthAttemptsTotal.WithLabelValues(operation, result).Inc()
	}
}

func (s *AuthService) countCache(hit bool) {
	if s.metrics == nil {
		return
	}
	pattern := string(constants.CachePrefixSession) + "*"
	if hit {
		s.metrics.CacheHitsTotal.WithLabelValues(pattern).Inc()
		return
	}
	s.metrics.CacheMissesTotal.WithLabelValues(pattern).Inc()
}

// SignUp registers an inactive user account and sends it an OTP.
func (s *AuthService) SignUp(ctx context.Context, req *dtos.SignUpReq) (*dtos.SignUpResponse, error) {
	if err := validation.Struct(ctx, req); err != nil {
		return nil, err
	}

	emailTaken, phoneTaken, err := s.users.Taken(ctx, req.Email, req.Phone, "")
	if err != nil {
		return nil, err
	}
	if emailTaken {
		return nil, errs.BadRequest(i18n.Tc(ctx, "errors.already_exists", constants.EntityEmail))
	}
	if phoneTaken {
		return nil, errs.BadRequest(i18n.Tc(ctx, "errors.already_exists", constants.EntityPhone))
	}

	password, err := s.hasher.HashPassword(req.NewPassword)
	if err != nil {
		return nil, err
	}

	otp, otpHash, expiresAt, err := s.newOTP()
	if err != nil {
		return nil, err
	}

	user := &gormModels.User{
		Username:       req.Username,
		Email:          req.Email,
		Phone:          req.Phone,
		Password:       password,
		RoleID:         constants.RoleIDUser,
		IsActive:       false,
		OTP:            &otpHash,
		OTPExpiredDate: &expiresAt,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.sendOTP(ctx, user, otp)
	s.count("sign_up", "ok")

	return &dtos.SignUpResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Phone:        user.Phone,
		IsActive:     user.IsActive,
		OTPExpiresAt: expiresAt,
	}, nil
}

// VerifyOTP activates the account when the code matches and is unexpired.
func (s *AuthService) VerifyOTP(ctx context.Context, req *dtos.VerifyOTPReq) (*gormModels.User, error) {
	if err := validation.Struct(ctx, req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, req.UserID, false)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.NotFound(i18n.Tc(ctx, "errors.account_not_found"))
	}

	if user.OTP == nil || !s.hasher.Compare(*user.OTP, req.OTP) {
		s.count("verify_otp", "invalid")
		return nil, errs.BadRequest(i18n.Tc(ctx, "errors.invalid_otp"))
	}
	if user.OTPExpiredDate == nil || s.now().After(*user.OTPExpiredDate) {
		s.count("verify_otp", "expired")
		return nil, errs.BadRequest(i18n.Tc(ctx, "errors.otp_expired"))
	}

	if err := s.users.Activate(ctx, user.ID); err != nil {
		return nil, err
	}
	s.count("verify_otp", "ok")

	return s.users.GetByID(ctx, user.ID, false)
}

// ResendOTP replaces the pending OTP of an unverified account.
func (s *AuthService) ResendOTP(ctx context.Context, req *dtos.ResendOTPReq) error {
	if err := validation.Struct(ctx, req); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, req.UserID, false)
	if err != nil {
		return err
	}
	if user == nil {
		return errs.NotFound(i18n.Tc(ctx, "errors.account_not_found"))
	}
	if user.IsActive {
		return errs.BadRequest(i18n.Tc(ctx, "errors.account_verified"))
	}

	otp, otpHash, expiresAt, err := s.newOTP()
	if err != nil {
		return err
	}
	if err := s.users.SetOTP(ctx, user.ID, otpHash, expiresAt); err != nil {
		return err
	}

	s.sendOTP(ctx, user, otp)
	return nil
}

// SignIn checks credentials, issues an access token and records the session.
func (s *AuthService) SignIn(ctx context.Context, req *dtos.SignInReq, client dtos.ClientInfo) (*dtos.LoginResponse, error) {
	if err := validation.Struct(ctx, req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.count("sign_in", "not_found")
		return nil, errs.NotFound(i18n.Tc(ctx, "errors.account_not_found"))
	}
	if !s.hasher.Compare(user.Password, req.Password) {
		s.count("sign_in", "bad_password")
		return nil, errs.BadRequest(i18n.Tc(ctx, "errors.incorrect_email_or_pass"))
	}
	if user.IsBlocked {
		s.count("sign_in", "blocked")
		return nil, errs.Forbidden(i18n.Tc(ctx, "errors.account_blocked"))
	}

	token, expiresIn, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	session := &gormModels.Session{
		UserID:    user.ID,
		Token:     token,
		IPAddress: common.StringPtr(client.IPAddress),
		Device:    common.StringPtr(client.Device),
		Platform:  common.StringPtr(client.Platform),
		Latitude:  formatCoord(req.Latitude),
		Longitude: formatCoord(req.Longitude),
		ExpiresAt: s.now().UTC().Add(time.Duration(expiresIn) * time.Second),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	s.count("sign_in", "ok")

	return &dtos.LoginResponse{
		AccessToken: token,
		ExpiresIn:   expiresIn,
		TokenType:   "Bearer",
		User:        dtos.LoginUser{UID: user.ID},
		Username:    user.Username,
	}, nil
}

// Authenticate resolves a bearer token to its live session. Verified
// sessions are cached briefly.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*common.SessionData, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		logging.Debug("Token rejected", "error", err)
		return nil, errs.Unauthorized(i18n.Tc(ctx, "errors.unauthorized"))
	}

	if cached := s.cache.Get(ctx, claims.UID, token); cached != nil {
		s.countCache(true)
		return cached, nil
	}
	s.countCache(false)

	session, err := s.sessions.GetByUserToken(ctx, claims.UID, token)
	if err != nil {
		return nil, err
	}
	if session == nil || s.now().After(session.ExpiresAt) {
		return nil, errs.Unauthorized(i18n.Tc(ctx, "errors.session_expired"))
	}

	user, err := s.users.GetByID(ctx, claims.UID, false)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.Unauthorized(i18n.Tc(ctx, "errors.account_not_found"))
	}
	if user.IsBlocked {
		return nil, errs.Forbidden(i18n.Tc(ctx, "errors.account_blocked"))
	}

	data := &common.SessionData{
		SessionID: session.ID,
		UserID:    user.ID,
		RoleID:    user.RoleID,
		Username:  user.Username,
		ExpiresAt: session.ExpiresAt,
	}
	if err := s.cache.Remember(ctx, token, data); err != nil {
		logging.Warn("Failed to cache session", "user_id", user.ID, "error", err)
	}
	return data, nil
}

// VerifySession confirms the session is still valid and returns its user.
func (s *AuthService) VerifySession(ctx context.Context, userID, token string) (*gormModels.User, error) {
	data, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	if data.UserID != userID {
		return nil, errs.Unauthorized(i18n.Tc(ctx, "errors.session_expired"))
	}

	user, err := s.users.GetByID(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.NotFound(i18n.Tc(ctx, "errors.account_not_found"))
	}
	return user, nil
}

// Logout ends the session bound to token.
func (s *AuthService) Logout(ctx context.Context, userID, token string) error {
	user, err := s.users.GetByID(ctx, userID, false)
	if err != nil {
		return err
	}
	if user == nil {
		return errs.NotFound(i18n.Tc(ctx, "errors.account_not_found"))
	}

	if _, err := s.sessions.DeleteByUserToken(ctx, userID, token); err != nil {
		return err
	}
	if err := s.cache.Forget(ctx, userID, token); err != nil {
		logging.Warn("Failed to evict cached session", "user_id", userID, "error", err)
	}
	return nil
}

func (s *AuthService) newOTP() (otp, hash string, expiresAt time.Time, err error) {
	otp, err = common.GenerateOTP()
	if err != nil {
		return "", "", time.Time{}, err
	}
	hash, err = s.hasher.HashOTP(otp)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return otp, hash, s.now().UTC().Add(s.otpTTL), nil
}

// sendOTP does not fail the request; the user can ask for a resend.
func (s *AuthService) sendOTP(ctx context.Context, user *gormModels.User, otp string) {
	if err := s.notifier.NotifyOTP(ctx, user.ID, user.Phone, otp); err != nil {
		logging.Error("Failed to deliver OTP", "user_id", user.ID, "error", err)
	}
}

func formatCoord(v *float64) *string {
	if v == nil {
		return nil
	}
	s := strconv.FormatFloat(*v, 'f', -1, 64)
	return &s
}
