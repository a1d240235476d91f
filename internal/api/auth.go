package api

import (
	"net/http"
	"time"

	"streamhouse/api/internal/auth"
	"streamhouse/api/internal/common"
	"streamhouse/api/internal/i18n"
	"streamhouse/api/internal/models/dtos"
)

// SignUpHandler handles POST /v1/auth/sign-up
func SignUpHandler(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.SignUpReq
		if err := decodeJSON(r, &req); err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		data, err := svc.SignUp(r.Context(), &req)
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, i18n.Tc(r.Context(), "success.register"), data, http.StatusCreated)
	}
}

// SignInHandler handles POST /v1/auth/sign-in
func SignInHandler(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.SignInReq
		if err := decodeJSON(r, &req); err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		data, err := svc.SignIn(r.Context(), &req, clientInfo(r))
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, i18n.Tc(r.Context(), "success.login"), data)
	}
}

// VerifyOTPHandler handles POST /v1/auth/verify-otp
func VerifyOTPHandler(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.VerifyOTPReq
		if err := decodeJSON(r, &req); err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		data, err := svc.VerifyOTP(r.Context(), &req)
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, i18n.Tc(r.Context(), "success.otp_verified"), data)
	}
}

// ResendOTPHandler handles POST /v1/auth/resend-otp
func ResendOTPHandler(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.ResendOTPReq
		if err := decodeJSON(r, &req); err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		if err := svc.ResendOTP(r.Context(), &req); err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, i18n.Tc(r.Context(), "success.otp_sent"), nil)
	}
}

// VerifySessionHandler handles GET /v1/auth/verify-session
func VerifySessionHandler(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		actor, err := actorFrom(r)
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		data, err := svc.VerifySession(r.Context(), actor.UserID, auth.GetToken(r.Context()))
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, i18n.Tc(r.Context(), "success.session_valid"), data)
	}
}

// LogoutHandler handles POST /v1/auth/logout
func LogoutHandler(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		actor, err := actorFrom(r)
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		if err := svc.Logout(r.Context(), actor.UserID, auth.GetToken(r.Context())); err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, i18n.Tc(r.Context(), "success.logout"), nil)
	}
}
