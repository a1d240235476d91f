package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"streamhouse/api/internal/auth"
	"streamhouse/api/internal/common"
	"streamhouse/api/internal/errs"
	"streamhouse/api/internal/i18n"
)

// Authenticator resolves a bearer token to a live session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*common.SessionData, error)
}

func AuthMiddleware(authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initTime := time.Now()

			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			token = strings.TrimSpace(token)
			if !ok || token == "" {
				common.RespondAppError(r.Context(), w, initTime, errs.Unauthorized(i18n.Tc(r.Context(), "errors.unauthorized")))
				return
			}

			session, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				common.RespondAppError(r.Context(), w, initTime, err)
				return
			}

			claims := &auth.SessionClaims{
				UserUUID:    session.UserID,
				RoleUUID:    session.RoleID,
				SessionUUID: session.SessionID,
				Username:    session.Username,
			}

			setRequestUser(r.Context(), claims.UserUUID)

			ctx := auth.SetUserClaims(r.Context(), claims)
			ctx = auth.SetToken(ctx, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
