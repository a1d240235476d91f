package middleware

import (
	"net/http"
	"time"

	"streamhouse/api/internal/auth"
	"streamhouse/api/internal/common"
	"streamhouse/api/internal/constants"
	"streamhouse/api/internal/errs"
	"streamhouse/api/internal/i18n"
)

// PermissionAccess lets the request through only for the given roles. It
// must run after AuthMiddleware.
func PermissionAccess(roleIDs ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.GetUserClaims(r.Context())

			if claims == nil {
				common.RespondAppError(r.Context(), w, time.Now(), errs.Unauthorized(i18n.Tc(r.Context(), "errors.unauthorized")))
				return
			}
			if !claims.HasRole(roleIDs...) {
				common.RespondAppError(r.Context(), w, time.Now(), errs.Forbidden(i18n.Tc(r.Context(), "errors.permission_access")))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func IsAdminMiddleware() func(http.Handler) http.Handler {
	return PermissionAccess(constants.RoleIDAdmin)
}

// IsHostMiddleware admits hosts and admins.
func IsHostMiddleware() func(http.Handler) http.Handler {
	return PermissionAccess(constants.RoleIDHost, constants.RoleIDAdmin)
}
