package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"streamhouse/api/internal/auth"
	"streamhouse/api/internal/common"
	"streamhouse/api/internal/errs"
	"streamhouse/api/internal/i18n"
	"streamhouse/api/internal/models/dtos"
	"streamhouse/api/internal/services"
)

// decodeJSON reads the request body into dst. Malformed bodies are a
// BadRequest with the localized invalid_body message.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.BadRequest(i18n.Tc(r.Context(), "errors.invalid_body"))
	}
	return nil
}

// actorFrom returns the authenticated caller set by AuthMiddleware.
func actorFrom(r *http.Request) (services.Actor, error) {
	claims := auth.GetUserClaims(r.Context())
	if claims == nil {
		return services.Actor{}, errs.Unauthorized(i18n.Tc(r.Context(), "errors.unauthorized"))
	}
	return services.Actor{UserID: claims.UserID(), RoleID: claims.RoleID()}, nil
}

// paranoid reads ?paranoid=false as "include soft-deleted rows".
func paranoid(r *http.Request) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get("paranoid"))
	if err != nil {
		return true
	}
	return v
}

func pathID(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "id"))
}

// clientInfo describes the device a sign-in came from.
func clientInfo(r *http.Request) dtos.ClientInfo {
	return dtos.ClientInfo{
		IPAddress: common.ClientIP(r),
		Device:    r.UserAgent(),
		Platform:  strings.Trim(r.Header.Get("Sec-CH-UA-Platform"), `"`),
	}
}
