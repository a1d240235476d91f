package api

import (
	"net/http"
	"time"

	"streamhouse/api/internal/common"
	"streamhouse/api/internal/i18n"
)

// ListRolesHandler handles GET /v1/role
func ListRolesHandler(svc RoleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		roles, err := svc.FindAll(r.Context())
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		total := int64(len(roles))
		common.RespondList(w, initTime, i18n.Tc(r.Context(), "success.data_received", total), roles, total)
	}
}
