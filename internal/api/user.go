package api

import (
	"context"
	"net/http"
	"time"

	"streamhouse/api/internal/common"
	"streamhouse/api/internal/i18n"
	"streamhouse/api/internal/models/dtos"
	"streamhouse/api/internal/query"
)

// ListUsersHandler handles GET /v1/user
func ListUsersHandler(svc UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		users, total, err := svc.FindAll(r.Context(), query.Parse(r.URL.Query()))
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		common.RespondList(w, initTime, i18n.Tc(r.Context(), "success.data_received", total), users, total)
	}
}

// GetUserHandler handles GET /v1/user/{id}. ?paranoid=false includes deleted accounts.
func GetUserHandler(svc UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		user, err := svc.FindByID(r.Context(), pathID(r), !paranoid(r))
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, i18n.Tc(r.Context(), "success.data_found"), user)
	}
}

// MeHandler handles GET /v1/user/me
func MeHandler(svc UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		actor, err := actorFrom(r)
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		user, err := svc.Me(r.Context(), actor.UserID)
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, i18n.Tc(r.Context(), "success.data_found"), user)
	}
}

// CreateUserHandler handles POST /v1/user
func CreateUserHandler(svc UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreateUserReq
		if err := decodeJSON(r, &req); err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		user, err := svc.Create(r.Context(), &req)
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, i18n.Tc(r.Context(), "success.data_added"), user, http.StatusCreated)
	}
}

// UpdateUserHandler handles PUT /v1/user/{id}
func UpdateUserHandler(svc UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.UpdateUserReq
		if err := decodeJSON(r, &req); err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		user, err := svc.Update(r.Context(), pathID(r), &req)
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, i18n.Tc(r.Context(), "success.data_updated"), user)
	}
}

// RestoreUserHandler handles PUT /v1/user/restore/{id}
func RestoreUserHandler(svc UserService) http.HandlerFunc {
	return lifecycleHandler(svc.Restore, "success.data_restored")
}

// SoftDeleteUserHandler handles DELETE /v1/user/soft-delete/{id}
func SoftDeleteUserHandler(svc UserService) http.HandlerFunc {
	return lifecycleHandler(svc.SoftDelete, "success.data_deleted")
}

// ForceDeleteUserHandler handles DELETE /v1/user/force-delete/{id}
func ForceDeleteUserHandler(svc UserService) http.HandlerFunc {
	return lifecycleHandler(svc.ForceDelete, "success.data_deleted")
}

func lifecycleHandler(op func(ctx context.Context, id string) error, successKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if err := op(r.Context(), pathID(r)); err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, i18n.Tc(r.Context(), successKey), nil)
	}
}
