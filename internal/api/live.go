package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"streamhouse/api/internal/common"
	"streamhouse/api/internal/i18n"
	"streamhouse/api/internal/models/dtos"
	"streamhouse/api/internal/query"
)

// ListLivesHandler handles GET /v1/live
//
// Query: page, pageSize, filtered=[{"id":"is_live","value":"true"}], sorted=[{"id":"price","desc":true}]
func ListLivesHandler(svc LiveService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		lives, total, err := svc.FindAll(r.Context(), query.Parse(r.URL.Query()))
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		common.RespondList(w, initTime, i18n.Tc(r.Context(), "success.data_received", total), lives, total)
	}
}

// GetLiveHandler handles GET /v1/live/{id}. ?paranoid=false includes deleted rooms.
func GetLiveHandler(svc LiveService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		live, err := svc.FindByID(r.Context(), pathID(r), paranoid(r))
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, i18n.Tc(r.Context(), "success.data_found"), live)
	}
}

// LiveStatsHandler handles GET /v1/live/{id}/stats
func LiveStatsHandler(svc LiveService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		stats, err := svc.Stats(r.Context(), pathID(r))
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, i18n.Tc(r.Context(), "success.data_found"), stats)
	}
}

// LiveViewersHandler handles GET /v1/live/{id}/viewers. ?active=true lists
// only viewers still in the room.
func LiveViewersHandler(svc LiveService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		activeOnly, _ := strconv.ParseBool(r.URL.Query().Get("active"))
		viewers, err := svc.Viewers(r.Context(), pathID(r), activeOnly)
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		total := int64(len(viewers))
		common.RespondList(w, initTime, i18n.Tc(r.Context(), "success.data_received", total), viewers, total)
	}
}

// CreateLiveHandler handles POST /v1/live/create-room
func CreateLiveHandler(svc LiveService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		actor, err := actorFrom(r)
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		var req dtos.LiveReq
		if err := decodeJSON(r, &req); err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		live, err := svc.Create(r.Context(), &req, actor.UserID)
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, i18n.Tc(r.Context(), "success.data_added"), live, http.StatusCreated)
	}
}

// UpdateLiveHandler handles PUT /v1/live/{id}
func UpdateLiveHandler(svc LiveService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		actor, err := actorFrom(r)
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		var req dtos.LiveReq
		if err := decodeJSON(r, &req); err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		live, err := svc.Update(r.Context(), pathID(r), &req, actor)
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, i18n.Tc(r.Context(), "success.data_updated"), live)
	}
}

// RestoreLiveHandler handles PUT /v1/live/restore/{id}
func RestoreLiveHandler(svc LiveService) http.HandlerFunc {
	return lifecycleHandler(svc.Restore, "success.data_restored")
}

// SoftDeleteLiveHandler handles DELETE /v1/live/soft-delete/{id}
func SoftDeleteLiveHandler(svc LiveService) http.HandlerFunc {
	return lifecycleHandler(svc.SoftDelete, "success.data_deleted")
}

// ForceDeleteLiveHandler handles DELETE /v1/live/force-delete/{id}
func ForceDeleteLiveHandler(svc LiveService) http.HandlerFunc {
	return lifecycleHandler(svc.ForceDelete, "success.data_deleted")
}

// MultipleRestoreLivesHandler handles POST /v1/live/multiple/restore
func MultipleRestoreLivesHandler(svc LiveService) http.HandlerFunc {
	return batchHandler(svc.MultipleRestore, "success.data_restored")
}

// MultipleSoftDeleteLivesHandler handles POST /v1/live/multiple/soft-delete
func MultipleSoftDeleteLivesHandler(svc LiveService) http.HandlerFunc {
	return batchHandler(svc.MultipleSoftDelete, "success.data_deleted")
}

// MultipleForceDeleteLivesHandler handles POST /v1/live/multiple/force-delete
func MultipleForceDeleteLivesHandler(svc LiveService) http.HandlerFunc {
	return batchHandler(svc.MultipleForceDelete, "success.data_deleted")
}

// JoinLiveHandler handles POST /v1/live/join/{id}
func JoinLiveHandler(svc LiveService) http.HandlerFunc {
	return viewerHandler(svc.Join, "success.live_joined")
}

// LeaveLiveHandler handles POST /v1/live/leave/{id}
func LeaveLiveHandler(svc LiveService) http.HandlerFunc {
	return viewerHandler(svc.Leave, "success.live_left")
}

// StopLiveHandler handles POST /v1/live/stop-live/{id}
func StopLiveHandler(svc LiveService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		actor, err := actorFrom(r)
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		live, err := svc.Stop(r.Context(), pathID(r), actor)
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, i18n.Tc(r.Context(), "success.live_stopped"), live)
	}
}

func batchHandler(op func(ctx context.Context, ids []string) (int64, error), successKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.MultipleIDsReq
		if err := decodeJSON(r, &req); err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		affected, err := op(r.Context(), req.IDs)
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, i18n.Tc(r.Context(), successKey), map[string]int64{"affected": affected})
	}
}

func viewerHandler[T any](op func(ctx context.Context, id, userID string) (T, error), successKey string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		actor, err := actorFrom(r)
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		data, err := op(r.Context(), pathID(r), actor.UserID)
		if err != nil {
			common.RespondAppError(r.Context(), w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, i18n.Tc(r.Context(), successKey), data)
	}
}
