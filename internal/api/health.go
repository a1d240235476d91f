package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"streamhouse/api/internal/models/entities"
)

// Pinger reports whether a backing service is reachable.
type Pinger func(ctx context.Context) error

// HealthCheckHandler handles GET /healthCheck
//
// @Summary Health check
// @Description Verifies the server and its backing services are running.
// @Tags Misc
// @Success 200 {object} entities.HealthCheckResponse
// @Failure 503 {object} entities.HealthCheckResponse
// @Router /healthCheck [get]
func HealthCheckHandler(app string, checks map[string]Pinger, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		overallStatus := entities.HealthUp
		deps := make(map[string]entities.DependencyStatus, len(checks))
		for name, ping := range checks {
			started := time.Now()
			err := ping(ctx)
			status := entities.DependencyStatus{
				Status:  entities.HealthUp,
				Details: "connected",
				Latency: time.Since(started).Round(time.Microsecond).String(),
			}
			if err != nil {
				status.Status = entities.HealthDown
				status.Details = err.Error()
				overallStatus = entities.HealthDown
			}
			deps[name] = status
		}

		resp := entities.HealthCheckResponse{
			App:          app,
			Status:       overallStatus,
			Dependencies: deps,
			UpSince:      upSince,
			Uptime:       time.Since(upSince).Round(time.Second).String(),
		}

		code := http.StatusOK
		if overallStatus != entities.HealthUp {
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
