package entities

import "time"

const (
	HealthUp   = "ok"
	HealthDown = "down"
)

// DependencyStatus is the result of pinging one backing service.
type DependencyStatus struct {
	Status  string `json:"status"`
	Details string `json:"details"`
	Latency string `json:"latency"`
}

type HealthCheckResponse struct {
	App          string                      `json:"app"`
	Status       string                      `json:"status"`
	Dependencies map[string]DependencyStatus `json:"dependencies"`
	UpSince      time.Time                   `json:"up_since"`
	Uptime       string                      `json:"uptime"`
}
