package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Streamhouse
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Business Metrics
	AuthAttemptsTotal   *prometheus.CounterVec
	LiveRoomsCreated    prometheus.Counter
	LiveJoinsTotal      prometheus.Counter
	SMSSentTotal        *prometheus.CounterVec
	SessionsPrunedTotal prometheus.Counter
	JobDuration         *prometheus.HistogramVec
}

// NewMetricsRegistry registers every metric on reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "streamhouse_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "streamhouse_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "streamhouse_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "streamhouse_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "streamhouse_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		AuthAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "streamhouse_auth_attempts_total",
				Help: "Authentication attempts by operation and result",
			},
			[]string{"operation", "result"},
		),
		LiveRoomsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "streamhouse_live_rooms_created_total",
				Help: "Total live rooms created",
			},
		),
		LiveJoinsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "streamhouse_live_joins_total",
				Help: "Total successful live room joins",
			},
		),
		SMSSentTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "streamhouse_sms_sent_total",
				Help: "SMS delivery attempts by result",
			},
			[]string{"result"},
		),
		SessionsPrunedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "streamhouse_sessions_pruned_total",
				Help: "Expired sessions removed by the prune job",
			},
		),
		JobDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "streamhouse_job_duration_seconds",
				Help:    "Background job execution time in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
			},
			[]string{"job_name"},
		),
	}
}
