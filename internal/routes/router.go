package routes

import (
	"net/http"
	"time"

	"streamhouse/api/internal/api"
	"streamhouse/api/internal/config"
	"streamhouse/api/internal/logging"
	"streamhouse/api/internal/metrics"
	"streamhouse/api/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterOptions carries what the router needs from process startup.
type RouterOptions struct {
	Config       *config.Config
	Deps         *api.Dependencies
	Metrics      *metrics.MetricsRegistry
	Gatherer     prometheus.Gatherer
	HealthChecks map[string]api.Pinger
	UpSince      time.Time
}

func RegisterRoutes(opts RouterOptions) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	if opts.Config.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(opts.Metrics))
	r.Use(middleware.LanguageMiddleware)
	if !opts.Config.IsProduction() {
		r.Use(middleware.DebugLogging)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.Config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	r.Get("/healthCheck", api.HealthCheckHandler(opts.Config.AppName, opts.HealthChecks, opts.UpSince))
	r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))

	limiter := middleware.NewRateLimiter(opts.Config.RateLimitRPS, opts.Config.RateLimitBurst, "127.0.0.1")
	RegisterAPIRoutes(r, opts.Deps, limiter)

	return r
}
