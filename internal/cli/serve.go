package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"streamhouse/api/internal/api"
	"streamhouse/api/internal/common"
	"streamhouse/api/internal/config"
	"streamhouse/api/internal/constants"
	"streamhouse/api/internal/db"
	"streamhouse/api/internal/jobs"
	"streamhouse/api/internal/logging"
	"streamhouse/api/internal/metrics"
	"streamhouse/api/internal/notify"
	"streamhouse/api/internal/providers"
	"streamhouse/api/internal/routes"
	"streamhouse/api/internal/workers"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API with its background workers",
	RunE:  runServe,
}

var migrateOnStart bool

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply pending migrations before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	defer logging.Close()

	logging.Info("Streamhouse starting up",
		"environment", cfg.AppEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if migrateOnStart {
		if err := db.MigrateUp(cfg.DatabaseURL()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logging.Info("Migrations applied")
	}

	gdb, err := db.InitPostgresORM(cfg.DSN())
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	defer sqlDB.Close()
	logging.Info("Connected to Postgres (GORM)")

	sx, err := db.SqlxFromGorm(gdb, "postgres")
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsReg := metrics.NewMetricsRegistry(reg)

	healthChecks := map[string]api.Pinger{"postgres": sqlDB.PingContext}
	backends := api.Backends{ORM: gdb, SQL: sx, Metrics: metricsReg}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = common.NewRedisClient(ctx, cfg)
		if err != nil {
			return err
		}
		backends.Cache = common.NewRedisCacheService(redisClient)
		healthChecks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		logging.Info("Connected to Redis", "addr", cfg.RedisAddr())
	} else {
		backends.Cache = common.NewCacheService(5*time.Minute, 10*time.Minute)
		logging.Info("Redis disabled, using in-memory cache")
	}
	defer backends.Cache.Close()

	g, gctx := errgroup.WithContext(ctx)

	backends.Notifier = otpNotifier(gctx, g, cfg, redisClient, metricsReg)

	deps, err := api.InitDependencies(cfg, backends)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	jobs.InitializeJobs(gctx, g, deps.Repo.Session, metricsReg, cfg.SessionPruneInterval)

	router := routes.RegisterRoutes(routes.RouterOptions{
		Config:       cfg,
		Deps:         deps,
		Metrics:      metricsReg,
		Gatherer:     reg,
		HealthChecks: healthChecks,
		UpSince:      time.Now(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		logging.Info("Server starting", "addr", srv.Addr, "environment", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logging.Error("Server stopped with error", "error", err)
		return err
	}
	logging.Info("Server stopped")
	return nil
}

// otpNotifier picks how OTP codes leave the process. With SMS and Redis
// enabled, codes go through the outbound stream and the dispatch workers
// start on g.
func otpNotifier(ctx context.Context, g *errgroup.Group, cfg *config.Config, redisClient *redis.Client, m *metrics.MetricsRegistry) notify.OTPNotifier {
	if !cfg.SMS.Enabled {
		logging.Warn("SMS disabled, OTP codes are not delivered", "reveal_in_log", cfg.IsDevelopment())
		return notify.LogNotifier{RevealCode: cfg.IsDevelopment(), Validity: cfg.OTPExpired}
	}

	composer := notify.Composer{AppName: cfg.AppName, Validity: cfg.OTPExpired}
	provider := providers.NewVonageSMSProvider(cfg.SMS.BaseURL, cfg.SMS.APIKey, cfg.SMS.APISecret, cfg.SMS.From)

	if redisClient == nil {
		logging.Info("SMS enabled without Redis, sending OTP inline")
		return notify.NewDirectNotifier(provider, composer, m)
	}

	queue := common.NewRedisQueueService(redisClient)
	workers.NewWorkers(queue, provider, m).Run(ctx, g)
	logging.Info("SMS dispatch workers started", "stream", constants.SMSStream)
	return notify.NewQueueNotifier(queue, composer)
}
