package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/config"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/handler"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/health"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/infra/dispatchrecorder"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/infra/repository"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/infra/store"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/observability/middleware"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/backfill"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/dispatch"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/guard"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/ration"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/schedule"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/trigger"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	dispatchMetrics, err := metrics.NewDispatchMetrics()
	if err != nil {
		slog.Error("failed to initialize dispatch metrics", slog.String("error", err.Error()))
		return 1
	}

	feedingMetrics, err := metrics.NewFeedingMetrics()
	if err != nil {
		slog.Error("failed to initialize feeding metrics", slog.String("error", err.Error()))
		return 1
	}

	// Dispatch run recorder (InfluxDB for local, BigQuery for gcloud)
	resultRecorder, err := dispatchrecorder.NewRecorder(ctx, dispatchrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize dispatch result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := resultRecorder.Close(); err != nil {
			slog.Warn("failed to close dispatch result recorder", slog.String("error", err.Error()))
		}
	}()

	n, cleanup, err := initNotifier(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize notifier", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("notifier cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		slog.Error("failed to open database",
			slog.String("event", "db.open.fail"),
			slog.String("path", cfg.Database.Path),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		if err := store.Close(db); err != nil {
			slog.Warn("failed to close database", slog.String("error", err.Error()))
		}
	}()

	if cfg.Database.SeedFile != "" {
		data, err := store.LoadSeedFile(cfg.Database.SeedFile)
		if err != nil {
			slog.Error("failed to load seed file", slog.String("error", err.Error()))
			return 1
		}
		if err := store.Seed(ctx, db, data, time.Now()); err != nil {
			slog.Error("failed to seed database", slog.String("error", err.Error()))
			return 1
		}
		slog.Info("database seeded",
			slog.String("file", cfg.Database.SeedFile),
			slog.Int("users", len(data.Users)),
			slog.Int("ponds", len(data.Ponds)),
		)
	}

	redisOpts := &redis.Options{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		PoolSize:    cfg.Redis.PoolSize,
		DialTimeout: cfg.Redis.DialTimeout,
	}
	if cfg.Redis.TLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	loc := cfg.Feeding.Location

	directory := store.NewDirectoryStore(db)
	feedingLogs := store.NewFeedingLogStore(db)
	schedules := schedule.NewService(store.NewScheduleStore(db), loc)
	estimator := ration.NewEstimator(store.NewGrowthStore(db))
	markers := repository.NewMarkerRepository(redisClient, cfg.Dispatch.MarkerRetention)
	latch := repository.NewSessionLatch(redisClient, cfg.Feeding.SessionLatchTTL)

	dispatchService := dispatch.NewService(
		directory,
		schedules,
		estimator,
		markers,
		n,
		resultRecorder,
		dispatchMetrics,
		dispatch.Config{
			Window:         cfg.Dispatch.Window,
			ClaimTTL:       cfg.Dispatch.ClaimTTL,
			MaxRunDuration: cfg.Dispatch.MaxRunDuration,
		},
	)
	backfillService := backfill.NewService(directory, schedules, estimator, feedingLogs, latch, feedingMetrics, cfg.Feeding.NearWindow)
	guardService := guard.NewService(directory, schedules, estimator, feedingLogs, feedingMetrics, guard.Config{
		EarlyWindow: cfg.Feeding.EarlyWindow,
		NearWindow:  cfg.Feeding.NearWindow,
	})

	var runner *trigger.Runner
	if cfg.Dispatch.Cron != "" {
		runner, err = trigger.NewRunner(dispatchService, cfg.Dispatch.Cron, loc)
		if err != nil {
			slog.Error("failed to create dispatch trigger", slog.String("error", err.Error()))
			return 1
		}
		if err := runner.Start(ctx); err != nil {
			slog.Error("failed to start dispatch trigger", slog.String("error", err.Error()))
			return 1
		}
	} else {
		slog.Info("in-process dispatch trigger disabled, waiting for HTTP triggers")
	}

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:  []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:     logging.Module("feeding-reminder"),
		TracerName: "github.com/KasumiMercury/primind-feeding-reminder/internal/observability/middleware",
		JobNameResolver: func(c *gin.Context) string {
			if route := c.FullPath(); route != "" {
				return route
			}
			return c.Request.URL.Path
		},
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	// Health check endpoints
	healthChecker := health.NewChecker(redisClient, db, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())
	healthChecker.MountGRPC(r, "feeding-reminder")

	// API routes
	handler.Handlers{
		Dispatch: handler.NewDispatchHandler(dispatchService, loc, platformEnvironment() != logging.EnvProd),
		Feeding:  handler.NewFeedingHandler(backfillService, guardService, directory, feedingLogs, loc),
		Schedule: handler.NewScheduleHandler(schedules, estimator, directory),
	}.Register(r.Group("/api/v1"))

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("timezone", loc.String()),
			slog.String("dispatch_cron", cfg.Dispatch.Cron),
			slog.Duration("dispatch_window", cfg.Dispatch.Window),
		)
		serverErr <- srv.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		code := 0
		if runner != nil {
			if err := runner.Stop(shutdownCtx); err != nil {
				slog.Error("failed to stop dispatch trigger", slog.String("error", err.Error()))
				code = 1
			}
		}
		cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return code

	case err := <-serverErr:
		if runner != nil {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer stopCancel()
			_ = runner.Stop(stopCtx)
		}
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
