//go:build !gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/config"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/infra/notifier"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/observability"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/observability/logging"
)

func initNotifier(_ context.Context, cfg *config.Config) (notifier.Notifier, func() error, error) {
	if cfg.Notifier.PrimindTasksURL == "" {
		slog.Warn("PRIMIND_TASKS_URL not set, reminders are only logged")

		return notifier.NewLogNotifier(), nil, nil
	}

	n := notifier.NewTasksNotifier(notifier.TasksConfig{
		BaseURL:       cfg.Notifier.PrimindTasksURL,
		QueueName:     cfg.Notifier.QueueName,
		MaxRetries:    cfg.Notifier.MaxRetries,
		RatePerSecond: cfg.Notifier.RatePerSecond,
	})

	slog.Info("notifier initialized",
		slog.String("type", "primind_tasks"),
		slog.String("url", cfg.Notifier.PrimindTasksURL),
		slog.String("queue", cfg.Notifier.QueueName),
		slog.Float64("rate_per_second", cfg.Notifier.RatePerSecond),
	)

	return n, nil, nil
}

func platformEnvironment() logging.Environment {
	if e := os.Getenv("ENV"); e != "" {
		return logging.Environment(e)
	}
	return logging.EnvDev
}

func initObservability(ctx context.Context, cfg *config.Config) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "feeding-reminder"
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: "",
		},
		Environment:   platformEnvironment(),
		GCPProjectID:  "",
		SamplingRate:  1.0,
		DefaultModule: logging.Module("feeding-reminder"),
		LogLevel:      cfg.LogLevel,
	})
}
