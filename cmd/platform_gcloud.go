//go:build gcloud

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

func initNotifier(ctx context.Context, cfg *config.Config) (notifier.Notifier, func() error, error) {
	n, err := notifier.NewCloudTasksNotifier(ctx, notifier.CloudTasksConfig{
		ProjectID:  cfg.Notifier.GCloudProjectID,
		LocationID: cfg.Notifier.GCloudLocationID,
		QueueID:    cfg.Notifier.GCloudQueueID,
		TargetURL:  cfg.Notifier.GCloudTargetURL,
		MaxRetries: cfg.Notifier.MaxRetries,
	})
	if err != nil {
		return nil, nil, err
	}

	slog.Info("notifier initialized",
		slog.String("type", "cloud_tasks"),
		slog.String("project", cfg.Notifier.GCloudProjectID),
		slog.String("location", cfg.Notifier.GCloudLocationID),
		slog.String("queue", cfg.Notifier.GCloudQueueID),
	)

	cleanup := func() error {
		if err := n.Close(); err != nil {
			slog.Warn("failed to close cloud tasks client", slog.String("error", err.Error()))

			return err
		}

		return nil
	}

	return n, cleanup, nil
}

func platformEnvironment() logging.Environment {
	if e := os.Getenv("ENV"); e != "" {
		return logging.Environment(e)
	}
	return logging.EnvProd
}

func initObservability(ctx context.Context, cfg *config.Config) (*observability.Resources, error) {
	serviceName := os.Getenv("K_SERVICE")
	if serviceName == "" {
		serviceName = "feeding-reminder"
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = cfg.Notifier.GCloudProjectID
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: os.Getenv("K_REVISION"),
		},
		Environment:   platformEnvironment(),
		GCPProjectID:  projectID,
		SamplingRate:  1.0,
		DefaultModule: logging.Module("feeding-reminder"),
		LogLevel:      cfg.LogLevel,
	})
}
