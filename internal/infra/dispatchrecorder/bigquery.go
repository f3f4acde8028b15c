//go:build gcloud

package dispatchrecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt     time.Time `bigquery:"recorded_at"`
	RunID          string    `bigquery:"run_id"`
	StartedAt      time.Time `bigquery:"started_at"`
	FinishedAt     time.Time `bigquery:"finished_at"`
	Status         string    `bigquery:"status"`
	CandidateCount int64     `bigquery:"candidate_count"`
	SentCount      int64     `bigquery:"sent_count"`
	SkippedCount   int64     `bigquery:"skipped_count"`
	FailedCount    int64     `bigquery:"failed_count"`
	Truncated      bool      `bigquery:"truncated"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.DispatchResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "dispatch result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, dispatch result recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, dispatch result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	slog.InfoContext(ctx, "dispatch result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter(),
	}, nil
}

func (r *bigQueryRecorder) RecordRun(ctx context.Context, record domain.DispatchRunRecord) error {
	row := &bigQueryRecord{
		RecordedAt:     time.Now(),
		RunID:          record.RunID,
		StartedAt:      record.StartedAt,
		FinishedAt:     record.FinishedAt,
		Status:         record.Status,
		CandidateCount: int64(record.CandidateCount),
		SentCount:      int64(record.SentCount),
		SkippedCount:   int64(record.SkippedCount),
		FailedCount:    int64(record.FailedCount),
		Truncated:      record.Truncated,
	}

	if err := r.inserter.Put(ctx, row); err != nil {
		slog.WarnContext(ctx, "failed to insert dispatch result to BigQuery",
			slog.String("error", err.Error()),
			slog.String("run_id", record.RunID),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
