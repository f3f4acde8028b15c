package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	feedingMeterName = "feeding.logs"
)

type FeedingMetrics struct {
	backfillsTotal      metric.Int64Counter
	guardDecisionsTotal metric.Int64Counter
	logsWrittenTotal    metric.Int64Counter
}

func NewFeedingMetrics() (*FeedingMetrics, error) {
	meter := otel.Meter(feedingMeterName)

	backfillsTotal, err := meter.Int64Counter(
		"feeding_backfill_total",
		metric.WithDescription("Missed feeding backfill attempts by outcome"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	guardDecisionsTotal, err := meter.Int64Counter(
		"feeding_guard_decisions_total",
		metric.WithDescription("Manual submission guard decisions by resulting state"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil, err
	}

	logsWrittenTotal, err := meter.Int64Counter(
		"feeding_logs_written_total",
		metric.WithDescription("Feeding logs written by reason"),
		metric.WithUnit("{log}"),
	)
	if err != nil {
		return nil, err
	}

	return &FeedingMetrics{
		backfillsTotal:      backfillsTotal,
		guardDecisionsTotal: guardDecisionsTotal,
		logsWrittenTotal:    logsWrittenTotal,
	}, nil
}

func (m *FeedingMetrics) RecordBackfill(ctx context.Context, outcome string) {
	m.backfillsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *FeedingMetrics) RecordGuardDecision(ctx context.Context, state string) {
	m.guardDecisionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("state", state),
	))
}

func (m *FeedingMetrics) RecordLogWritten(ctx context.Context, reason string) {
	m.logsWrittenTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}
