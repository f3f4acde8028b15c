package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	dispatchMeterName = "feeding.dispatch"
)

type DispatchMetrics struct {
	runsTotal       metric.Int64Counter
	candidatesTotal metric.Int64Counter
	runDuration     metric.Float64Histogram
	notifyDuration  metric.Float64Histogram
}

func NewDispatchMetrics() (*DispatchMetrics, error) {
	meter := otel.Meter(dispatchMeterName)

	runsTotal, err := meter.Int64Counter(
		"feeding_dispatch_runs_total",
		metric.WithDescription("Total number of reminder dispatch runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	candidatesTotal, err := meter.Int64Counter(
		"feeding_dispatch_candidates_total",
		metric.WithDescription("Total number of reminder candidates by outcome"),
		metric.WithUnit("{candidate}"),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Histogram(
		"feeding_dispatch_run_duration_seconds",
		metric.WithDescription("Reminder dispatch run duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60,
		),
	)
	if err != nil {
		return nil, err
	}

	notifyDuration, err := meter.Float64Histogram(
		"feeding_dispatch_notify_duration_seconds",
		metric.WithDescription("Time spent handing one reminder to the notifier"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
		),
	)
	if err != nil {
		return nil, err
	}

	return &DispatchMetrics{
		runsTotal:       runsTotal,
		candidatesTotal: candidatesTotal,
		runDuration:     runDuration,
		notifyDuration:  notifyDuration,
	}, nil
}

func (m *DispatchMetrics) RecordRun(ctx context.Context, status string, truncated bool, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("status", status),
		attribute.Bool("truncated", truncated),
	)
	m.runsTotal.Add(ctx, 1, attrs)
	m.runDuration.Record(ctx, duration.Seconds(), attrs)
}

func (m *DispatchMetrics) RecordCandidate(ctx context.Context, outcome string) {
	m.candidatesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *DispatchMetrics) RecordNotifyDuration(ctx context.Context, duration time.Duration) {
	m.notifyDuration.Record(ctx, duration.Seconds())
}
