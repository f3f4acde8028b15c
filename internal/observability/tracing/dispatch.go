package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const feedingTracerName = "github.com/KasumiMercury/primind-feeding-reminder/internal/service"

func FeedingTracer() trace.Tracer {
	return otel.Tracer(feedingTracerName)
}

func StartDispatchRunSpan(ctx context.Context, runID string, now time.Time, window time.Duration) (context.Context, trace.Span) {
	return FeedingTracer().Start(ctx, "dispatch.run",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.String("run.now", now.Format(time.RFC3339)),
			attribute.Int64("run.window_minutes", int64(window.Minutes())),
		),
	)
}

func StartCandidateSpan(ctx context.Context, pondID, userID, markerKey string) (context.Context, trace.Span) {
	return FeedingTracer().Start(ctx, "dispatch.candidate",
		trace.WithAttributes(
			attribute.String("pond_id", pondID),
			attribute.String("user_id", userID),
			attribute.String("marker_key", markerKey),
		),
	)
}

func StartBackfillSpan(ctx context.Context, pondID, sessionID string) (context.Context, trace.Span) {
	return FeedingTracer().Start(ctx, "feeding.backfill",
		trace.WithAttributes(
			attribute.String("pond_id", pondID),
			attribute.String("session_id", sessionID),
		),
	)
}

func StartGuardSpan(ctx context.Context, pondID, userID string) (context.Context, trace.Span) {
	return FeedingTracer().Start(ctx, "feeding.guard",
		trace.WithAttributes(
			attribute.String("pond_id", pondID),
			attribute.String("user_id", userID),
		),
	)
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return FeedingTracer().Start(ctx, "feeding.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordDispatchRunResult(span trace.Span, status string, candidates, sent, skipped, failed int, truncated bool, err error) {
	span.SetAttributes(
		attribute.String("run.status", status),
		attribute.Int("run.candidate_count", candidates),
		attribute.Int("run.sent_count", sent),
		attribute.Int("run.skipped_count", skipped),
		attribute.Int("run.failed_count", failed),
		attribute.Bool("run.truncated", truncated),
	)
	RecordError(span, err)
}

func RecordCandidateResult(span trace.Span, outcome string, err error) {
	span.SetAttributes(attribute.String("candidate.outcome", outcome))
	RecordError(span, err)
}

func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
