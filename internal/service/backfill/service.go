package backfill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/observability/tracing"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/access"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/ration"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/schedule"
)

const DefaultNearWindow = 90 * time.Minute

const (
	SkipSessionScanned = "session already scanned"
	SkipNoSchedule     = "pond has no feeding schedule"
	SkipNothingMissed  = "no missed slot"
	SkipNoSuggestion   = "no ration suggestion available"
	SkipAlreadyLogged  = "slot already backfilled"
)

type Result struct {
	PondID      string             `json:"pond_id"`
	SessionID   string             `json:"session_id"`
	Scanned     bool               `json:"scanned"`
	MissedSlots []time.Time        `json:"missed_slots"`
	Backfilled  *domain.FeedingLog `json:"backfilled,omitempty"`
	Suggestion  *ration.Suggestion `json:"suggestion,omitempty"`
	SkipReason  string             `json:"skip_reason,omitempty"`
}

type Service struct {
	directory      domain.DirectoryRepository
	schedules      *schedule.Service
	estimator      *ration.Estimator
	logs           domain.FeedingLogRepository
	latch          domain.SessionLatch
	feedingMetrics *metrics.FeedingMetrics
	nearWindow     time.Duration
}

func NewService(
	directory domain.DirectoryRepository,
	schedules *schedule.Service,
	estimator *ration.Estimator,
	logs domain.FeedingLogRepository,
	latch domain.SessionLatch,
	feedingMetrics *metrics.FeedingMetrics,
	nearWindow time.Duration,
) *Service {
	if nearWindow <= 0 {
		nearWindow = DefaultNearWindow
	}
	return &Service{
		directory:      directory,
		schedules:      schedules,
		estimator:      estimator,
		logs:           logs,
		latch:          latch,
		feedingMetrics: feedingMetrics,
		nearWindow:     nearWindow,
	}
}

// OpenSession runs when a user opens the logging screen of a pond. At most one
// scan happens per (session, pond); it auto-logs only the most recent missed slot.
func (s *Service) OpenSession(ctx context.Context, pondID, userID, sessionID string, now time.Time) (*Result, error) {
	if sessionID == "" {
		return nil, domain.NewValidationError("session_id", "is required")
	}

	ctx, span := tracing.StartBackfillSpan(ctx, pondID, sessionID)
	defer span.End()

	result, err := s.openSession(ctx, pondID, userID, sessionID, now)
	tracing.RecordError(span, err)

	if s.feedingMetrics != nil {
		s.feedingMetrics.RecordBackfill(ctx, outcome(result, err))
	}

	return result, err
}

func (s *Service) openSession(ctx context.Context, pondID, userID, sessionID string, now time.Time) (*Result, error) {
	user, pond, err := access.Resolve(ctx, s.directory, pondID, userID)
	if err != nil {
		return nil, err
	}

	result := &Result{
		PondID:      pond.ID,
		SessionID:   sessionID,
		MissedSlots: make([]time.Time, 0),
	}

	token, acquired, err := s.latch.Acquire(ctx, sessionID, pond.ID)
	if err != nil {
		return nil, fmt.Errorf("acquire session latch: %w", err)
	}
	if !acquired {
		slog.DebugContext(ctx, "backfill already ran for session",
			slog.String("pond_id", pond.ID),
			slog.String("session_id", sessionID),
		)
		result.SkipReason = SkipSessionScanned
		return result, nil
	}
	result.Scanned = true

	if err := s.scan(ctx, user, pond, now, result); err != nil {
		s.releaseLatch(ctx, sessionID, pond.ID, token)
		return nil, err
	}
	return result, nil
}

// scan fills result for a session holding the latch. An error leaves the
// session free to scan again.
func (s *Service) scan(ctx context.Context, user *domain.User, pond *domain.Pond, now time.Time, result *Result) error {
	sched, err := s.schedules.Load(ctx, pond)
	if err != nil {
		if errors.Is(err, domain.ErrScheduleNotFound) {
			result.SkipReason = SkipNoSchedule
			return nil
		}
		return err
	}

	loc := s.schedules.Location()
	yesterday := schedule.StartOfDay(now, loc).AddDate(0, 0, -1)
	slots := schedule.ExpandRange(sched, yesterday, now, loc)

	logs, err := s.logs.ListInRange(ctx, pond.ID, yesterday.Add(-s.nearWindow), now.Add(s.nearWindow))
	if err != nil {
		return fmt.Errorf("list feeding logs: %w", err)
	}

	slot, ok := schedule.MostRecentMissed(slots, logs, now, s.nearWindow)
	if !ok {
		result.SkipReason = SkipNothingMissed
		return nil
	}
	result.MissedSlots = schedule.MissedSlots(slots, logs, now, s.nearWindow)

	suggestion, err := s.estimator.Suggest(ctx, pond)
	if err != nil {
		return err
	}
	result.Suggestion = &suggestion
	if !suggestion.Available {
		slog.InfoContext(ctx, "missed feeding left for manual entry, no ration suggestion",
			slog.String("pond_id", pond.ID),
			slog.Time("slot", slot),
		)
		result.SkipReason = SkipNoSuggestion
		return nil
	}

	entry := domain.NewMissedScheduleLog(pond, user, slot, suggestion.PerFeedingGrams)
	if err := entry.Validate(now); err != nil {
		return err
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		if errors.Is(err, domain.ErrFeedingLogExists) {
			result.SkipReason = SkipAlreadyLogged
			return nil
		}
		return fmt.Errorf("create backfill log: %w", err)
	}

	if s.feedingMetrics != nil {
		s.feedingMetrics.RecordLogWritten(ctx, entry.Reason.String())
	}

	slog.InfoContext(ctx, "missed feeding backfilled",
		slog.String("pond_id", pond.ID),
		slog.String("user_id", user.ID),
		slog.Time("slot", slot),
		slog.Float64("feed_given_grams", entry.FeedGivenGrams),
	)

	result.Backfilled = entry
	result.MissedSlots = result.MissedSlots[1:]
	return nil
}

func (s *Service) releaseLatch(ctx context.Context, sessionID, pondID, token string) {
	if err := s.latch.Release(context.WithoutCancel(ctx), sessionID, pondID, token); err != nil {
		slog.WarnContext(ctx, "failed to release session latch",
			slog.String("pond_id", pondID),
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}
}

func outcome(result *Result, err error) string {
	switch {
	case err != nil:
		return "error"
	case result.Backfilled != nil:
		return "created"
	case result.SkipReason != "":
		return "skipped"
	default:
		return "none"
	}
}
