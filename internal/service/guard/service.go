package guard

import (
	"context"
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

type Submission struct {
	PondID string
	UserID string
	FedAt  time.Time
	Grams  float64
	// Slot optionally names the missed slot this feeding makes up for.
	Slot          *time.Time
	ConfirmEarly  bool
	ConfirmAmount bool
}

type Result struct {
	Decision
	Log *domain.FeedingLog `json:"log,omitempty"`
}

type Config struct {
	EarlyWindow time.Duration
	NearWindow  time.Duration
}

type Service struct {
	directory      domain.DirectoryRepository
	schedules      *schedule.Service
	estimator      *ration.Estimator
	logs           domain.FeedingLogRepository
	feedingMetrics *metrics.FeedingMetrics
	cfg            Config
}

func NewService(
	directory domain.DirectoryRepository,
	schedules *schedule.Service,
	estimator *ration.Estimator,
	logs domain.FeedingLogRepository,
	feedingMetrics *metrics.FeedingMetrics,
	cfg Config,
) *Service {
	if cfg.EarlyWindow <= 0 {
		cfg.EarlyWindow = DefaultEarlyWindow
	}
	if cfg.NearWindow <= 0 {
		cfg.NearWindow = 90 * time.Minute
	}
	return &Service{
		directory:      directory,
		schedules:      schedules,
		estimator:      estimator,
		logs:           logs,
		feedingMetrics: feedingMetrics,
		cfg:            cfg,
	}
}

// Submit evaluates a manual feeding log and writes it once every check passes
// or has been confirmed. Nothing is written for blocked or pending decisions.
func (s *Service) Submit(ctx context.Context, sub Submission, now time.Time) (*Result, error) {
	ctx, span := tracing.StartGuardSpan(ctx, sub.PondID, sub.UserID)
	defer span.End()

	result, err := s.submit(ctx, sub, now)
	tracing.RecordError(span, err)
	if err == nil && s.feedingMetrics != nil {
		s.feedingMetrics.RecordGuardDecision(ctx, result.State.String())
	}
	return result, err
}

func (s *Service) submit(ctx context.Context, sub Submission, now time.Time) (*Result, error) {
	user, pond, err := access.Resolve(ctx, s.directory, sub.PondID, sub.UserID)
	if err != nil {
		return nil, err
	}

	sched, err := s.schedules.Load(ctx, pond)
	if err != nil && !domain.IsNotFound(err) {
		return nil, err
	}

	loc := s.schedules.Location()
	yesterday := schedule.StartOfDay(now, loc).AddDate(0, 0, -1)

	var slots []time.Time
	if sched != nil {
		slots = schedule.ExpandRange(sched, yesterday, now, loc)
	}

	logs, err := s.logs.ListInRange(ctx, pond.ID, yesterday.Add(-s.cfg.NearWindow), now.Add(s.cfg.NearWindow))
	if err != nil {
		return nil, fmt.Errorf("list feeding logs: %w", err)
	}

	missedSlot, err := s.attribute(sub, schedule.MissedSlots(slots, logs, now, s.cfg.NearWindow), now)
	if err != nil {
		return nil, err
	}

	day := now
	if missedSlot != nil {
		day = *missedSlot
	}

	limit := pond.FeedingFrequency
	if limit < 1 && sched != nil {
		limit = sched.TimesPerDay
	}

	var suggested *float64
	suggestion, err := s.estimator.Suggest(ctx, pond)
	if err != nil {
		return nil, err
	}
	if suggestion.Available {
		suggested = &suggestion.PerFeedingGrams
	}

	decision := Evaluate(Input{
		Now:            now,
		FedAt:          sub.FedAt,
		Grams:          sub.Grams,
		TodaySlots:     schedule.ExpandDay(sched, now, loc),
		LoggedToday:    countOnDay(logs, day, loc),
		DailyLimit:     limit,
		SuggestedGrams: suggested,
		MissedSlot:     missedSlot,
		ConfirmEarly:   sub.ConfirmEarly,
		ConfirmAmount:  sub.ConfirmAmount,
		EarlyWindow:    s.cfg.EarlyWindow,
	})

	result := &Result{Decision: decision}
	if decision.State != StateSubmitting {
		slog.InfoContext(ctx, "manual feeding log held",
			slog.String("pond_id", pond.ID),
			slog.String("user_id", user.ID),
			slog.String("state", decision.State.String()),
			slog.String("reason", decision.Reason),
		)
		return result, nil
	}

	entry := domain.NewManualLog(pond, user, sub.FedAt, sub.Grams)
	if err := entry.Validate(now); err != nil {
		return nil, err
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create feeding log: %w", err)
	}

	if s.feedingMetrics != nil {
		s.feedingMetrics.RecordLogWritten(ctx, entry.Reason.String())
	}

	slog.InfoContext(ctx, "manual feeding logged",
		slog.String("pond_id", pond.ID),
		slog.String("user_id", user.ID),
		slog.Time("fed_at", entry.FedAt),
		slog.Float64("feed_given_grams", entry.FeedGivenGrams),
	)

	result.State = StateDone
	result.Log = entry
	return result, nil
}

// attribute picks the missed slot a submission makes up for. An explicit slot
// must be one of the unresolved ones; otherwise today's most recent is used.
func (s *Service) attribute(sub Submission, missed []time.Time, now time.Time) (*time.Time, error) {
	loc := s.schedules.Location()

	if sub.Slot != nil {
		for _, m := range missed {
			if m.Equal(*sub.Slot) {
				slot := m
				return &slot, nil
			}
		}
		return nil, domain.NewValidationError("slot", "is not an unresolved slot of today or yesterday")
	}

	for _, m := range missed {
		if schedule.SameDay(m, now, loc) {
			slot := m
			return &slot, nil
		}
	}
	return nil, nil
}

func countOnDay(logs []domain.FeedingLog, day time.Time, loc *time.Location) int {
	n := 0
	for _, l := range logs {
		if schedule.SameDay(l.FedAt, day, loc) {
			n++
		}
	}
	return n
}
