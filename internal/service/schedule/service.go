package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
)

// RealignActor is recorded as LastUpdatedBy when times are regenerated on read.
const RealignActor = "system:realign"

type Service struct {
	repo domain.ScheduleRepository
	loc  *time.Location
}

func NewService(repo domain.ScheduleRepository, loc *time.Location) *Service {
	return &Service{
		repo: repo,
		loc:  loc,
	}
}

func (s *Service) Location() *time.Location {
	return s.loc
}

// Load fetches the pond's schedule and realigns it when the pond's feeding
// frequency no longer matches TimesPerDay. The realigned schedule is persisted.
func (s *Service) Load(ctx context.Context, pond *domain.Pond) (*domain.FeedingSchedule, error) {
	sched, err := s.repo.Get(ctx, pond.ID)
	if err != nil {
		return nil, err
	}

	if !needsRealign(sched, pond.FeedingFrequency) {
		return sched, nil
	}

	target := pond.FeedingFrequency
	if target < 1 {
		target = sched.TimesPerDay
	}
	if target < 1 {
		target = 1
	}

	previous := slices.Clone(sched.TimesOfDay)
	sched.TimesPerDay = target
	sched.TimesOfDay = GenerateTimes(target)
	sched.LastUpdatedBy = RealignActor
	sched.UpdatedAt = time.Now().UTC()

	if err := s.repo.Upsert(ctx, sched); err != nil {
		return nil, fmt.Errorf("persist realigned schedule for pond %s: %w", pond.ID, err)
	}

	slog.InfoContext(ctx, "feeding schedule realigned",
		slog.String("pond_id", pond.ID),
		slog.Int("times_per_day", target),
		slog.Any("previous_times", previous),
		slog.Any("times_of_day", sched.TimesOfDay),
	)

	return sched, nil
}

// Save validates and upserts a schedule on behalf of actor.
func (s *Service) Save(ctx context.Context, sched *domain.FeedingSchedule, actor string) error {
	existing, err := s.repo.Get(ctx, sched.PondID)
	switch {
	case err == nil:
		sched.CreatedBy = existing.CreatedBy
	case domain.IsNotFound(err):
		sched.CreatedBy = actor
	default:
		return err
	}
	sched.LastUpdatedBy = actor
	sched.UpdatedAt = time.Now().UTC()

	if err := sched.Validate(); err != nil {
		return err
	}
	return s.repo.Upsert(ctx, sched)
}

// Today expands the pond's schedule for the calendar day containing now.
func (s *Service) Today(ctx context.Context, pond *domain.Pond, now time.Time) ([]time.Time, *domain.FeedingSchedule, error) {
	sched, err := s.Load(ctx, pond)
	if err != nil {
		return nil, nil, err
	}
	return ExpandDay(sched, now, s.loc), sched, nil
}

func needsRealign(s *domain.FeedingSchedule, frequency int) bool {
	if len(s.TimesOfDay) != s.TimesPerDay {
		return true
	}
	return frequency >= 1 && frequency != s.TimesPerDay
}
