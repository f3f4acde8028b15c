package guard

import (
	"context"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/ration"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/schedule"
)

type fixture struct {
	directory *domain.MockDirectoryRepository
	schedules *domain.MockScheduleRepository
	growth    *domain.MockGrowthRepository
	logs      *domain.MockFeedingLogRepository
	loc       *time.Location
	svc       *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	loc, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	f := &fixture{
		directory: domain.NewMockDirectoryRepository(ctrl),
		schedules: domain.NewMockScheduleRepository(ctrl),
		growth:    domain.NewMockGrowthRepository(ctrl),
		logs:      domain.NewMockFeedingLogRepository(ctrl),
		loc:       loc,
	}
	f.svc = NewService(f.directory, schedule.NewService(f.schedules, loc), ration.NewEstimator(f.growth), f.logs, nil, Config{})

	f.directory.EXPECT().GetUser(gomock.Any(), "u1").Return(&domain.User{ID: "u1", Name: "Ana", Approved: true}, nil).AnyTimes()
	f.directory.EXPECT().IsMember(gomock.Any(), "pond-1", "u1").Return(true, nil).AnyTimes()
	f.directory.EXPECT().GetPond(gomock.Any(), "pond-1").Return(&domain.Pond{
		ID: "pond-1", Name: "North Pond", FeedingFrequency: 2, InitialStockedCount: 1000,
	}, nil).AnyTimes()
	f.schedules.EXPECT().Get(gomock.Any(), "pond-1").DoAndReturn(func(context.Context, string) (*domain.FeedingSchedule, error) {
		return &domain.FeedingSchedule{
			PondID:      "pond-1",
			TimesOfDay:  []string{"08:00", "17:00"},
			TimesPerDay: 2,
			Repeat:      domain.Repeat{Kind: domain.RepeatDaily},
			StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, loc),
		}, nil
	}).AnyTimes()
	f.growth.EXPECT().CurrentABW(gomock.Any(), "pond-1").Return(nil, domain.ErrGrowthNotFound).AnyTimes()
	f.growth.EXPECT().SurvivalPercent(gomock.Any(), "pond-1").Return(nil, nil).AnyTimes()

	return f
}

func (f *fixture) at(day, hour, minute int) time.Time {
	return time.Date(2026, 10, day, hour, minute, 0, 0, f.loc)
}

func (f *fixture) fedAt(times ...time.Time) []domain.FeedingLog {
	logs := make([]domain.FeedingLog, 0, len(times))
	for _, t := range times {
		logs = append(logs, domain.FeedingLog{PondID: "pond-1", FedAt: t, FeedGivenGrams: 150})
	}
	return logs
}

func TestSubmit_EarlyMorningScenario(t *testing.T) {
	f := newFixture(t)
	// yesterday fully logged
	f.logs.EXPECT().ListInRange(gomock.Any(), "pond-1", gomock.Any(), gomock.Any()).
		Return(f.fedAt(f.at(16, 8, 0), f.at(16, 17, 0)), nil).Times(2)

	now := f.at(17, 7, 30)
	sub := Submission{PondID: "pond-1", UserID: "u1", FedAt: f.at(17, 7, 29), Grams: 150}

	first, err := f.svc.Submit(context.Background(), sub, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.State != StatePendingEarlyConfirm {
		t.Fatalf("state = %s, want pending_early_confirm", first.State)
	}
	if first.MinutesEarly != 31 {
		t.Errorf("minutes early = %d, want 31", first.MinutesEarly)
	}
	if first.Log != nil {
		t.Error("nothing may be written while confirmation is pending")
	}

	var written *domain.FeedingLog
	f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l *domain.FeedingLog) error {
		written = l
		return nil
	})

	sub.ConfirmEarly = true
	second, err := f.svc.Submit(context.Background(), sub, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.State != StateDone {
		t.Fatalf("state = %s, want done", second.State)
	}
	if written == nil || written.Reason != domain.ReasonManual || written.AutoLogged {
		t.Errorf("unexpected log: %+v", written)
	}
	if !written.FedAt.Equal(sub.FedAt) || written.FeedGivenGrams != 150 {
		t.Errorf("log does not match submission: %+v", written)
	}
}

func TestSubmit_DailyCap(t *testing.T) {
	f := newFixture(t)
	f.logs.EXPECT().ListInRange(gomock.Any(), "pond-1", gomock.Any(), gomock.Any()).
		Return(f.fedAt(f.at(16, 8, 0), f.at(16, 17, 0), f.at(17, 8, 0), f.at(17, 12, 0)), nil)
	f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	got, err := f.svc.Submit(context.Background(), Submission{
		PondID: "pond-1", UserID: "u1", FedAt: f.at(17, 16, 55), Grams: 150,
		ConfirmEarly: true, ConfirmAmount: true,
	}, f.at(17, 16, 55))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.State != StateBlocked || got.Reason != ReasonDailyLimit {
		t.Errorf("got %s %q, want blocked daily limit", got.State, got.Reason)
	}
}

func TestSubmit_MissedSlotKeepsTooEarlyStop(t *testing.T) {
	f := newFixture(t)
	// yesterday fully logged, today's 08:00 never logged
	f.logs.EXPECT().ListInRange(gomock.Any(), "pond-1", gomock.Any(), gomock.Any()).
		Return(f.fedAt(f.at(16, 8, 0), f.at(16, 17, 0)), nil)
	f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	got, err := f.svc.Submit(context.Background(), Submission{
		PondID: "pond-1", UserID: "u1", FedAt: f.at(17, 15, 30), Grams: 150,
		ConfirmEarly: true, ConfirmAmount: true,
	}, f.at(17, 15, 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.State != StatePendingTooEarlyReject {
		t.Fatalf("state = %s, want pending_too_early_reject (%s)", got.State, got.Detail)
	}
	if got.NextSlot == nil || !got.NextSlot.Equal(f.at(17, 17, 0)) {
		t.Errorf("next slot = %v, want 17:00", got.NextSlot)
	}
	if got.MissedSlot == nil || !got.MissedSlot.Equal(f.at(17, 8, 0)) {
		t.Errorf("missed slot = %v, want 08:00", got.MissedSlot)
	}
	if got.Log != nil {
		t.Error("a rejected submission must not be written")
	}
}

func TestSubmit_AttributesTodaysMissedSlot(t *testing.T) {
	f := newFixture(t)
	f.logs.EXPECT().ListInRange(gomock.Any(), "pond-1", gomock.Any(), gomock.Any()).
		Return(f.fedAt(f.at(16, 8, 0), f.at(16, 17, 0)), nil).Times(2)

	sub := Submission{PondID: "pond-1", UserID: "u1", FedAt: f.at(17, 16, 25), Grams: 150}
	now := f.at(17, 16, 30)

	first, err := f.svc.Submit(context.Background(), sub, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.State != StatePendingEarlyConfirm {
		t.Fatalf("state = %s, want pending_early_confirm (%s)", first.State, first.Detail)
	}

	f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	sub.ConfirmEarly = true
	got, err := f.svc.Submit(context.Background(), sub, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.State != StateDone {
		t.Fatalf("state = %s (%s)", got.State, got.Detail)
	}
	if got.MissedSlot == nil || !got.MissedSlot.Equal(f.at(17, 8, 0)) {
		t.Errorf("missed slot = %v", got.MissedSlot)
	}
}

func TestSubmit_ExplicitSlotMustBeUnresolved(t *testing.T) {
	f := newFixture(t)
	f.logs.EXPECT().ListInRange(gomock.Any(), "pond-1", gomock.Any(), gomock.Any()).
		Return(f.fedAt(f.at(16, 8, 0), f.at(16, 17, 0)), nil)

	resolved := f.at(16, 17, 0)
	_, err := f.svc.Submit(context.Background(), Submission{
		PondID: "pond-1", UserID: "u1", FedAt: f.at(17, 7, 0), Grams: 150, Slot: &resolved,
	}, f.at(17, 7, 0))
	if !domain.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestSubmit_TooEarly(t *testing.T) {
	f := newFixture(t)
	f.logs.EXPECT().ListInRange(gomock.Any(), "pond-1", gomock.Any(), gomock.Any()).
		Return(f.fedAt(f.at(16, 8, 0), f.at(16, 17, 0), f.at(17, 8, 5)), nil)
	f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	got, err := f.svc.Submit(context.Background(), Submission{
		PondID: "pond-1", UserID: "u1", FedAt: f.at(17, 15, 30), Grams: 150, ConfirmEarly: true,
	}, f.at(17, 15, 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.State != StatePendingTooEarlyReject {
		t.Errorf("state = %s, want pending_too_early_reject", got.State)
	}
}
