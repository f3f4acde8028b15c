package backfill

import (
	"context"
	"errors"
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
	latch     *domain.MockSessionLatch
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
		latch:     domain.NewMockSessionLatch(ctrl),
		loc:       loc,
	}
	f.svc = NewService(
		f.directory,
		schedule.NewService(f.schedules, loc),
		ration.NewEstimator(f.growth),
		f.logs,
		f.latch,
		nil,
		0,
	)

	f.directory.EXPECT().GetUser(gomock.Any(), "u1").Return(&domain.User{ID: "u1", Name: "Ana", Approved: true}, nil).AnyTimes()
	f.directory.EXPECT().IsMember(gomock.Any(), "pond-1", "u1").Return(true, nil).AnyTimes()
	f.directory.EXPECT().GetPond(gomock.Any(), "pond-1").Return(&domain.Pond{
		ID: "pond-1", Name: "North Pond", FeedingFrequency: 3, InitialStockedCount: 1000,
	}, nil).AnyTimes()

	return f
}

func (f *fixture) withSchedule() {
	f.schedules.EXPECT().Get(gomock.Any(), "pond-1").Return(&domain.FeedingSchedule{
		PondID:      "pond-1",
		TimesOfDay:  []string{"08:00", "12:00", "17:00"},
		TimesPerDay: 3,
		Repeat:      domain.Repeat{Kind: domain.RepeatDaily},
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, f.loc),
	}, nil)
}

func (f *fixture) withSuggestion(available bool) {
	if !available {
		f.growth.EXPECT().CurrentABW(gomock.Any(), "pond-1").Return(nil, domain.ErrGrowthNotFound)
		f.growth.EXPECT().SurvivalPercent(gomock.Any(), "pond-1").Return(nil, nil)
		return
	}
	abw, survival := 10.0, 90.0
	f.growth.EXPECT().CurrentABW(gomock.Any(), "pond-1").Return(&abw, nil)
	f.growth.EXPECT().SurvivalPercent(gomock.Any(), "pond-1").Return(&survival, nil)
}

func (f *fixture) at(day, hour, minute int) time.Time {
	return time.Date(2026, 10, day, hour, minute, 0, 0, f.loc)
}

func (f *fixture) fedAt(times ...time.Time) []domain.FeedingLog {
	logs := make([]domain.FeedingLog, 0, len(times))
	for _, t := range times {
		logs = append(logs, domain.FeedingLog{PondID: "pond-1", FedAt: t, FeedGivenGrams: 100})
	}
	return logs
}

func TestOpenSession_BackfillsMostRecentMissedSlot(t *testing.T) {
	f := newFixture(t)
	f.latch.EXPECT().Acquire(gomock.Any(), "s1", "pond-1").Return("tok", true, nil)
	f.withSchedule()
	f.withSuggestion(true)

	// yesterday's 17:00 and today's 08:00 are both missed
	f.logs.EXPECT().ListInRange(gomock.Any(), "pond-1", gomock.Any(), gomock.Any()).Return(
		f.fedAt(f.at(16, 8, 5), f.at(16, 12, 10)), nil)

	var created *domain.FeedingLog
	f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l *domain.FeedingLog) error {
		created = l
		return nil
	}).Times(1)

	result, err := f.svc.OpenSession(context.Background(), "pond-1", "u1", "s1", f.at(17, 9, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected a backfill log")
	}
	if !created.FedAt.Equal(f.at(17, 8, 0)) {
		t.Errorf("FedAt = %v, want the missed slot", created.FedAt)
	}
	if created.Reason != domain.ReasonMissedSchedule || !created.AutoLogged {
		t.Errorf("unexpected log kind: reason=%s auto=%v", created.Reason, created.AutoLogged)
	}
	// 10g * 900 alive * 10% = 0.9kg/day over 3 feedings
	if created.FeedGivenGrams != 300 {
		t.Errorf("FeedGivenGrams = %v, want 300", created.FeedGivenGrams)
	}
	if created.UserName != "Ana" || created.PondName != "North Pond" {
		t.Errorf("denormalized fields missing: %+v", created)
	}
	if len(result.MissedSlots) != 1 || !result.MissedSlots[0].Equal(f.at(16, 17, 0)) {
		t.Errorf("remaining missed slots = %v", result.MissedSlots)
	}
}

func TestOpenSession_NearWindow(t *testing.T) {
	tests := []struct {
		name       string
		logAt      func(f *fixture) time.Time
		wantCreate bool
	}{
		{
			name:       "log 45 minutes after the slot resolves it",
			logAt:      func(f *fixture) time.Time { return f.at(17, 12, 45) },
			wantCreate: false,
		},
		{
			name:       "log 95 minutes after the slot does not",
			logAt:      func(f *fixture) time.Time { return f.at(17, 13, 35) },
			wantCreate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.latch.EXPECT().Acquire(gomock.Any(), "s1", "pond-1").Return("tok", true, nil)
			f.withSchedule()

			logs := f.fedAt(f.at(16, 8, 0), f.at(16, 12, 0), f.at(16, 17, 0), f.at(17, 8, 0), tt.logAt(f))
			f.logs.EXPECT().ListInRange(gomock.Any(), "pond-1", gomock.Any(), gomock.Any()).Return(logs, nil)

			if tt.wantCreate {
				f.withSuggestion(true)
				f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			}

			result, err := f.svc.OpenSession(context.Background(), "pond-1", "u1", "s1", f.at(17, 14, 0))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (result.Backfilled != nil) != tt.wantCreate {
				t.Errorf("backfilled = %v, want %v", result.Backfilled != nil, tt.wantCreate)
			}
		})
	}
}

func TestOpenSession_LatchHeld(t *testing.T) {
	f := newFixture(t)
	f.latch.EXPECT().Acquire(gomock.Any(), "s1", "pond-1").Return("", false, nil)

	result, err := f.svc.OpenSession(context.Background(), "pond-1", "u1", "s1", f.at(17, 9, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Scanned {
		t.Error("second open in the same session must not scan")
	}
	if result.SkipReason != SkipSessionScanned {
		t.Errorf("skip reason = %q", result.SkipReason)
	}
}

func TestOpenSession_NoSuggestion(t *testing.T) {
	f := newFixture(t)
	f.latch.EXPECT().Acquire(gomock.Any(), "s1", "pond-1").Return("tok", true, nil)
	f.withSchedule()
	f.withSuggestion(false)
	f.logs.EXPECT().ListInRange(gomock.Any(), "pond-1", gomock.Any(), gomock.Any()).Return(nil, nil)
	f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	result, err := f.svc.OpenSession(context.Background(), "pond-1", "u1", "s1", f.at(17, 9, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SkipReason != SkipNoSuggestion {
		t.Errorf("skip reason = %q", result.SkipReason)
	}
	if len(result.MissedSlots) == 0 {
		t.Error("missed slots should still be reported")
	}
}

func TestOpenSession_SlotAlreadyBackfilledElsewhere(t *testing.T) {
	f := newFixture(t)
	f.latch.EXPECT().Acquire(gomock.Any(), "s2", "pond-1").Return("tok", true, nil)
	f.withSchedule()
	f.withSuggestion(true)
	f.logs.EXPECT().ListInRange(gomock.Any(), "pond-1", gomock.Any(), gomock.Any()).Return(nil, nil)
	f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrFeedingLogExists)

	result, err := f.svc.OpenSession(context.Background(), "pond-1", "u1", "s2", f.at(17, 9, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Backfilled != nil {
		t.Error("no log should be reported when the slot was taken concurrently")
	}
	if result.SkipReason != SkipAlreadyLogged {
		t.Errorf("skip reason = %q, want %q", result.SkipReason, SkipAlreadyLogged)
	}
}

func TestOpenSession_NoSchedule(t *testing.T) {
	f := newFixture(t)
	f.latch.EXPECT().Acquire(gomock.Any(), "s1", "pond-1").Return("tok", true, nil)
	f.schedules.EXPECT().Get(gomock.Any(), "pond-1").Return(nil, domain.ErrScheduleNotFound)

	result, err := f.svc.OpenSession(context.Background(), "pond-1", "u1", "s1", f.at(17, 9, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SkipReason != SkipNoSchedule {
		t.Errorf("skip reason = %q", result.SkipReason)
	}
}

func TestOpenSession_ReleasesLatchOnFailure(t *testing.T) {
	storeErr := domain.NewTransientIOError("query", errors.New("database is locked"))

	tests := []struct {
		name  string
		setup func(f *fixture)
	}{
		{
			name: "schedule load fails",
			setup: func(f *fixture) {
				f.schedules.EXPECT().Get(gomock.Any(), "pond-1").Return(nil, storeErr)
			},
		},
		{
			name: "log listing fails",
			setup: func(f *fixture) {
				f.withSchedule()
				f.logs.EXPECT().ListInRange(gomock.Any(), "pond-1", gomock.Any(), gomock.Any()).Return(nil, storeErr)
			},
		},
		{
			name: "growth read fails",
			setup: func(f *fixture) {
				f.withSchedule()
				f.logs.EXPECT().ListInRange(gomock.Any(), "pond-1", gomock.Any(), gomock.Any()).Return(nil, nil)
				f.growth.EXPECT().CurrentABW(gomock.Any(), "pond-1").Return(nil, storeErr)
			},
		},
		{
			name: "log write fails",
			setup: func(f *fixture) {
				f.withSchedule()
				f.withSuggestion(true)
				f.logs.EXPECT().ListInRange(gomock.Any(), "pond-1", gomock.Any(), gomock.Any()).Return(nil, nil)
				f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(storeErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.latch.EXPECT().Acquire(gomock.Any(), "s1", "pond-1").Return("tok", true, nil)
			f.latch.EXPECT().Release(gomock.Any(), "s1", "pond-1", "tok").Return(nil)
			tt.setup(f)

			_, err := f.svc.OpenSession(context.Background(), "pond-1", "u1", "s1", f.at(17, 9, 0))
			if !domain.IsTransient(err) {
				t.Errorf("expected the store failure, got %v", err)
			}
		})
	}
}

func TestOpenSession_ReleaseFailureKeepsOriginalError(t *testing.T) {
	f := newFixture(t)
	storeErr := domain.NewTransientIOError("query", errors.New("disk I/O error"))
	f.latch.EXPECT().Acquire(gomock.Any(), "s1", "pond-1").Return("tok", true, nil)
	f.latch.EXPECT().Release(gomock.Any(), "s1", "pond-1", "tok").Return(errors.New("redis down"))
	f.schedules.EXPECT().Get(gomock.Any(), "pond-1").Return(nil, storeErr)

	_, err := f.svc.OpenSession(context.Background(), "pond-1", "u1", "s1", f.at(17, 9, 0))
	if !errors.Is(err, storeErr) {
		t.Errorf("err = %v, want the store failure", err)
	}
}

func TestOpenSession_RequiresSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.OpenSession(context.Background(), "pond-1", "u1", "", f.at(17, 9, 0))
	if !domain.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}
