package schedule

import (
	"testing"
	"time"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
)

func manila(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}
	return loc
}

func TestExpandDay(t *testing.T) {
	loc := manila(t)
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, loc)
	end := time.Date(2026, 10, 31, 0, 0, 0, 0, loc)

	tests := []struct {
		name     string
		schedule *domain.FeedingSchedule
		ref      time.Time
		want     []string
	}{
		{
			name: "daily schedule is sorted ascending",
			schedule: &domain.FeedingSchedule{
				TimesOfDay: []string{"17:00", "08:00", "12:30"},
				Repeat:     domain.Repeat{Kind: domain.RepeatDaily},
				StartDate:  start,
			},
			ref:  time.Date(2026, 10, 17, 9, 0, 0, 0, loc),
			want: []string{"2026-10-17 08:00", "2026-10-17 12:30", "2026-10-17 17:00"},
		},
		{
			name: "weekly schedule on a selected day",
			schedule: &domain.FeedingSchedule{
				TimesOfDay: []string{"08:00"},
				Repeat:     domain.Repeat{Kind: domain.RepeatWeekly, SelectedDays: []int{6}},
				StartDate:  start,
			},
			// 2026-10-17 is a Saturday
			ref:  time.Date(2026, 10, 17, 1, 0, 0, 0, loc),
			want: []string{"2026-10-17 08:00"},
		},
		{
			name: "weekly schedule on an unselected day",
			schedule: &domain.FeedingSchedule{
				TimesOfDay: []string{"08:00"},
				Repeat:     domain.Repeat{Kind: domain.RepeatWeekly, SelectedDays: []int{1, 3}},
				StartDate:  start,
			},
			ref:  time.Date(2026, 10, 17, 1, 0, 0, 0, loc),
			want: nil,
		},
		{
			name: "before start date",
			schedule: &domain.FeedingSchedule{
				TimesOfDay: []string{"08:00"},
				Repeat:     domain.Repeat{Kind: domain.RepeatDaily},
				StartDate:  start,
			},
			ref:  time.Date(2026, 9, 30, 23, 59, 0, 0, loc),
			want: nil,
		},
		{
			name: "on the end date",
			schedule: &domain.FeedingSchedule{
				TimesOfDay: []string{"08:00"},
				Repeat:     domain.Repeat{Kind: domain.RepeatDaily},
				StartDate:  start,
				EndDate:    &end,
			},
			ref:  time.Date(2026, 10, 31, 20, 0, 0, 0, loc),
			want: []string{"2026-10-31 08:00"},
		},
		{
			name: "after end date",
			schedule: &domain.FeedingSchedule{
				TimesOfDay: []string{"08:00"},
				Repeat:     domain.Repeat{Kind: domain.RepeatDaily},
				StartDate:  start,
				EndDate:    &end,
			},
			ref:  time.Date(2026, 11, 1, 0, 0, 0, 0, loc),
			want: nil,
		},
		{
			name: "reference given in UTC uses the local calendar day",
			schedule: &domain.FeedingSchedule{
				TimesOfDay: []string{"08:00"},
				Repeat:     domain.Repeat{Kind: domain.RepeatDaily},
				StartDate:  start,
			},
			// 2026-10-16T20:00Z is 2026-10-17 04:00 in Manila
			ref:  time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC),
			want: []string{"2026-10-17 08:00"},
		},
		{
			name: "malformed entries are skipped",
			schedule: &domain.FeedingSchedule{
				TimesOfDay: []string{"8am", "09:15"},
				Repeat:     domain.Repeat{Kind: domain.RepeatDaily},
				StartDate:  start,
			},
			ref:  time.Date(2026, 10, 17, 9, 0, 0, 0, loc),
			want: []string{"2026-10-17 09:15"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandDay(tt.schedule, tt.ref, loc)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d slots, want %d (%v)", len(got), len(tt.want), got)
			}
			for i, slot := range got {
				if s := slot.In(loc).Format("2006-01-02 15:04"); s != tt.want[i] {
					t.Errorf("slot[%d]: got %q, want %q", i, s, tt.want[i])
				}
			}
		})
	}
}

func TestExpandDay_NilSchedule(t *testing.T) {
	if got := ExpandDay(nil, time.Now(), time.UTC); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestExpandRange_YesterdayAndToday(t *testing.T) {
	loc := manila(t)
	sched := &domain.FeedingSchedule{
		TimesOfDay: []string{"08:00", "17:00"},
		Repeat:     domain.Repeat{Kind: domain.RepeatDaily},
		StartDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, loc),
	}
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, loc)

	got := ExpandRange(sched, now.AddDate(0, 0, -1), now, loc)
	if len(got) != 4 {
		t.Fatalf("got %d slots, want 4", len(got))
	}
	if !got[0].Equal(time.Date(2026, 10, 16, 8, 0, 0, 0, loc)) {
		t.Errorf("first slot: got %v", got[0])
	}
	if !got[3].Equal(time.Date(2026, 10, 17, 17, 0, 0, 0, loc)) {
		t.Errorf("last slot: got %v", got[3])
	}
}

func TestNextSlot(t *testing.T) {
	loc := manila(t)
	slots := []time.Time{
		time.Date(2026, 10, 17, 8, 0, 0, 0, loc),
		time.Date(2026, 10, 17, 17, 0, 0, 0, loc),
	}

	next, ok := NextSlot(slots, time.Date(2026, 10, 17, 8, 0, 0, 0, loc))
	if !ok || !next.Equal(slots[1]) {
		t.Errorf("slot equal to now must be treated as passed, got %v %v", next, ok)
	}

	if _, ok := NextSlot(slots, time.Date(2026, 10, 17, 18, 0, 0, 0, loc)); ok {
		t.Error("expected no next slot after the last one")
	}
}
