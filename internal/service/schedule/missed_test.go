package schedule

import (
	"testing"
	"time"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
)

func TestHasLogNear(t *testing.T) {
	slot := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	near := 90 * time.Minute

	tests := []struct {
		name  string
		fedAt time.Time
		want  bool
	}{
		{name: "45 minutes after suppresses", fedAt: slot.Add(45 * time.Minute), want: true},
		{name: "45 minutes before suppresses", fedAt: slot.Add(-45 * time.Minute), want: true},
		{name: "exactly 90 minutes suppresses", fedAt: slot.Add(90 * time.Minute), want: true},
		{name: "95 minutes after does not", fedAt: slot.Add(95 * time.Minute), want: false},
		{name: "95 minutes before does not", fedAt: slot.Add(-95 * time.Minute), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := []domain.FeedingLog{{FedAt: tt.fedAt}}
			if got := HasLogNear(slot, logs, near); got != tt.want {
				t.Errorf("HasLogNear() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMostRecentMissed(t *testing.T) {
	base := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	slots := []time.Time{
		base.Add(-7 * time.Hour), // yesterday 17:00
		base.Add(8 * time.Hour),
		base.Add(12 * time.Hour),
		base.Add(17 * time.Hour),
	}
	now := base.Add(13 * time.Hour)
	near := 90 * time.Minute

	t.Run("picks the latest elapsed unresolved slot", func(t *testing.T) {
		logs := []domain.FeedingLog{{FedAt: base.Add(8*time.Hour + 10*time.Minute)}}
		got, ok := MostRecentMissed(slots, logs, now, near)
		if !ok || !got.Equal(slots[2]) {
			t.Errorf("got %v %v, want %v", got, ok, slots[2])
		}
	})

	t.Run("resolved latest slot falls back to an earlier one", func(t *testing.T) {
		logs := []domain.FeedingLog{{FedAt: base.Add(12*time.Hour + 5*time.Minute)}}
		got, ok := MostRecentMissed(slots, logs, now, near)
		if !ok || !got.Equal(slots[1]) {
			t.Errorf("got %v %v, want %v", got, ok, slots[1])
		}
	})

	t.Run("future slots are never missed", func(t *testing.T) {
		logs := []domain.FeedingLog{
			{FedAt: slots[0]},
			{FedAt: slots[1]},
			{FedAt: slots[2]},
		}
		if got, ok := MostRecentMissed(slots, logs, now, near); ok {
			t.Errorf("expected none, got %v", got)
		}
	})

	t.Run("missed list is newest first", func(t *testing.T) {
		got := MissedSlots(slots, nil, now, near)
		if len(got) != 3 {
			t.Fatalf("got %d missed, want 3", len(got))
		}
		if !got[0].Equal(slots[2]) || !got[2].Equal(slots[0]) {
			t.Errorf("unexpected order: %v", got)
		}
	})
}
