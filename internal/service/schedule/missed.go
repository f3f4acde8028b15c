package schedule

import (
	"time"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
)

// HasLogNear reports whether any log was fed within ±near of slot.
func HasLogNear(slot time.Time, logs []domain.FeedingLog, near time.Duration) bool {
	for _, l := range logs {
		diff := l.FedAt.Sub(slot)
		if diff < 0 {
			diff = -diff
		}
		if diff <= near {
			return true
		}
	}
	return false
}

// MissedSlots returns the elapsed slots without a nearby log, most recent first.
func MissedSlots(slots []time.Time, logs []domain.FeedingLog, now time.Time, near time.Duration) []time.Time {
	missed := make([]time.Time, 0)
	for i := len(slots) - 1; i >= 0; i-- {
		slot := slots[i]
		if slot.After(now) {
			continue
		}
		if HasLogNear(slot, logs, near) {
			continue
		}
		missed = append(missed, slot)
	}
	return missed
}

// MostRecentMissed stops at the first unresolved slot walking back from now.
func MostRecentMissed(slots []time.Time, logs []domain.FeedingLog, now time.Time, near time.Duration) (time.Time, bool) {
	for i := len(slots) - 1; i >= 0; i-- {
		slot := slots[i]
		if slot.After(now) {
			continue
		}
		if !HasLogNear(slot, logs, near) {
			return slot, true
		}
	}
	return time.Time{}, false
}
