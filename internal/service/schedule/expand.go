package schedule

import (
	"sort"
	"time"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
)

// ExpandDay maps the schedule onto the calendar day of ref in loc.
// It returns nil when the schedule does not apply that day. Entries that do
// not parse as "HH:MM" are skipped; the store rejects them on write.
func ExpandDay(s *domain.FeedingSchedule, ref time.Time, loc *time.Location) []time.Time {
	if s == nil || loc == nil {
		return nil
	}

	day := ref.In(loc)
	if !s.Repeat.Includes(day.Weekday()) {
		return nil
	}
	if !s.StartDate.IsZero() && dayKey(day, loc) < dayKey(s.StartDate, loc) {
		return nil
	}
	if s.EndDate != nil && dayKey(day, loc) > dayKey(*s.EndDate, loc) {
		return nil
	}

	slots := make([]time.Time, 0, len(s.TimesOfDay))
	for _, raw := range s.TimesOfDay {
		tod, err := domain.ParseTimeOfDay(raw)
		if err != nil {
			continue
		}
		slots = append(slots, tod.On(day, loc))
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Before(slots[j]) })
	return slots
}

// ExpandRange expands every calendar day from start to end inclusive.
func ExpandRange(s *domain.FeedingSchedule, start, end time.Time, loc *time.Location) []time.Time {
	var slots []time.Time
	for day := StartOfDay(start, loc); !day.After(end); day = day.AddDate(0, 0, 1) {
		slots = append(slots, ExpandDay(s, day, loc)...)
	}
	return slots
}

// NextSlot returns the earliest slot strictly after now.
func NextSlot(slots []time.Time, now time.Time) (time.Time, bool) {
	for _, slot := range slots {
		if slot.After(now) {
			return slot, true
		}
	}
	return time.Time{}, false
}

func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func SameDay(a, b time.Time, loc *time.Location) bool {
	return dayKey(a, loc) == dayKey(b, loc)
}

func dayKey(t time.Time, loc *time.Location) int {
	y, m, d := t.In(loc).Date()
	return y*10000 + int(m)*100 + d
}
