package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// RepeatKind is either daily or weekly.
type RepeatKind string

const (
	RepeatDaily  RepeatKind = "daily"
	RepeatWeekly RepeatKind = "weekly"
)

func (k RepeatKind) String() string {
	return string(k)
}

func ParseRepeatKind(s string) (RepeatKind, error) {
	switch RepeatKind(strings.ToLower(strings.TrimSpace(s))) {
	case RepeatDaily:
		return RepeatDaily, nil
	case RepeatWeekly:
		return RepeatWeekly, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRepeatKind, s)
	}
}

type Repeat struct {
	Kind RepeatKind
	// SelectedDays holds weekday indexes (0 = Sunday). Only used for weekly repeats.
	SelectedDays []int
}

func (r Repeat) Includes(day time.Weekday) bool {
	if r.Kind != RepeatWeekly {
		return true
	}
	for _, d := range r.SelectedDays {
		if d == int(day) {
			return true
		}
	}
	return false
}

// FeedingSchedule is the singleton schedule of a pond.
type FeedingSchedule struct {
	PondID        string
	TimesOfDay    []string
	Repeat        Repeat
	StartDate     time.Time
	EndDate       *time.Time
	TimesPerDay   int
	CreatedBy     string
	LastUpdatedBy string
	UpdatedAt     time.Time
}

// Validate checks the schedule invariants before it is persisted.
func (s *FeedingSchedule) Validate() error {
	if s.PondID == "" {
		return NewValidationError("pond_id", "is required")
	}
	if s.TimesPerDay < 1 {
		return NewValidationError("times_per_day", "must be at least 1")
	}
	if len(s.TimesOfDay) != s.TimesPerDay {
		return NewValidationError("times_of_day", fmt.Sprintf("expected %d entries, got %d", s.TimesPerDay, len(s.TimesOfDay)))
	}
	for _, t := range s.TimesOfDay {
		if _, err := ParseTimeOfDay(t); err != nil {
			return NewValidationError("times_of_day", err.Error())
		}
	}
	switch s.Repeat.Kind {
	case RepeatDaily:
	case RepeatWeekly:
		if len(s.Repeat.SelectedDays) == 0 {
			return NewValidationError("repeat.selected_days", "weekly repeat needs at least one day")
		}
		for _, d := range s.Repeat.SelectedDays {
			if d < 0 || d > 6 {
				return NewValidationError("repeat.selected_days", fmt.Sprintf("weekday %d out of range 0..6", d))
			}
		}
	default:
		return NewValidationError("repeat.kind", fmt.Sprintf("unknown kind %q", s.Repeat.Kind))
	}
	if s.StartDate.IsZero() {
		return NewValidationError("start_date", "is required")
	}
	if s.EndDate != nil && s.EndDate.Before(s.StartDate) {
		return NewValidationError("end_date", "must not be before start_date")
	}
	return nil
}

// SortedTimes returns the times of day in ascending order without mutating the schedule.
func (s *FeedingSchedule) SortedTimes() []string {
	out := make([]string, len(s.TimesOfDay))
	copy(out, s.TimesOfDay)
	sort.Strings(out)
	return out
}

// TimeOfDay is minutes past local midnight.
type TimeOfDay int

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// On places the time of day onto the calendar day of ref in loc.
func (t TimeOfDay) On(ref time.Time, loc *time.Location) time.Time {
	y, m, d := ref.In(loc).Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc)
}

// ParseTimeOfDay parses a strict "HH:MM" 24-hour value.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return NewTimeOfDay(h, m), nil
}
