package domain

import (
	"time"

	"github.com/google/uuid"
)

type LogReason string

const (
	ReasonManual         LogReason = "manual"
	ReasonMissedSchedule LogReason = "missed_schedule"
)

func (r LogReason) String() string {
	return string(r)
}

// FeedingLog records one feeding event. It is immutable once written.
type FeedingLog struct {
	ID             string
	PondID         string
	FedAt          time.Time
	FeedGivenGrams float64
	AutoLogged     bool
	Reason         LogReason
	UserID         string
	PondName       string
	UserName       string
	CreatedAt      time.Time
}

func NewManualLog(pond *Pond, user *User, fedAt time.Time, grams float64) *FeedingLog {
	return &FeedingLog{
		ID:             uuid.NewString(),
		PondID:         pond.ID,
		FedAt:          fedAt,
		FeedGivenGrams: grams,
		AutoLogged:     false,
		Reason:         ReasonManual,
		UserID:         user.ID,
		PondName:       pond.Name,
		UserName:       user.Name,
		CreatedAt:      time.Now().UTC(),
	}
}

func NewMissedScheduleLog(pond *Pond, user *User, slot time.Time, grams float64) *FeedingLog {
	return &FeedingLog{
		ID:             uuid.NewString(),
		PondID:         pond.ID,
		FedAt:          slot,
		FeedGivenGrams: grams,
		AutoLogged:     true,
		Reason:         ReasonMissedSchedule,
		UserID:         user.ID,
		PondName:       pond.Name,
		UserName:       user.Name,
		CreatedAt:      time.Now().UTC(),
	}
}

// Validate enforces the write-time invariants against the submission instant.
func (l *FeedingLog) Validate(submittedAt time.Time) error {
	if l.PondID == "" {
		return NewValidationError("pond_id", "is required")
	}
	if l.FeedGivenGrams <= 0 {
		return NewValidationError("feed_given_grams", "must be positive")
	}
	if l.FedAt.IsZero() {
		return NewValidationError("fed_at", "is required")
	}
	if l.FedAt.After(submittedAt) {
		return NewValidationError("fed_at", "must not be in the future")
	}
	switch l.Reason {
	case ReasonManual, ReasonMissedSchedule:
	default:
		return NewValidationError("reason", "unknown reason "+string(l.Reason))
	}
	return nil
}
