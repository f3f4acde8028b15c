package domain

import (
	"time"
)

type MarkerState string

const (
	MarkerPending MarkerState = "pending"
	MarkerSent    MarkerState = "sent"
)

// ReminderMarker is the durable dedup record for one (day, slot, user).
type ReminderMarker struct {
	Key       string
	PondID    string
	UserID    string
	SlotTime  time.Time
	State     MarkerState
	CreatedAt time.Time
}

func NewReminderMarker(pondID, userID string, slot time.Time, loc *time.Location) *ReminderMarker {
	return &ReminderMarker{
		Key:       MarkerKey(slot, userID, loc),
		PondID:    pondID,
		UserID:    userID,
		SlotTime:  slot,
		State:     MarkerPending,
		CreatedAt: time.Now().UTC(),
	}
}

// MarkerKey builds "YYYY-MM-DD_HH:MM_userID" from the slot's local calendar date.
func MarkerKey(slot time.Time, userID string, loc *time.Location) string {
	local := slot.In(loc)
	return local.Format("2006-01-02") + "_" + local.Format("15:04") + "_" + userID
}
