package domain

import "time"

type Notification struct {
	Recipient      string
	Subject        string
	Body           string
	IdempotencyKey string
	SlotTime       time.Time
}
