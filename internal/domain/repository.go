package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=domain

type ScheduleRepository interface {
	Get(ctx context.Context, pondID string) (*FeedingSchedule, error)
	Upsert(ctx context.Context, schedule *FeedingSchedule) error
}

type FeedingLogRepository interface {
	Create(ctx context.Context, log *FeedingLog) error
	// ListInRange returns the pond's logs with FedAt in [start, end], oldest first.
	ListInRange(ctx context.Context, pondID string, start, end time.Time) ([]FeedingLog, error)
}

type MarkerRepository interface {
	Exists(ctx context.Context, pondID, key string) (bool, error)
	// Claim creates a pending marker if none exists. It reports false, nil when the key is taken.
	Claim(ctx context.Context, marker *ReminderMarker, ttl time.Duration) (bool, error)
	// Commit turns the marker into a permanent tombstone.
	Commit(ctx context.Context, marker *ReminderMarker) error
	// Release drops a pending claim so the next run can retry it.
	Release(ctx context.Context, pondID, key string) error
}

type SessionLatch interface {
	// Acquire reports true exactly once per (session, pond) within the latch
	// lifetime. The returned token identifies this holder for Release.
	Acquire(ctx context.Context, sessionID, pondID string) (token string, acquired bool, err error)
	// Release drops the latch only while it is still held under token.
	Release(ctx context.Context, sessionID, pondID, token string) error
}

type DirectoryRepository interface {
	ListApprovedUsers(ctx context.Context) ([]User, error)
	ListPondsForUser(ctx context.Context, userID string) ([]Pond, error)
	GetUser(ctx context.Context, userID string) (*User, error)
	GetPond(ctx context.Context, pondID string) (*Pond, error)
	IsMember(ctx context.Context, pondID, userID string) (bool, error)
}

type GrowthRepository interface {
	// CurrentABW returns nil when no growth setup has been recorded.
	CurrentABW(ctx context.Context, pondID string) (*float64, error)
	// SurvivalPercent returns nil when the stocked count is unknown.
	SurvivalPercent(ctx context.Context, pondID string) (*float64, error)
}
