package domain

import (
	"context"
	"time"
)

// DispatchRunRecord summarizes one dispatcher run for offline analysis.
type DispatchRunRecord struct {
	RunID          string
	StartedAt      time.Time
	FinishedAt     time.Time
	Status         string
	CandidateCount int
	SentCount      int
	SkippedCount   int
	FailedCount    int
	Truncated      bool
}

type DispatchResultRecorder interface {
	RecordRun(ctx context.Context, record DispatchRunRecord) error
	Close() error
}
