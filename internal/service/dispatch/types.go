package dispatch

import (
	"time"
)

type Status string

const (
	StatusOK              Status = "ok"
	StatusNoApprovedUsers Status = "no_approved_users"
	StatusThrottled       Status = "throttled"
	StatusError           Status = "error"
)

func (s Status) String() string {
	return string(s)
}

type Outcome string

const (
	OutcomeSent      Outcome = "sent"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeClaimed   Outcome = "claimed_elsewhere"
	OutcomeNoEmail   Outcome = "no_recipient"
	OutcomeFailed    Outcome = "failed"
	OutcomeThrottled Outcome = "throttled"
)

type ResultItem struct {
	PondID     string    `json:"pond_id"`
	UserID     string    `json:"user_id"`
	MarkerKey  string    `json:"marker_key"`
	SlotTime   time.Time `json:"slot_time"`
	Outcome    Outcome   `json:"outcome"`
	Skipped    bool      `json:"skipped"`
	SkipReason string    `json:"skip_reason,omitempty"`
	Error      string    `json:"error,omitempty"`
}

type Response struct {
	RunID          string       `json:"run_id"`
	Status         Status       `json:"status"`
	Now            time.Time    `json:"now"`
	CandidateCount int          `json:"candidate_count"`
	SentCount      int          `json:"sent_count"`
	SkippedCount   int          `json:"skipped_count"`
	FailedCount    int          `json:"failed_count"`
	Truncated      bool         `json:"truncated"`
	Results        []ResultItem `json:"results"`
}

func (r *Response) add(item ResultItem) {
	r.Results = append(r.Results, item)
	switch {
	case item.Outcome == OutcomeSent:
		r.SentCount++
	case item.Skipped:
		r.SkippedCount++
	default:
		r.FailedCount++
	}
}
