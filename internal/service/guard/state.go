package guard

import (
	"fmt"
	"math"
	"time"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/schedule"
)

type State string

const (
	StateIdle                  State = "idle"
	StateValidating            State = "validating"
	StateBlocked               State = "blocked"
	StatePendingEarlyConfirm   State = "pending_early_confirm"
	StatePendingAmountConfirm  State = "pending_amount_confirm"
	StatePendingTooEarlyReject State = "pending_too_early_reject"
	StateSubmitting            State = "submitting"
	StateDone                  State = "done"
)

func (s State) String() string {
	return string(s)
}

// Soft states can be confirmed by resubmitting with the matching flag.
func (s State) Soft() bool {
	return s == StatePendingEarlyConfirm || s == StatePendingAmountConfirm
}

const (
	ReasonInvalidInput = "invalid input"
	ReasonDailyLimit   = "daily limit reached"
)

const DefaultEarlyWindow = 60 * time.Minute

// Input is everything the guard needs to judge one submission.
type Input struct {
	Now   time.Time
	FedAt time.Time
	Grams float64

	// TodaySlots are the slots of the day being logged, ascending.
	TodaySlots []time.Time
	// LoggedToday counts the pond's logs on the day being logged.
	LoggedToday int
	// DailyLimit is the pond's feeding frequency. Zero disables the cap.
	DailyLimit int
	// SuggestedGrams is nil when no ration suggestion is available.
	SuggestedGrams *float64
	// MissedSlot is set when the submission is attributed to an unresolved slot.
	// It only picks the day LoggedToday counts; the next-slot checks still apply.
	MissedSlot *time.Time

	ConfirmEarly  bool
	ConfirmAmount bool

	EarlyWindow time.Duration
}

type Decision struct {
	State          State      `json:"state"`
	Reason         string     `json:"reason,omitempty"`
	Detail         string     `json:"detail,omitempty"`
	NextSlot       *time.Time `json:"next_slot,omitempty"`
	MinutesEarly   int        `json:"minutes_early,omitempty"`
	SuggestedGrams *float64   `json:"suggested_grams,omitempty"`
	MissedSlot     *time.Time `json:"missed_slot,omitempty"`
}

// Evaluate walks validating -> {blocked | pending_* } -> submitting. The
// too-early rejection is checked before the amount confirmation.
func Evaluate(in Input) Decision {
	d := Decision{
		State:          StateValidating,
		SuggestedGrams: in.SuggestedGrams,
		MissedSlot:     in.MissedSlot,
	}

	if in.FedAt.IsZero() || in.FedAt.After(in.Now) {
		return blocked(d, ReasonInvalidInput, "fed_at must not be in the future")
	}
	if math.IsNaN(in.Grams) || in.Grams <= 0 {
		return blocked(d, ReasonInvalidInput, "feed given must be more than 0 g")
	}

	if in.DailyLimit > 0 && in.LoggedToday >= in.DailyLimit {
		return blocked(d, ReasonDailyLimit,
			fmt.Sprintf("%d of %d feedings already logged for the day", in.LoggedToday, in.DailyLimit))
	}

	early := in.EarlyWindow
	if early <= 0 {
		early = DefaultEarlyWindow
	}

	if next, ok := schedule.NextSlot(in.TodaySlots, in.Now); ok && !in.FedAt.After(in.Now) {
		lead := next.Sub(in.Now)
		d.NextSlot = &next
		d.MinutesEarly = int(math.Ceil(next.Sub(in.FedAt).Minutes()))

		if lead > early {
			d.State = StatePendingTooEarlyReject
			d.Reason = "too early to log"
			d.Detail = fmt.Sprintf("next feeding is at %s, %d minutes from now; logging opens %d minutes before",
				next.Format("15:04"), int(math.Ceil(lead.Minutes())), int(early.Minutes()))
			return d
		}
		if !in.ConfirmEarly {
			d.State = StatePendingEarlyConfirm
			d.Reason = "early feeding"
			d.Detail = fmt.Sprintf("logging %d minutes before the %s feeding", d.MinutesEarly, next.Format("15:04"))
			return d
		}
	}

	if in.SuggestedGrams != nil && *in.SuggestedGrams != in.Grams && !in.ConfirmAmount {
		d.State = StatePendingAmountConfirm
		d.Reason = "amount differs from suggestion"
		d.Detail = fmt.Sprintf("submitted %s g, suggested %s g", formatGrams(in.Grams), formatGrams(*in.SuggestedGrams))
		return d
	}

	d.State = StateSubmitting
	return d
}

func blocked(d Decision, reason, detail string) Decision {
	d.State = StateBlocked
	d.Reason = reason
	d.Detail = detail
	return d
}

func formatGrams(g float64) string {
	if g == math.Trunc(g) {
		return fmt.Sprintf("%.0f", g)
	}
	return fmt.Sprintf("%.1f", g)
}
