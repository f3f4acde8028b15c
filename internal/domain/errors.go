package domain

import (
	"errors"
	"fmt"
)

var (
	ErrScheduleNotFound  = errors.New("feeding schedule not found")
	ErrPondNotFound      = errors.New("pond not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrNoApprovedUsers   = errors.New("no approved users")
	ErrGrowthNotFound    = errors.New("growth setup not found")
	ErrMarkerNotFound    = errors.New("reminder marker not found")
	ErrFeedingLogExists  = errors.New("feeding log already recorded")
	ErrThrottled         = errors.New("backing store throttled")
	ErrNotPondMember     = errors.New("user is not attached to pond")
	ErrUserNotApproved   = errors.New("user is not approved")
	ErrInvalidTimeOfDay  = errors.New("invalid time of day")
	ErrInvalidRepeatKind = errors.New("invalid repeat kind")
)

// ValidationError reports bad input. It is surfaced immediately and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// TransientIOError wraps a network or notification failure. The affected
// candidate is left unmarked so the next run picks it up again.
type TransientIOError struct {
	Op  string
	Err error
}

func NewTransientIOError(op string, err error) *TransientIOError {
	return &TransientIOError{Op: op, Err: err}
}

func (e *TransientIOError) Error() string {
	return fmt.Sprintf("transient %s: %v", e.Op, e.Err)
}

func (e *TransientIOError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsTransient(err error) bool {
	var te *TransientIOError
	return errors.As(err, &te)
}

func IsThrottled(err error) bool {
	return errors.Is(err, ErrThrottled)
}

// IsNotFound reports the benign "nothing there" family.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrScheduleNotFound) ||
		errors.Is(err, ErrPondNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrNoApprovedUsers) ||
		errors.Is(err, ErrGrowthNotFound) ||
		errors.Is(err, ErrMarkerNotFound)
}
