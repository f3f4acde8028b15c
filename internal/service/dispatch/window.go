package dispatch

import "time"

const (
	DefaultWindow   = 60 * time.Minute
	DefaultClaimTTL = 5 * time.Minute

	commitAttempts = 3
)

var commitBackoff = 200 * time.Millisecond

type Config struct {
	// Window is how far ahead of a slot a reminder may go out.
	Window time.Duration
	// ClaimTTL bounds how long a pending marker blocks other runs after a crash.
	ClaimTTL time.Duration
	// MaxRunDuration caps one scan. Zero means no cap.
	MaxRunDuration time.Duration
}

func (c Config) withDefaults() Config {
	if c.Window <= 0 {
		c.Window = DefaultWindow
	}
	if c.ClaimTTL <= 0 {
		c.ClaimTTL = DefaultClaimTTL
	}
	return c
}

// IsCandidate reports whether slot is due for a reminder at now: 0 < slot-now <= window.
func IsCandidate(slot, now time.Time, window time.Duration) bool {
	d := slot.Sub(now)
	return d > 0 && d <= window
}
