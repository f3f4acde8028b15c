package config

import (
	"fmt"
	"time"
)

const (
	feedingTimezoneEnv           = "FEEDING_TIMEZONE"
	feedingNearWindowMinutesEnv  = "FEEDING_NEAR_WINDOW_MINUTES"
	feedingEarlyWindowMinutesEnv = "FEEDING_EARLY_WINDOW_MINUTES"
	feedingSessionLatchTTLEnv    = "FEEDING_SESSION_LATCH_TTL"

	defaultFeedingTimezone = "Asia/Manila"
	defaultNearWindow      = 90 * time.Minute
	defaultEarlyWindow     = 60 * time.Minute
	defaultSessionLatchTTL = 12 * time.Hour
)

type FeedingConfig struct {
	Location        *time.Location
	NearWindow      time.Duration
	EarlyWindow     time.Duration
	SessionLatchTTL time.Duration
}

func loadFeedingConfig(src source) (*FeedingConfig, error) {
	tz := src.getOr(feedingTimezoneEnv, defaultFeedingTimezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}

	latchTTL, err := src.duration(feedingSessionLatchTTLEnv, defaultSessionLatchTTL)
	if err != nil {
		return nil, err
	}

	return &FeedingConfig{
		Location:        loc,
		NearWindow:      src.minutes(feedingNearWindowMinutesEnv, defaultNearWindow),
		EarlyWindow:     src.minutes(feedingEarlyWindowMinutesEnv, defaultEarlyWindow),
		SessionLatchTTL: latchTTL,
	}, nil
}
