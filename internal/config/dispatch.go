package config

import "time"

const (
	dispatchCronEnv            = "DISPATCH_CRON"
	dispatchWindowMinutesEnv   = "DISPATCH_WINDOW_MINUTES"
	dispatchClaimTTLEnv        = "DISPATCH_CLAIM_TTL"
	dispatchMaxRunDurationEnv  = "DISPATCH_MAX_RUN_DURATION"
	dispatchMarkerRetentionEnv = "DISPATCH_MARKER_RETENTION"

	// DispatchCronOff disables the in-process trigger.
	DispatchCronOff = "off"

	defaultDispatchCron     = "*/10 * * * *"
	defaultDispatchWindow   = 60 * time.Minute
	defaultDispatchClaimTTL = 5 * time.Minute
	defaultMaxRunDuration   = 4 * time.Minute
)

type DispatchConfig struct {
	// Cron schedules in-process runs. Empty leaves triggering to an external
	// scheduler calling the HTTP endpoint.
	Cron           string
	Window         time.Duration
	ClaimTTL       time.Duration
	MaxRunDuration time.Duration
	// MarkerRetention expires committed markers. Zero keeps them forever.
	MarkerRetention time.Duration
}

func loadDispatchConfig(src source) (*DispatchConfig, error) {
	claimTTL, err := src.duration(dispatchClaimTTLEnv, defaultDispatchClaimTTL)
	if err != nil {
		return nil, err
	}

	maxRun, err := src.duration(dispatchMaxRunDurationEnv, defaultMaxRunDuration)
	if err != nil {
		return nil, err
	}

	retention, err := src.duration(dispatchMarkerRetentionEnv, 0)
	if err != nil {
		return nil, err
	}

	cron := src.getOr(dispatchCronEnv, defaultDispatchCron)
	if cron == DispatchCronOff {
		cron = ""
	}

	return &DispatchConfig{
		Cron:            cron,
		Window:          src.minutes(dispatchWindowMinutesEnv, defaultDispatchWindow),
		ClaimTTL:        claimTTL,
		MaxRunDuration:  maxRun,
		MarkerRetention: retention,
	}, nil
}
