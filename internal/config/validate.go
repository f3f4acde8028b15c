package config

import (
	"errors"
	"fmt"
)

func ValidateForRun(cfg *Config) error {
	var errs []error

	if err := cfg.Redis.Validate(); err != nil {
		errs = append(errs, err)
	}
	if cfg.Database.Path == "" {
		errs = append(errs, ErrDatabasePathMissing)
	}
	if cfg.Dispatch.ClaimTTL <= 0 {
		errs = append(errs, ErrClaimTTLNotPositive)
	}
	if cfg.Dispatch.MaxRunDuration > 0 && cfg.Dispatch.ClaimTTL < cfg.Dispatch.MaxRunDuration {
		errs = append(errs, fmt.Errorf("%w: %s < %s",
			ErrClaimTTLTooShort, cfg.Dispatch.ClaimTTL, cfg.Dispatch.MaxRunDuration))
	}
	if err := cfg.Notifier.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
