package config

import "errors"

var (
	ErrConfigFile      = errors.New("failed to read config file")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrInvalidTimezone = errors.New("FEEDING_TIMEZONE is not a known IANA zone")

	ErrRedisAddrMissing     = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB       = errors.New("REDIS_DB must be an integer between 0 and 15")
	ErrInvalidRedisPoolSize = errors.New("REDIS_POOL_SIZE must be a positive integer")

	ErrDatabasePathMissing = errors.New("DATABASE_PATH is required")
	ErrClaimTTLNotPositive = errors.New("DISPATCH_CLAIM_TTL must be positive")
	ErrClaimTTLTooShort    = errors.New("DISPATCH_CLAIM_TTL must cover DISPATCH_MAX_RUN_DURATION")
)
