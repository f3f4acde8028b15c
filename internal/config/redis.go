package config

import (
	"strconv"
	"time"
)

const (
	redisAddrEnv        = "REDIS_ADDR"
	redisPasswordEnv    = "REDIS_PASSWORD"
	redisDBEnv          = "REDIS_DB"
	redisTLSEnv         = "REDIS_TLS"
	redisPoolSizeEnv    = "REDIS_POOL_SIZE"
	redisDialTimeoutEnv = "REDIS_DIAL_TIMEOUT"

	defaultRedisAddr        = "localhost:6379"
	defaultRedisPoolSize    = 10
	defaultRedisDialTimeout = 5 * time.Second

	maxRedisDB = 15
)

// RedisConfig points at the store holding reminder markers and session latches.
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	TLS         bool
	PoolSize    int
	DialTimeout time.Duration
}

func loadRedisConfig(src source) (*RedisConfig, error) {
	cfg := &RedisConfig{
		Addr:     src.getOr(redisAddrEnv, defaultRedisAddr),
		Password: src.get(redisPasswordEnv),
		TLS:      src.get(redisTLSEnv) == "true",
		PoolSize: defaultRedisPoolSize,
	}

	if raw := src.get(redisDBEnv); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil || db < 0 || db > maxRedisDB {
			return nil, ErrInvalidRedisDB
		}
		cfg.DB = db
	}

	if raw := src.get(redisPoolSizeEnv); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return nil, ErrInvalidRedisPoolSize
		}
		cfg.PoolSize = size
	}

	dial, err := src.duration(redisDialTimeoutEnv, defaultRedisDialTimeout)
	if err != nil {
		return nil, err
	}
	cfg.DialTimeout = dial

	return cfg, nil
}

func (c *RedisConfig) Validate() error {
	if c == nil || c.Addr == "" {
		return ErrRedisAddrMissing
	}
	return nil
}
