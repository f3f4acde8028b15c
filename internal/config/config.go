package config

import (
	"log/slog"
	"os"
	"strings"
)

const (
	portEnv     = "PORT"
	logLevelEnv = "LOG_LEVEL"

	defaultPort = "8080"
)

type Config struct {
	Port     string
	LogLevel slog.Level
	Redis    *RedisConfig
	Database *DatabaseConfig
	Dispatch *DispatchConfig
	Feeding  *FeedingConfig
	Notifier NotifierConfig
}

// Load reads FEEDING_CONFIG_FILE when set, then lets the environment
// override each value.
func Load() (*Config, error) {
	file, err := loadFile(os.Getenv(configFileEnv))
	if err != nil {
		return nil, err
	}
	src := source{file: file}

	redisConfig, err := loadRedisConfig(src)
	if err != nil {
		return nil, err
	}

	dispatchConfig, err := loadDispatchConfig(src)
	if err != nil {
		return nil, err
	}

	feedingConfig, err := loadFeedingConfig(src)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:     src.getOr(portEnv, defaultPort),
		LogLevel: parseLogLevel(src.get(logLevelEnv)),
		Redis:    redisConfig,
		Database: loadDatabaseConfig(src),
		Dispatch: dispatchConfig,
		Feeding:  feedingConfig,
		Notifier: loadNotifierConfig(src),
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
