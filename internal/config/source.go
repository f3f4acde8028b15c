package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// source resolves a setting from the environment first, then the config file.
type source struct {
	file map[string]string
}

func (s source) get(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return s.file[key]
}

func (s source) getOr(key, def string) string {
	if v := s.get(key); v != "" {
		return v
	}
	return def
}

// positiveInt falls back to def when the value is missing or not a positive integer.
func (s source) positiveInt(key string, def int) int {
	if v := s.get(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

func (s source) float(key string, def float64) float64 {
	if v := s.get(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return def
}

func (s source) duration(key string, def time.Duration) (time.Duration, error) {
	v := s.get(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidDuration, key, v)
	}
	return d, nil
}

func (s source) minutes(key string, def time.Duration) time.Duration {
	return time.Duration(s.positiveInt(key, int(def/time.Minute))) * time.Minute
}
