package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
)

var ErrInvalidMarkerData = errors.New("invalid marker data")

// Replies redis uses when it cannot take more work right now.
var throttlePrefixes = []string{"OOM", "BUSY", "LOADING", "TRYAGAIN", "MASTERDOWN"}

// classifyRedisError maps resource exhaustion onto domain.ErrThrottled so the
// dispatcher can stop its scan. Other errors pass through with op context.
func classifyRedisError(op string, err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	for _, prefix := range throttlePrefixes {
		if strings.HasPrefix(msg, prefix) {
			return fmt.Errorf("%s: %w: %v", op, domain.ErrThrottled, err)
		}
	}
	if strings.Contains(msg, "connection pool timeout") || strings.Contains(msg, "max number of clients reached") {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrThrottled, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}
