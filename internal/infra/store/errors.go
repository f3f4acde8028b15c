package store

import (
	"fmt"
	"strings"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
)

var busyMarkers = []string{
	"database is locked",
	"database table is locked",
	"SQLITE_BUSY",
}

// classifyDBError wraps err with op and maps lock contention to domain.ErrThrottled.
func classifyDBError(op string, err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	for _, m := range busyMarkers {
		if strings.Contains(msg, m) {
			return fmt.Errorf("%s: %w: %v", op, domain.ErrThrottled, err)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
