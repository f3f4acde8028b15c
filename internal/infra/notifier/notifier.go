package notifier

import (
	"context"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
)

//go:generate mockgen -source=notifier.go -destination=mock.go -package=notifier

// Notifier hands a reminder to the delivery transport. Implementations must
// treat a repeated IdempotencyKey as already requested.
type Notifier interface {
	Send(ctx context.Context, n *domain.Notification) error
}
