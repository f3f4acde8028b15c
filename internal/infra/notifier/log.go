package notifier

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
)

// LogNotifier writes reminders to the log instead of delivering them.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (LogNotifier) Send(ctx context.Context, n *domain.Notification) error {
	slog.InfoContext(ctx, "feeding reminder (log only)",
		slog.String("recipient", n.Recipient),
		slog.String("subject", n.Subject),
		slog.String("idempotency_key", n.IdempotencyKey),
		slog.Time("slot_time", n.SlotTime),
	)
	return nil
}
