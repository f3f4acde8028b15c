package dispatch

import (
	"fmt"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/ration"
)

func buildNotification(user *domain.User, pond *domain.Pond, slot time.Time, key string, suggestion *ration.Suggestion) *domain.Notification {
	at := slot.Format("15:04")

	var body strings.Builder
	name := user.Name
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&body, "Hi %s,\n\n", name)
	fmt.Fprintf(&body, "Pond %s is scheduled for feeding at %s (%s).\n", pond.Name, at, slot.Format("Mon 2 Jan"))
	if suggestion != nil && suggestion.Available {
		fmt.Fprintf(&body, "Suggested ration: %.0f g per feeding (%d feedings a day).\n",
			suggestion.PerFeedingGrams, suggestion.FeedingsPerDay)
	}
	body.WriteString("\nPlease record the feeding once it is done.\n")

	return &domain.Notification{
		Recipient:      user.Email,
		Subject:        fmt.Sprintf("Feeding reminder: %s at %s", pond.Name, at),
		Body:           body.String(),
		IdempotencyKey: pond.ID + "/" + key,
		SlotTime:       slot,
	}
}
