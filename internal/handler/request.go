package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
)

const (
	UserIDHeader    = "X-User-ID"
	SessionIDHeader = "X-Session-ID"
	RunIDHeader     = "X-Run-ID"

	dateLayout = "2006-01-02"
)

// Clock returns the current instant. Tests replace it to pin "now".
type Clock func() time.Time

func userID(c *gin.Context) string {
	return c.GetHeader(UserIDHeader)
}

// queryTime parses an optional RFC3339 query parameter.
func queryTime(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be an RFC3339 timestamp")
	}
	return &t, nil
}

func parseDate(field, raw string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "must be a YYYY-MM-DD date")
	}
	return t, nil
}

type feedingLogResponse struct {
	ID             string    `json:"id"`
	PondID         string    `json:"pond_id"`
	PondName       string    `json:"pond_name"`
	FedAt          time.Time `json:"fed_at"`
	FeedGivenGrams float64   `json:"feed_given_grams"`
	AutoLogged     bool      `json:"auto_logged"`
	Reason         string    `json:"reason"`
	UserID         string    `json:"user_id"`
	UserName       string    `json:"user_name"`
	CreatedAt      time.Time `json:"created_at"`
}

func toFeedingLogResponse(l *domain.FeedingLog, loc *time.Location) *feedingLogResponse {
	if l == nil {
		return nil
	}
	return &feedingLogResponse{
		ID:             l.ID,
		PondID:         l.PondID,
		PondName:       l.PondName,
		FedAt:          l.FedAt.In(loc),
		FeedGivenGrams: l.FeedGivenGrams,
		AutoLogged:     l.AutoLogged,
		Reason:         l.Reason.String(),
		UserID:         l.UserID,
		UserName:       l.UserName,
		CreatedAt:      l.CreatedAt,
	}
}
