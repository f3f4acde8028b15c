package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/access"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/backfill"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/guard"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/ration"
)

const defaultLogHistory = 48 * time.Hour

type FeedingHandler struct {
	backfiller *backfill.Service
	guard      *guard.Service
	directory  domain.DirectoryRepository
	logs       domain.FeedingLogRepository
	loc        *time.Location
	clock      Clock
}

func NewFeedingHandler(
	backfiller *backfill.Service,
	guardService *guard.Service,
	directory domain.DirectoryRepository,
	logs domain.FeedingLogRepository,
	loc *time.Location,
) *FeedingHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &FeedingHandler{
		backfiller: backfiller,
		guard:      guardService,
		directory:  directory,
		logs:       logs,
		loc:        loc,
		clock:      time.Now,
	}
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
}

type sessionResponse struct {
	PondID      string              `json:"pond_id"`
	SessionID   string              `json:"session_id"`
	Scanned     bool                `json:"scanned"`
	MissedSlots []time.Time         `json:"missed_slots"`
	Backfilled  *feedingLogResponse `json:"backfilled,omitempty"`
	Suggestion  *ration.Suggestion  `json:"suggestion,omitempty"`
	SkipReason  string              `json:"skip_reason,omitempty"`
}

// HandleOpenSession runs the missed-feeding scan for the logging screen.
func (h *FeedingHandler) HandleOpenSession(c *gin.Context) {
	sessionID := c.GetHeader(SessionIDHeader)
	if sessionID == "" && c.Request.ContentLength > 0 {
		var req sessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, domain.NewValidationError("body", err.Error()))
			return
		}
		sessionID = req.SessionID
	}

	result, err := h.backfiller.OpenSession(c.Request.Context(), c.Param("pondID"), userID(c), sessionID, h.clock())
	if err != nil {
		respondError(c, err)
		return
	}

	missed := make([]time.Time, 0, len(result.MissedSlots))
	for _, m := range result.MissedSlots {
		missed = append(missed, m.In(h.loc))
	}

	c.JSON(http.StatusOK, sessionResponse{
		PondID:      result.PondID,
		SessionID:   result.SessionID,
		Scanned:     result.Scanned,
		MissedSlots: missed,
		Backfilled:  toFeedingLogResponse(result.Backfilled, h.loc),
		Suggestion:  result.Suggestion,
		SkipReason:  result.SkipReason,
	})
}

type feedingLogRequest struct {
	FedAt          time.Time  `json:"fed_at"`
	FeedGivenGrams *float64   `json:"feed_given_grams" binding:"required"`
	Slot           *time.Time `json:"slot"`
	ConfirmEarly   bool       `json:"confirm_early"`
	ConfirmAmount  bool       `json:"confirm_amount"`
}

type submitResponse struct {
	guard.Decision
	Log *feedingLogResponse `json:"log,omitempty"`
}

// HandleSubmitLog passes a manual feeding through the submission guard.
// Done answers 201, a pending confirmation 409 and a block 422.
func (h *FeedingHandler) HandleSubmitLog(c *gin.Context) {
	var req feedingLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidationError("body", err.Error()))
		return
	}
	if req.FedAt.IsZero() {
		respondError(c, domain.NewValidationError("fed_at", "is required"))
		return
	}

	result, err := h.guard.Submit(c.Request.Context(), guard.Submission{
		PondID:        c.Param("pondID"),
		UserID:        userID(c),
		FedAt:         req.FedAt,
		Grams:         *req.FeedGivenGrams,
		Slot:          req.Slot,
		ConfirmEarly:  req.ConfirmEarly,
		ConfirmAmount: req.ConfirmAmount,
	}, h.clock())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := submitResponse{
		Decision: result.Decision,
		Log:      toFeedingLogResponse(result.Log, h.loc),
	}

	switch {
	case result.State == guard.StateDone:
		c.JSON(http.StatusCreated, resp)
	case result.State == guard.StateBlocked:
		c.JSON(http.StatusUnprocessableEntity, resp)
	default:
		c.JSON(http.StatusConflict, resp)
	}
}

type feedingLogListResponse struct {
	PondID string                `json:"pond_id"`
	From   time.Time             `json:"from"`
	To     time.Time             `json:"to"`
	Logs   []*feedingLogResponse `json:"logs"`
}

// HandleListLogs returns the pond's logs between from and to, defaulting to
// the last two days.
func (h *FeedingHandler) HandleListLogs(c *gin.Context) {
	ctx := c.Request.Context()

	_, pond, err := access.Resolve(ctx, h.directory, c.Param("pondID"), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	to := h.clock()
	if t, err := queryTime(c, "to"); err != nil {
		respondError(c, err)
		return
	} else if t != nil {
		to = *t
	}

	from := to.Add(-defaultLogHistory)
	if t, err := queryTime(c, "from"); err != nil {
		respondError(c, err)
		return
	} else if t != nil {
		from = *t
	}

	if from.After(to) {
		respondError(c, domain.NewValidationError("from", "must not be after to"))
		return
	}

	logs, err := h.logs.ListInRange(ctx, pond.ID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]*feedingLogResponse, 0, len(logs))
	for i := range logs {
		out = append(out, toFeedingLogResponse(&logs[i], h.loc))
	}

	slog.DebugContext(ctx, "feeding logs listed",
		slog.String("pond_id", pond.ID),
		slog.Int("count", len(out)),
	)

	c.JSON(http.StatusOK, feedingLogListResponse{
		PondID: pond.ID,
		From:   from.In(h.loc),
		To:     to.In(h.loc),
		Logs:   out,
	})
}
