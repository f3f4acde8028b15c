package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/dispatch"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/service/trigger"
)

type DispatchHandler struct {
	dispatcher       trigger.Dispatcher
	loc              *time.Location
	allowVirtualTime bool
	clock            Clock
}

// NewDispatchHandler builds the HTTP trigger. allowVirtualTime enables the
// "at" query used for dry runs outside production.
func NewDispatchHandler(dispatcher trigger.Dispatcher, loc *time.Location, allowVirtualTime bool) *DispatchHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &DispatchHandler{
		dispatcher:       dispatcher,
		loc:              loc,
		allowVirtualTime: allowVirtualTime,
		clock:            time.Now,
	}
}

func (h *DispatchHandler) HandleDispatch(c *gin.Context) {
	ctx := c.Request.Context()

	now := h.clock().In(h.loc)
	at, err := queryTime(c, "at")
	if err != nil {
		respondError(c, err)
		return
	}
	if at != nil {
		if !h.allowVirtualTime {
			respondError(c, domain.NewValidationError("at", "virtual time is disabled"))
			return
		}
		now = at.In(h.loc)
		slog.InfoContext(ctx, "using virtual time",
			slog.Time("virtual_now", now),
		)
	}

	resp, err := h.dispatcher.Run(ctx, now, c.GetHeader(RunIDHeader))
	if resp == nil {
		respondError(c, err)
		return
	}

	switch resp.Status {
	case dispatch.StatusThrottled:
		setRetryAfter(c)
		c.JSON(http.StatusServiceUnavailable, resp)
	case dispatch.StatusError:
		c.JSON(http.StatusInternalServerError, resp)
	default:
		c.JSON(http.StatusOK, resp)
	}
}
