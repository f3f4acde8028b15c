package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
)

// retryAfterSeconds is sent with every 503 caused by a throttled backing store.
const retryAfterSeconds = 30

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// statusFor maps the domain error families onto HTTP status codes.
func statusFor(err error) (int, string) {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, domain.ErrNotPondMember), errors.Is(err, domain.ErrUserNotApproved):
		return http.StatusForbidden, "forbidden"
	case domain.IsNotFound(err):
		return http.StatusNotFound, "not_found"
	case domain.IsThrottled(err):
		return http.StatusServiceUnavailable, "throttled"
	default:
		return http.StatusInternalServerError, "processing_error"
	}
}

func respondError(c *gin.Context, err error) {
	status, code := statusFor(err)
	ctx := c.Request.Context()

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "request failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
	} else {
		slog.WarnContext(ctx, "request rejected",
			slog.String("path", c.FullPath()),
			slog.Int("status", status),
			slog.String("error", err.Error()),
		)
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	if status == http.StatusServiceUnavailable {
		setRetryAfter(c)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: code, Message: message})
}

func setRetryAfter(c *gin.Context) {
	c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
}
