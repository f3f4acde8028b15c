//go:build !gcloud

package notifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/observability/tracing"
)

// TasksNotifier enqueues reminder mails on a Primind Tasks compatible HTTP queue.
type TasksNotifier struct {
	baseURL    string
	queueName  string
	httpClient *http.Client
	maxRetries int
	limiter    *rate.Limiter
}

type TasksConfig struct {
	BaseURL    string
	QueueName  string
	MaxRetries int
	// RatePerSecond caps outbound enqueue calls. Zero disables pacing.
	RatePerSecond float64
	Timeout       time.Duration
}

func NewTasksNotifier(cfg TasksConfig) *TasksNotifier {
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1)
	}

	return &TasksNotifier{
		baseURL:   cfg.BaseURL,
		queueName: cfg.QueueName,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxRetries: maxRetries,
		limiter:    limiter,
	}
}

func (c *TasksNotifier) Send(ctx context.Context, n *domain.Notification) error {
	payload, err := json.Marshal(newMailTask(n))
	if err != nil {
		return fmt.Errorf("failed to marshal mail task: %w", err)
	}

	taskID := TaskID(n.IdempotencyKey)
	reqBody, err := json.Marshal(PrimindTaskRequest{
		Task: PrimindTask{
			Name: taskID,
			HTTPRequest: PrimindHTTPRequest{
				Body: base64.StdEncoding.EncodeToString(payload),
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal primind request: %w", err)
	}

	url := fmt.Sprintf("%s/tasks", c.baseURL)
	if c.queueName != "" && c.queueName != "default" {
		url = fmt.Sprintf("%s/tasks/%s", c.baseURL, c.queueName)
	}

	ctx, span := tracing.StartExternalAPISpan(ctx, "enqueue_reminder", url)
	defer span.End()

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
			slog.DebugContext(ctx, "retrying reminder enqueue",
				slog.String("task_id", taskID),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				tracing.RecordError(span, ctx.Err())
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			tracing.RecordError(span, err)
			return err
		}

		err := c.doRequest(ctx, url, reqBody, taskID, n.IdempotencyKey)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	slog.ErrorContext(ctx, "all retries exhausted for reminder enqueue",
		slog.String("task_id", taskID),
		slog.String("idempotency_key", n.IdempotencyKey),
		slog.Int("max_retries", c.maxRetries),
		slog.String("error", lastErr.Error()),
	)
	err = fmt.Errorf("failed to enqueue reminder after %d retries: %w", c.maxRetries, lastErr)
	tracing.RecordError(span, err)
	return err
}

func (c *TasksNotifier) doRequest(ctx context.Context, url string, reqBody []byte, taskID, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Idempotency-Key", key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "failed to send request to task queue",
			slog.String("task_id", taskID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusConflict:
		slog.InfoContext(ctx, "reminder task already enqueued",
			slog.String("task_id", taskID),
		)
		return nil
	default:
		slog.WarnContext(ctx, "unexpected status code from task queue",
			slog.String("task_id", taskID),
			slog.Int("status_code", resp.StatusCode),
		)
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var primindResp PrimindTaskResponse
	if err := json.NewDecoder(resp.Body).Decode(&primindResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	slog.InfoContext(ctx, "reminder task enqueued",
		slog.String("task_name", primindResp.Name),
		slog.String("task_id", taskID),
	)

	return nil
}
