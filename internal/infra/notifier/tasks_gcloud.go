//go:build gcloud

package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
	"github.com/KasumiMercury/primind-feeding-reminder/internal/observability/tracing"
)

type CloudTasksNotifier struct {
	client     *cloudtasks.Client
	projectID  string
	locationID string
	queueID    string
	targetURL  string
	maxRetries int
}

type CloudTasksConfig struct {
	ProjectID  string
	LocationID string
	QueueID    string
	TargetURL  string
	MaxRetries int
}

func NewCloudTasksNotifier(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksNotifier, error) {
	client, err := cloudtasks.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	return &CloudTasksNotifier{
		client:     client,
		projectID:  cfg.ProjectID,
		locationID: cfg.LocationID,
		queueID:    cfg.QueueID,
		targetURL:  cfg.TargetURL,
		maxRetries: maxRetries,
	}, nil
}

func (c *CloudTasksNotifier) Send(ctx context.Context, n *domain.Notification) error {
	queuePath := fmt.Sprintf("projects/%s/locations/%s/queues/%s",
		c.projectID, c.locationID, c.queueID)

	payload, err := json.Marshal(newMailTask(n))
	if err != nil {
		return fmt.Errorf("failed to marshal mail task: %w", err)
	}

	taskID := TaskID(n.IdempotencyKey)
	req := &taskspb.CreateTaskRequest{
		Parent: queuePath,
		Task: &taskspb.Task{
			Name: queuePath + "/tasks/" + taskID,
			MessageType: &taskspb.Task_HttpRequest{
				HttpRequest: &taskspb.HttpRequest{
					HttpMethod: taskspb.HttpMethod_POST,
					Url:        c.targetURL,
					Headers: map[string]string{
						"Content-Type": "application/json",
					},
					Body: payload,
				},
			},
			ScheduleTime: timestamppb.Now(),
		},
	}

	ctx, span := tracing.StartExternalAPISpan(ctx, "create_cloud_task", queuePath)
	defer span.End()

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
			slog.DebugContext(ctx, "retrying reminder task creation",
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

		err := c.createTask(ctx, req, taskID)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	slog.ErrorContext(ctx, "all retries exhausted for reminder task creation",
		slog.String("task_id", taskID),
		slog.String("idempotency_key", n.IdempotencyKey),
		slog.Int("max_retries", c.maxRetries),
		slog.String("error", lastErr.Error()),
	)
	err = fmt.Errorf("failed to create reminder task after %d retries: %w", c.maxRetries, lastErr)
	tracing.RecordError(span, err)
	return err
}

func (c *CloudTasksNotifier) createTask(ctx context.Context, req *taskspb.CreateTaskRequest, taskID string) error {
	created, err := c.client.CreateTask(ctx, req)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			slog.InfoContext(ctx, "reminder task already exists",
				slog.String("task_id", taskID),
			)
			return nil
		}

		slog.WarnContext(ctx, "failed to create cloud task",
			slog.String("task_id", taskID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create cloud task: %w", err)
	}

	slog.InfoContext(ctx, "reminder task registered to Cloud Tasks",
		slog.String("task_name", created.Name),
	)
	return nil
}

func (c *CloudTasksNotifier) Close() error {
	return c.client.Close()
}
