package notifier

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
)

// MailTask is the payload the mail worker receives from the task queue.
type MailTask struct {
	To             string    `json:"to"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
	IdempotencyKey string    `json:"idempotency_key"`
	SlotTime       time.Time `json:"slot_time"`
}

func newMailTask(n *domain.Notification) *MailTask {
	return &MailTask{
		To:             n.Recipient,
		Subject:        n.Subject,
		Body:           n.Body,
		IdempotencyKey: n.IdempotencyKey,
		SlotTime:       n.SlotTime,
	}
}

// TaskID derives a queue-safe task identifier from an idempotency key.
// Queues reject a second task with the same ID.
func TaskID(idempotencyKey string) string {
	sum := sha256.Sum256([]byte(idempotencyKey))
	return "feeding-" + hex.EncodeToString(sum[:16])
}

type PrimindTaskRequest struct {
	Task PrimindTask `json:"task"`
}

type PrimindTask struct {
	Name         string             `json:"name,omitempty"`
	HTTPRequest  PrimindHTTPRequest `json:"httpRequest"`
	ScheduleTime string             `json:"scheduleTime,omitempty"`
}

type PrimindHTTPRequest struct {
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type PrimindTaskResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}
