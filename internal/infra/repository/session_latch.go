package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
)

const (
	sessionLatchKeyPrefix = "feeding:session:"

	DefaultSessionLatchTTL = 12 * time.Hour
)

// latchReleaseScript deletes the latch only while it still carries the holder's token.
var latchReleaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

type sessionLatch struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionLatch(client *redis.Client, ttl time.Duration) domain.SessionLatch {
	if ttl <= 0 {
		ttl = DefaultSessionLatchTTL
	}
	return &sessionLatch{
		client: client,
		ttl:    ttl,
	}
}

func sessionLatchKey(sessionID, pondID string) string {
	return sessionLatchKeyPrefix + sessionID + ":" + pondID
}

func (l *sessionLatch) Acquire(ctx context.Context, sessionID, pondID string) (string, bool, error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, sessionLatchKey(sessionID, pondID), token, l.ttl).Result()
	if err != nil {
		return "", false, classifyRedisError("session latch", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (l *sessionLatch) Release(ctx context.Context, sessionID, pondID, token string) error {
	err := latchReleaseScript.Run(ctx, l.client, []string{sessionLatchKey(sessionID, pondID)}, token).Err()
	return classifyRedisError("session latch release", err)
}
