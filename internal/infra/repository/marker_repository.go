package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-feeding-reminder/internal/domain"
)

const (
	markerKeyPrefix = "feeding:marker:"
)

// releaseScript deletes a marker only while it is still a pending claim.
var releaseScript = redis.NewScript(`
local v = redis.call('GET', KEYS[1])
if v and string.find(v, ARGV[1], 1, true) then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

type markerRecord struct {
	PondID    string    `json:"pond_id"`
	UserID    string    `json:"user_id"`
	SlotTime  time.Time `json:"slot_time"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

type markerRepository struct {
	client    *redis.Client
	retention time.Duration
}

// NewMarkerRepository stores markers under feeding:marker:{pond}:{key}.
// Committed markers never expire when retention is zero.
func NewMarkerRepository(client *redis.Client, retention time.Duration) domain.MarkerRepository {
	return &markerRepository{
		client:    client,
		retention: retention,
	}
}

func markerKey(pondID, key string) string {
	return markerKeyPrefix + pondID + ":" + key
}

func (r *markerRepository) Exists(ctx context.Context, pondID, key string) (bool, error) {
	n, err := r.client.Exists(ctx, markerKey(pondID, key)).Result()
	if err != nil {
		return false, classifyRedisError("marker exists", err)
	}
	return n > 0, nil
}

func (r *markerRepository) Claim(ctx context.Context, marker *domain.ReminderMarker, ttl time.Duration) (bool, error) {
	if marker == nil {
		return false, ErrInvalidMarkerData
	}

	data, err := encodeMarker(marker, domain.MarkerPending)
	if err != nil {
		return false, err
	}

	ok, err := r.client.SetNX(ctx, markerKey(marker.PondID, marker.Key), data, ttl).Result()
	if err != nil {
		return false, classifyRedisError("marker claim", err)
	}
	return ok, nil
}

func (r *markerRepository) Commit(ctx context.Context, marker *domain.ReminderMarker) error {
	if marker == nil {
		return ErrInvalidMarkerData
	}

	data, err := encodeMarker(marker, domain.MarkerSent)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, markerKey(marker.PondID, marker.Key), data, r.retention).Err()
	return classifyRedisError("marker commit", err)
}

func (r *markerRepository) Release(ctx context.Context, pondID, key string) error {
	pending := `"state":"` + string(domain.MarkerPending) + `"`
	err := releaseScript.Run(ctx, r.client, []string{markerKey(pondID, key)}, pending).Err()
	return classifyRedisError("marker release", err)
}

func (r *markerRepository) Get(ctx context.Context, pondID, key string) (*domain.ReminderMarker, error) {
	data, err := r.client.Get(ctx, markerKey(pondID, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrMarkerNotFound
		}
		return nil, classifyRedisError("marker get", err)
	}

	var record markerRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidMarkerData
	}

	return &domain.ReminderMarker{
		Key:       key,
		PondID:    record.PondID,
		UserID:    record.UserID,
		SlotTime:  record.SlotTime,
		State:     domain.MarkerState(record.State),
		CreatedAt: record.CreatedAt,
	}, nil
}

func encodeMarker(marker *domain.ReminderMarker, state domain.MarkerState) ([]byte, error) {
	data, err := json.Marshal(markerRecord{
		PondID:    marker.PondID,
		UserID:    marker.UserID,
		SlotTime:  marker.SlotTime,
		State:     string(state),
		CreatedAt: marker.CreatedAt,
	})
	if err != nil {
		return nil, ErrInvalidMarkerData
	}
	return data, nil
}
