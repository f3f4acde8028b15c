package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	redismodule "github.com/testcontainers/testcontainers-go/modules/redis"
)

const defaultRedisImage = "redis:8-alpine"

// SetupRedis starts a throwaway redis container for integration tests and
// tears it down when the test ends. The test is skipped under -short or when
// no container runtime is available. REDIS_TEST_IMAGE overrides the image.
func SetupRedis(t *testing.T) *redis.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}

	image := os.Getenv("REDIS_TEST_IMAGE")
	if image == "" {
		image = defaultRedisImage
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := startRedis(ctx, image)
	if err != nil {
		t.Skipf("redis container unavailable: %v", err)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Skipf("redis endpoint unavailable: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: endpoint})

	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Logf("failed to close redis client: %v", err)
		}
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	})

	return client
}

// startRedis turns a panic from a missing docker socket into an error.
func startRedis(ctx context.Context, image string) (c *redismodule.RedisContainer, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("start redis: %v", r)
		}
	}()
	return redismodule.Run(ctx, image)
}
