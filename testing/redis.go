package testing

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const RedisImage = "redis:7-alpine"

var (
	redisOnce sync.Once
	redisURL  string
	redisErr  error
)

// redisConnString returns TEST_REDIS_URL or the address of a Redis
// container shared by the test binary
func redisConnString(ctx context.Context) (string, error) {
	redisOnce.Do(func() {
		if override := os.Getenv("TEST_REDIS_URL"); override != "" {
			redisURL = override
			return
		}
		redisURL, redisErr = startRedis(ctx)
	})
	return redisURL, redisErr
}

func startRedis(ctx context.Context) (connStr string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrUnavailable, r)
		}
	}()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        RedisImage,
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("%w: start redis: %v", ErrUnavailable, err)
	}

	connStr, err = ctr.PortEndpoint(ctx, "6379/tcp", "redis")
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return "", fmt.Errorf("get redis endpoint: %w", err)
	}
	return connStr, nil
}

// NewRedisClient connects to the test Redis server. It returns
// ErrUnavailable when no server can be reached.
func NewRedisClient(ctx context.Context) (*redis.Client, error) {
	connStr, err := redisConnString(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := redis.ParseURL(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rc := redis.NewClient(opts)
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return rc, nil
}
