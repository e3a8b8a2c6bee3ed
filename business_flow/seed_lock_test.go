package businessflow

import (
	"context"
	"errors"
	"testing"
	"time"

	dbtest "github.com/Luisr26/ExpertSoft/testing"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisClient(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis test in short mode")
	}
	rc, err := dbtest.NewRedisClient(context.Background())
	if errors.Is(err, dbtest.ErrUnavailable) {
		t.Skip(err.Error())
	}
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })
	return rc
}

func TestRedisSeedLocker(t *testing.T) {
	rc := redisClient(t)
	ctx := context.Background()

	t.Run("second acquire is refused until release", func(t *testing.T) {
		prefix := uuid.NewString() + ":"
		a := NewRedisSeedLocker(rc, prefix, time.Minute)
		b := NewRedisSeedLocker(rc, prefix, time.Minute)

		token, ok, err := a.TryLock(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.NotEmpty(t, token)

		_, ok, err = b.TryLock(ctx)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, b.Unlock(ctx, "someone-else"))
		_, ok, err = b.TryLock(ctx)
		require.NoError(t, err)
		assert.False(t, ok, "a foreign token must not release the lock")

		require.NoError(t, a.Unlock(ctx, token))
		_, ok, err = b.TryLock(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("expired holder cannot release the next run", func(t *testing.T) {
		prefix := uuid.NewString() + ":"
		first := NewRedisSeedLocker(rc, prefix, 100*time.Millisecond)
		second := NewRedisSeedLocker(rc, prefix, time.Minute)

		stale, ok, err := first.TryLock(ctx)
		require.NoError(t, err)
		require.True(t, ok)

		require.Eventually(t, func() bool {
			n, err := rc.Exists(ctx, first.key).Result()
			return err == nil && n == 0
		}, 5*time.Second, 20*time.Millisecond)

		current, ok, err := second.TryLock(ctx)
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, first.Unlock(ctx, stale))

		held, err := rc.Get(ctx, second.key).Result()
		require.NoError(t, err)
		assert.Equal(t, current, held)
	})
}

func TestLocalSeedLocker(t *testing.T) {
	var l LocalSeedLocker
	ctx := context.Background()

	token, ok, err := l.TryLock(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = l.TryLock(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, l.Unlock(ctx, token))
	_, ok, _ = l.TryLock(ctx)
	assert.True(t, ok)
}
