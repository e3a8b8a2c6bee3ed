package businessflow

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const seedLockKey = "seed:init-db:lock"

// releaseScript deletes the lock only while it still holds the caller's token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SeedLocker serialises database initialisation runs. TryLock returns a
// token that must be handed back to Unlock.
type SeedLocker interface {
	TryLock(ctx context.Context) (token string, ok bool, err error)
	Unlock(ctx context.Context, token string) error
}

// RedisSeedLocker holds the lock across every API instance sharing the cache.
// The TTL releases a lock left behind by a crashed run, so it must outlast
// the seed timeout.
type RedisSeedLocker struct {
	rc  *redis.Client
	key string
	ttl time.Duration
}

func NewRedisSeedLocker(rc *redis.Client, prefix string, ttl time.Duration) *RedisSeedLocker {
	return &RedisSeedLocker{rc: rc, key: prefix + seedLockKey, ttl: ttl}
}

func (l *RedisSeedLocker) TryLock(ctx context.Context) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.rc.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil || !ok {
		return "", false, err
	}
	return token, true, nil
}

// Unlock is a no-op once the lock has expired and another run owns it
func (l *RedisSeedLocker) Unlock(ctx context.Context, token string) error {
	return releaseScript.Run(ctx, l.rc, []string{l.key}, token).Err()
}

// LocalSeedLocker guards a single process when no cache is configured
type LocalSeedLocker struct {
	mu sync.Mutex
}

func (l *LocalSeedLocker) TryLock(context.Context) (string, bool, error) {
	return "", l.mu.TryLock(), nil
}

func (l *LocalSeedLocker) Unlock(context.Context, string) error {
	l.mu.Unlock()
	return nil
}
