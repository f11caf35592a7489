package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Locker serialises stock adjustments of one product.
type Locker interface {
	Acquire(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key, value string) error
}

func LockKey(productID int64) string {
	return fmt.Sprintf("lock:inventory:%d", productID)
}

// RedisLocker shares locks between console processes using SET NX.
type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

func (l *RedisLocker) Acquire(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, key, value, ttl).Result()
}

// releaseScript deletes the key only while it still holds our value.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

func (l *RedisLocker) Release(ctx context.Context, key, value string) error {
	return releaseScript.Run(ctx, l.client, []string{key}, value).Err()
}

// LocalLocker is the in-process Locker used without redis.
type LocalLocker struct {
	mu    sync.Mutex
	held  map[string]string
	until map[string]time.Time
	now   func() time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: map[string]string{}, until: map[string]time.Time{}, now: time.Now}
}

func (l *LocalLocker) Acquire(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[key]; ok && l.now().Before(l.until[key]) {
		return false, nil
	}
	l.held[key] = value
	l.until[key] = l.now().Add(ttl)
	return true, nil
}

func (l *LocalLocker) Release(ctx context.Context, key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] == value {
		delete(l.held, key)
		delete(l.until, key)
	}
	return nil
}
