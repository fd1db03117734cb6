package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// passLockTTL bounds how long a crashed worker can keep a caller locked out.
// A full pass with retries is well under two minutes, 10 minutes is generous.
const passLockTTL = 10 * time.Minute

// PassLock is the cross-instance single-pass-per-caller registry. It
// complements the orchestrator's in-process guard, it does not replace it:
// the in-process map catches the common case, redis catches callers being
// load-balanced across instances.
type PassLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPassLock connects to redis using a URL of the form
// redis://[:password@]host:port[/db].
func NewPassLock(redisURL string) (*PassLock, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	return &PassLock{client: redis.NewClient(opts), ttl: passLockTTL}, nil
}

// Acquire claims the caller's pass slot. Returns false when another pass
// already holds it. The value stored is the request ID, which makes stuck
// locks diagnosable from redis-cli.
func (l *PassLock) Acquire(ctx context.Context, callerID, requestID string) (bool, error) {
	ok, err := l.client.SetNX(ctx, passLockKey(callerID), requestID, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquiring pass lock: %w", err)
	}
	return ok, nil
}

// Release frees the caller's pass slot.
func (l *PassLock) Release(ctx context.Context, callerID string) error {
	if err := l.client.Del(ctx, passLockKey(callerID)).Err(); err != nil {
		return fmt.Errorf("releasing pass lock: %w", err)
	}
	return nil
}

// Ping verifies the redis connection at startup.
func (l *PassLock) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func passLockKey(callerID string) string {
	return "passlock:" + callerID
}
