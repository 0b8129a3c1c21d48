package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dlt-orchestrator/internal/core/ports"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// releaseScript deletes the lock only while it still holds our token.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

const lockRetryInterval = 25 * time.Millisecond

// ParentLocker implements ports.ParentLocker with SET NX PX and a
// compare-and-delete release. The TTL bounds how long a crashed holder
// can block the parent.
type ParentLocker struct {
	client *goredis.Client
	ttl    time.Duration
	wait   time.Duration
	log    zerolog.Logger
}

// NewParentLocker creates a Redis-backed parent locker.
func NewParentLocker(client *goredis.Client, ttl, wait time.Duration, log zerolog.Logger) *ParentLocker {
	return &ParentLocker{
		client: client,
		ttl:    ttl,
		wait:   wait,
		log:    log,
	}
}

func (l *ParentLocker) Lock(ctx context.Context, parent string) (func(), error) {
	redisKey := key("lock", parent)
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	ticker := time.NewTicker(lockRetryInterval)
	defer ticker.Stop()

	for {
		err := l.client.SetArgs(waitCtx, redisKey, token, goredis.SetArgs{Mode: "NX", TTL: l.ttl}).Err()
		if err == nil {
			return l.release(redisKey, token), nil
		}
		if !errors.Is(err, goredis.Nil) {
			if waitCtx.Err() != nil {
				return nil, fmt.Errorf("%w: %s", ports.ErrLockNotAcquired, parent)
			}
			return nil, fmt.Errorf("redis parent lock: %w", err)
		}

		select {
		case <-ticker.C:
		case <-waitCtx.Done():
			return nil, fmt.Errorf("%w: %s", ports.ErrLockNotAcquired, parent)
		}
	}
}

func (l *ParentLocker) release(redisKey, token string) func() {
	released := false
	return func() {
		if released {
			return
		}
		released = true

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		n, err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Int()
		if err != nil {
			l.log.Warn().Err(err).Str("key", redisKey).Msg("parent lock release failed, waiting for ttl")
			return
		}
		if n == 0 {
			l.log.Warn().Str("key", redisKey).Msg("parent lock expired before release")
		}
	}
}
