package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"dlt-orchestrator/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

// RateLimitStore implements ports.RateLimitStore with fixed-window counters.
type RateLimitStore struct {
	client *goredis.Client
	now    func() time.Time
}

// NewRateLimitStore creates a new Redis-backed rate limit store.
func NewRateLimitStore(client *goredis.Client) *RateLimitStore {
	return &RateLimitStore{
		client: client,
		now:    time.Now,
	}
}

// Allow checks if a request is within the rate limit.
// It uses a fixed-window counter: INCR + EXPIRE on a key scoped by windowID.
func (s *RateLimitStore) Allow(ctx context.Context, bucket string, limit int64, window time.Duration) (*ports.RateLimitResult, error) {
	seconds := int64(window.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	windowID := s.now().Unix() / seconds
	redisKey := key("ratelimit", bucket, strconv.FormatInt(windowID, 10))

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis rate limit incr: %w", err)
	}

	// Set expiry only on first increment (new window)
	if count == 1 {
		if err := s.client.Expire(ctx, redisKey, window+time.Second).Err(); err != nil {
			return nil, fmt.Errorf("redis rate limit expire: %w", err)
		}
	}

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	return &ports.RateLimitResult{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   (windowID + 1) * seconds,
	}, nil
}
