package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// NonceStore burns watcher request nonces. A nonce is accepted once per
// scope (the watcher access key) until its TTL lapses, which is set to
// cover the allowed timestamp drift.
type NonceStore struct {
	client *goredis.Client
}

func NewNonceStore(client *goredis.Client) *NonceStore {
	return &NonceStore{client: client}
}

// CheckAndSet reports whether nonce is fresh for scope, and burns it.
func (s *NonceStore) CheckAndSet(ctx context.Context, scope string, nonce string, ttl time.Duration) (bool, error) {
	err := s.client.SetArgs(ctx, key("nonce", scope, nonce), time.Now().Unix(), goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, goredis.Nil):
		return false, nil
	default:
		return false, fmt.Errorf("burn watcher nonce: %w", err)
	}
}
