package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// HealthCheck reports whether parent locks can be taken. With Redis down
// every saga step fails, so the API reports itself degraded.
type HealthCheck struct {
	client *goredis.Client
}

func NewHealthCheck(client *goredis.Client) *HealthCheck {
	return &HealthCheck{client: client}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	if err := h.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("lock store unreachable: %w", err)
	}
	return nil
}

func (h *HealthCheck) Name() string {
	return "redis"
}
