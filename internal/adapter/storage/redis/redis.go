// Package redis holds the engine state that must be shared across API
// replicas but not persisted: parent locks, watcher nonces, rate windows.
package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dlt-orchestrator/config"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// keyspace prefixes every key the engine writes, so one Redis can be
// shared with other services.
const keyspace = "dlt"

const (
	dialTimeout = 3 * time.Second
	ioTimeout   = 2 * time.Second
)

// key joins parts under the engine keyspace: key("lock", "wage_advance:1")
// is "dlt:lock:wage_advance:1".
func key(parts ...string) string {
	return keyspace + ":" + strings.Join(parts, ":")
}

// NewClient connects to Redis and pings it. Lock waits are short, so
// reads and writes fail fast instead of queueing behind a slow server.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		ClientName:   "dlt-orchestrator",
		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis at %s: %w", cfg.Addr(), err)
	}

	log.Info().
		Str("addr", cfg.Addr()).
		Int("db", cfg.DB).
		Str("keyspace", keyspace).
		Msg("redis connected for locks, nonces and rate limits")

	return client, nil
}
