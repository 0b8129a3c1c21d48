package middleware

import (
	"fmt"
	"strconv"
	"time"

	"dlt-orchestrator/internal/core/ports"
	"dlt-orchestrator/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RateLimitRule defines a rate limit for an endpoint group.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// DefaultRateLimitRules returns the rate limits per endpoint group.
func DefaultRateLimitRules() map[string]RateLimitRule {
	return map[string]RateLimitRule{
		"reads":         {Limit: 120, Window: time.Minute},
		"wage_advances": {Limit: 20, Window: time.Minute},
		"saga_steps":    {Limit: 60, Window: time.Minute},
		"outcomes":      {Limit: 60, Window: time.Minute},
		"relay":         {Limit: 10, Window: time.Minute},
		"watcher":       {Limit: 600, Window: time.Minute},
		"admin":         {Limit: 30, Window: time.Minute},
	}
}

// RateLimiter creates a rate-limiting middleware for a given endpoint group.
// When the store fails the request is let through.
func RateLimiter(store ports.RateLimitStore, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", extractIdentifier(c), group)

		result, err := store.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := result.ResetAt - time.Now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			abort(c, apperror.ErrRateLimitExceeded())
			return
		}

		c.Next()
	}
}

// extractIdentifier determines the rate limit key source.
func extractIdentifier(c *gin.Context) string {
	if user, ok := CurrentUser(c); ok {
		return "user:" + user.ID.String()
	}
	if ak := c.GetHeader(HeaderAccessKey); ak != "" {
		return "watcher:" + ak
	}
	return "ip:" + c.ClientIP()
}
