package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"  // Echo framework for middleware plumbing
	"github.com/redis/go-redis/v9" // Redis client backing the shared counter

	"github.com/PBL6-cnpm/movie-ticket-booking/internal/config"
)

// RateLimit applies a fixed-window request limit per client IP, backed
// by a shared Redis counter so every instance enforces the same budget.
// The window key is INCRed on each request and given the window TTL on
// first use; exceeding the limit yields 429 with a Retry-After hint.
// When Redis is unavailable requests pass through unthrottled.
func RateLimit(rdb *redis.Client, cfg config.RateLimitConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rdb == nil || !cfg.Enabled {
				return next(c)
			}

			key := cfg.Prefix + ":" + c.RealIP()
			ctx, cancel := context.WithTimeout(c.Request().Context(), 300*time.Millisecond)
			defer cancel()

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c) // fail open
			}
			if n == 1 {
				rdb.Expire(ctx, key, cfg.Window)
			}
			if n > int64(cfg.Limit) {
				retry, err := rdb.TTL(ctx, key).Result()
				if err != nil || retry < 0 {
					retry = cfg.Window
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(retry.Seconds())))
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "too many requests"}) // throttle abusive clients
			}
			return next(c)
		}
	}
}
