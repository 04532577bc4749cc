package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ramink/movie-catalog/internal/config"
)

// RateLimit enforces a fixed-window request limit per client IP, counted in
// Redis so the limit holds across replicas. Disabled configuration or a nil
// client turns it into a no-op, and a Redis failure lets the request
// through: the limiter protects the service, it must not take it down.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passthrough
	}

	window := int64(cfg.Window / time.Second)
	if window < 1 {
		window = 1
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			bucket := time.Now().Unix() / window
			key := fmt.Sprintf("%s:%s:%d", cfg.Prefix, c.RealIP(), bucket)

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if count == 1 {
				rdb.Expire(ctx, key, cfg.Window)
			}
			if count > int64(cfg.Limit) {
				c.Response().Header().Set("Retry-After", strconv.FormatInt(window, 10))
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
			}
			return next(c)
		}
	}
}
