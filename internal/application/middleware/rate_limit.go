package middleware

import (
	"net/http"

	"basinmap/pkg/log"
	"basinmap/pkg/redis"

	"github.com/labstack/echo/v4"
)

// RateLimit rejects requests with 429 once the shared limiter is exhausted.
// The limiter state lives in Redis, so the limit holds across instances.
func RateLimit(limiter *redis.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			transactionID, err := limiter.Acquire(ctx)
			if err != nil {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "Too many requests, try again later",
				})
			}
			defer func() {
				if err := limiter.Release(ctx, transactionID); err != nil {
					log.Warnf("Failed to release rate limiter transaction %s: %v", transactionID, err)
				}
			}()

			return next(c)
		}
	}
}
