package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// CacheMiddleware serves GET responses from redis for the given TTL. Used on
// read-heavy detail and report endpoints. Keys include the authenticated
// user so owner-scoped responses are never shared. Fails open on redis
// errors.
func CacheMiddleware(rdb *redis.Client, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet {
			return c.Next()
		}

		key := fmt.Sprintf("cache:%s:%s", GetUserID(c), c.OriginalURL())
		ctx := context.Background()

		if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
			c.Set("Content-Type", "application/json")
			c.Set("X-Cache", "HIT")
			return c.Send(body)
		}

		if err := c.Next(); err != nil {
			return err
		}

		if c.Response().StatusCode() == fiber.StatusOK {
			body := make([]byte, len(c.Response().Body()))
			copy(body, c.Response().Body())
			rdb.Set(ctx, key, body, ttl)
		}

		return nil
	}
}
