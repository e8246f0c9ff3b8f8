package mw

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
)

type cachedResponse struct {
	status      int
	contentType []byte
	body        []byte
}

// Cache memoizes successful GET responses by full request URI. The dashboard
// recomputes everything from scratch per request, so a short TTL absorbs
// repeated polls with identical filter sets; staleness after a write is
// bounded by the TTL.
func Cache(store *cache.Cache, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet {
			return c.Next()
		}

		key := c.OriginalURL()
		if v, found := store.Get(key); found {
			cached := v.(cachedResponse)
			c.Response().Header.SetContentTypeBytes(cached.contentType)
			return c.Status(cached.status).Send(cached.body)
		}

		if err := c.Next(); err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if status >= 200 && status < 300 {
			body := make([]byte, len(c.Response().Body()))
			copy(body, c.Response().Body())
			contentType := make([]byte, len(c.Response().Header.ContentType()))
			copy(contentType, c.Response().Header.ContentType())
			store.Set(key, cachedResponse{status: status, contentType: contentType, body: body}, ttl)
		}
		return nil
	}
}
