package mw

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheMemoizesGet(t *testing.T) {
	store := cache.New(time.Minute, time.Minute)
	hits := 0

	app := fiber.New()
	app.Get("/stats", Cache(store, time.Minute), func(c *fiber.Ctx) error {
		hits++
		return c.JSON(fiber.Map{"hits": hits})
	})

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/stats?year=2024", nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"hits":1}`, string(body))
	}
	assert.Equal(t, 1, hits, "handler must run once for identical URIs")
}

func TestCacheKeyIncludesQueryString(t *testing.T) {
	store := cache.New(time.Minute, time.Minute)
	hits := 0

	app := fiber.New()
	app.Get("/stats", Cache(store, time.Minute), func(c *fiber.Ctx) error {
		hits++
		return c.SendString("ok")
	})

	_, err := app.Test(httptest.NewRequest("GET", "/stats?month=01", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest("GET", "/stats?month=02", nil))
	require.NoError(t, err)

	assert.Equal(t, 2, hits, "different filter sets are separate cache entries")
}

func TestCacheSkipsErrors(t *testing.T) {
	store := cache.New(time.Minute, time.Minute)
	hits := 0

	app := fiber.New()
	app.Get("/boom", Cache(store, time.Minute), func(c *fiber.Ctx) error {
		hits++
		return fiber.NewError(fiber.StatusInternalServerError, "down")
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	}
	assert.Equal(t, 2, hits, "failed responses are never cached")
}
