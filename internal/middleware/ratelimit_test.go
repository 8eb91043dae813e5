package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCheckRateLimit(t *testing.T) {
	mr, rdb := setupRedis(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, remaining, err := CheckRateLimit(ctx, rdb, "write", "ip:1", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 1-i, remaining)
	}

	allowed, remaining, err := CheckRateLimit(ctx, rdb, "write", "ip:1", 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)

	assert.Equal(t, time.Minute, mr.TTL("rl:write:ip:1"))

	// a different client has its own window
	allowed, _, err = CheckRateLimit(ctx, rdb, "write", "ip:2", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)

	mr.FastForward(time.Minute + time.Second)
	allowed, _, err = CheckRateLimit(ctx, rdb, "write", "ip:1", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCheckRateLimit_NilRedis(t *testing.T) {
	allowed, _, err := CheckRateLimit(context.Background(), nil, "write", "ip:1", 1, time.Minute)
	assert.ErrorIs(t, err, ErrNoRedis)
	assert.False(t, allowed)
}

func newLimitedApp(rdb *redis.Client, limit int, policy FailPolicy) *fiber.App {
	app := fiber.New()
	app.Post("/write", RateLimitWithPolicy(rdb, limit, time.Minute, policy, "write"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestRateLimitMiddleware(t *testing.T) {
	_, rdb := setupRedis(t)
	app := newLimitedApp(rdb, 1, FailOpen)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/write", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/write", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "60", resp.Header.Get("Retry-After"))
}

func TestRateLimitMiddleware_FailOpenWithoutRedis(t *testing.T) {
	app := newLimitedApp(nil, 1, FailOpen)

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/write", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

func TestRateLimitMiddleware_FailClosedWhenRedisDown(t *testing.T) {
	mr, rdb := setupRedis(t)
	mr.Close()
	app := newLimitedApp(rdb, 1, FailClosed)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/write", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRateLimitMiddleware_DisabledWithZeroLimit(t *testing.T) {
	_, rdb := setupRedis(t)
	app := newLimitedApp(rdb, 0, FailClosed)

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/write", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}
