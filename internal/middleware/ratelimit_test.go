package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotelbooking/internal/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimit_TokenBucket(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	clock := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }

	router := gin.New()
	router.POST("/otp", RateLimit(rdb, RateLimitConfig{Prefix: "otp", Capacity: 2, RefillTokens: 1, RefillInterval: time.Minute}, logger.Discard(), now),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/otp", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, hit().Code)
	w := hit()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = hit()
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")

	clock = clock.Add(61 * time.Second)
	assert.Equal(t, http.StatusOK, hit().Code)
	assert.Equal(t, http.StatusTooManyRequests, hit().Code)
}

func TestRateLimit_SeparateClients(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	router := gin.New()
	router.POST("/otp", RateLimit(rdb, RateLimitConfig{Capacity: 1, RefillInterval: time.Hour}, logger.Discard(), nil),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, ip := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/otp", nil)
		req.RemoteAddr = ip
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, ip)
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	router := gin.New()
	router.POST("/otp", RateLimit(rdb, RateLimitConfig{Capacity: 1}, logger.Discard(), nil),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/otp", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimit_NilClient(t *testing.T) {
	router := gin.New()
	router.GET("/", RateLimit(nil, RateLimitConfig{}, logger.Discard(), nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
