package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(rl *RateLimiter, limit int) *gin.Engine {
	router := gin.New()
	router.POST("/sessions", rl.Limit(SessionCreateRateLimitConfig(limit)), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return router
}

func post(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_Limit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	router := newLimitedRouter(NewRateLimiter(client), 2)

	w := post(router)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusCreated, post(router).Code)

	w = post(router)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limited")

	// Окно истекло
	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusCreated, post(router).Code)
}

func TestRateLimiter_Disabled(t *testing.T) {
	t.Run("nil limiter", func(t *testing.T) {
		var rl *RateLimiter
		router := newLimitedRouter(rl, 1)
		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusCreated, post(router).Code)
		}
	})

	t.Run("no redis client", func(t *testing.T) {
		router := newLimitedRouter(NewRateLimiter(nil), 1)
		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusCreated, post(router).Code)
		}
	})

	t.Run("zero limit", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { client.Close() })

		router := newLimitedRouter(NewRateLimiter(client), 0)
		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusCreated, post(router).Code)
		}
		assert.False(t, mr.Exists("rl:sessions:10.0.0.1:/sessions"))
	})
}

func TestRateLimiter_FailOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	mr.Close()

	router := newLimitedRouter(NewRateLimiter(client), 1)
	assert.Equal(t, http.StatusCreated, post(router).Code)
	assert.Equal(t, http.StatusCreated, post(router).Code)
}
