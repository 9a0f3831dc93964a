package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllow(t *testing.T) {
	t.Run("allows up to the limit per window", func(t *testing.T) {
		rl := NewRateLimiter(3, time.Minute)

		assert.True(t, rl.Allow("1.2.3.4"))
		assert.True(t, rl.Allow("1.2.3.4"))
		assert.True(t, rl.Allow("1.2.3.4"))
		assert.False(t, rl.Allow("1.2.3.4"))
	})

	t.Run("keys are isolated", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Minute)

		assert.True(t, rl.Allow("1.2.3.4"))
		assert.False(t, rl.Allow("1.2.3.4"))
		assert.True(t, rl.Allow("5.6.7.8"))
	})

	t.Run("window reset refills tokens", func(t *testing.T) {
		rl := NewRateLimiter(1, 10*time.Millisecond)

		assert.True(t, rl.Allow("1.2.3.4"))
		assert.False(t, rl.Allow("1.2.3.4"))

		time.Sleep(15 * time.Millisecond)
		assert.True(t, rl.Allow("1.2.3.4"))
	})
}

func TestRateLimiterRemaining(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)

	assert.Equal(t, 5, rl.Remaining("1.2.3.4"))
	rl.Allow("1.2.3.4")
	rl.Allow("1.2.3.4")
	assert.Equal(t, 3, rl.Remaining("1.2.3.4"))
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(2, time.Minute)

	router := gin.New()
	router.Use(RateLimitByKey(rl, func(c *gin.Context) string {
		return c.GetHeader("X-Client-Key")
	}))
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	get := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Client-Key", key)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := get("client-a")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, get("client-a").Code)
	assert.Equal(t, http.StatusTooManyRequests, get("client-a").Code)
	assert.Equal(t, http.StatusOK, get("client-b").Code)
}
