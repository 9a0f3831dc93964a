package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBodyLimit(t *testing.T) {
	router := gin.New()
	router.Use(BodyLimit(16))
	router.POST("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too large")
			return
		}
		c.String(http.StatusOK, string(body))
	})

	t.Run("accepts a body within the limit", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/echo", strings.NewReader("small"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "small", w.Body.String())
	})

	t.Run("rejects a declared oversized body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/echo", strings.NewReader(strings.Repeat("x", 64)))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_REQUEST_TOO_LARGE")
	})
}

func TestRateLimit(t *testing.T) {
	limiter := NewRateLimiter(2, 50*time.Millisecond)

	router := gin.New()
	router.Use(RateLimit(limiter))
	router.GET("/limited", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	t.Run("allows requests up to the limit then rejects", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", "/limited", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/limited", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_RATE_LIMITED")
	})

	t.Run("resets after the window passes", func(t *testing.T) {
		time.Sleep(60 * time.Millisecond)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/limited", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
