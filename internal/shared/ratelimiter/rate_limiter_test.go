package ratelimiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewRateLimiter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		perMinute int
		wantBurst int
	}{
		{60, 10},
		{6, 1},
		{1, 1},
		{0, 10}, // default
	}
	for _, tt := range tests {
		rl := NewRateLimiter(tt.perMinute)
		assert.Equal(t, tt.wantBurst, rl.burst, "perMinute=%d", tt.perMinute)
	}
}

func TestLoadPerMinuteFromEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MINUTE", "")
	assert.Equal(t, DefaultPerMinute, LoadPerMinuteFromEnv())
	t.Setenv("RATE_LIMIT_PER_MINUTE", "abc")
	assert.Equal(t, DefaultPerMinute, LoadPerMinuteFromEnv())
	t.Setenv("RATE_LIMIT_PER_MINUTE", "120")
	assert.Equal(t, 120, LoadPerMinuteFromEnv())
}

func TestRateLimiter_Allow(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(6) // 0.1/s, burst 1
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"), "burst exhausted")
	assert.True(t, rl.Allow("b"), "clients are independent")

	now = now.Add(10 * time.Second)
	assert.True(t, rl.Allow("a"), "token refilled")
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(60)
	rl.now = func() time.Time { return now }
	rl.lastSweep = now

	rl.Allow("a")
	rl.Allow("b")
	assert.Equal(t, 2, rl.Len())

	now = now.Add(idleTTL + time.Second)
	rl.Allow("c")
	assert.Equal(t, 1, rl.Len())
}

func TestRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(6)
	r := gin.New()
	r.POST("/submit", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusAccepted) })

	send := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusAccepted, send().Code)
	w := send()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "10", w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, w.Body.String())
}
