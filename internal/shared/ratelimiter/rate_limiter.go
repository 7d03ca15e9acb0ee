// Package ratelimiter はクライアントごとのトークンバケットによる送信頻度の制限を提供します。
package ratelimiter

import (
	"log/slog"
	"math"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"aurora_backend/internal/api"
)

const (
	// DefaultPerMinute は RATE_LIMIT_PER_MINUTE 未設定時の1分あたりの上限です。
	DefaultPerMinute = 60
	// idleTTL はこの期間アクセスのないクライアントの状態を破棄します。
	idleTTL = 10 * time.Minute
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter はキー（クライアントIP）ごとに rate.Limiter を管理します。
type RateLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	clients   map[string]*entry
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter は1分あたり perMinute 回までを許可する RateLimiter を生成します。
// バーストは perMinute の1/6（最低1）です。
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = DefaultPerMinute
	}
	return &RateLimiter{
		limit:     rate.Limit(float64(perMinute) / 60),
		burst:     max(1, int(math.Ceil(float64(perMinute)/6))),
		clients:   make(map[string]*entry),
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// LoadPerMinuteFromEnv は RATE_LIMIT_PER_MINUTE を読み込みます。不正な値はデフォルト値になります。
func LoadPerMinuteFromEnv() int {
	n, err := strconv.Atoi(os.Getenv("RATE_LIMIT_PER_MINUTE"))
	if err != nil || n <= 0 {
		return DefaultPerMinute
	}
	return n
}

// Allow はキーのリクエストを許可するかどうかを返します。
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= idleTTL {
		for k, e := range rl.clients {
			if now.Sub(e.lastSeen) >= idleTTL {
				delete(rl.clients, k)
			}
		}
		rl.lastSweep = now
	}

	e, ok := rl.clients[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// Len は管理中のクライアント数を返します。
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// Middleware はクライアントIPごとに制限するginミドルウェアを返します。
// 上限を超えた場合は 429 Too Many Requests を返します。
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	retryAfter := strconv.Itoa(max(1, int(math.Ceil(1/float64(rl.limit)))))
	return func(c *gin.Context) {
		if rl.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		slog.Warn("rate limit exceeded", "remote_addr", c.ClientIP(), "path", c.FullPath())
		c.Header("Retry-After", retryAfter)
		c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "rate limit exceeded"})
	}
}
