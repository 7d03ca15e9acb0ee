package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	compareadapters "aurora_backend/internal/feature/compare/adapters"
	compareusecase "aurora_backend/internal/feature/compare/usecase"
)

// CompareSessionTTL はRedis上の比較セッションの保持期間です。
const CompareSessionTTL = 24 * time.Hour

// NewCompareStore creates a SessionStore implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to process memory.
func NewCompareStore(rdb *redis.Client) compareusecase.SessionStore {
	if rdb != nil {
		return compareadapters.NewRedisSessionStore(rdb, "compare", CompareSessionTTL)
	}
	return compareadapters.NewMemorySessionStore()
}
