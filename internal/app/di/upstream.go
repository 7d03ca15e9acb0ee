// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	dossierusecase "aurora_backend/internal/feature/dossier/usecase"
	"aurora_backend/internal/platform/cache"
	platformhttp "aurora_backend/internal/platform/http"
	"aurora_backend/internal/platform/upstream"
)

// UpstreamCacheTTL はダッシュボード向け上流レスポンスのキャッシュ期間です。
const UpstreamCacheTTL = 60 * time.Second

// NewUpstreamClient creates the FastAPI client with a tuned HTTP transport.
func NewUpstreamClient(cfg upstream.Config) *upstream.Client {
	return upstream.NewClient(cfg, platformhttp.NewHTTPClient(cfg.Timeout))
}

// NewCachedUpstream wraps the client with the Redis read-through cache.
// rdb may be nil, in which case every call goes straight to the client.
func NewCachedUpstream(rdb *redis.Client, client *upstream.Client) *cache.CachingUpstream {
	return cache.NewCachingUpstream(rdb, UpstreamCacheTTL, client, "upstream")
}

// NewDossierUsecase builds the dossier usecase on top of the cached upstream.
func NewDossierUsecase(cached *cache.CachingUpstream) *dossierusecase.DossierUsecase {
	return dossierusecase.NewDossierUsecase(cached, cached)
}
