// Package router は HTTP ルーティングを定義します。
package router

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	cmdkhandler "aurora_backend/internal/feature/cmdk/transport/handler"
	comparehandler "aurora_backend/internal/feature/compare/transport/handler"
	dossierhandler "aurora_backend/internal/feature/dossier/transport/handler"
	memohandler "aurora_backend/internal/feature/memo/transport/handler"
	topicshandler "aurora_backend/internal/feature/topics/transport/handler"
	watchlisthandler "aurora_backend/internal/feature/watchlist/transport/handler"
	healthhandler "aurora_backend/internal/platform/http/handler"
	"aurora_backend/internal/shared/ratelimiter"
)

// Handlers はルータに登録するハンドラの集合です。
type Handlers struct {
	Cmdk      *cmdkhandler.CmdkHandler
	Compare   *comparehandler.CompareHandler
	Dossier   *dossierhandler.DossierHandler
	Memo      *memohandler.MemoHandler
	Watchlist *watchlisthandler.WatchlistHandler
	Topics    *topicshandler.TopicsHandler
	Readiness *healthhandler.Readiness
	// Limiter はジョブ投入とメモ生成に適用されます。nil の場合は制限しません。
	Limiter *ratelimiter.RateLimiter
}

// Options はルータの構築オプションです。
type Options struct {
	// StaticExport が true の場合、動的セグメント（:id など）を含むルートを登録しません。
	StaticExport bool
	// AllowOrigins はCORSで許可するオリジンです。空の場合は全オリジンを許可します。
	AllowOrigins []string
}

// OptionsFromEnv は STATIC_EXPORT と CORS_ALLOW_ORIGINS（カンマ区切り）から Options を作ります。
func OptionsFromEnv() Options {
	opts := Options{StaticExport: StaticExportFromEnv()}
	for _, o := range strings.Split(os.Getenv("CORS_ALLOW_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			opts.AllowOrigins = append(opts.AllowOrigins, o)
		}
	}
	return opts
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	cfg.MaxAge = 12 * time.Hour
	return cfg
}

// StaticExportFromEnv は STATIC_EXPORT=1 の場合に true を返します。
func StaticExportFromEnv() bool {
	return strings.TrimSpace(os.Getenv("STATIC_EXPORT")) == "1"
}

// routes は静的エクスポート時に動的ルートを読み飛ばす登録ヘルパーです。
type routes struct {
	g      gin.IRoutes
	static bool
}

func (r routes) handle(method, path string, h ...gin.HandlerFunc) {
	if r.static && strings.Contains(path, ":") {
		return
	}
	r.g.Handle(method, path, h...)
}

func (r routes) GET(path string, h ...gin.HandlerFunc)    { r.handle(http.MethodGet, path, h...) }
func (r routes) POST(path string, h ...gin.HandlerFunc)   { r.handle(http.MethodPost, path, h...) }
func (r routes) PUT(path string, h ...gin.HandlerFunc)    { r.handle(http.MethodPut, path, h...) }
func (r routes) DELETE(path string, h ...gin.HandlerFunc) { r.handle(http.MethodDelete, path, h...) }

// NewRouter は全APIルートを登録した gin.Engine を返します。
func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.Default()
	// ダッシュボードは別オリジンから呼び出す
	r.Use(cors.New(corsConfig(opts.AllowOrigins)))

	// 導通確認用
	r.GET("/healthz", healthhandler.Health)
	r.HEAD("/healthz", healthhandler.Health)
	r.OPTIONS("/healthz", healthhandler.Health)
	if h.Readiness != nil {
		r.GET("/readyz", h.Readiness.Ready)
	}

	limit := func(next gin.HandlerFunc) []gin.HandlerFunc {
		if h.Limiter == nil {
			return []gin.HandlerFunc{next}
		}
		return []gin.HandlerFunc{h.Limiter.Middleware(), next}
	}

	api := routes{g: r.Group("/api"), static: opts.StaticExport}

	// コマンドパレット
	api.GET("/cmdk/search", h.Cmdk.Search)
	api.POST("/cmdk/command", limit(h.Cmdk.Command)...)
	api.GET("/cmdk/jobs/:id", h.Cmdk.JobStatus)

	// 比較
	api.POST("/compare", h.Compare.Create)
	api.GET("/compare/:id", h.Compare.Get)
	api.POST("/compare/:id/weight", h.Compare.UpdateWeight)
	api.POST("/compare/:id/snapshot", h.Compare.Snapshot)

	// ドシエ（上流プロキシ）
	api.GET("/dossier/:id", h.Dossier.Get)
	api.GET("/dossier/:id/forecast", h.Dossier.Forecast)
	api.GET("/dossier/:id/provenance", h.Dossier.Provenance)
	api.GET("/dossier/:id/repos", h.Dossier.Repos)
	api.GET("/dossier/:id/timeseries", h.Dossier.TimeSeries)

	// メモ
	api.POST("/memo/generate", limit(h.Memo.Generate)...)
	api.GET("/memo/:id", h.Memo.Get)
	api.PUT("/memo/:id", h.Memo.Update)
	api.DELETE("/memo/:id", h.Memo.Delete)
	api.GET("/memo/:id/verify", h.Memo.Verify)

	// ウォッチリスト
	api.GET("/watchlists/:name", h.Watchlist.List)
	api.POST("/watchlists/:name", h.Watchlist.Add)

	// トピック配信
	api.GET("/topics/stream", h.Topics.Stream)
	api.GET("/topics/status", h.Topics.Status)

	return r
}
