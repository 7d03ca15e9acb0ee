package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"aurora_backend/internal/app/di"
	"aurora_backend/internal/app/router"
	cmdkadapters "aurora_backend/internal/feature/cmdk/adapters"
	cmdkhandler "aurora_backend/internal/feature/cmdk/transport/handler"
	cmdkusecase "aurora_backend/internal/feature/cmdk/usecase"
	comparehandler "aurora_backend/internal/feature/compare/transport/handler"
	compareusecase "aurora_backend/internal/feature/compare/usecase"
	dossierhandler "aurora_backend/internal/feature/dossier/transport/handler"
	memoadapters "aurora_backend/internal/feature/memo/adapters"
	memohandler "aurora_backend/internal/feature/memo/transport/handler"
	topicshandler "aurora_backend/internal/feature/topics/transport/handler"
	watchlistadapters "aurora_backend/internal/feature/watchlist/adapters"
	watchlistentity "aurora_backend/internal/feature/watchlist/domain/entity"
	watchlisthandler "aurora_backend/internal/feature/watchlist/transport/handler"
	watchlistusecase "aurora_backend/internal/feature/watchlist/usecase"
	"aurora_backend/internal/platform/db"
	healthhandler "aurora_backend/internal/platform/http/handler"
	platformredis "aurora_backend/internal/platform/redis"
	"aurora_backend/internal/platform/stream"
	"aurora_backend/internal/platform/upstream"
	"aurora_backend/internal/shared/ratelimiter"
)

const (
	jobRetention    = 10 * time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis（任意）
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(ctx, platformredis.LoadConfig()); err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// db
	gdb, err := db.Open(db.LoadConfigFromEnv(), &memoadapters.MemoModel{}, &watchlistentity.Entry{})
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// 上流API（Redisキャッシュでラップ）
	upCfg := upstream.LoadConfig()
	if !upCfg.Configured {
		slog.Warn("NEXT_PUBLIC_API_URL is not set; search uses mock results", "base_url", upCfg.BaseURL)
	}
	upClient := di.NewUpstreamClient(upCfg)
	cached := di.NewCachedUpstream(rdb, upClient)

	// Usecase
	searchUC := cmdkusecase.NewSearchUsecase(cmdkadapters.NewUpstreamSearch(cached, upClient.Configured()))
	commandUC := cmdkusecase.NewCommandUsecase(cmdkadapters.NewMemoryJobStore(jobRetention))
	compareUC := compareusecase.NewCompareUsecase(di.NewCompareStore(rdb))
	dossierUC := di.NewDossierUsecase(cached)
	memoUC := di.NewMemoUsecase(ctx, gdb, cached)
	watchlistUC := watchlistusecase.NewWatchlistUsecase(watchlistadapters.NewWatchlistRepository(gdb))

	// トピック配信
	hub := stream.NewHub()
	defer hub.Close()
	var relay topicshandler.UpstreamStatus
	if wsURL := os.Getenv("NEXT_PUBLIC_WS_URL"); wsURL != "" {
		r := stream.NewRelay(wsURL, hub, stream.NewBackoff())
		relay = r
		go func() {
			if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("topic relay stopped", "error", err)
			}
		}()
	}

	// Handler
	handlers := router.Handlers{
		Cmdk:      cmdkhandler.NewCmdkHandler(searchUC, commandUC),
		Compare:   comparehandler.NewCompareHandler(compareUC),
		Dossier:   dossierhandler.NewDossierHandler(dossierUC),
		Memo:      memohandler.NewMemoHandler(memoUC),
		Watchlist: watchlisthandler.NewWatchlistHandler(watchlistUC),
		Topics:    topicshandler.NewTopicsHandler(hub, relay),
		Readiness: healthhandler.NewReadiness(2*time.Second, readinessChecks(rdb, gdb)),
		Limiter:   ratelimiter.NewRateLimiter(ratelimiter.LoadPerMinuteFromEnv()),
	}

	// ルータ生成
	engine := router.NewRouter(handlers, router.OptionsFromEnv())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

// readinessChecks は /readyz で確認する依存先を返します。
func readinessChecks(rdb *redisv9.Client, gdb *gorm.DB) map[string]healthhandler.CheckFunc {
	checks := map[string]healthhandler.CheckFunc{
		"db": func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}
	return checks
}
