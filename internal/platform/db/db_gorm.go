// Package db はgormによるデータベース接続を提供します。
// DATABASE_URL が設定されていればPostgreSQL、なければSQLiteファイルを使います。
package db

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	// DefaultSQLitePath は SQLITE_PATH 未設定時のファイルパスです。
	DefaultSQLitePath = "./aurora.db"
	// DefaultConnectTimeout は接続リトライを諦めるまでの時間です。
	DefaultConnectTimeout = 60 * time.Second
)

// retryInterval は接続リトライの間隔です。
var retryInterval = 3 * time.Second

// Config はデータベース接続設定です。
type Config struct {
	Driver        string
	DatabaseURL   string
	SQLitePath    string
	RunMigrations bool
}

// LoadConfigFromEnv は環境変数からConfigを読み込みます。
func LoadConfigFromEnv() Config {
	cfg := Config{
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SQLitePath:    os.Getenv("SQLITE_PATH"),
		RunMigrations: os.Getenv("RUN_MIGRATIONS") == "true",
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = DefaultSQLitePath
	}
	if cfg.DatabaseURL != "" {
		cfg.Driver = DriverPostgres
	} else {
		cfg.Driver = DriverSQLite
	}
	return cfg
}

// BuildDSN はドライバーに応じた接続文字列を返します。
func BuildDSN(cfg Config) string {
	if cfg.Driver == DriverPostgres {
		return cfg.DatabaseURL
	}
	if cfg.SQLitePath == ":memory:" || strings.Contains(cfg.SQLitePath, "?") {
		return cfg.SQLitePath
	}
	return cfg.SQLitePath + "?_busy_timeout=5000"
}

// Opener はDSNからgorm.DBを開く関数です。テストで差し替えられます。
type Opener func(dsn string) (*gorm.DB, error)

// OpenerFor はドライバーに対応するOpenerを返します。
func OpenerFor(driver string) Opener {
	if driver == DriverPostgres {
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), &gorm.Config{})
		}
	}
	return func(dsn string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}

// ConnectWithRetry は timeout を過ぎるまで接続を再試行します。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open は設定に従って接続し、必要ならマイグレーションを実行します。
func Open(cfg Config, models ...any) (*gorm.DB, error) {
	db, err := ConnectWithRetry(BuildDSN(cfg), DefaultConnectTimeout, OpenerFor(cfg.Driver))
	if err != nil {
		return nil, err
	}
	slog.Info("DB connection successful", "driver", cfg.Driver)

	// SQLiteはスキーマがないと何もできないため、常にマイグレーションする
	if cfg.RunMigrations || cfg.Driver == DriverSQLite {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return db, nil
}
