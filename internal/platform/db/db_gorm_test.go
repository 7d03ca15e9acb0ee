package db

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestBuildDSN はドライバーごとの接続文字列を検証します。
func TestBuildDSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"postgres uses DATABASE_URL as is", Config{Driver: DriverPostgres, DatabaseURL: "postgres://u:p@db:5432/aurora?sslmode=disable"}, "postgres://u:p@db:5432/aurora?sslmode=disable"},
		{"sqlite file gets busy timeout", Config{Driver: DriverSQLite, SQLitePath: "./aurora.db"}, "./aurora.db?_busy_timeout=5000"},
		{"sqlite memory unchanged", Config{Driver: DriverSQLite, SQLitePath: ":memory:"}, ":memory:"},
		{"sqlite with explicit params unchanged", Config{Driver: DriverSQLite, SQLitePath: "file:x.db?cache=shared"}, "file:x.db?cache=shared"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, BuildDSN(tt.cfg))
		})
	}
}

// TestLoadConfigFromEnv は環境変数からデータベース設定が正しく読み込まれることを検証します。
func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("RUN_MIGRATIONS", "")

	cfg := LoadConfigFromEnv()
	assert.Equal(t, DriverSQLite, cfg.Driver)
	assert.Equal(t, DefaultSQLitePath, cfg.SQLitePath)
	assert.False(t, cfg.RunMigrations)

	t.Setenv("DATABASE_URL", " postgres://localhost/aurora ")
	t.Setenv("RUN_MIGRATIONS", "true")
	cfg = LoadConfigFromEnv()
	assert.Equal(t, DriverPostgres, cfg.Driver)
	assert.Equal(t, "postgres://localhost/aurora", cfg.DatabaseURL)
	assert.True(t, cfg.RunMigrations)
}

// TestConnectWithRetry_SuccessOnFirstTry は初回接続成功時にリトライせずDBを返すことを検証します。
func TestConnectWithRetry_SuccessOnFirstTry(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	db, err := ConnectWithRetry("test-dsn", 5*time.Second, func(dsn string) (*gorm.DB, error) {
		return mockDB, nil
	})
	require.NoError(t, err)
	assert.Same(t, mockDB, db)
}

// TestConnectWithRetry_RetriesOnFailure は接続失敗時にリトライして最終的に成功することを検証します。
func TestConnectWithRetry_RetriesOnFailure(t *testing.T) {
	// retryInterval を書き換えるため並列実行しない
	orig := retryInterval
	retryInterval = 10 * time.Millisecond
	t.Cleanup(func() { retryInterval = orig })

	mockDB := &gorm.DB{}
	attempts := 0
	db, err := ConnectWithRetry("test-dsn", time.Second, func(dsn string) (*gorm.DB, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("connection refused")
		}
		return mockDB, nil
	})
	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 3, attempts)
}

// TestConnectWithRetry_TimeoutAfterRetries はタイムアウト後にエラーが返されることを検証します。
func TestConnectWithRetry_TimeoutAfterRetries(t *testing.T) {
	attempts := 0
	_, err := ConnectWithRetry("test-dsn", 100*time.Millisecond, func(dsn string) (*gorm.DB, error) {
		attempts++
		return nil, errors.New("connection refused")
	})
	assert.ErrorContains(t, err, "connection refused")
	assert.Positive(t, attempts)
}

type testModel struct {
	ID   uint
	Name string
}

// TestOpen_SQLiteMemory はSQLiteで接続とマイグレーションが行われることを検証します。
func TestOpen_SQLiteMemory(t *testing.T) {
	db, err := Open(Config{Driver: DriverSQLite, SQLitePath: ":memory:"}, &testModel{})
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable(&testModel{}))
}
