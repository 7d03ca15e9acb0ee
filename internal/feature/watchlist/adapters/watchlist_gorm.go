// Package adapters はwatchlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"aurora_backend/internal/feature/watchlist/domain/entity"
	"aurora_backend/internal/feature/watchlist/usecase"
)

// pgUniqueViolation はPostgreSQLの一意制約違反のSQLSTATEです。
const pgUniqueViolation = "23505"

// maxAddAttempts は sort_key の採番が並行追加と衝突した場合の試行回数の上限です。
const maxAddAttempts = 5

// ErrSortKeyConflict は再試行しても sort_key が衝突し続けた場合のエラーです。
var ErrSortKeyConflict = errors.New("watchlist sort key conflict")

// watchlistGorm はWatchlistRepositoryインターフェースのgorm実装です。
type watchlistGorm struct {
	db *gorm.DB
	// nextSortKey はリストの次の sort_key を返します。
	nextSortKey func(tx *gorm.DB, list string) (int, error)
}

var _ usecase.WatchlistRepository = (*watchlistGorm)(nil)

// NewWatchlistRepository は指定されたDB接続でリポジトリの新しいインスタンスを生成します。
func NewWatchlistRepository(db *gorm.DB) *watchlistGorm {
	return &watchlistGorm{db: db, nextSortKey: maxSortKeyPlusOne}
}

func maxSortKeyPlusOne(tx *gorm.DB, list string) (int, error) {
	var maxKey int
	if err := tx.Model(&entity.Entry{}).
		Where("list = ?", list).
		Select("COALESCE(MAX(sort_key), 0)").
		Scan(&maxKey).Error; err != nil {
		return 0, fmt.Errorf("failed to read sort key: %w", err)
	}
	return maxKey + 1, nil
}

// ListActive はsort_key順にリストの有効なエントリを返します。
func (r *watchlistGorm) ListActive(ctx context.Context, list string) ([]entity.Entry, error) {
	entries := []entity.Entry{}
	if err := r.db.WithContext(ctx).
		Where("list = ? AND is_active = ?", list, true).
		Order("sort_key ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Add はsort_keyを採番してエントリを追加します。
// (list, sort_key) は一意のため、並行した追加が同じ値を採番した場合は片方が失敗し、
// 採番からやり直します。(list, company_id) の重複は ErrDuplicateEntry になります。
func (r *watchlistGorm) Add(ctx context.Context, e *entity.Entry) error {
	db := r.db.WithContext(ctx)
	for range maxAddAttempts {
		err := db.Transaction(func(tx *gorm.DB) error {
			key, err := r.nextSortKey(tx, e.List)
			if err != nil {
				return err
			}
			e.SortKey = key
			return tx.Create(e).Error
		})
		if err == nil {
			return nil
		}
		if !isDuplicateKey(err) {
			return err
		}
		// 失敗したトランザクションの外で、どちらの一意制約に当たったかを確認する
		exists, lookupErr := r.exists(ctx, e.List, e.CompanyID)
		if lookupErr != nil {
			return lookupErr
		}
		if exists {
			return usecase.ErrDuplicateEntry
		}
		e.ID = 0
	}
	return ErrSortKeyConflict
}

func (r *watchlistGorm) exists(ctx context.Context, list, companyID string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&entity.Entry{}).
		Where("list = ? AND company_id = ?", list, companyID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// isDuplicateKey は一意制約違反かどうかを判定します。
// PostgreSQLはSQLSTATE、SQLiteはエラーメッセージで判定します。
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
