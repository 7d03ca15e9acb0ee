// Package usecase implements the business logic for watchlists.
package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"aurora_backend/internal/feature/watchlist/domain/entity"
)

var (
	// ErrInvalidListName はリスト名が不正な場合のエラーです。
	ErrInvalidListName = errors.New("invalid watchlist name")
	// ErrInvalidCompanyID は company_id が不正な場合のエラーです。
	ErrInvalidCompanyID = errors.New("invalid company id")
	// ErrDuplicateEntry は同じ企業が既にリストにある場合のエラーです。
	ErrDuplicateEntry = errors.New("company already on watchlist")
)

var (
	listNamePattern  = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)
	companyIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)
)

// WatchlistRepository abstracts the persistence layer for watchlist entries.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type WatchlistRepository interface {
	ListActive(ctx context.Context, list string) ([]entity.Entry, error)
	// Add は末尾（最大のsort_key + 1）に追加します。重複時は ErrDuplicateEntry を返します。
	Add(ctx context.Context, e *entity.Entry) error
}

// WatchlistUsecase provides business logic for watchlist operations.
type WatchlistUsecase struct {
	repo WatchlistRepository
}

// NewWatchlistUsecase creates a new WatchlistUsecase with the given repository.
func NewWatchlistUsecase(r WatchlistRepository) *WatchlistUsecase {
	return &WatchlistUsecase{repo: r}
}

// normalizeList はリスト名を小文字化し、先頭の "@" を取り除きます。
func normalizeList(name string) (string, error) {
	name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "@"))
	if !listNamePattern.MatchString(name) {
		return "", ErrInvalidListName
	}
	return name, nil
}

// List はリストの有効なエントリをsort_key順に返します。
func (u *WatchlistUsecase) List(ctx context.Context, name string) ([]entity.Entry, error) {
	list, err := normalizeList(name)
	if err != nil {
		return nil, err
	}
	return u.repo.ListActive(ctx, list)
}

// Add は企業をリストに追加します。表示名が空なら company_id を使います。
func (u *WatchlistUsecase) Add(ctx context.Context, name, companyID, displayName string) (*entity.Entry, error) {
	list, err := normalizeList(name)
	if err != nil {
		return nil, err
	}
	companyID = strings.TrimSpace(companyID)
	if !companyIDPattern.MatchString(companyID) {
		return nil, ErrInvalidCompanyID
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = companyID
	}

	e := &entity.Entry{List: list, CompanyID: companyID, Name: displayName, IsActive: true}
	if err := u.repo.Add(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
