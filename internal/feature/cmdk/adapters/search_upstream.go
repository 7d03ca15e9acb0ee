package adapters

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"aurora_backend/internal/feature/cmdk/domain/entity"
	"aurora_backend/internal/feature/cmdk/usecase"
)

// JSONGetter は上流へのGETリクエストを表します（platform/upstream.Client が満たす）。
type JSONGetter interface {
	GetJSON(ctx context.Context, path string, query url.Values, out any) error
}

// UpstreamSearch は FastAPI の /search を呼び出す SearchProvider 実装です。
type UpstreamSearch struct {
	client     JSONGetter
	configured bool
}

var _ usecase.SearchProvider = (*UpstreamSearch)(nil)

// NewUpstreamSearch は UpstreamSearch を生成します。
// configured が false の場合は上流を呼び出さずに ErrUpstreamNotConfigured を返します。
func NewUpstreamSearch(client JSONGetter, configured bool) *UpstreamSearch {
	return &UpstreamSearch{client: client, configured: configured}
}

// Search は GET /search?q&limit&scope を実行します。
func (s *UpstreamSearch) Search(ctx context.Context, q string, limit int, scope string) (*entity.SearchResponse, error) {
	if !s.configured || s.client == nil {
		return nil, usecase.ErrUpstreamNotConfigured
	}
	query := url.Values{}
	query.Set("q", q)
	query.Set("limit", strconv.Itoa(limit))
	if scope != "" {
		query.Set("scope", scope)
	}

	var resp entity.SearchResponse
	if err := s.client.GetJSON(ctx, "/search", query, &resp); err != nil {
		return nil, fmt.Errorf("upstream search: %w", err)
	}
	return &resp, nil
}
