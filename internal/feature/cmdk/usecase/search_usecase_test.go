package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurora_backend/internal/feature/cmdk/domain/entity"
)

// mockSearchProvider はSearchProviderインターフェースのモック実装です。
type mockSearchProvider struct {
	SearchFunc func(ctx context.Context, q string, limit int, scope string) (*entity.SearchResponse, error)
	gotLimit   int
}

func (m *mockSearchProvider) Search(ctx context.Context, q string, limit int, scope string) (*entity.SearchResponse, error) {
	m.gotLimit = limit
	return m.SearchFunc(ctx, q, limit, scope)
}

func TestClampLimit(t *testing.T) {
	t.Parallel()
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, DefaultLimit, ClampLimit(-5))
	assert.Equal(t, 1, ClampLimit(1))
	assert.Equal(t, MaxLimit, ClampLimit(500))
}

func TestSearchUsecase_Upstream(t *testing.T) {
	t.Parallel()

	p := &mockSearchProvider{SearchFunc: func(ctx context.Context, q string, limit int, scope string) (*entity.SearchResponse, error) {
		return &entity.SearchResponse{
			Results: []entity.SearchResult{
				{ID: "x", Type: "company", Title: "X", Actions: []string{"open"}},
				{ID: "y", Type: "company", Title: "Y", Actions: []string{"open"}},
			},
			TookMS: 7,
		}, nil
	}}
	uc := NewSearchUsecase(p)

	resp, err := uc.Search(context.Background(), "x", 1, "")
	require.NoError(t, err)
	assert.Equal(t, 1, p.gotLimit)
	assert.Equal(t, "x", resp.Query)
	assert.Len(t, resp.Results, 1)
	assert.NotNil(t, resp.Suggestions)
	assert.EqualValues(t, 7, resp.TookMS)
}

func TestSearchUsecase_Fallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		provider SearchProvider
		q        string
		limit    int
		scope    string
		check    func(t *testing.T, resp *entity.SearchResponse)
	}{
		{
			name:     "not configured returns mock list capped by default limit",
			provider: &mockSearchProvider{SearchFunc: func(context.Context, string, int, string) (*entity.SearchResponse, error) { return nil, ErrUpstreamNotConfigured }},
			check: func(t *testing.T, resp *entity.SearchResponse) {
				assert.Len(t, resp.Results, DefaultLimit)
				assert.Equal(t, []string{">generate memo", "@watchlist", "#topic"}, resp.Suggestions)
			},
		},
		{
			name:     "upstream failure filters by query",
			provider: &mockSearchProvider{SearchFunc: func(context.Context, string, int, string) (*entity.SearchResponse, error) { return nil, errors.New("boom") }},
			q:        "vector",
			limit:    50,
			check: func(t *testing.T, resp *entity.SearchResponse) {
				require.NotEmpty(t, resp.Results)
				for _, r := range resp.Results {
					assert.Contains(t, []string{"pinecone", "weaviate", "qdrant", "topic-vector"}, r.ID)
				}
				assert.Contains(t, resp.Suggestions, ">generate memo vector")
			},
		},
		{
			name:  "nil provider, watch prefix narrows to watchlists",
			q:     "@openai",
			limit: 50,
			check: func(t *testing.T, resp *entity.SearchResponse) {
				require.Len(t, resp.Results, 1)
				assert.Equal(t, "watch-openai", resp.Results[0].ID)
			},
		},
		{
			name:  "cmd prefix suggests matching commands",
			q:     ">gen",
			limit: 50,
			check: func(t *testing.T, resp *entity.SearchResponse) {
				assert.Equal(t, []string{">generate"}, resp.Suggestions)
				for _, r := range resp.Results {
					assert.Equal(t, entity.ResultCommand, r.Type)
				}
			},
		},
		{
			name:  "scope restricts result type",
			limit: 50,
			scope: "topics",
			check: func(t *testing.T, resp *entity.SearchResponse) {
				assert.Len(t, resp.Results, 3)
			},
		},
		{
			name:  "limit caps results",
			limit: 2,
			check: func(t *testing.T, resp *entity.SearchResponse) {
				assert.Len(t, resp.Results, 2)
			},
		},
		{
			name:  "no match yields empty non-nil results",
			q:     "zzzz-nothing",
			check: func(t *testing.T, resp *entity.SearchResponse) {
				assert.NotNil(t, resp.Results)
				assert.Empty(t, resp.Results)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			uc := NewSearchUsecase(tt.provider)
			resp, err := uc.Search(context.Background(), tt.q, tt.limit, tt.scope)
			require.NoError(t, err)
			assert.Equal(t, tt.q, resp.Query)
			tt.check(t, resp)
		})
	}
}
