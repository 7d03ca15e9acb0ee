package tui

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurora_backend/internal/feature/cmdk/domain/entity"
	cmdkusecase "aurora_backend/internal/feature/cmdk/usecase"
	"aurora_backend/internal/platform/upstream"
)

type mockSearcher struct {
	SearchFunc func(ctx context.Context, q string, limit int) (*entity.SearchResponse, error)
}

func (m *mockSearcher) Search(ctx context.Context, q string, limit int) (*entity.SearchResponse, error) {
	return m.SearchFunc(ctx, q, limit)
}

func sampleResponse(titles ...string) *entity.SearchResponse {
	resp := &entity.SearchResponse{TookMS: 3}
	for _, t := range titles {
		resp.Results = append(resp.Results, entity.SearchResult{ID: t, Type: entity.ResultCompany, Title: t})
	}
	return resp
}

func TestModel_ResultsAndSelect(t *testing.T) {
	m := NewModel(context.Background(), &mockSearcher{})

	next, _ := m.Update(resultsMsg{seq: 0, resp: sampleResponse("NVIDIA", "AMD")})
	m = next.(Model)
	assert.Len(t, m.list.Items(), 2)
	assert.Contains(t, m.View(), "NVIDIA")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	require.NotNil(t, m.Selected())
	assert.Equal(t, "AMD", m.Selected().Title)
}

func TestModel_IgnoresStaleResults(t *testing.T) {
	m := NewModel(context.Background(), &mockSearcher{})

	// 入力で seq が進むので、seq=0 の結果は破棄される
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.seq)

	next, _ = m.Update(resultsMsg{seq: 0, resp: sampleResponse("stale")})
	m = next.(Model)
	assert.Empty(t, m.list.Items())

	next, _ = m.Update(debounceMsg{seq: 0, query: "old"})
	m = next.(Model)
	assert.Empty(t, m.list.Items())
}

func TestModel_DebounceTriggersSearch(t *testing.T) {
	var gotQ string
	var gotLimit int
	s := &mockSearcher{SearchFunc: func(ctx context.Context, q string, limit int) (*entity.SearchResponse, error) {
		gotQ, gotLimit = q, limit
		return sampleResponse("Pinecone"), nil
	}}
	m := NewModel(context.Background(), s)
	m.seq = 4

	_, cmd := m.Update(debounceMsg{seq: 4, query: "vector"})
	require.NotNil(t, cmd)
	msg := cmd()

	res, ok := msg.(resultsMsg)
	require.True(t, ok)
	assert.Equal(t, 4, res.seq)
	assert.Equal(t, "vector", gotQ)
	assert.Equal(t, searchLimit, gotLimit)
}

func TestModel_ShowsSearchError(t *testing.T) {
	m := NewModel(context.Background(), &mockSearcher{})
	next, _ := m.Update(resultsMsg{seq: 0, err: errors.New("connection refused")})
	m = next.(Model)
	assert.Contains(t, m.View(), "connection refused")
}

func TestModel_EscQuitsWithoutSelection(t *testing.T) {
	m := NewModel(context.Background(), &mockSearcher{})
	next, _ := m.Update(resultsMsg{seq: 0, resp: sampleResponse("NVIDIA")})
	next, cmd := next.(Model).Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Nil(t, next.(Model).Selected())
	assert.Empty(t, next.(Model).View())
}

func TestAPISearcher(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cmdk/search", r.URL.Path)
		got = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(sampleResponse("NVIDIA"))
	}))
	defer srv.Close()

	client := upstream.NewClient(upstream.Config{BaseURL: srv.URL, Configured: true, Timeout: upstream.DefaultTimeout}, srv.Client())
	resp, err := NewAPISearcher(client).Search(context.Background(), "nv", 5)

	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "NVIDIA", resp.Results[0].Title)
	assert.Equal(t, "nv", got.Get("q"))
	assert.Equal(t, "5", got.Get("limit"))
}

func TestPlaceholder_MatchesCommandSyntax(t *testing.T) {
	m := NewModel(context.Background(), &mockSearcher{})
	assert.Equal(t, Placeholder, m.input.Placeholder)

	tests := []struct {
		hint string
		want entity.CommandKind
	}{
		{"@lists", entity.KindWatch},
		{"#topics", entity.KindTopic},
		{">commands", entity.KindCmd},
	}
	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			assert.Contains(t, Placeholder, tt.hint)
			assert.Equal(t, tt.want, cmdkusecase.ParseCommand(tt.hint).Kind)
		})
	}
}
