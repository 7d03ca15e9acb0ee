package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"aurora_backend/internal/feature/cmdk/domain/entity"
)

const (
	// DefaultLimit は limit 未指定時の件数です。
	DefaultLimit = 10
	// MaxLimit は limit の上限です。
	MaxLimit = 50
)

// SearchProvider は上流の検索APIを表します。
// 未設定の場合は ErrUpstreamNotConfigured を返します。
type SearchProvider interface {
	Search(ctx context.Context, q string, limit int, scope string) (*entity.SearchResponse, error)
}

// SearchUsecase はパレット検索を処理します。
type SearchUsecase struct {
	provider SearchProvider
	now      func() time.Time
}

// NewSearchUsecase は SearchUsecase を生成します。provider は nil でもよく、その場合は常にモック結果を返します。
func NewSearchUsecase(provider SearchProvider) *SearchUsecase {
	return &SearchUsecase{provider: provider, now: time.Now}
}

// ClampLimit は limit を 1〜MaxLimit に丸めます。0以下はデフォルト値になります。
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// Search は上流に検索を委譲し、失敗時は固定のモック一覧で応答します。
func (uc *SearchUsecase) Search(ctx context.Context, q string, limit int, scope string) (*entity.SearchResponse, error) {
	start := uc.now()
	limit = ClampLimit(limit)

	if uc.provider != nil {
		resp, err := uc.provider.Search(ctx, q, limit, scope)
		if err == nil {
			if resp.Results == nil {
				resp.Results = []entity.SearchResult{}
			}
			if resp.Suggestions == nil {
				resp.Suggestions = []string{}
			}
			if len(resp.Results) > limit {
				resp.Results = resp.Results[:limit]
			}
			resp.Query = q
			return resp, nil
		}
		if !errors.Is(err, ErrUpstreamNotConfigured) {
			slog.Warn("cmdk search upstream failed, using mock results", "q", q, "error", err)
		}
	}

	parsed := ParseCommand(q)
	return &entity.SearchResponse{
		Query:       q,
		Results:     filterMock(parsed, limit, scope),
		Suggestions: suggestions(parsed),
		TookMS:      uc.now().Sub(start).Milliseconds(),
	}, nil
}

// scopeType は種別に対応する検索結果タイプを返します。空文字は全件です。
func scopeType(parsed entity.ParsedCommand, scope string) string {
	switch strings.ToLower(scope) {
	case "", "all":
	case "companies", "company":
		return entity.ResultCompany
	case "topics", "topic":
		return entity.ResultTopic
	case "watchlists", "watchlist":
		return entity.ResultWatchlist
	case "commands", "command":
		return entity.ResultCommand
	default:
		return scope
	}
	switch parsed.Kind {
	case entity.KindCmd:
		return entity.ResultCommand
	case entity.KindWatch:
		return entity.ResultWatchlist
	case entity.KindTopic:
		return entity.ResultTopic
	}
	return ""
}

func filterMock(parsed entity.ParsedCommand, limit int, scope string) []entity.SearchResult {
	term := strings.ToLower(parsed.Term())
	typ := scopeType(parsed, scope)

	out := make([]entity.SearchResult, 0, limit)
	for _, r := range mockResults {
		if len(out) == limit {
			break
		}
		if typ != "" && r.Type != typ {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(r.ID), term) &&
			!strings.Contains(strings.ToLower(r.Title), term) &&
			!strings.Contains(strings.ToLower(r.Subtitle), term) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func suggestions(parsed entity.ParsedCommand) []string {
	switch parsed.Kind {
	case entity.KindCmd:
		out := []string{}
		for _, c := range knownCommands {
			if strings.HasPrefix(c, strings.ToLower(parsed.Name)) {
				out = append(out, ">"+c)
			}
		}
		return out
	case entity.KindWatch:
		return []string{"@" + parsed.List, ">watch " + parsed.List}
	case entity.KindTopic:
		return []string{"#" + parsed.Topic, ">generate memo #" + parsed.Topic}
	}
	if parsed.Q == "" {
		return []string{">generate memo", "@watchlist", "#topic"}
	}
	return []string{">generate memo " + parsed.Q, ">compare " + parsed.Q, "@" + parsed.Q, "#" + parsed.Q}
}
