// Package dto はcmdkのHTTPリクエスト/レスポンス型を定義します。
package dto

// SearchParams は GET /api/cmdk/search のクエリパラメータです。
type SearchParams struct {
	Q     *string `form:"q" json:"q,omitempty"`
	Limit *int    `form:"limit" json:"limit,omitempty"`
	Scope *string `form:"scope" json:"scope,omitempty"`
}

// Query はポインタを展開した検索語を返します。
func (p SearchParams) Query() string {
	if p.Q == nil {
		return ""
	}
	return *p.Q
}

// LimitOrZero は limit 未指定時に0を返します。
func (p SearchParams) LimitOrZero() int {
	if p.Limit == nil {
		return 0
	}
	return *p.Limit
}

// ScopeOrEmpty は scope 未指定時に空文字を返します。
func (p SearchParams) ScopeOrEmpty() string {
	if p.Scope == nil {
		return ""
	}
	return *p.Scope
}
