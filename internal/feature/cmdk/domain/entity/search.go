// Package entity はコマンドパレット（cmdk）のドメイン型を定義します。
package entity

// 検索結果の種別
const (
	ResultCompany   = "company"
	ResultTopic     = "topic"
	ResultWatchlist = "watchlist"
	ResultCommand   = "command"
)

// SearchResult はパレットに表示する1件の候補です。
type SearchResult struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle,omitempty"`
	Score        *float64 `json:"score,omitempty"`
	Actions      []string `json:"actions"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
}

// SearchResponse は検索APIのレスポンスです。
type SearchResponse struct {
	Query       string         `json:"query"`
	Results     []SearchResult `json:"results"`
	Suggestions []string       `json:"suggestions"`
	TookMS      int64          `json:"took_ms"`
}
