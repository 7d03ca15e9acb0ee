// Package entity は投資メモのドメイン型を定義します。
package entity

import "time"

const (
	SourceUpstream = "upstream"
	SourceFallback = "fallback"
)

// Source はクレームの根拠となる資料です。
type Source struct {
	Title       string `json:"title"`
	URL         string `json:"url,omitempty"`
	RetrievedAt string `json:"retrieved_at,omitempty"`
}

// Claim はメモを構成する主張の1つです。
type Claim struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	Confidence float64  `json:"confidence"`
	Sources    []Source `json:"sources"`
}

// TraceStep は来歴の取得経路の1ステップです。
type TraceStep struct {
	Step   string `json:"step"`
	Target string `json:"target"`
	Status string `json:"status"`
}

// Provenance はメモのデータ来歴です。
// Signature は署名鍵が無い場合 "unsigned" になります。
type Provenance struct {
	SnapshotHash   string      `json:"snapshot_hash"`
	RetrievalTrace []TraceStep `json:"retrieval_trace"`
	Signer         string      `json:"signer"`
	Signature      string      `json:"signature"`
	CreatedAt      time.Time   `json:"created_at"`
}

// Memo は企業に関する投資メモです。
type Memo struct {
	ID         string     `json:"id"`
	CompanyID  string     `json:"company_id"`
	Title      string     `json:"title"`
	Summary    string     `json:"summary"`
	Claims     []Claim    `json:"claims"`
	Provenance Provenance `json:"provenance"`
	Source     string     `json:"source"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Insight は上流 /insights/{company_id} が返す1件の洞察です。
type Insight struct {
	Text       string   `json:"text"`
	Statement  string   `json:"statement"`
	Title      string   `json:"title"`
	Confidence *float64 `json:"confidence"`
	Sources    []Source `json:"sources"`
}

// Body は洞察の本文を返します。text / statement / title の順に採用します。
func (i Insight) Body() string {
	switch {
	case i.Text != "":
		return i.Text
	case i.Statement != "":
		return i.Statement
	default:
		return i.Title
	}
}
