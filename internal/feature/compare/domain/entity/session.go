// Package entity は重み付き比較（comparator）のドメイン型を定義します。
package entity

import (
	"maps"
	"slices"
	"time"
)

// Snapshot はある時点の比較結果を固定したものです。
type Snapshot struct {
	ID        string             `json:"id"`
	Score     float64            `json:"score"`
	Weights   map[string]float64 `json:"weights"`
	SVG       string             `json:"svg"`
	CreatedAt time.Time          `json:"createdAt"`
}

// Session は比較セッションです。weights と metrics はキー（指標名）で対応します。
type Session struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Weights   map[string]float64 `json:"weights"`
	Metrics   map[string]float64 `json:"metrics"`
	Score     float64            `json:"score"`
	Snapshots []Snapshot         `json:"snapshots"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// Clone はマップとスライスを複製したコピーを返します。
// ストアの内部状態を呼び出し側から切り離すために使います。
func (s *Session) Clone() *Session {
	c := *s
	c.Weights = maps.Clone(s.Weights)
	c.Metrics = maps.Clone(s.Metrics)
	c.Snapshots = slices.Clone(s.Snapshots)
	for i := range c.Snapshots {
		c.Snapshots[i].Weights = maps.Clone(c.Snapshots[i].Weights)
	}
	return &c
}
