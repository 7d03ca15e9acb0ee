// Package dto は比較APIのリクエスト型を定義します。
package dto

// CreateCompareRequest は POST /api/compare のリクエストボディです。
type CreateCompareRequest struct {
	Title   string             `json:"title"`
	Weights map[string]float64 `json:"weights"`
	Metrics map[string]float64 `json:"metrics" binding:"required"`
}

// UpdateWeightRequest は POST /api/compare/:id/weight のリクエストボディです。
type UpdateWeightRequest struct {
	Metric string   `json:"metric" binding:"required"`
	Weight *float64 `json:"weight" binding:"required"`
}
