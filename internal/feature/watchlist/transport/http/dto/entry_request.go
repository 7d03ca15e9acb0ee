// Package dto はwatchlist APIのリクエスト型を定義します。
package dto

// AddEntryRequest は POST /api/watchlists/:name のリクエストボディです。
type AddEntryRequest struct {
	CompanyID string `json:"company_id" binding:"required"`
	Name      string `json:"name"`
}
