// Package dto はメモAPIのリクエスト型を定義します。
package dto

import "aurora_backend/internal/feature/memo/domain/entity"

// GenerateMemoRequest は POST /api/memo/generate のリクエストボディです。
type GenerateMemoRequest struct {
	CompanyID string `json:"company_id" binding:"required"`
	Topic     string `json:"topic"`
}

// UpdateMemoRequest は PUT /api/memo/:id のリクエストボディです。
type UpdateMemoRequest struct {
	Title   *string        `json:"title"`
	Summary *string        `json:"summary"`
	Claims  []entity.Claim `json:"claims"`
}
