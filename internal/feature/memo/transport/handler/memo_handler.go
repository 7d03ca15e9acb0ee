// Package handler はメモAPIのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"aurora_backend/internal/api"
	"aurora_backend/internal/feature/memo/domain/entity"
	"aurora_backend/internal/feature/memo/transport/http/dto"
	"aurora_backend/internal/feature/memo/usecase"
)

// MemoUsecase はメモのユースケースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type MemoUsecase interface {
	Generate(ctx context.Context, companyID, topic string) (*entity.Memo, error)
	Get(ctx context.Context, id string) (*entity.Memo, error)
	Update(ctx context.Context, id string, in usecase.UpdateInput) (*entity.Memo, error)
	Delete(ctx context.Context, id string) error
	Verify(ctx context.Context, id string) (*usecase.VerifyResult, error)
}

// MemoHandler はメモ関連のHTTPリクエストを処理します。
type MemoHandler struct {
	uc MemoUsecase
}

// NewMemoHandler は MemoHandler を生成します。
func NewMemoHandler(uc MemoUsecase) *MemoHandler {
	return &MemoHandler{uc: uc}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrMemoNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "memo not found"})
	case errors.Is(err, usecase.ErrInvalidCompanyID), errors.Is(err, usecase.ErrInvalidMemo):
		slog.Warn("invalid memo input", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("memo request failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}

// Generate はメモを生成します。
//
// エンドポイント: POST /api/memo/generate
func (h *MemoHandler) Generate(c *gin.Context) {
	var req dto.GenerateMemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid memo generate request", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}
	m, err := h.uc.Generate(c.Request.Context(), req.CompanyID, req.Topic)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// Get はメモを返します。
//
// エンドポイント: GET /api/memo/:id
func (h *MemoHandler) Get(c *gin.Context) {
	m, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// Update はメモを更新します。
//
// エンドポイント: PUT /api/memo/:id
func (h *MemoHandler) Update(c *gin.Context) {
	var req dto.UpdateMemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid memo update request", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}
	m, err := h.uc.Update(c.Request.Context(), c.Param("id"), usecase.UpdateInput{
		Title:   req.Title,
		Summary: req.Summary,
		Claims:  req.Claims,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// Delete はメモを削除します。
//
// エンドポイント: DELETE /api/memo/:id
func (h *MemoHandler) Delete(c *gin.Context) {
	if err := h.uc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Verify は来歴の署名を検証します。
//
// エンドポイント: GET /api/memo/:id/verify
func (h *MemoHandler) Verify(c *gin.Context) {
	res, err := h.uc.Verify(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
