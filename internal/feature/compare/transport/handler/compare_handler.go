// Package handler は比較APIのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"aurora_backend/internal/api"
	"aurora_backend/internal/feature/compare/domain/entity"
	"aurora_backend/internal/feature/compare/transport/http/dto"
	"aurora_backend/internal/feature/compare/usecase"
)

// CompareUsecase は比較セッションのユースケースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type CompareUsecase interface {
	Create(ctx context.Context, in usecase.CreateInput) (*entity.Session, error)
	Get(ctx context.Context, id string) (*entity.Session, error)
	UpdateWeight(ctx context.Context, id, metric string, weight float64) (*usecase.WeightUpdate, error)
	Snapshot(ctx context.Context, id string) (*usecase.SnapshotResult, error)
}

// CompareHandler は比較セッション関連のHTTPリクエストを処理します。
type CompareHandler struct {
	uc CompareUsecase
}

// NewCompareHandler は CompareHandler を生成します。
func NewCompareHandler(uc CompareUsecase) *CompareHandler {
	return &CompareHandler{uc: uc}
}

// writeError はユースケースのエラーをHTTPステータスに対応づけます。
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "compare session not found"})
	case errors.Is(err, usecase.ErrInvalidWeight), errors.Is(err, usecase.ErrInvalidMetric):
		slog.Warn("invalid compare input", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("compare request failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}

// Create は比較セッションを作成します。
//
// エンドポイント: POST /api/compare
func (h *CompareHandler) Create(c *gin.Context) {
	var req dto.CreateCompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid compare request", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}
	s, err := h.uc.Create(c.Request.Context(), usecase.CreateInput{Title: req.Title, Weights: req.Weights, Metrics: req.Metrics})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

// Get は比較セッションを返します。
//
// エンドポイント: GET /api/compare/:id
func (h *CompareHandler) Get(c *gin.Context) {
	s, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// UpdateWeight は重みを変更し、セッションとtorqueを返します。
//
// エンドポイント: POST /api/compare/:id/weight
func (h *CompareHandler) UpdateWeight(c *gin.Context) {
	var req dto.UpdateWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid weight request", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}
	res, err := h.uc.UpdateWeight(c.Request.Context(), c.Param("id"), req.Metric, *req.Weight)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Snapshot は現在の状態のスナップショットを作成します。
//
// エンドポイント: POST /api/compare/:id/snapshot
func (h *CompareHandler) Snapshot(c *gin.Context) {
	res, err := h.uc.Snapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}
