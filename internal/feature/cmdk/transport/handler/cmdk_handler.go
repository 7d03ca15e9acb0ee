// Package handler はコマンドパレットのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"aurora_backend/internal/api"
	"aurora_backend/internal/feature/cmdk/domain/entity"
	"aurora_backend/internal/feature/cmdk/transport/http/dto"
	"aurora_backend/internal/feature/cmdk/usecase"
)

// SearchUsecase はパレット検索のユースケースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SearchUsecase interface {
	Search(ctx context.Context, q string, limit int, scope string) (*entity.SearchResponse, error)
}

// CommandUsecase はコマンド受付のユースケースです。
type CommandUsecase interface {
	Submit(ctx context.Context, input string, body map[string]any) (*usecase.CommandTicket, error)
	Status(ctx context.Context, id string) (*usecase.JobState, error)
}

// CmdkHandler はコマンドパレット関連のHTTPリクエストを処理します。
type CmdkHandler struct {
	search  SearchUsecase
	command CommandUsecase
}

// NewCmdkHandler は CmdkHandler を生成します。
func NewCmdkHandler(search SearchUsecase, command CommandUsecase) *CmdkHandler {
	return &CmdkHandler{search: search, command: command}
}

// bindSearchParams はクエリ文字列を SearchParams にバインドします。
func bindSearchParams(c *gin.Context) (dto.SearchParams, error) {
	var p dto.SearchParams
	q := c.Request.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "q", q, &p.Q); err != nil {
		return p, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &p.Limit); err != nil {
		return p, err
	}
	if err := runtime.BindQueryParameter("form", true, false, "scope", q, &p.Scope); err != nil {
		return p, err
	}
	return p, nil
}

// Search は候補を検索します。上流が使えない場合もモック一覧で200を返します。
//
// エンドポイント: GET /api/cmdk/search?q&limit&scope
func (h *CmdkHandler) Search(c *gin.Context) {
	p, err := bindSearchParams(c)
	if err != nil {
		slog.Warn("invalid search parameters", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid query parameters"})
		return
	}

	resp, err := h.search.Search(c.Request.Context(), p.Query(), p.LimitOrZero(), p.ScopeOrEmpty())
	if err != nil {
		slog.Error("cmdk search failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Command はコマンドを受け付け、ジョブチケットを返します。
//
// エンドポイント: POST /api/cmdk/command
func (h *CmdkHandler) Command(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		slog.Warn("invalid command body", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}
	input, _ := body["input"].(string)

	ticket, err := h.command.Submit(c.Request.Context(), input, body)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyInput) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "input is required"})
			return
		}
		slog.Error("cmdk command failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusAccepted, ticket)
}

// JobStatus はジョブの進捗を返します。
//
// エンドポイント: GET /api/cmdk/jobs/:id
func (h *CmdkHandler) JobStatus(c *gin.Context) {
	st, err := h.command.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "job not found"})
			return
		}
		slog.Error("cmdk job status failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}
	c.JSON(http.StatusOK, st)
}
