package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"aurora_backend/internal/api"
	"aurora_backend/internal/feature/watchlist/domain/entity"
	"aurora_backend/internal/feature/watchlist/transport/http/dto"
	"aurora_backend/internal/feature/watchlist/usecase"
)

// WatchlistUsecase はウォッチリストに関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type WatchlistUsecase interface {
	List(ctx context.Context, name string) ([]entity.Entry, error)
	Add(ctx context.Context, name, companyID, displayName string) (*entity.Entry, error)
}

// WatchlistHandler はウォッチリストに関するHTTPリクエストを処理します。
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler は新しい WatchlistHandler を作成します。
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidListName), errors.Is(err, usecase.ErrInvalidCompanyID):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrDuplicateEntry):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("watchlist request failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}

// List はウォッチリストの有効なエントリを返すAPIです。
//
// エンドポイント: GET /api/watchlists/:name
func (h *WatchlistHandler) List(c *gin.Context) {
	entries, err := h.uc.List(c.Request.Context(), c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Add はウォッチリストに企業を追加するAPIです。
//
// エンドポイント: POST /api/watchlists/:name
func (h *WatchlistHandler) Add(c *gin.Context) {
	var req dto.AddEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}
	e, err := h.uc.Add(c.Request.Context(), c.Param("name"), req.CompanyID, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}
