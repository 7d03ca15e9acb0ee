// Package handler はdossierフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"aurora_backend/internal/api"
	"aurora_backend/internal/feature/dossier/domain/entity"
	"aurora_backend/internal/feature/dossier/usecase"
)

const (
	// upstreamCacheControl は上流データに付与するCache-Controlヘッダーです。
	upstreamCacheControl = "public, max-age=60, stale-while-revalidate=300"
	// fallbackCacheControl は代替データに付与する短いCache-Controlヘッダーです。
	fallbackCacheControl = "public, max-age=15"
)

// DossierUsecase はドシエ取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type DossierUsecase interface {
	GetDossier(ctx context.Context, id string) (*entity.Dossier, error)
	GetForecast(ctx context.Context, id string, horizon int) (*entity.Section, error)
	GetProvenance(ctx context.Context, id string) (*entity.Section, error)
	GetRepos(ctx context.Context, id string) (*entity.Section, error)
	GetTimeSeries(ctx context.Context, id, metric, window string) (*entity.Section, error)
	Refresh(ctx context.Context, id string) error
}

// DossierHandler はドシエ関連のHTTPリクエストを処理します。
type DossierHandler struct {
	uc DossierUsecase
}

// NewDossierHandler はDossierHandlerの新しいインスタンスを生成します。
func NewDossierHandler(uc DossierUsecase) *DossierHandler {
	return &DossierHandler{uc: uc}
}

func setCacheControl(c *gin.Context, meta entity.Metadata) {
	if meta.IsFallback() {
		c.Header("Cache-Control", fallbackCacheControl)
		return
	}
	c.Header("Cache-Control", upstreamCacheControl)
}

// refreshIfRequested は ?refresh=1 が指定された場合にキャッシュを破棄します。
// 破棄に失敗してもリクエストは継続します。
func (h *DossierHandler) refreshIfRequested(c *gin.Context, id string) {
	if c.Query("refresh") != "1" {
		return
	}
	if err := h.uc.Refresh(c.Request.Context(), id); err != nil {
		slog.Warn("dossier cache refresh failed", "company_id", id, "error", err)
	}
}

func (h *DossierHandler) writeError(c *gin.Context, id string, err error) {
	slog.Error("dossier request failed", "company_id", id, "error", err)
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
}

// Get はドシエ全体を返します。
//
// エンドポイント: GET /api/dossier/:id
func (h *DossierHandler) Get(c *gin.Context) {
	id := c.Param("id")
	h.refreshIfRequested(c, id)

	d, err := h.uc.GetDossier(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, id, err)
		return
	}
	setCacheControl(c, d.Metadata)
	c.JSON(http.StatusOK, d)
}

func (h *DossierHandler) writeSection(c *gin.Context, id string, s *entity.Section, err error) {
	if err != nil {
		h.writeError(c, id, err)
		return
	}
	setCacheControl(c, s.Metadata)
	c.JSON(http.StatusOK, s)
}

// Forecast は予測を返します。
//
// エンドポイント: GET /api/dossier/:id/forecast?horizon=12
func (h *DossierHandler) Forecast(c *gin.Context) {
	id := c.Param("id")
	// 不正な値は0になり、usecaseでデフォルト値に置き換えられる
	horizon, _ := strconv.Atoi(c.DefaultQuery("horizon", strconv.Itoa(usecase.DefaultHorizon)))
	s, err := h.uc.GetForecast(c.Request.Context(), id, horizon)
	h.writeSection(c, id, s, err)
}

// Provenance はデータ来歴を返します。
//
// エンドポイント: GET /api/dossier/:id/provenance
func (h *DossierHandler) Provenance(c *gin.Context) {
	id := c.Param("id")
	s, err := h.uc.GetProvenance(c.Request.Context(), id)
	h.writeSection(c, id, s, err)
}

// Repos はリポジトリ一覧を返します。
//
// エンドポイント: GET /api/dossier/:id/repos
func (h *DossierHandler) Repos(c *gin.Context) {
	id := c.Param("id")
	s, err := h.uc.GetRepos(c.Request.Context(), id)
	h.writeSection(c, id, s, err)
}

// TimeSeries は指標の時系列を返します。
//
// エンドポイント: GET /api/dossier/:id/timeseries?metric=signal_score&window=90d
func (h *DossierHandler) TimeSeries(c *gin.Context) {
	id := c.Param("id")
	s, err := h.uc.GetTimeSeries(c.Request.Context(), id, c.Query("metric"), c.Query("window"))
	h.writeSection(c, id, s, err)
}
