// Package usecase は企業ドシエ（dossier）の取得ロジックを実装します。
// 上流のFastAPIが失敗した場合は、IDから決まる代替データを返します。
package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"aurora_backend/internal/feature/dossier/domain/entity"
)

const (
	// DefaultHorizon は予測のデフォルト期間（月）です。
	DefaultHorizon = 12
	// MaxHorizon は予測の最大期間（月）です。
	MaxHorizon = 36
	// DefaultMetric は時系列のデフォルト指標です。
	DefaultMetric = "signal_score"
	// DefaultWindow は時系列のデフォルト期間です。
	DefaultWindow = "90d"
	// MaxWindowPoints は時系列の最大点数です。
	MaxWindowPoints = 365
)

// Upstream はFastAPIサービスからJSONを取得するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Upstream interface {
	GetJSON(ctx context.Context, path string, query url.Values, out any) error
}

// CacheInvalidator は上流レスポンスのキャッシュを破棄します。
type CacheInvalidator interface {
	Invalidate(ctx context.Context, pathPrefix string) error
}

// DossierUsecase はドシエ関連エンドポイントのビジネスロジックを提供します。
type DossierUsecase struct {
	upstream Upstream
	cache    CacheInvalidator
	now      func() time.Time
}

// NewDossierUsecase はDossierUsecaseを生成します。cacheはnilでも構いません。
func NewDossierUsecase(upstream Upstream, cache CacheInvalidator) *DossierUsecase {
	return &DossierUsecase{upstream: upstream, cache: cache, now: time.Now}
}

func companyPath(id string) string {
	return "/companies/" + url.PathEscape(id)
}

func (u *DossierUsecase) upstreamMeta() entity.Metadata {
	return entity.Metadata{Source: entity.SourceUpstream, FetchedAt: u.now().UTC().Format(time.RFC3339)}
}

func (u *DossierUsecase) fallbackMeta(err error) entity.Metadata {
	return entity.Metadata{
		Source:      entity.SourceFallback,
		Error:       err.Error(),
		GeneratedAt: u.now().UTC().Format(time.RFC3339),
	}
}

// GetDossier は企業プロフィール・指標・タイムラインを並列に取得して統合します。
// いずれかの取得に失敗した場合、ドシエ全体を代替データに置き換えます。
func (u *DossierUsecase) GetDossier(ctx context.Context, id string) (*entity.Dossier, error) {
	var company, metrics, timeline json.RawMessage
	base := companyPath(id)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error { return u.upstream.GetJSON(egCtx, base, nil, &company) })
	eg.Go(func() error { return u.upstream.GetJSON(egCtx, base+"/metrics", nil, &metrics) })
	eg.Go(func() error { return u.upstream.GetJSON(egCtx, base+"/timeline", nil, &timeline) })

	if err := eg.Wait(); err != nil {
		slog.Warn("dossier upstream failed; serving fallback", "company_id", id, "error", err)
		return &entity.Dossier{
			CompanyID: id,
			Company:   fallbackCompany(id),
			Metrics:   fallbackMetrics(id),
			Timeline:  fallbackTimeline(id, u.now()),
			Metadata:  u.fallbackMeta(err),
		}, nil
	}

	return &entity.Dossier{
		CompanyID: id,
		Company:   company,
		Metrics:   metrics,
		Timeline:  timeline,
		Metadata:  u.upstreamMeta(),
	}, nil
}

// section は単一の上流パスを取得し、失敗時はfallbackの結果を返します。
func (u *DossierUsecase) section(ctx context.Context, id, kind, path string, query url.Values, fallback func() any) (*entity.Section, error) {
	var raw json.RawMessage
	if err := u.upstream.GetJSON(ctx, path, query, &raw); err != nil {
		slog.Warn("dossier section upstream failed; serving fallback", "company_id", id, "kind", kind, "error", err)
		return &entity.Section{CompanyID: id, Kind: kind, Data: fallback(), Metadata: u.fallbackMeta(err)}, nil
	}
	return &entity.Section{CompanyID: id, Kind: kind, Data: raw, Metadata: u.upstreamMeta()}, nil
}

// GetForecast は指定期間（月）の予測を返します。範囲外の期間はデフォルト値になります。
func (u *DossierUsecase) GetForecast(ctx context.Context, id string, horizon int) (*entity.Section, error) {
	if horizon <= 0 || horizon > MaxHorizon {
		horizon = DefaultHorizon
	}
	q := url.Values{"horizon": {strconv.Itoa(horizon)}}
	return u.section(ctx, id, "forecast", companyPath(id)+"/forecast", q, func() any {
		return fallbackForecast(id, horizon)
	})
}

// GetProvenance はデータ来歴バンドルを返します。
func (u *DossierUsecase) GetProvenance(ctx context.Context, id string) (*entity.Section, error) {
	return u.section(ctx, id, "provenance", companyPath(id)+"/provenance", nil, func() any {
		return fallbackProvenance(id, u.now())
	})
}

// GetRepos は企業に紐づくリポジトリ一覧を返します。
func (u *DossierUsecase) GetRepos(ctx context.Context, id string) (*entity.Section, error) {
	return u.section(ctx, id, "repos", companyPath(id)+"/repos", nil, func() any {
		return fallbackRepos(id, u.now())
	})
}

// GetTimeSeries は指標の時系列を返します。
func (u *DossierUsecase) GetTimeSeries(ctx context.Context, id, metric, window string) (*entity.Section, error) {
	if metric == "" {
		metric = DefaultMetric
	}
	if window == "" {
		window = DefaultWindow
	}
	q := url.Values{"metric": {metric}, "window": {window}}
	return u.section(ctx, id, "timeseries", companyPath(id)+"/timeseries", q, func() any {
		return fallbackTimeSeries(id, metric, window, u.now())
	})
}

// Refresh は企業に関するキャッシュ済みの上流レスポンスを破棄します。
func (u *DossierUsecase) Refresh(ctx context.Context, id string) error {
	if id == "" || u.cache == nil {
		return nil
	}
	return u.cache.Invalidate(ctx, companyPath(id))
}
