// Package usecase は投資メモの生成と管理を行います。
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"aurora_backend/internal/feature/memo/domain/entity"
)

var companyIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。

// InsightSource は上流APIからJSONを取得します。
type InsightSource interface {
	GetJSON(ctx context.Context, path string, query url.Values, out any) error
}

// Drafter は要約文を生成します（Gemini など）。
type Drafter interface {
	Draft(ctx context.Context, prompt string) (string, error)
	Model() string
}

// ProvenanceSigner は来歴に署名します。
type ProvenanceSigner interface {
	Name() string
	Sign(subject, snapshotHash string) (string, error)
	Verify(token, subject, snapshotHash string) error
}

// MemoRepository はメモの永続化を行います。
type MemoRepository interface {
	Create(ctx context.Context, m *entity.Memo) error
	FindByID(ctx context.Context, id string) (*entity.Memo, error)
	Update(ctx context.Context, m *entity.Memo) error
	Delete(ctx context.Context, id string) error
}

// UpdateInput はメモ更新の入力です。nil のフィールドは変更しません。
type UpdateInput struct {
	Title   *string
	Summary *string
	Claims  []entity.Claim
}

// VerifyResult は署名検証の結果です。
type VerifyResult struct {
	MemoID       string `json:"memo_id"`
	Valid        bool   `json:"valid"`
	Signer       string `json:"signer"`
	SnapshotHash string `json:"snapshot_hash"`
	Reason       string `json:"reason,omitempty"`
}

// MemoUsecase はメモのユースケースです。
type MemoUsecase struct {
	source  InsightSource
	drafter Drafter
	signer  ProvenanceSigner
	repo    MemoRepository
	now     func() time.Time
	newID   func() string
}

// NewMemoUsecase は MemoUsecase を生成します。drafter と signer は nil でもかまいません。
func NewMemoUsecase(source InsightSource, drafter Drafter, signer ProvenanceSigner, repo MemoRepository) *MemoUsecase {
	return &MemoUsecase{
		source:  source,
		drafter: drafter,
		signer:  signer,
		repo:    repo,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Generate は上流の洞察からメモを生成して保存します。
// 上流が失敗した、または洞察が空の場合は定型クレームで生成し source を fallback にします。
func (uc *MemoUsecase) Generate(ctx context.Context, companyID, topic string) (*entity.Memo, error) {
	companyID = strings.TrimSpace(companyID)
	if !companyIDPattern.MatchString(companyID) {
		return nil, ErrInvalidCompanyID
	}
	topic = strings.TrimSpace(topic)
	now := uc.now().UTC()

	path := "/insights/" + url.PathEscape(companyID)
	var query url.Values
	if topic != "" {
		query = url.Values{"topic": {topic}}
	}
	trace := make([]entity.TraceStep, 0, 2)

	source := entity.SourceUpstream
	var claims []entity.Claim
	var raw json.RawMessage
	err := uc.source.GetJSON(ctx, path, query, &raw)
	if err == nil {
		var insights []entity.Insight
		insights, err = decodeInsights(raw)
		if err == nil {
			claims = claimsFromInsights(insights, now.Format(time.RFC3339))
		}
	}
	switch {
	case err != nil:
		slog.Warn("memo insights unavailable, using fallback claims", "company_id", companyID, "error", err)
		trace = append(trace, entity.TraceStep{Step: "fetch_insights", Target: path, Status: "error"})
	case len(claims) == 0:
		trace = append(trace, entity.TraceStep{Step: "fetch_insights", Target: path, Status: "empty"})
	default:
		trace = append(trace, entity.TraceStep{Step: "fetch_insights", Target: path, Status: "ok"})
	}
	if len(claims) == 0 {
		source = entity.SourceFallback
		claims = fallbackClaims(companyID, topic)
	}
	for i := range claims {
		claims[i].ID = uc.newID()
	}

	summary, step := uc.summarize(ctx, companyID, topic, claims)
	trace = append(trace, step)

	title := displayName(companyID) + " investment memo"
	if topic != "" {
		title = displayName(companyID) + ": " + topic
	}

	m := &entity.Memo{
		ID:        uc.newID(),
		CompanyID: companyID,
		Title:     title,
		Summary:   summary,
		Claims:    claims,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.stamp(m, trace); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to save memo: %w", err)
	}
	return m, nil
}

// summarize は Drafter があればそれを使い、失敗時はテンプレートに戻ります。
func (uc *MemoUsecase) summarize(ctx context.Context, companyID, topic string, claims []entity.Claim) (string, entity.TraceStep) {
	if uc.drafter != nil {
		text, err := uc.drafter.Draft(ctx, draftPrompt(companyID, topic, claims))
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text), entity.TraceStep{Step: "draft_summary", Target: uc.drafter.Model(), Status: "ok"}
		}
		slog.Warn("memo drafting failed, using template summary", "company_id", companyID, "error", err)
		return templateSummary(companyID, claims), entity.TraceStep{Step: "draft_summary", Target: uc.drafter.Model(), Status: "error"}
	}
	return templateSummary(companyID, claims), entity.TraceStep{Step: "draft_summary", Target: "template", Status: "ok"}
}

// stamp はスナップショットハッシュを計算し、署名して来歴を設定します。
func (uc *MemoUsecase) stamp(m *entity.Memo, trace []entity.TraceStep) error {
	hash := SnapshotHash(m.CompanyID, m.Summary, m.Claims)
	p := entity.Provenance{
		SnapshotHash:   hash,
		RetrievalTrace: trace,
		Signer:         Unsigned,
		Signature:      Unsigned,
		CreatedAt:      uc.now().UTC(),
	}
	if uc.signer != nil {
		sig, err := uc.signer.Sign(m.ID, hash)
		if err != nil {
			return fmt.Errorf("failed to sign memo provenance: %w", err)
		}
		p.Signer = uc.signer.Name()
		p.Signature = sig
	}
	m.Provenance = p
	return nil
}

// Get はメモを返します。
func (uc *MemoUsecase) Get(ctx context.Context, id string) (*entity.Memo, error) {
	return uc.repo.FindByID(ctx, id)
}

// Update はメモを更新し、来歴を再計算します。
func (uc *MemoUsecase) Update(ctx context.Context, id string, in UpdateInput) (*entity.Memo, error) {
	m, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidMemo)
		}
		m.Title = t
	}
	if in.Summary != nil {
		m.Summary = *in.Summary
	}
	if in.Claims != nil {
		claims := slices.Clone(in.Claims)
		for i := range claims {
			if strings.TrimSpace(claims[i].Text) == "" {
				return nil, fmt.Errorf("%w: claim text must not be empty", ErrInvalidMemo)
			}
			if claims[i].Confidence < 0 || claims[i].Confidence > 1 {
				return nil, fmt.Errorf("%w: confidence must be within [0,1]", ErrInvalidMemo)
			}
			if claims[i].ID == "" {
				claims[i].ID = uc.newID()
			}
			if claims[i].Sources == nil {
				claims[i].Sources = []entity.Source{}
			}
		}
		m.Claims = claims
	}

	trace := append(slices.Clone(m.Provenance.RetrievalTrace), entity.TraceStep{Step: "edit", Target: m.ID, Status: "ok"})
	if err := uc.stamp(m, trace); err != nil {
		return nil, err
	}
	m.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to update memo: %w", err)
	}
	return m, nil
}

// Delete はメモを削除します。
func (uc *MemoUsecase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Verify はメモの内容が署名時から変わっていないかを検証します。
func (uc *MemoUsecase) Verify(ctx context.Context, id string) (*VerifyResult, error) {
	m, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	hash := SnapshotHash(m.CompanyID, m.Summary, m.Claims)
	res := &VerifyResult{MemoID: m.ID, Signer: m.Provenance.Signer, SnapshotHash: hash}

	switch {
	case hash != m.Provenance.SnapshotHash:
		res.Reason = "snapshot hash mismatch"
	case m.Provenance.Signature == Unsigned:
		res.Reason = "memo is unsigned"
	case uc.signer == nil:
		res.Reason = "no signing key configured"
	default:
		if err := uc.signer.Verify(m.Provenance.Signature, m.ID, hash); err != nil {
			res.Reason = err.Error()
		} else {
			res.Valid = true
		}
	}
	return res, nil
}
