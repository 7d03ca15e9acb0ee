// Package usecase は重み付き比較のビジネスロジックを提供します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"aurora_backend/internal/feature/compare/domain/entity"
)

// MaxSnapshots はセッションに保持するスナップショットの上限です。古いものから捨てます。
const MaxSnapshots = 20

// DefaultTitle はタイトル未指定時のセッション名です。
const DefaultTitle = "Untitled comparison"

// SessionStore は比較セッションの保存先です。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type SessionStore interface {
	Save(ctx context.Context, s *entity.Session) error
	// Get は存在しない場合 ErrSessionNotFound を返します。
	Get(ctx context.Context, id string) (*entity.Session, error)
	// Update は読み込み・fn による変更・保存を他の更新と競合しない1操作として行い、
	// 保存後のセッションを返します。fn は再試行で複数回呼ばれることがあります。
	// fn がエラーを返した場合は保存しません。
	Update(ctx context.Context, id string, fn func(s *entity.Session) error) (*entity.Session, error)
}

// CompareUsecase は比較セッションを操作します。
type CompareUsecase struct {
	store SessionStore
	now   func() time.Time
	newID func() string
}

// NewCompareUsecase は CompareUsecase を生成します。
func NewCompareUsecase(store SessionStore) *CompareUsecase {
	return &CompareUsecase{store: store, now: time.Now, newID: uuid.NewString}
}

// CreateInput はセッション作成の入力です。
type CreateInput struct {
	Title   string
	Weights map[string]float64
	Metrics map[string]float64
}

// WeightUpdate は重み更新の結果です。
type WeightUpdate struct {
	Session *entity.Session `json:"session"`
	Torque  float64         `json:"torque"`
}

// SnapshotResult はスナップショット作成の結果です。
type SnapshotResult struct {
	Snapshot entity.Snapshot `json:"snapshot"`
	Session  *entity.Session `json:"session"`
}

func validWeight(w float64) bool {
	return w >= 0 && !math.IsInf(w, 0) && !math.IsNaN(w)
}

// Create は新しいセッションを作成します。
// 重みが未指定の場合は指標キーに均等な重みを割り当てます。
func (uc *CompareUsecase) Create(ctx context.Context, in CreateInput) (*entity.Session, error) {
	weights := maps.Clone(in.Weights)
	for k, w := range weights {
		if !validWeight(w) {
			return nil, fmt.Errorf("%w: %s=%v", ErrInvalidWeight, k, w)
		}
	}
	if len(weights) == 0 {
		weights = make(map[string]float64, len(in.Metrics))
		for k := range in.Metrics {
			weights[k] = 1 / float64(len(in.Metrics))
		}
	}
	metrics := maps.Clone(in.Metrics)
	if metrics == nil {
		metrics = map[string]float64{}
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = DefaultTitle
	}

	now := uc.now()
	s := &entity.Session{
		ID:        uc.newID(),
		Title:     title,
		Weights:   weights,
		Metrics:   metrics,
		Score:     ComputeComposite(weights, metrics),
		Snapshots: []entity.Snapshot{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save compare session: %w", err)
	}
	return s, nil
}

// Get はセッションを返します。
func (uc *CompareUsecase) Get(ctx context.Context, id string) (*entity.Session, error) {
	return uc.store.Get(ctx, id)
}

// UpdateWeight は1つの指標の重みを変更し、スコアの変化量（torque）を返します。
func (uc *CompareUsecase) UpdateWeight(ctx context.Context, id, metric string, weight float64) (*WeightUpdate, error) {
	metric = strings.TrimSpace(metric)
	if metric == "" {
		return nil, ErrInvalidMetric
	}
	if !validWeight(weight) {
		return nil, fmt.Errorf("%w: %s=%v", ErrInvalidWeight, metric, weight)
	}

	var before float64
	s, err := uc.store.Update(ctx, id, func(s *entity.Session) error {
		before = s.Score
		if s.Weights == nil {
			s.Weights = map[string]float64{}
		}
		s.Weights[metric] = weight
		s.Score = ComputeComposite(s.Weights, s.Metrics)
		s.UpdatedAt = uc.now()
		return nil
	})
	if err != nil {
		return nil, saveError(err)
	}
	return &WeightUpdate{Session: s, Torque: ComputeTorque(before, s.Score)}, nil
}

// saveError は ErrSessionNotFound 以外のストアエラーを包みます。
func saveError(err error) error {
	if errors.Is(err, ErrSessionNotFound) {
		return err
	}
	return fmt.Errorf("failed to save compare session: %w", err)
}

// Snapshot は現在の重みとスコアを固定し、SVGと一緒に保存します。
func (uc *CompareUsecase) Snapshot(ctx context.Context, id string) (*SnapshotResult, error) {
	var snap entity.Snapshot
	snapID := uc.newID()
	s, err := uc.store.Update(ctx, id, func(s *entity.Session) error {
		now := uc.now()
		snap = entity.Snapshot{
			ID:        snapID,
			Score:     s.Score,
			Weights:   maps.Clone(s.Weights),
			SVG:       BuildCompareSVG(s.Title, s.Weights, s.Score),
			CreatedAt: now,
		}
		s.Snapshots = append(s.Snapshots, snap)
		if n := len(s.Snapshots); n > MaxSnapshots {
			s.Snapshots = s.Snapshots[n-MaxSnapshots:]
		}
		s.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, saveError(err)
	}
	return &SnapshotResult{Snapshot: snap, Session: s}, nil
}
