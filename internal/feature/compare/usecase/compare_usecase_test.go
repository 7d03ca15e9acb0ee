package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurora_backend/internal/feature/compare/domain/entity"
)

// mockSessionStore はSessionStoreインターフェースのモック実装です。
type mockSessionStore struct {
	sessions map[string]*entity.Session
	saveErr  error
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: map[string]*entity.Session{}}
}

func (m *mockSessionStore) Save(ctx context.Context, s *entity.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.sessions[s.ID] = s.Clone()
	return nil
}

func (m *mockSessionStore) Get(ctx context.Context, id string) (*entity.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.Clone(), nil
}

func (m *mockSessionStore) Update(ctx context.Context, id string, fn func(*entity.Session) error) (*entity.Session, error) {
	s, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	if err := m.Save(ctx, s); err != nil {
		return nil, err
	}
	return s.Clone(), nil
}

func newTestUsecase(store SessionStore) *CompareUsecase {
	uc := NewCompareUsecase(store)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }
	n := 0
	uc.newID = func() string { n++; return fmt.Sprintf("id-%d", n) }
	return uc
}

func TestCompareUsecase_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		in          CreateInput
		wantErr     error
		wantTitle   string
		wantWeights map[string]float64
		wantScore   float64
	}{
		{
			name:        "explicit weights",
			in:          CreateInput{Title: "VDB", Weights: map[string]float64{"a": 3, "b": 1}, Metrics: map[string]float64{"a": 1, "b": 0}},
			wantTitle:   "VDB",
			wantWeights: map[string]float64{"a": 3, "b": 1},
			wantScore:   0.75,
		},
		{
			name:        "default equal weights",
			in:          CreateInput{Metrics: map[string]float64{"a": 1, "b": 0.5}},
			wantTitle:   DefaultTitle,
			wantWeights: map[string]float64{"a": 0.5, "b": 0.5},
			wantScore:   0.75,
		},
		{
			name:    "negative weight rejected",
			in:      CreateInput{Weights: map[string]float64{"a": -1}, Metrics: map[string]float64{"a": 1}},
			wantErr: ErrInvalidWeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := newMockSessionStore()
			s, err := newTestUsecase(store).Create(context.Background(), tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, store.sessions)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "id-1", s.ID)
			assert.Equal(t, tt.wantTitle, s.Title)
			assert.InDeltaMapValues(t, tt.wantWeights, s.Weights, 1e-9)
			assert.InDelta(t, tt.wantScore, s.Score, 1e-9)
			assert.NotNil(t, s.Snapshots)
			assert.Contains(t, store.sessions, "id-1")
		})
	}
}

func TestCompareUsecase_Create_SaveError(t *testing.T) {
	t.Parallel()

	store := newMockSessionStore()
	store.saveErr = errors.New("down")
	_, err := newTestUsecase(store).Create(context.Background(), CreateInput{Metrics: map[string]float64{"a": 1}})
	assert.ErrorContains(t, err, "failed to save compare session")
}

func TestCompareUsecase_UpdateWeight(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMockSessionStore()
	uc := newTestUsecase(store)
	s, err := uc.Create(ctx, CreateInput{Weights: map[string]float64{"a": 1, "b": 1}, Metrics: map[string]float64{"a": 1, "b": 0}})
	require.NoError(t, err)
	require.InDelta(t, 0.5, s.Score, 1e-9)

	res, err := uc.UpdateWeight(ctx, s.ID, "b", 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Session.Score, 1e-9)
	assert.InDelta(t, 0.5, res.Torque, 1e-9)

	stored, err := uc.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, stored.Score, 1e-9)

	_, err = uc.UpdateWeight(ctx, s.ID, "a", -0.1)
	assert.ErrorIs(t, err, ErrInvalidWeight)
	_, err = uc.UpdateWeight(ctx, s.ID, " ", 1)
	assert.ErrorIs(t, err, ErrInvalidMetric)
	_, err = uc.UpdateWeight(ctx, "missing", "a", 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCompareUsecase_Snapshot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	uc := newTestUsecase(newMockSessionStore())
	s, err := uc.Create(ctx, CreateInput{Title: "T", Metrics: map[string]float64{"a": 1}})
	require.NoError(t, err)

	res, err := uc.Snapshot(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "id-2", res.Snapshot.ID)
	assert.InDelta(t, 1.0, res.Snapshot.Score, 1e-9)
	assert.Contains(t, res.Snapshot.SVG, "<svg")
	assert.Len(t, res.Session.Snapshots, 1)

	for range MaxSnapshots + 5 {
		res, err = uc.Snapshot(ctx, s.ID)
		require.NoError(t, err)
	}
	assert.Len(t, res.Session.Snapshots, MaxSnapshots)
	assert.Equal(t, res.Snapshot.ID, res.Session.Snapshots[MaxSnapshots-1].ID)

	_, err = uc.Snapshot(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
