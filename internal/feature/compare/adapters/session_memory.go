// Package adapters は比較セッションのストア実装を提供します。
package adapters

import (
	"context"
	"sync"

	"aurora_backend/internal/feature/compare/domain/entity"
	"aurora_backend/internal/feature/compare/usecase"
)

// MemorySessionStore はプロセス内のマップにセッションを保持します。再起動で失われます。
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*entity.Session
}

var _ usecase.SessionStore = (*MemorySessionStore)(nil)

// NewMemorySessionStore は MemorySessionStore を生成します。
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*entity.Session)}
}

// Save はセッションのコピーを保存します。
func (s *MemorySessionStore) Save(ctx context.Context, sess *entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess.Clone()
	return nil
}

// Get はセッションのコピーを返します。
func (s *MemorySessionStore) Get(ctx context.Context, id string) (*entity.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, usecase.ErrSessionNotFound
	}
	return sess.Clone(), nil
}

// Update はロックを保持したまま fn を適用して保存します。
func (s *MemorySessionStore) Update(ctx context.Context, id string, fn func(*entity.Session) error) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.sessions[id]
	if !ok {
		return nil, usecase.ErrSessionNotFound
	}
	next := cur.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	s.sessions[id] = next
	return next.Clone(), nil
}
