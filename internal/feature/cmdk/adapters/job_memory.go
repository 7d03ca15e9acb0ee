// Package adapters はcmdkフィーチャーの外部接続とストレージ実装を提供します。
package adapters

import (
	"context"
	"sync"
	"time"

	"aurora_backend/internal/feature/cmdk/domain/entity"
	"aurora_backend/internal/feature/cmdk/usecase"
)

// DefaultJobRetention は完了したジョブを保持する期間です。
const DefaultJobRetention = 10 * time.Minute

// MemoryJobStore はプロセス内のマップにジョブを保持します。再起動で失われます。
type MemoryJobStore struct {
	mu        sync.RWMutex
	jobs      map[string]entity.Job
	retention time.Duration
	now       func() time.Time
}

var _ usecase.JobStore = (*MemoryJobStore)(nil)

// NewMemoryJobStore は MemoryJobStore を生成します。retention が0以下ならデフォルト値を使います。
func NewMemoryJobStore(retention time.Duration) *MemoryJobStore {
	if retention <= 0 {
		retention = DefaultJobRetention
	}
	return &MemoryJobStore{jobs: make(map[string]entity.Job), retention: retention, now: time.Now}
}

// Save はジョブを保存し、保持期間を過ぎたジョブを掃除します。
func (s *MemoryJobStore) Save(ctx context.Context, job entity.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.retention)
	for id, j := range s.jobs {
		expires := j.CreatedAt.Add(time.Duration(j.EstimatedSeconds) * time.Second)
		if expires.Before(cutoff) {
			delete(s.jobs, id)
		}
	}
	s.jobs[job.ID] = job
	return nil
}

// Get はIDに一致するジョブを返します。
func (s *MemoryJobStore) Get(ctx context.Context, id string) (entity.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.jobs[id]
	if !ok {
		return entity.Job{}, usecase.ErrJobNotFound
	}
	return j, nil
}

// Len は保持しているジョブ数を返します。
func (s *MemoryJobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}
