package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"aurora_backend/internal/feature/compare/domain/entity"
	"aurora_backend/internal/feature/compare/usecase"
)

// maxUpdateAttempts は楽観ロックが競合した場合の再試行回数の上限です。
const maxUpdateAttempts = 100

// ErrUpdateConflict は再試行しても更新が競合し続けた場合のエラーです。
var ErrUpdateConflict = errors.New("compare session update conflict")

// DefaultSessionTTL はRedis上のセッションの有効期間です。更新のたびに延長されます。
const DefaultSessionTTL = 24 * time.Hour

// RedisSessionStore implements usecase.SessionStore using Redis.
type RedisSessionStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ usecase.SessionStore = (*RedisSessionStore)(nil)

// NewRedisSessionStore creates a new RedisSessionStore instance.
func NewRedisSessionStore(client *redis.Client, prefix string, ttl time.Duration) *RedisSessionStore {
	if prefix == "" {
		prefix = "compare"
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &RedisSessionStore{client: client, prefix: prefix, ttl: ttl}
}

// sessionKey returns the Redis key for a session.
func (r *RedisSessionStore) sessionKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

// Save persists the session and refreshes its TTL.
func (r *RedisSessionStore) Save(ctx context.Context, s *entity.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal compare session: %w", err)
	}
	return r.client.Set(ctx, r.sessionKey(s.ID), data, r.ttl).Err()
}

// Get retrieves a session by its ID.
func (r *RedisSessionStore) Get(ctx context.Context, id string) (*entity.Session, error) {
	return r.get(ctx, r.client, id)
}

// Update applies fn under WATCH and writes the result in a MULTI/EXEC block.
// A concurrent write to the same key aborts the transaction and the update is retried
// from a fresh read.
func (r *RedisSessionStore) Update(ctx context.Context, id string, fn func(*entity.Session) error) (*entity.Session, error) {
	key := r.sessionKey(id)
	var updated *entity.Session

	txf := func(tx *redis.Tx) error {
		s, err := r.get(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}
		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("failed to marshal compare session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		if err == nil {
			updated = s
		}
		return err
	}

	for range maxUpdateAttempts {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, ErrUpdateConflict
}

// stringGetter is satisfied by both *redis.Client and *redis.Tx.
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *RedisSessionStore) get(ctx context.Context, c stringGetter, id string) (*entity.Session, error) {
	data, err := c.Get(ctx, r.sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}

	var s entity.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal compare session: %w", err)
	}
	return &s, nil
}
