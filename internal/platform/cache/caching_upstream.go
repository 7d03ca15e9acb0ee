// Package cache provides caching implementations for upstream fetchers.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"aurora_backend/internal/feature/dossier/usecase"
)

// CachingUpstream decorates an upstream fetcher with a Redis read-through cache.
// Only successful responses are cached; failures always reach the caller so the
// fallback path stays in charge of them.
type CachingUpstream struct {
	inner     usecase.Upstream
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.Upstream = (*CachingUpstream)(nil)
var _ usecase.CacheInvalidator = (*CachingUpstream)(nil)

// NewCachingUpstream wraps inner with Redis caching.
// If ttl is 0, it defaults to 60 seconds. If namespace is empty, it uses "upstream".
func NewCachingUpstream(rdb *redis.Client, ttl time.Duration, inner usecase.Upstream, namespace string) *CachingUpstream {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	if namespace == "" {
		namespace = "upstream"
	}
	return &CachingUpstream{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// GetJSON returns the cached body for path+query when present, otherwise fetches from
// the inner fetcher and stores the raw body.
func (c *CachingUpstream) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	if c.rdb == nil {
		return c.inner.GetJSON(ctx, path, query, out)
	}

	key := c.cacheKey(path, query)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		if err := json.Unmarshal(b, out); err == nil {
			return nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fetch from upstream
	var raw json.RawMessage
	if err := c.inner.GetJSON(ctx, path, query, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode upstream %s: %w", path, err)
	}

	// 3) Store in cache (best effort)
	_ = c.rdb.Set(ctx, key, []byte(raw), c.ttl).Err()
	return nil
}

// Invalidate deletes the cached response for pathPrefix and every path below it.
// Sibling paths that merely share the prefix ("/companies/acme-labs") are kept.
func (c *CachingUpstream) Invalidate(ctx context.Context, pathPrefix string) error {
	if c.rdb == nil {
		return nil
	}
	base := c.namespace + ":" + globEscape(safe(strings.TrimRight(pathPrefix, "/")))
	for _, pattern := range []string{base + ":*", base + "/*"} {
		if err := c.deleteByPattern(ctx, pattern); err != nil {
			return err
		}
	}
	return nil
}

// globEscape escapes the SCAN MATCH metacharacters.
func globEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (c *CachingUpstream) cacheKey(path string, query url.Values) string {
	return fmt.Sprintf("%s:%s:%s", c.namespace, safe(path), safe(query.Encode()))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingUpstream) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
