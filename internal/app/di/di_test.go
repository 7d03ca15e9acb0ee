package di

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	compareadapters "aurora_backend/internal/feature/compare/adapters"
)

func TestNewCompareStore(t *testing.T) {
	t.Run("memory without redis", func(t *testing.T) {
		store := NewCompareStore(nil)
		assert.IsType(t, &compareadapters.MemorySessionStore{}, store)
	})

	t.Run("redis when available", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })

		store := NewCompareStore(rdb)
		assert.IsType(t, &compareadapters.RedisSessionStore{}, store)
	})
}

func TestNewProvenanceSigner(t *testing.T) {
	t.Run("unset key gives nil interface", func(t *testing.T) {
		t.Setenv("PROVENANCE_SIGNING_KEY", "")
		assert.Nil(t, NewProvenanceSigner())
	})

	t.Run("configured key", func(t *testing.T) {
		t.Setenv("PROVENANCE_SIGNING_KEY", "secret")
		t.Setenv("PROVENANCE_SIGNER", "desk")
		s := NewProvenanceSigner()
		if assert.NotNil(t, s) {
			assert.Equal(t, "desk", s.Name())
		}
	})
}

func TestNewDrafter_Disabled(t *testing.T) {
	t.Setenv("GEMINI_ENABLED", "")
	assert.Nil(t, NewDrafter(t.Context()))
}
