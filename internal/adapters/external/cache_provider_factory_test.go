package external

import (
	"context"
	"testing"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathernotify.app/internal/config"
	"weathernotify.app/pkg/errors"
)

func TestCacheProviderFactory_CreateCacheProvider(t *testing.T) {
	factory := NewCacheProviderFactory(nil)

	t.Run("NilConfig", func(t *testing.T) {
		provider, err := factory.CreateCacheProvider(nil)
		assert.Nil(t, provider)
		assert.True(t, errors.IsConfigurationError(err))
	})

	t.Run("MemoryCache", func(t *testing.T) {
		provider, err := factory.CreateCacheProvider(&config.CacheConfig{Type: config.CacheTypeMemory})
		require.NoError(t, err)
		assert.IsType(t, &MemoryCacheProvider{}, provider)
	})

	t.Run("RedisCache", func(t *testing.T) {
		_, redisConfig := setupMockRedis(t)

		provider, err := factory.CreateCacheProvider(&config.CacheConfig{Type: config.CacheTypeRedis, Redis: *redisConfig})
		require.NoError(t, err)
		require.IsType(t, &RedisCacheProviderAdapter{}, provider)
		assert.NoError(t, provider.(*RedisCacheProviderAdapter).Close())
	})

	t.Run("RedisUnreachable", func(t *testing.T) {
		provider, err := factory.CreateCacheProvider(&config.CacheConfig{
			Type:  config.CacheTypeRedis,
			Redis: config.RedisConfig{Addr: "invalid:address:port", DialTimeout: 1, ReadTimeout: 1, WriteTimeout: 1},
		})
		assert.Nil(t, provider)
		assert.True(t, errors.IsExternalAPIError(err))
	})

	t.Run("UnknownCacheType", func(t *testing.T) {
		provider, err := factory.CreateCacheProvider(&config.CacheConfig{Type: config.CacheTypeUnknown})
		assert.Nil(t, provider)
		assert.True(t, errors.IsConfigurationError(err))
	})
}

func TestMemoryCacheProvider_Operations(t *testing.T) {
	clk := fakeclock.NewFakeClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	provider := NewMemoryCacheProvider(clk)
	ctx := context.Background()

	t.Run("SetAndGet", func(t *testing.T) {
		value := []byte("test-value")
		require.NoError(t, provider.Set(ctx, "test-key", value, time.Minute))

		retrieved, err := provider.Get(ctx, "test-key")
		require.NoError(t, err)
		assert.Equal(t, value, retrieved)

		retrieved[0] = 'X'
		again, err := provider.Get(ctx, "test-key")
		require.NoError(t, err)
		assert.Equal(t, value, again, "callers cannot mutate stored entries")
	})

	t.Run("GetNonExistentKey", func(t *testing.T) {
		retrieved, err := provider.Get(ctx, "non-existent-key")
		assert.Nil(t, retrieved)
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, provider.Set(ctx, "delete-key", []byte("value"), time.Minute))
		require.NoError(t, provider.Delete(ctx, "delete-key"))

		_, err := provider.Get(ctx, "delete-key")
		assert.Error(t, err)
	})

	t.Run("TTLExpiration", func(t *testing.T) {
		require.NoError(t, provider.Set(ctx, "ttl-key", []byte("value"), 10*time.Minute))

		clk.Increment(10 * time.Minute)
		exists, err := provider.Exists(ctx, "ttl-key")
		require.NoError(t, err)
		assert.True(t, exists, "entry is valid up to its expiry instant")

		clk.Increment(time.Second)
		exists, err = provider.Exists(ctx, "ttl-key")
		require.NoError(t, err)
		assert.False(t, exists)
		_, err = provider.Get(ctx, "ttl-key")
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, provider.Set(ctx, "clear-key", []byte("value"), time.Minute))
		require.NoError(t, provider.Clear(ctx))

		exists, err := provider.Exists(ctx, "clear-key")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestMemoryCacheProvider_ValidationErrors(t *testing.T) {
	provider := NewMemoryCacheProvider(nil)
	ctx := context.Background()

	tests := []struct {
		name      string
		operation func() error
	}{
		{name: "GetEmptyKey", operation: func() error { _, err := provider.Get(ctx, ""); return err }},
		{name: "SetEmptyKey", operation: func() error { return provider.Set(ctx, "", []byte("value"), time.Minute) }},
		{name: "SetNilValue", operation: func() error { return provider.Set(ctx, "key", nil, time.Minute) }},
		{name: "SetNegativeTTL", operation: func() error { return provider.Set(ctx, "key", []byte("value"), -time.Minute) }},
		{name: "DeleteEmptyKey", operation: func() error { return provider.Delete(ctx, "") }},
		{name: "ExistsEmptyKey", operation: func() error { _, err := provider.Exists(ctx, ""); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.IsValidationError(tt.operation()))
		})
	}
}

func TestMemoryCacheProvider_Stats(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	provider := NewMemoryCacheProvider(fakeclock.NewFakeClock(now))
	ctx := context.Background()

	require.NoError(t, provider.Set(ctx, "key", []byte("value"), time.Minute))
	_, _ = provider.Get(ctx, "key")
	_, _ = provider.Get(ctx, "missing")
	provider.RecordHit()

	stats := provider.GetStats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(3), stats.TotalOps)
	assert.Equal(t, now, stats.LastUpdated)
}
