package external

import (
	"fmt"

	"code.cloudfoundry.org/clock"
	"weathernotify.app/internal/config"
	"weathernotify.app/internal/ports"
	"weathernotify.app/pkg/errors"
)

// CacheBackend is a cache provider that also reports its own hit statistics
type CacheBackend interface {
	ports.CacheProvider
	ports.CacheMetrics
}

type CacheProviderFactory struct {
	clock clock.Clock
}

// NewCacheProviderFactory creates a factory whose in-memory caches expire
// entries against clk. A nil clock uses wall time.
func NewCacheProviderFactory(clk clock.Clock) *CacheProviderFactory {
	return &CacheProviderFactory{clock: clk}
}

func (f *CacheProviderFactory) CreateCacheProvider(cfg *config.CacheConfig) (CacheBackend, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("cache config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.CacheTypeMemory:
		return NewMemoryCacheProvider(f.clock), nil
	case config.CacheTypeRedis:
		provider, err := NewRedisCacheProviderAdapter(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported cache type: %s", cfg.Type.String()), nil)
	}
}
