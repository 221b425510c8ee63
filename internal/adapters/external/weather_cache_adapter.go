package external

import (
	"context"
	"encoding/json"
	"time"

	"weathernotify.app/internal/ports"
	"weathernotify.app/pkg/errors"
	"weathernotify.app/pkg/payload"
)

// WeatherCacheAdapter bridges generic CacheProvider to the raw PayloadCache
type WeatherCacheAdapter struct {
	cacheProvider ports.CacheProvider
}

// NewWeatherCacheAdapter creates a payload cache using generic cache provider
func NewWeatherCacheAdapter(cacheProvider ports.CacheProvider) *WeatherCacheAdapter {
	return &WeatherCacheAdapter{
		cacheProvider: cacheProvider,
	}
}

// Get retrieves a raw payload from cache. Undecodable entries are evicted.
func (w *WeatherCacheAdapter) Get(ctx context.Context, key string) (payload.Node, error) {
	data, err := w.cacheProvider.Get(ctx, key)
	if err != nil {
		return payload.Null(), err
	}

	node, err := payload.Decode(data)
	if err != nil {
		_ = w.cacheProvider.Delete(ctx, key)
		return payload.Null(), errors.Wrap(errors.MalformedPayloadError, "failed to deserialize cached payload", err)
	}

	return node, nil
}

// Set stores a raw payload in cache
func (w *WeatherCacheAdapter) Set(ctx context.Context, key string, node payload.Node, ttl time.Duration) error {
	if node.IsNull() {
		return errors.NewValidationError("payload cannot be null")
	}

	data, err := json.Marshal(node)
	if err != nil {
		return errors.Wrap(errors.MalformedPayloadError, "failed to serialize payload", err)
	}

	return w.cacheProvider.Set(ctx, key, data, ttl)
}
