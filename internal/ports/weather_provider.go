package ports

import (
	"context"
	"time"

	"weathernotify.app/pkg/payload"
)

// Location is a geographic coordinate pair
type Location struct {
	Lat float64
	Lon float64
}

// WeatherFetcher returns raw provider payloads of unspecified completeness
type WeatherFetcher interface {
	FetchCurrent(ctx context.Context, loc Location) (payload.Node, error)
	FetchForecast(ctx context.Context, loc Location) (payload.Node, error)
	GetProviderName() string
}

// PayloadCache caches raw provider payloads
type PayloadCache interface {
	Get(ctx context.Context, key string) (payload.Node, error)
	Set(ctx context.Context, key string, node payload.Node, ttl time.Duration) error
}
