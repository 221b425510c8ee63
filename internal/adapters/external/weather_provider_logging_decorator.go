package external

import (
	"context"
	"time"

	"weathernotify.app/internal/ports"
	"weathernotify.app/pkg/payload"
)

// WeatherFetcherLoggingDecorator decorates weather fetchers with structured logging
type WeatherFetcherLoggingDecorator struct {
	fetcher ports.WeatherFetcher
	logger  ports.Logger
}

// NewWeatherFetcherLoggingDecorator creates a new logging decorator for weather fetchers
func NewWeatherFetcherLoggingDecorator(fetcher ports.WeatherFetcher, logger ports.Logger) *WeatherFetcherLoggingDecorator {
	return &WeatherFetcherLoggingDecorator{
		fetcher: fetcher,
		logger:  logger,
	}
}

// FetchCurrent wraps the current-weather call with structured logging
func (d *WeatherFetcherLoggingDecorator) FetchCurrent(ctx context.Context, loc ports.Location) (payload.Node, error) {
	return d.logged(ctx, endpointCurrent, loc, d.fetcher.FetchCurrent)
}

// FetchForecast wraps the forecast call with structured logging
func (d *WeatherFetcherLoggingDecorator) FetchForecast(ctx context.Context, loc ports.Location) (payload.Node, error) {
	return d.logged(ctx, endpointForecast, loc, d.fetcher.FetchForecast)
}

// GetProviderName returns the name of the wrapped fetcher with logging indication
func (d *WeatherFetcherLoggingDecorator) GetProviderName() string {
	return "logged(" + d.fetcher.GetProviderName() + ")"
}

func (d *WeatherFetcherLoggingDecorator) logged(
	ctx context.Context,
	endpoint string,
	loc ports.Location,
	call func(context.Context, ports.Location) (payload.Node, error),
) (payload.Node, error) {
	providerName := d.fetcher.GetProviderName()

	d.logger.Info("Weather API request started",
		ports.F("provider", providerName),
		ports.F("endpoint", endpoint),
		ports.F("lat", loc.Lat),
		ports.F("lon", loc.Lon),
		ports.F("event", "request"))

	startTime := time.Now()
	node, err := call(ctx, loc)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Weather API request failed",
			ports.F("provider", providerName),
			ports.F("endpoint", endpoint),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return node, err
	}

	fields := []ports.Field{
		ports.F("provider", providerName),
		ports.F("endpoint", endpoint),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("top_level_keys", node.Len()),
	}
	if name, ok := node.At("name").Text(); ok {
		fields = append(fields, ports.F("city", name))
	} else if name, ok := node.At("city", "name").Text(); ok {
		fields = append(fields, ports.F("city", name))
	}
	d.logger.Info("Weather API request completed", fields...)

	return node, nil
}
