package weather

import (
	"context"
	"fmt"
	"time"

	"weathernotify.app/internal/ports"
	"weathernotify.app/pkg/errors"
	"weathernotify.app/pkg/payload"
)

type UseCase struct {
	fetcher ports.WeatherFetcher
	cache   ports.PayloadCache
	config  ports.ConfigProvider
	logger  ports.Logger
	metrics ports.MetricsCollector
}

type UseCaseDependencies struct {
	Fetcher ports.WeatherFetcher
	Cache   ports.PayloadCache
	Config  ports.ConfigProvider
	Logger  ports.Logger
	Metrics ports.MetricsCollector
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Fetcher == nil {
		return nil, errors.NewValidationError("weather fetcher is required")
	}
	if deps.Cache == nil {
		return nil, errors.NewValidationError("cache is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	return &UseCase{
		fetcher: deps.Fetcher,
		cache:   deps.Cache,
		config:  deps.Config,
		logger:  deps.Logger,
		metrics: deps.Metrics,
	}, nil
}

type payloadKind string

const (
	kindCurrent  payloadKind = "current"
	kindForecast payloadKind = "forecast"
)

// GetCurrent fetches the current weather at loc and normalises it into a snapshot
func (uc *UseCase) GetCurrent(ctx context.Context, loc Location) (Snapshot, error) {
	if err := loc.IsValid(); err != nil {
		return Snapshot{}, errors.NewValidationError("invalid location: " + err.Error())
	}

	raw, err := uc.getPayloadWithCache(ctx, kindCurrent, loc)
	if err != nil {
		uc.logger.Error("Failed to get current weather",
			ports.F("location", loc.String()),
			ports.F("error", err))
		return Snapshot{}, fmt.Errorf("get current weather at %s: %w", loc, err)
	}

	merged := uc.normalize(kindCurrent, CurrentTemplate(), raw)
	snapshot := NewCurrentSnapshot(merged, uc.zone())

	uc.logger.Debug("Current weather retrieved",
		ports.F("location", loc.String()),
		ports.F("temperature", snapshot.Main.Temperature.String()))
	return snapshot, nil
}

// GetForecast fetches the forecast at loc and normalises it into a series
func (uc *UseCase) GetForecast(ctx context.Context, loc Location) (Series, error) {
	if err := loc.IsValid(); err != nil {
		return Series{}, errors.NewValidationError("invalid location: " + err.Error())
	}

	raw, err := uc.getPayloadWithCache(ctx, kindForecast, loc)
	if err != nil {
		uc.logger.Error("Failed to get forecast",
			ports.F("location", loc.String()),
			ports.F("error", err))
		return Series{}, fmt.Errorf("get forecast at %s: %w", loc, err)
	}

	merged := uc.normalize(kindForecast, ForecastTemplate(), raw)
	series := NewForecastSeries(merged, uc.zone())

	uc.logger.Debug("Forecast retrieved",
		ports.F("location", loc.String()),
		ports.F("entries", series.Len()))
	return series, nil
}

// GetForecastAt returns the forecast entry closest to t
func (uc *UseCase) GetForecastAt(ctx context.Context, loc Location, t time.Time) (Snapshot, error) {
	series, err := uc.GetForecast(ctx, loc)
	if err != nil {
		return Snapshot{}, err
	}
	snapshot, err := series.Nearest(t)
	if err != nil {
		return Snapshot{}, fmt.Errorf("select forecast entry: %w", err)
	}
	return snapshot, nil
}

// IconURL derives the icon asset URL using the configured asset host
func (uc *UseCase) IconURL(snapshot Snapshot) string {
	return snapshot.IconURL(uc.config.GetWeatherConfig().AssetHost)
}

func (uc *UseCase) normalize(kind payloadKind, template, raw payload.Node) payload.Node {
	for _, mismatch := range payload.Mismatches(template, raw) {
		uc.logger.Warn("Payload shape differs from template, using default",
			ports.F("payload", string(kind)),
			ports.F("error", mismatch.Err()))
	}
	return payload.Merge(template, raw)
}

func (uc *UseCase) getPayloadWithCache(ctx context.Context, kind payloadKind, loc Location) (payload.Node, error) {
	weatherConfig := uc.config.GetWeatherConfig()
	if !weatherConfig.EnableCache {
		return uc.fetch(ctx, kind, loc)
	}

	cacheKey := fmt.Sprintf("weather:%s:%s", kind, loc)
	cached, err := uc.cache.Get(ctx, cacheKey)
	if err == nil {
		uc.metrics.RecordCacheHit(ctx)
		uc.logger.Debug("Payload found in cache", ports.F("key", cacheKey))
		return cached, nil
	}
	uc.metrics.RecordCacheMiss(ctx)

	raw, err := uc.fetch(ctx, kind, loc)
	if err != nil {
		return payload.Null(), err
	}

	if cacheErr := uc.cache.Set(ctx, cacheKey, raw, weatherConfig.CacheTTL); cacheErr != nil {
		uc.logger.Warn("Failed to cache weather payload",
			ports.F("key", cacheKey),
			ports.F("error", cacheErr))
	}

	return raw, nil
}

func (uc *UseCase) fetch(ctx context.Context, kind payloadKind, loc Location) (payload.Node, error) {
	portsLoc := ports.Location{Lat: loc.Lat, Lon: loc.Lon}

	var (
		raw payload.Node
		err error
	)
	switch kind {
	case kindForecast:
		raw, err = uc.fetcher.FetchForecast(ctx, portsLoc)
	default:
		raw, err = uc.fetcher.FetchCurrent(ctx, portsLoc)
	}
	if err != nil {
		if errors.IsNotFoundError(err) || errors.IsExternalAPIError(err) {
			return payload.Null(), err
		}
		return payload.Null(), errors.NewExternalAPIError("weather provider failed", err)
	}
	return raw, nil
}

func (uc *UseCase) zone() *time.Location {
	if loc := uc.config.GetSchedulerConfig().Location; loc != nil {
		return loc
	}
	return time.UTC
}
