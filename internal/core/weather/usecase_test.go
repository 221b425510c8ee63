package weather

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	mocks "weathernotify.app/internal/mocks"
	"weathernotify.app/internal/ports"
	"weathernotify.app/pkg/errors"
	"weathernotify.app/pkg/payload"
)

type useCaseMocks struct {
	fetcher *mocks.WeatherFetcher
	cache   *mocks.PayloadCache
	config  *mocks.ConfigProvider
	logger  *mocks.Logger
	metrics *mocks.MetricsCollector
}

func newTestUseCase(t *testing.T, enableCache bool) (*UseCase, useCaseMocks) {
	m := useCaseMocks{
		fetcher: mocks.NewWeatherFetcher(t),
		cache:   mocks.NewPayloadCache(t),
		config:  mocks.NewConfigProvider(t),
		logger:  mocks.NewLogger(t),
		metrics: mocks.NewMetricsCollector(t),
	}

	m.config.EXPECT().GetWeatherConfig().Return(ports.WeatherConfig{
		EnableCache: enableCache,
		CacheTTL:    10 * time.Minute,
		AssetHost:   "openweathermap.org",
	}).Maybe()
	m.config.EXPECT().GetSchedulerConfig().Return(ports.SchedulerConfig{Location: time.UTC}).Maybe()

	// Allow logger calls at any level
	m.logger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	m.logger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	m.logger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	m.logger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()

	uc, err := NewUseCase(UseCaseDependencies{
		Fetcher: m.fetcher,
		Cache:   m.cache,
		Config:  m.config,
		Logger:  m.logger,
		Metrics: m.metrics,
	})
	require.NoError(t, err)
	return uc, m
}

var tokyo = Location{Lat: 35.689, Lon: 139.692}

func TestUseCase_GetCurrent_CacheMiss(t *testing.T) {
	uc, m := newTestUseCase(t, true)
	raw := decode(t, currentPayload)
	key := "weather:current:35.689,139.692"

	m.cache.EXPECT().Get(mock.Anything, key).Return(payload.Null(), errors.NewNotFoundError("cache miss"))
	m.metrics.EXPECT().RecordCacheMiss(mock.Anything).Return()
	m.fetcher.EXPECT().FetchCurrent(mock.Anything, ports.Location{Lat: 35.689, Lon: 139.692}).Return(raw, nil)
	m.cache.EXPECT().Set(mock.Anything, key, raw, 10*time.Minute).Return(nil)

	snapshot, err := uc.GetCurrent(context.Background(), tokyo)

	require.NoError(t, err)
	assert.Equal(t, "Tokyo", snapshot.City.Name.OrElse(""))
	assert.Equal(t, "https://openweathermap.org/img/wn/10d@4x.png", uc.IconURL(snapshot))
}

func TestUseCase_GetCurrent_CacheHit(t *testing.T) {
	uc, m := newTestUseCase(t, true)

	m.cache.EXPECT().Get(mock.Anything, "weather:current:35.689,139.692").Return(decode(t, currentPayload), nil)
	m.metrics.EXPECT().RecordCacheHit(mock.Anything).Return()

	snapshot, err := uc.GetCurrent(context.Background(), tokyo)

	require.NoError(t, err)
	assert.Equal(t, 18.4, snapshot.Main.Temperature.OrElse(0))
	m.fetcher.AssertNotCalled(t, "FetchCurrent", mock.Anything, mock.Anything)
}

func TestUseCase_GetCurrent_CacheDisabled(t *testing.T) {
	uc, m := newTestUseCase(t, false)

	m.fetcher.EXPECT().FetchCurrent(mock.Anything, mock.Anything).Return(decode(t, `{"name": "Osaka"}`), nil)

	snapshot, err := uc.GetCurrent(context.Background(), tokyo)

	require.NoError(t, err)
	assert.Equal(t, "Osaka", snapshot.City.Name.OrElse(""))
	assert.Equal(t, 0.0, snapshot.Main.Temperature.OrElse(-1))
}

func TestUseCase_GetCurrent_MalformedPayloadFallsBack(t *testing.T) {
	uc, m := newTestUseCase(t, false)

	m.fetcher.EXPECT().FetchCurrent(mock.Anything, mock.Anything).Return(decode(t, `{"main": "broken", "name": "Nagoya"}`), nil)

	snapshot, err := uc.GetCurrent(context.Background(), tokyo)

	require.NoError(t, err)
	assert.Equal(t, "Nagoya", snapshot.City.Name.OrElse(""))
	assert.Equal(t, 0.0, snapshot.Main.Temperature.OrElse(-1))
	m.logger.AssertCalled(t, "Warn", "Payload shape differs from template, using default", mock.Anything)
}

func TestUseCase_GetCurrent_InvalidLocation(t *testing.T) {
	uc, _ := newTestUseCase(t, false)

	_, err := uc.GetCurrent(context.Background(), Location{Lat: 120, Lon: 0})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestUseCase_GetCurrent_ProviderError(t *testing.T) {
	uc, m := newTestUseCase(t, false)

	m.fetcher.EXPECT().FetchCurrent(mock.Anything, mock.Anything).Return(payload.Null(), assert.AnError)

	_, err := uc.GetCurrent(context.Background(), tokyo)

	require.Error(t, err)
	assert.True(t, errors.IsExternalAPIError(err))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestUseCase_GetForecastAt(t *testing.T) {
	uc, m := newTestUseCase(t, false)

	m.fetcher.EXPECT().FetchForecast(mock.Anything, mock.Anything).Return(decode(t, `{
		"list": [
			{"dt": 1714521600, "main": {"temp": 17.5}},
			{"dt": 1714532400, "main": {"temp": 20.1}}
		]
	}`), nil)

	snapshot, err := uc.GetForecastAt(context.Background(), tokyo, time.Unix(1714530000, 0))

	require.NoError(t, err)
	assert.Equal(t, 20.1, snapshot.Main.Temperature.OrElse(0))
}

func TestUseCase_GetForecastAt_EmptySeries(t *testing.T) {
	uc, m := newTestUseCase(t, false)

	m.fetcher.EXPECT().FetchForecast(mock.Anything, mock.Anything).Return(decode(t, `{"list": []}`), nil)

	_, err := uc.GetForecastAt(context.Background(), tokyo, time.Now())

	require.Error(t, err)
	assert.True(t, errors.IsEmptySeriesError(err))
}

func TestNewUseCase_MissingDependencies(t *testing.T) {
	_, err := NewUseCase(UseCaseDependencies{})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}
