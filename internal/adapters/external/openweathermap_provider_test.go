package external

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weathernotify.app/internal/mocks"
	"weathernotify.app/internal/ports"
	"weathernotify.app/pkg/errors"
)

// Helper function to set up a permissive logger mock
func setupLoggerMock(t *testing.T) *mocks.Logger {
	mockLogger := mocks.NewLogger(t)
	mockLogger.EXPECT().Debug(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Info(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Warn(mock.Anything, mock.Anything).Maybe()
	mockLogger.EXPECT().Error(mock.Anything, mock.Anything).Maybe()
	return mockLogger
}

var tokyo = ports.Location{Lat: 35.6895, Lon: 139.6917}

func TestOpenWeatherMapProvider_FetchCurrent_Success(t *testing.T) {
	mockLogger := setupLoggerMock(t)
	mockMetrics := mocks.NewMetricsCollector(t)
	mockMetrics.EXPECT().RecordWeatherAPICall(mock.Anything, "openweathermap", "weather", true).Return().Once()

	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		query := r.URL.Query()
		assert.Equal(t, "35.6895", query.Get("lat"))
		assert.Equal(t, "139.6917", query.Get("lon"))
		assert.Equal(t, "test-api-key", query.Get("appid"))
		assert.Equal(t, "metric", query.Get("units"))
		assert.Equal(t, "ja", query.Get("lang"))

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{"name": "Tokyo", "main": {"temp": 15.5, "humidity": 78}, "weather": [{"description": "小雨", "icon": "10d"}]}`))
		assert.NoError(t, err)
	}))
	defer mockServer.Close()

	provider := NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{
		APIKey:  "test-api-key",
		BaseURL: mockServer.URL,
		Lang:    "ja",
		Metrics: mockMetrics,
		Logger:  mockLogger,
	})

	node, err := provider.FetchCurrent(context.Background(), tokyo)

	require.NoError(t, err)
	name, ok := node.At("name").Text()
	assert.True(t, ok)
	assert.Equal(t, "Tokyo", name)
	temp, ok := node.At("main", "temp").Float()
	assert.True(t, ok)
	assert.Equal(t, 15.5, temp)
	first, ok := node.At("weather").Index(0)
	require.True(t, ok)
	icon, _ := first.At("icon").Text()
	assert.Equal(t, "10d", icon)
}

func TestOpenWeatherMapProvider_FetchForecast_UsesForecastEndpoint(t *testing.T) {
	mockLogger := setupLoggerMock(t)

	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("lang"))
		_, err := w.Write([]byte(`{"cnt": 1, "list": [{"dt": 1714575600}], "city": {"name": "Tokyo"}}`))
		assert.NoError(t, err)
	}))
	defer mockServer.Close()

	provider := NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{
		APIKey:  "test-api-key",
		BaseURL: mockServer.URL,
		Logger:  mockLogger,
	})

	node, err := provider.FetchForecast(context.Background(), tokyo)

	require.NoError(t, err)
	assert.Equal(t, 1, node.At("list").Len())
}

func TestOpenWeatherMapProvider_ClientErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		wantType    errors.ErrorType
		wantMessage string
	}{
		{name: "not found", status: http.StatusNotFound, wantType: errors.NotFoundError, wantMessage: "location not found"},
		{name: "unauthorized", status: http.StatusUnauthorized, wantType: errors.ExternalAPIError, wantMessage: "returned status 401"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"message": "rejected"}`))
			}))
			defer mockServer.Close()

			provider := NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{
				APIKey:     "test-api-key",
				BaseURL:    mockServer.URL,
				MaxRetries: 2,
				Logger:     setupLoggerMock(t),
			})

			_, err := provider.FetchCurrent(context.Background(), tokyo)

			require.Error(t, err)
			var appErr *errors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantType, appErr.Type)
			assert.Contains(t, appErr.Message, tt.wantMessage)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "client errors are not retried")
		})
	}
}

func TestOpenWeatherMapProvider_RetriesServerErrors(t *testing.T) {
	var calls int32
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"name": "Tokyo"}`))
	}))
	defer mockServer.Close()

	provider := NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{
		APIKey:     "test-api-key",
		BaseURL:    mockServer.URL,
		MaxRetries: 1,
		Logger:     setupLoggerMock(t),
	})

	node, err := provider.FetchCurrent(context.Background(), tokyo)

	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	name, _ := node.At("name").Text()
	assert.Equal(t, "Tokyo", name)
}

func TestOpenWeatherMapProvider_ServerErrorExhaustsRetries(t *testing.T) {
	mockMetrics := mocks.NewMetricsCollector(t)
	mockMetrics.EXPECT().RecordWeatherAPICall(mock.Anything, "openweathermap", "forecast", false).Return().Once()

	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer mockServer.Close()

	provider := NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{
		APIKey:  "test-api-key",
		BaseURL: mockServer.URL,
		Metrics: mockMetrics,
		Logger:  setupLoggerMock(t),
	})

	_, err := provider.FetchForecast(context.Background(), tokyo)

	require.Error(t, err)
	assert.True(t, errors.IsExternalAPIError(err))
	assert.ErrorIs(t, err, errServerError)
}

func TestOpenWeatherMapProvider_InvalidJSON(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"invalid": json`))
	}))
	defer mockServer.Close()

	provider := NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{
		APIKey:  "test-api-key",
		BaseURL: mockServer.URL,
		Logger:  setupLoggerMock(t),
	})

	_, err := provider.FetchCurrent(context.Background(), tokyo)

	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ExternalAPIError, appErr.Type)
	assert.Contains(t, appErr.Message, "failed to decode")
}

func TestOpenWeatherMapProvider_CancelledContext(t *testing.T) {
	provider := NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{
		APIKey:  "test-api-key",
		BaseURL: "http://192.0.2.1:9999",
		Logger:  setupLoggerMock(t),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := provider.FetchCurrent(ctx, tokyo)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "failed to call OpenWeatherMap")
}

func TestOpenWeatherMapProvider_GetProviderName(t *testing.T) {
	provider := NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{
		APIKey: "test-api-key",
		Logger: setupLoggerMock(t),
	})

	assert.Equal(t, "openweathermap", provider.GetProviderName())
	assert.Equal(t, defaultOpenWeatherMapURL, provider.baseURL)
}
