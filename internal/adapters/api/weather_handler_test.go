package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weathernotify.app/internal/ports"
	"weathernotify.app/pkg/errors"
	"weathernotify.app/pkg/payload"
)

const currentPayload = `{
	"coord": {"lon": 139.692, "lat": 35.689},
	"weather": [{"id": 500, "main": "Rain", "description": "light rain", "icon": "10d"}],
	"main": {"temp": 18.4, "pressure": 1012, "humidity": 82},
	"dt": 1714521600,
	"timezone": 32400,
	"name": "Tokyo"
}`

// Entries at 2024-05-01 06:00, 09:00 and 12:00 UTC
const forecastPayload = `{
	"list": [
		{"dt": 1714543200, "main": {"temp": 20.1}, "weather": [{"main": "Clouds", "icon": "03d"}]},
		{"dt": 1714554000, "main": {"temp": 19.0}, "weather": [{"main": "Rain", "icon": "10d"}]},
		{"dt": 1714564800, "main": {"temp": 17.5}, "weather": [{"main": "Clear", "icon": "01n"}]}
	],
	"city": {"name": "Tokyo", "country": "JP", "timezone": 32400}
}`

var tokyoLocation = ports.Location{Lat: 35.689, Lon: 139.692}

func decodePayload(t *testing.T, raw string) payload.Node {
	t.Helper()
	node, err := payload.Decode([]byte(raw))
	require.NoError(t, err)
	return node
}

func TestWeatherHandler_GetWeather_Success(t *testing.T) {
	s := newTestServer(t)
	s.fetcher.EXPECT().FetchCurrent(mock.Anything, tokyoLocation).Return(decodePayload(t, currentPayload), nil)

	w := s.do(http.MethodGet, "/api/weather?lat=35.689&lon=139.692", "")

	require.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "https://openweathermap.org/img/wn/10d@4x.png", response["icon_url"])

	snapshot := response["snapshot"].(map[string]interface{})
	assert.Equal(t, "Tokyo", snapshot["city"].(map[string]interface{})["name"])
	assert.Equal(t, 18.4, snapshot["main"].(map[string]interface{})["temperature"])
}

func TestWeatherHandler_GetWeather_InvalidCoordinates(t *testing.T) {
	s := newTestServer(t)

	for _, target := range []string{
		"/api/weather",
		"/api/weather?lat=35.6",
		"/api/weather?lat=91&lon=0",
		"/api/weather?lat=0&lon=-181",
		"/api/weather?lat=north&lon=0",
	} {
		w := s.do(http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestWeatherHandler_GetWeather_ZeroCoordinatesAccepted(t *testing.T) {
	s := newTestServer(t)
	s.fetcher.EXPECT().FetchCurrent(mock.Anything, ports.Location{Lat: 0, Lon: 0}).Return(decodePayload(t, currentPayload), nil)

	w := s.do(http.MethodGet, "/api/weather?lat=0&lon=0", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWeatherHandler_GetWeather_ProviderFailure(t *testing.T) {
	s := newTestServer(t)
	s.fetcher.EXPECT().FetchCurrent(mock.Anything, tokyoLocation).
		Return(payload.Null(), errors.NewExternalAPIError("OpenWeatherMap returned status 401", nil))

	w := s.do(http.MethodGet, "/api/weather?lat=35.689&lon=139.692", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestWeatherHandler_GetForecast_NearestToNow(t *testing.T) {
	s := newTestServer(t)
	s.fetcher.EXPECT().FetchForecast(mock.Anything, tokyoLocation).Return(decodePayload(t, forecastPayload), nil)

	w := s.do(http.MethodGet, "/api/forecast?lat=35.689&lon=139.692", "")

	require.Equal(t, http.StatusOK, w.Code)
	var response ForecastResponse
	raw := map[string]json.RawMessage{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	require.NoError(t, json.Unmarshal(raw["icon_url"], &response.IconURL))
	require.NoError(t, json.Unmarshal(raw["selectable_times"], &response.SelectableTimes))

	assert.Equal(t, "https://openweathermap.org/img/wn/10d@4x.png", response.IconURL)
	assert.Len(t, response.SelectableTimes, 3)
	assert.True(t, response.SelectableTimes[0].Before(response.SelectableTimes[1]))
}

func TestWeatherHandler_GetForecast_At(t *testing.T) {
	s := newTestServer(t)
	s.fetcher.EXPECT().FetchForecast(mock.Anything, tokyoLocation).Return(decodePayload(t, forecastPayload), nil)

	w := s.do(http.MethodGet, "/api/forecast?lat=35.689&lon=139.692&at=2024-05-01T13:00:00Z", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "01n@4x.png")
}

func TestWeatherHandler_GetForecast_InvalidAt(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/forecast?lat=35.689&lon=139.692&at=tomorrow", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWeatherHandler_GetForecast_EmptySeries(t *testing.T) {
	s := newTestServer(t)
	s.fetcher.EXPECT().FetchForecast(mock.Anything, tokyoLocation).Return(decodePayload(t, `{"list": []}`), nil)

	w := s.do(http.MethodGet, "/api/forecast?lat=35.689&lon=139.692", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
