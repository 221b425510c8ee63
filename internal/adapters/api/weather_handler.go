package api

import (
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"weathernotify.app/internal/core/weather"
	"weathernotify.app/pkg/errors"
)

// LocationQuery binds the coordinate query parameters
type LocationQuery struct {
	Lat *float64 `form:"lat" binding:"required,min=-90,max=90"`
	Lon *float64 `form:"lon" binding:"required,min=-180,max=180"`
}

// ForecastQuery binds the forecast query parameters
type ForecastQuery struct {
	LocationQuery
	At string `form:"at"`
}

func (q LocationQuery) location() weather.Location {
	return weather.Location{Lat: *q.Lat, Lon: *q.Lon}
}

// WeatherResponse represents the HTTP response for a snapshot
type WeatherResponse struct {
	Snapshot weather.Snapshot `json:"snapshot"`
	IconURL  string           `json:"icon_url"`
}

// ForecastResponse represents the HTTP response for a forecast lookup
type ForecastResponse struct {
	Snapshot        weather.Snapshot `json:"snapshot"`
	IconURL         string           `json:"icon_url"`
	SelectableTimes []time.Time      `json:"selectable_times"`
}

// getWeather handles GET /api/weather requests
func (s *HTTPServerAdapter) getWeather(c *gin.Context) {
	var query LocationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		s.handleError(c, errors.NewValidationError("lat and lon must be valid coordinates"))
		return
	}

	loc := query.location()
	slog.Debug("Getting current weather", "location", loc.String())

	snapshot, err := s.weatherUseCase.GetCurrent(c.Request.Context(), loc)
	if err != nil {
		slog.Error("Weather use case error", "error", err, "location", loc.String())
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, WeatherResponse{
		Snapshot: snapshot,
		IconURL:  s.weatherUseCase.IconURL(snapshot),
	})
}

// getForecast handles GET /api/forecast requests
func (s *HTTPServerAdapter) getForecast(c *gin.Context) {
	var query ForecastQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		s.handleError(c, errors.NewValidationError("lat and lon must be valid coordinates and at must be RFC3339"))
		return
	}

	at := s.clock.Now()
	if query.At != "" {
		parsed, err := time.Parse(time.RFC3339, query.At)
		if err != nil {
			s.handleError(c, errors.NewValidationError("at must be RFC3339"))
			return
		}
		at = parsed
	}

	loc := query.location()
	series, err := s.weatherUseCase.GetForecast(c.Request.Context(), loc)
	if err != nil {
		slog.Error("Forecast use case error", "error", err, "location", loc.String())
		s.handleError(c, err)
		return
	}

	snapshot, err := series.Nearest(at)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ForecastResponse{
		Snapshot:        snapshot,
		IconURL:         s.weatherUseCase.IconURL(snapshot),
		SelectableTimes: series.SelectableTimes(weather.MaxSelectableTimes),
	})
}
