package external

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"weathernotify.app/internal/ports"
	"weathernotify.app/pkg/errors"
	"weathernotify.app/pkg/payload"
)

const (
	defaultOpenWeatherMapURL = "https://api.openweathermap.org/data/2.5"
	endpointCurrent          = "weather"
	endpointForecast         = "forecast"
)

// OpenWeatherMapProviderAdapter implements WeatherFetcher port for OpenWeatherMap
type OpenWeatherMapProviderAdapter struct {
	apiKey  string
	baseURL string
	lang    string
	client  HTTPClient
	backoff BackoffConfig
	circuit *gobreaker.CircuitBreaker
	metrics ports.MetricsCollector
	logger  ports.Logger
}

// OpenWeatherMapProviderParams holds parameters for creating OpenWeatherMap provider
type OpenWeatherMapProviderParams struct {
	APIKey     string
	BaseURL    string
	Lang       string
	Timeout    time.Duration
	MaxRetries int
	Client     HTTPClient
	Metrics    ports.MetricsCollector
	Logger     ports.Logger
}

// NewOpenWeatherMapProviderAdapter creates a new OpenWeatherMap provider adapter
func NewOpenWeatherMapProviderAdapter(params OpenWeatherMapProviderParams) *OpenWeatherMapProviderAdapter {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenWeatherMapURL
	}

	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := params.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	return &OpenWeatherMapProviderAdapter{
		apiKey:  params.APIKey,
		baseURL: baseURL,
		lang:    params.Lang,
		client:  client,
		backoff: BackoffConfig{
			MaxRetries:      params.MaxRetries,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		circuit: newCircuitBreaker("openweathermap"),
		metrics: params.Metrics,
		logger:  params.Logger,
	}
}

// FetchCurrent retrieves the current-weather payload for a location
func (p *OpenWeatherMapProviderAdapter) FetchCurrent(ctx context.Context, loc ports.Location) (payload.Node, error) {
	return p.fetch(ctx, endpointCurrent, loc)
}

// FetchForecast retrieves the 3-hourly forecast payload for a location
func (p *OpenWeatherMapProviderAdapter) FetchForecast(ctx context.Context, loc ports.Location) (payload.Node, error) {
	return p.fetch(ctx, endpointForecast, loc)
}

// GetProviderName returns the name of this weather provider
func (p *OpenWeatherMapProviderAdapter) GetProviderName() string {
	return "openweathermap"
}

func (p *OpenWeatherMapProviderAdapter) fetch(ctx context.Context, endpoint string, loc ports.Location) (payload.Node, error) {
	node, err := p.doFetch(ctx, endpoint, loc)
	if p.metrics != nil {
		p.metrics.RecordWeatherAPICall(ctx, p.GetProviderName(), endpoint, err == nil)
	}
	return node, err
}

func (p *OpenWeatherMapProviderAdapter) doFetch(ctx context.Context, endpoint string, loc ports.Location) (payload.Node, error) {
	resp, err := doRequestWithResilience(ctx, p.client, p.backoff, p.circuit, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, p.endpointURL(endpoint, loc), nil)
	})
	if err != nil {
		var status *statusError
		if stderrors.As(err, &status) {
			if status.code == http.StatusNotFound {
				return payload.Null(), errors.NewNotFoundError("location not found")
			}
			return payload.Null(), errors.NewExternalAPIError(fmt.Sprintf("OpenWeatherMap returned status %d", status.code), nil)
		}
		return payload.Null(), errors.NewExternalAPIError("failed to call OpenWeatherMap", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			p.logger.Warn("Failed to close OpenWeatherMap response body", ports.F("error", closeErr))
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return payload.Null(), errors.NewExternalAPIError("failed to read OpenWeatherMap response", err)
	}

	node, err := payload.Decode(raw)
	if err != nil {
		return payload.Null(), errors.NewExternalAPIError("failed to decode OpenWeatherMap response", err)
	}
	return node, nil
}

func (p *OpenWeatherMapProviderAdapter) endpointURL(endpoint string, loc ports.Location) string {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(loc.Lon, 'f', -1, 64))
	query.Set("appid", p.apiKey)
	query.Set("units", "metric")
	if p.lang != "" {
		query.Set("lang", p.lang)
	}
	return fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, query.Encode())
}
