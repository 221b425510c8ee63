package infrastructure

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"weathernotify.app/internal/ports"
)

// MetricsCollectorAdapter implements the MetricsCollector port with Prometheus collectors
type MetricsCollectorAdapter struct {
	ticks         prometheus.Counter
	tickOutcomes  *prometheus.CounterVec
	tickDuration  prometheus.Histogram
	deliveries    *prometheus.CounterVec
	weatherCalls  *prometheus.CounterVec
	cacheRequests *prometheus.CounterVec
}

// NewMetricsCollectorAdapter registers the service collectors with registerer.
// A nil registerer uses the default Prometheus registry.
func NewMetricsCollectorAdapter(registerer prometheus.Registerer) *MetricsCollectorAdapter {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &MetricsCollectorAdapter{
		ticks: factory.NewCounter(prometheus.CounterOpts{
			Name: "weathernotify_ticks_total",
			Help: "The total number of scheduler ticks",
		}),
		tickOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "weathernotify_tick_subscriptions_total",
			Help: "Subscriptions handled by scheduler ticks, by outcome",
		}, []string{"outcome"}),
		tickDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "weathernotify_tick_duration_seconds",
			Help:    "Scheduler tick duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "weathernotify_deliveries_total",
			Help: "Notification deliveries by notifier and success",
		}, []string{"notifier", "success"}),
		weatherCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "weathernotify_weather_api_calls_total",
			Help: "Weather provider calls by provider, endpoint and success",
		}, []string{"provider", "endpoint", "success"}),
		cacheRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "weathernotify_payload_cache_requests_total",
			Help: "Payload cache lookups by result",
		}, []string{"result"}),
	}
}

// RecordTick records the outcome counts of one tick
func (m *MetricsCollectorAdapter) RecordTick(ctx context.Context, result ports.TickResult) {
	m.ticks.Inc()
	m.tickOutcomes.WithLabelValues("due").Add(float64(result.Due))
	m.tickOutcomes.WithLabelValues("skipped").Add(float64(result.Skipped))
	m.tickOutcomes.WithLabelValues("fired").Add(float64(result.Fired))
	m.tickOutcomes.WithLabelValues("failed").Add(float64(result.Failed))
	m.tickOutcomes.WithLabelValues("conflict").Add(float64(result.Conflict))
	m.tickDuration.Observe(result.Duration.Seconds())
}

// RecordDelivery records one notification attempt
func (m *MetricsCollectorAdapter) RecordDelivery(ctx context.Context, notifier string, success bool) {
	m.deliveries.WithLabelValues(notifier, strconv.FormatBool(success)).Inc()
}

// RecordWeatherAPICall records one provider call
func (m *MetricsCollectorAdapter) RecordWeatherAPICall(ctx context.Context, provider, endpoint string, success bool) {
	m.weatherCalls.WithLabelValues(provider, endpoint, strconv.FormatBool(success)).Inc()
}

// RecordCacheHit records a payload cache hit
func (m *MetricsCollectorAdapter) RecordCacheHit(ctx context.Context) {
	m.cacheRequests.WithLabelValues("hit").Inc()
}

// RecordCacheMiss records a payload cache miss
func (m *MetricsCollectorAdapter) RecordCacheMiss(ctx context.Context) {
	m.cacheRequests.WithLabelValues("miss").Inc()
}
