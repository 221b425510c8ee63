package ports

import "code.cloudfoundry.org/clock"

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Weather
	WeatherFetcher WeatherFetcher
	PayloadCache   PayloadCache

	// Subscription
	SubscriptionRepository SubscriptionRepository

	// Delivery
	Notifier Notifier

	// Cache
	CacheMetrics CacheMetrics

	// Infrastructure
	ConfigProvider ConfigProvider
	Logger         Logger
	Metrics        MetricsCollector
	Clock          clock.Clock
	Database       interface{}
}
