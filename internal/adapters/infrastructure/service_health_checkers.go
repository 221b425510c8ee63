package infrastructure

import (
	"context"

	"weathernotify.app/internal/ports"
)

// Pinger is implemented by cache backends that can verify their connection
type Pinger interface {
	Ping(ctx context.Context) error
}

// CacheHealthChecker implements cache backend health checking
type CacheHealthChecker struct {
	cacheType string
	pinger    Pinger
}

// NewCacheHealthChecker creates a cache health checker. A nil pinger marks an
// in-process cache that is always available.
func NewCacheHealthChecker(cacheType string, pinger Pinger) *CacheHealthChecker {
	return &CacheHealthChecker{cacheType: cacheType, pinger: pinger}
}

// Check verifies cache connectivity
func (c *CacheHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "cache",
		Status:    ports.StatusHealthy,
		Details: map[string]interface{}{
			"type": c.cacheType,
		},
	}

	if c.pinger == nil {
		return status
	}
	if err := c.pinger.Ping(ctx); err != nil {
		status.Fail(err.Error())
	}
	return status
}

// ComponentHealthChecker reports a configured collaborator such as the weather
// fetcher or the notifier
type ComponentHealthChecker struct {
	component string
	name      string
}

// NewWeatherAPIHealthChecker creates a weather API health checker
func NewWeatherAPIHealthChecker(fetcher ports.WeatherFetcher) *ComponentHealthChecker {
	checker := &ComponentHealthChecker{component: "weatherAPI"}
	if fetcher != nil {
		checker.name = fetcher.GetProviderName()
	}
	return checker
}

// NewNotifierHealthChecker creates a notifier health checker
func NewNotifierHealthChecker(notifier ports.Notifier) *ComponentHealthChecker {
	checker := &ComponentHealthChecker{component: "notifier"}
	if notifier != nil {
		checker.name = notifier.GetNotifierName()
	}
	return checker
}

// Check reports whether the collaborator is configured
func (c *ComponentHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: c.component,
		Status:    ports.StatusHealthy,
		Details: map[string]interface{}{
			"name": c.name,
		},
	}

	if c.name == "" {
		status.Fail(c.component + " is not available")
	}
	return status
}
