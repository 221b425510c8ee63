package infrastructure

import (
	"context"

	"weathernotify.app/internal/ports"
)

// SystemHealthChecker aggregates all health checks
type SystemHealthChecker struct {
	checkers       map[string]ports.HealthChecker
	configProvider ports.ConfigProvider
}

// SystemHealthCheckerConfig holds the configuration for creating a system health checker
type SystemHealthCheckerConfig struct {
	Checkers       map[string]ports.HealthChecker
	ConfigProvider ports.ConfigProvider
}

// NewSystemHealthChecker creates a new system health checker
func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	checkers := make(map[string]ports.HealthChecker, len(config.Checkers))
	for name, checker := range config.Checkers {
		if checker != nil {
			checkers[name] = checker
		}
	}

	return &SystemHealthChecker{
		checkers:       checkers,
		configProvider: config.ConfigProvider,
	}
}

// CheckAll performs health checks on all components
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus, len(s.checkers)+1)

	for name, checker := range s.checkers {
		results[name] = checker.Check(ctx)
	}

	if s.configProvider != nil {
		scheduler := s.configProvider.GetSchedulerConfig()
		zone := "UTC"
		if scheduler.Location != nil {
			zone = scheduler.Location.String()
		}
		results["config"] = ports.HealthStatus{
			Component: "config",
			Status:    ports.StatusHealthy,
			Details: map[string]interface{}{
				"timezone":      zone,
				"default_times": len(scheduler.DefaultTimes),
				"window":        scheduler.Window.String(),
			},
		}
	}

	return results
}

// IsHealthy reports whether every status is healthy
func IsHealthy(statuses map[string]ports.HealthStatus) bool {
	for _, status := range statuses {
		if !status.IsHealthy() {
			return false
		}
	}
	return true
}
