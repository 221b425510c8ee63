package ports

import "context"

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// HealthChecker reports the state of one component
type HealthChecker interface {
	Check(ctx context.Context) HealthStatus
}

// HealthStatus is one component's entry in the health report
type HealthStatus struct {
	Component string                 `json:"component"`
	Status    string                 `json:"status"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// Fail marks the status unhealthy with reason
func (h *HealthStatus) Fail(reason string) {
	h.Status = StatusUnhealthy
	h.Error = reason
}

// IsHealthy reports whether the component is healthy
func (h HealthStatus) IsHealthy() bool {
	return h.Status == StatusHealthy
}

// SystemHealthChecker runs every registered component check
type SystemHealthChecker interface {
	CheckAll(ctx context.Context) map[string]HealthStatus
}
