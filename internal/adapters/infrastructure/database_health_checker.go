package infrastructure

import (
	"context"
	"time"

	"gorm.io/gorm"
	"weathernotify.app/internal/ports"
)

const databasePingTimeout = 3 * time.Second

// DatabaseHealthChecker pings the subscription store and reports pool usage
type DatabaseHealthChecker struct {
	db *gorm.DB
}

func NewDatabaseHealthChecker(db *gorm.DB) *DatabaseHealthChecker {
	return &DatabaseHealthChecker{db: db}
}

// Check pings the database within a short deadline
func (d *DatabaseHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{Component: "database", Status: ports.StatusHealthy}

	if d.db == nil {
		status.Fail("database is not configured")
		return status
	}
	status.Details = map[string]interface{}{"dialect": d.db.Dialector.Name()}

	sqlDB, err := d.db.DB()
	if err != nil {
		status.Fail("connection pool unavailable: " + err.Error())
		return status
	}

	pingCtx, cancel := context.WithTimeout(ctx, databasePingTimeout)
	defer cancel()

	started := time.Now()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		status.Fail(err.Error())
		return status
	}

	stats := sqlDB.Stats()
	status.Details["ping_ms"] = time.Since(started).Milliseconds()
	status.Details["open_connections"] = stats.OpenConnections
	status.Details["in_use"] = stats.InUse
	return status
}
