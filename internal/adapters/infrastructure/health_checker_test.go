package infrastructure

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"weathernotify.app/internal/mocks"
	"weathernotify.app/internal/ports"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error {
	return p.err
}

func TestDatabaseHealthChecker_Check(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	status := NewDatabaseHealthChecker(db).Check(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "sqlite", status.Details["dialect"])
	assert.Contains(t, status.Details, "open_connections")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	status = NewDatabaseHealthChecker(db).Check(context.Background())
	assert.Equal(t, "unhealthy", status.Status)
	assert.NotEmpty(t, status.Error)

	status = NewDatabaseHealthChecker(nil).Check(context.Background())
	assert.Equal(t, "unhealthy", status.Status)
}

func TestCacheHealthChecker_Check(t *testing.T) {
	assert.Equal(t, "healthy", NewCacheHealthChecker("memory", nil).Check(context.Background()).Status)
	assert.Equal(t, "healthy", NewCacheHealthChecker("redis", stubPinger{}).Check(context.Background()).Status)

	status := NewCacheHealthChecker("redis", stubPinger{err: errors.New("connection refused")}).Check(context.Background())
	assert.Equal(t, "unhealthy", status.Status)
	assert.Equal(t, "connection refused", status.Error)
	assert.Equal(t, "redis", status.Details["type"])
}

func TestComponentHealthCheckers(t *testing.T) {
	fetcher := mocks.NewWeatherFetcher(t)
	fetcher.EXPECT().GetProviderName().Return("openweathermap")
	notifier := mocks.NewNotifier(t)
	notifier.EXPECT().GetNotifierName().Return("discord")

	weatherStatus := NewWeatherAPIHealthChecker(fetcher).Check(context.Background())
	assert.Equal(t, "healthy", weatherStatus.Status)
	assert.Equal(t, "openweathermap", weatherStatus.Details["name"])

	assert.Equal(t, "healthy", NewNotifierHealthChecker(notifier).Check(context.Background()).Status)
	assert.Equal(t, "unhealthy", NewNotifierHealthChecker(nil).Check(context.Background()).Status)
}

func TestSystemHealthChecker_CheckAll(t *testing.T) {
	configProvider := mocks.NewConfigProvider(t)
	configProvider.EXPECT().GetSchedulerConfig().Return(ports.SchedulerConfig{
		Location:     time.FixedZone("JST", 9*60*60),
		DefaultTimes: []int{5},
		Window:       time.Minute,
	})

	checker := NewSystemHealthChecker(SystemHealthCheckerConfig{
		Checkers: map[string]ports.HealthChecker{
			"cache":   NewCacheHealthChecker("memory", nil),
			"broken":  NewCacheHealthChecker("redis", stubPinger{err: errors.New("down")}),
			"missing": nil,
		},
		ConfigProvider: configProvider,
	})

	results := checker.CheckAll(context.Background())

	assert.Len(t, results, 3)
	assert.Equal(t, "JST", results["config"].Details["timezone"])
	assert.Equal(t, "1m0s", results["config"].Details["window"])
	assert.False(t, IsHealthy(results))

	delete(results, "broken")
	assert.True(t, IsHealthy(results))
}
