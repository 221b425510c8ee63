package infrastructure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathernotify.app/internal/config"
	"weathernotify.app/pkg/errors"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Port: 8080},
		Database: config.DatabaseConfig{Driver: "sqlite", SQLitePath: "test.db"},
		Weather: config.WeatherConfig{
			AssetHost:       "openweathermap.org",
			EnableCache:     true,
			CacheTTLMinutes: 10,
		},
		Scheduler: config.SchedulerConfig{
			Timezone:               "Asia/Tokyo",
			DefaultTimes:           []string{"00:05", "07:30"},
			WindowMinutes:          1,
			DeliveryTimeoutSeconds: 30,
		},
		Notifier: config.NotifierConfig{Type: config.NotifierTypeLog, DiscordBaseURL: "https://discord.com/api/v10"},
		Cache:    config.CacheConfig{Type: config.CacheTypeMemory},
	}
}

func TestConfigProviderAdapter_SchedulerConfig(t *testing.T) {
	adapter, err := NewConfigProviderAdapter(testConfig())
	require.NoError(t, err)

	scheduler := adapter.GetSchedulerConfig()

	assert.Equal(t, "Asia/Tokyo", scheduler.Location.String())
	assert.Equal(t, []int{5, 450}, scheduler.DefaultTimes)
	assert.Equal(t, time.Minute, scheduler.Window)
	assert.Equal(t, 30*time.Second, scheduler.DeliveryTimeout)

	scheduler.DefaultTimes[0] = 999
	assert.Equal(t, 5, adapter.GetSchedulerConfig().DefaultTimes[0])
}

func TestConfigProviderAdapter_Sections(t *testing.T) {
	adapter, err := NewConfigProviderAdapter(testConfig())
	require.NoError(t, err)

	weather := adapter.GetWeatherConfig()
	assert.True(t, weather.EnableCache)
	assert.Equal(t, 10*time.Minute, weather.CacheTTL)
	assert.Equal(t, "openweathermap.org", weather.AssetHost)

	assert.Equal(t, 8080, adapter.GetServerConfig().Port)
	assert.Equal(t, "sqlite", adapter.GetDatabaseConfig().Driver)
	assert.Equal(t, "memory", adapter.GetCacheConfig().Type)
	assert.Equal(t, "log", adapter.GetNotifierConfig().Type)
}

func TestConfigProviderAdapter_InvalidScheduler(t *testing.T) {
	cfg := testConfig()
	cfg.Scheduler.Timezone = "Mars/Olympus"

	_, err := NewConfigProviderAdapter(cfg)
	assert.True(t, errors.IsConfigurationError(err))

	cfg = testConfig()
	cfg.Scheduler.DefaultTimes = []string{"25:00"}

	_, err = NewConfigProviderAdapter(cfg)
	assert.True(t, errors.IsConfigurationError(err))
}
