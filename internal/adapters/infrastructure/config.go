package infrastructure

import (
	"time"

	"weathernotify.app/internal/config"
	"weathernotify.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config       *config.Config
	location     *time.Location
	defaultTimes []int
}

// NewConfigProviderAdapter creates a new config provider adapter. The
// scheduler zone and default times are resolved once here.
func NewConfigProviderAdapter(cfg *config.Config) (*ConfigProviderAdapter, error) {
	location, err := cfg.Scheduler.Location()
	if err != nil {
		return nil, err
	}
	defaultTimes, err := cfg.Scheduler.DefaultMinutes()
	if err != nil {
		return nil, err
	}

	return &ConfigProviderAdapter{
		config:       cfg,
		location:     location,
		defaultTimes: defaultTimes,
	}, nil
}

// GetDatabaseConfig returns database configuration
func (c *ConfigProviderAdapter) GetDatabaseConfig() ports.DatabaseConfig {
	return ports.DatabaseConfig{
		Driver:     c.config.Database.Driver,
		Host:       c.config.Database.Host,
		Port:       c.config.Database.Port,
		User:       c.config.Database.User,
		Password:   c.config.Database.Password,
		Name:       c.config.Database.Name,
		SSLMode:    c.config.Database.SSLMode,
		SQLitePath: c.config.Database.SQLitePath,
	}
}

// GetServerConfig returns server configuration
func (c *ConfigProviderAdapter) GetServerConfig() ports.ServerConfig {
	return ports.ServerConfig{
		Port: c.config.Server.Port,
	}
}

// GetWeatherConfig returns weather configuration
func (c *ConfigProviderAdapter) GetWeatherConfig() ports.WeatherConfig {
	return ports.WeatherConfig{
		EnableCache: c.config.Weather.EnableCache,
		CacheTTL:    time.Duration(c.config.Weather.CacheTTLMinutes) * time.Minute,
		AssetHost:   c.config.Weather.AssetHost,
	}
}

// GetCacheConfig returns cache configuration
func (c *ConfigProviderAdapter) GetCacheConfig() ports.CacheConfig {
	return ports.CacheConfig{
		Type: c.config.Cache.Type.String(),
		Redis: ports.RedisConfig{
			Addr:         c.config.Cache.Redis.Addr,
			Password:     c.config.Cache.Redis.Password,
			DB:           c.config.Cache.Redis.DB,
			DialTimeout:  c.config.Cache.Redis.DialTimeout,
			ReadTimeout:  c.config.Cache.Redis.ReadTimeout,
			WriteTimeout: c.config.Cache.Redis.WriteTimeout,
		},
	}
}

// GetSchedulerConfig returns scheduler configuration
func (c *ConfigProviderAdapter) GetSchedulerConfig() ports.SchedulerConfig {
	defaultTimes := make([]int, len(c.defaultTimes))
	copy(defaultTimes, c.defaultTimes)

	return ports.SchedulerConfig{
		Location:        c.location,
		DefaultTimes:    defaultTimes,
		Window:          time.Duration(c.config.Scheduler.WindowMinutes) * time.Minute,
		DeliveryTimeout: time.Duration(c.config.Scheduler.DeliveryTimeoutSeconds) * time.Second,
	}
}

// GetNotifierConfig returns delivery configuration
func (c *ConfigProviderAdapter) GetNotifierConfig() ports.NotifierConfig {
	return ports.NotifierConfig{
		Type:    c.config.Notifier.Type.String(),
		BaseURL: c.config.Notifier.DiscordBaseURL,
	}
}
