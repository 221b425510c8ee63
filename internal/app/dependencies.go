package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"weathernotify.app/internal/adapters/database"
	"weathernotify.app/internal/adapters/external"
	"weathernotify.app/internal/adapters/infrastructure"
	"weathernotify.app/internal/config"
	"weathernotify.app/internal/ports"
)

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite"
)

type DependencyContainer struct {
	config   *config.Config
	db       *gorm.DB
	ports    *ports.ApplicationPorts
	registry *prometheus.Registry
	checkers map[string]ports.HealthChecker
	closers  []io.Closer
	closed   bool
}

// NewDependencyContainer opens every adapter the use cases depend on. clk
// drives all time-dependent adapters; nil uses wall time.
func NewDependencyContainer(cfg *config.Config, clk clock.Clock) (*DependencyContainer, error) {
	if clk == nil {
		clk = clock.NewClock()
	}

	container := &DependencyContainer{
		config:   cfg,
		registry: prometheus.NewRegistry(),
		checkers: make(map[string]ports.HealthChecker),
	}

	if err := container.initializeDatabase(); err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	if err := container.initializePorts(clk); err != nil {
		_ = container.Cleanup()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializeDatabase() error {
	slog.Info("Initializing database connection...", "driver", c.config.Database.Driver)

	var dialector gorm.Dialector
	switch c.config.Database.Driver {
	case driverSQLite:
		dialector = sqlite.Open(c.config.Database.SQLitePath)
	default:
		dialector = postgres.Open(c.config.Database.GetDSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	if c.config.Database.Driver == driverSQLite {
		// sqlite serialises writers; one connection avoids SQLITE_BUSY
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	c.db = db
	c.checkers["database"] = infrastructure.NewDatabaseHealthChecker(db)
	slog.Info("Database connection established successfully")
	return nil
}

func (c *DependencyContainer) initializePorts(clk clock.Clock) error {
	slog.Info("Initializing ports...")

	configProvider, err := infrastructure.NewConfigProviderAdapter(c.config)
	if err != nil {
		return fmt.Errorf("create config provider: %w", err)
	}

	logger, err := c.newLogger(clk)
	if err != nil {
		return err
	}

	subscriptionRepo := database.NewSubscriptionRepositoryAdapter(c.db)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := subscriptionRepo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := infrastructure.NewMetricsCollectorAdapter(c.registry)

	cacheBackend, err := external.NewCacheProviderFactory(clk).CreateCacheProvider(&c.config.Cache)
	if err != nil {
		return fmt.Errorf("create cache provider: %w", err)
	}
	if closer, ok := cacheBackend.(io.Closer); ok {
		c.closers = append(c.closers, closer)
	}
	pinger, _ := cacheBackend.(infrastructure.Pinger)
	c.checkers["cache"] = infrastructure.NewCacheHealthChecker(c.config.Cache.Type.String(), pinger)

	slog.Info("Cache provider initialized",
		"type", c.config.Cache.Type.String(),
		"redis_addr", c.config.Cache.Redis.Addr)

	weatherConfig := c.config.Weather
	var fetcher ports.WeatherFetcher = external.NewOpenWeatherMapProviderAdapter(external.OpenWeatherMapProviderParams{
		APIKey:     weatherConfig.OpenWeatherMapKey,
		BaseURL:    weatherConfig.OpenWeatherMapBaseURL,
		Lang:       weatherConfig.Lang,
		Timeout:    time.Duration(weatherConfig.TimeoutSeconds) * time.Second,
		MaxRetries: weatherConfig.MaxRetries,
		Metrics:    metrics,
		Logger:     logger,
	})

	// If logging is enabled, wrap the fetcher with logging decorator
	if weatherConfig.EnableLogging {
		fetcher = external.NewWeatherFetcherLoggingDecorator(fetcher, logger)
		slog.Info("Weather provider logging enabled")
	}
	c.checkers["weather_api"] = infrastructure.NewWeatherAPIHealthChecker(fetcher)

	notifier := c.newNotifier(logger)
	c.checkers["notifier"] = infrastructure.NewNotifierHealthChecker(notifier)

	c.ports = &ports.ApplicationPorts{
		// Weather
		WeatherFetcher: fetcher,
		PayloadCache:   external.NewWeatherCacheAdapter(cacheBackend),

		// Subscription
		SubscriptionRepository: subscriptionRepo,

		// Delivery
		Notifier: notifier,

		// Cache
		CacheMetrics: cacheBackend,

		// Infrastructure
		ConfigProvider: configProvider,
		Logger:         logger,
		Metrics:        metrics,
		Clock:          clk,
		Database:       c.db,
	}

	slog.Info("Ports initialized successfully")
	return nil
}

// newLogger logs through slog and, when a log file is configured, also to
// the JSON file
func (c *DependencyContainer) newLogger(clk clock.Clock) (ports.Logger, error) {
	slogLogger := &infrastructure.SlogLoggerAdapter{}
	if c.config.Log.FilePath == "" {
		return slogLogger, nil
	}

	fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Log.FilePath, clk)
	if err != nil {
		slog.Warn("Failed to create file logger, falling back to slog", "error", err)
		return slogLogger, nil
	}
	slog.Info("File logging enabled", "path", c.config.Log.FilePath)
	return infrastructure.NewMultiLogger(slogLogger, fileLogger), nil
}

func (c *DependencyContainer) newNotifier(logger ports.Logger) ports.Notifier {
	notifierConfig := c.config.Notifier
	switch notifierConfig.Type {
	case config.NotifierTypeLog:
		slog.Info("Notifications are logged, not delivered")
		return external.NewLogNotifierAdapter(logger)
	default:
		return external.NewDiscordNotifierAdapter(external.DiscordNotifierParams{
			Token:   notifierConfig.DiscordToken,
			BaseURL: notifierConfig.DiscordBaseURL,
			Timeout: time.Duration(notifierConfig.TimeoutSeconds) * time.Second,
			Logger:  logger,
		})
	}
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

func (c *DependencyContainer) Database() *gorm.DB {
	return c.db
}

// Registry returns the Prometheus registry all collectors are registered on
func (c *DependencyContainer) Registry() *prometheus.Registry {
	return c.registry
}

// HealthCheckers returns the per-component health checkers keyed by component
func (c *DependencyContainer) HealthCheckers() map[string]ports.HealthChecker {
	return c.checkers
}

// Cleanup releases the cache connection and the database pool
func (c *DependencyContainer) Cleanup() error {
	if c.closed {
		return nil
	}
	c.closed = true

	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			slog.Warn("Error closing resource", "error", err)
		}
	}

	if c.db != nil {
		if db, err := c.db.DB(); err == nil {
			return db.Close()
		}
	}
	return nil
}
