package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/gin-gonic/gin"
	"weathernotify.app/internal/adapters/api"
	"weathernotify.app/internal/adapters/infrastructure"
	"weathernotify.app/internal/config"
	"weathernotify.app/internal/core/notification"
	"weathernotify.app/internal/core/subscription"
	"weathernotify.app/internal/core/weather"
	"weathernotify.app/internal/ports"
	"weathernotify.app/pkg/logger"
)

type Application struct {
	config *config.Config

	// Use Cases
	weatherUseCase      *weather.UseCase
	subscriptionUseCase *subscription.UseCase
	notificationUseCase *notification.UseCase

	// Adapters
	httpServer *http.Server
	router     *gin.Engine
	scheduler  *infrastructure.GocronTickScheduler

	// Infrastructure
	deps  *DependencyContainer
	ports *ports.ApplicationPorts
}

// NewApplication loads configuration from the environment and wires every
// component against wall time
func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger.NewWithOptions(os.Stdout, cfg.Log.Format, logger.ParseLevel(cfg.Log.Level)).
		WithFields(map[string]interface{}{
			"service":  "weathernotify",
			"timezone": cfg.Scheduler.Timezone,
		}).
		Install()

	deps, err := NewDependencyContainer(cfg, clock.NewClock())
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	app, err := NewApplicationWithDependencies(cfg, deps)
	if err != nil {
		_ = deps.Cleanup()
		return nil, err
	}
	return app, nil
}

// NewApplicationWithDependencies creates an application with provided dependencies
func NewApplicationWithDependencies(cfg *config.Config, deps *DependencyContainer) (*Application, error) {
	app := &Application{
		config: cfg,
		deps:   deps,
		ports:  deps.ApplicationPorts(),
	}

	if err := app.initializeUseCases(); err != nil {
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeUseCases() error {
	slog.Info("Initializing use cases...")

	weatherUseCase, err := weather.NewUseCase(weather.UseCaseDependencies{
		Fetcher: a.ports.WeatherFetcher,
		Cache:   a.ports.PayloadCache,
		Config:  a.ports.ConfigProvider,
		Logger:  a.ports.Logger,
		Metrics: a.ports.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create weather use case: %w", err)
	}
	a.weatherUseCase = weatherUseCase

	subscriptionUseCase, err := subscription.NewUseCase(subscription.UseCaseDependencies{
		SubscriptionRepo: a.ports.SubscriptionRepository,
		Config:           a.ports.ConfigProvider,
		Logger:           a.ports.Logger,
		Clock:            a.ports.Clock,
	})
	if err != nil {
		return fmt.Errorf("create subscription use case: %w", err)
	}
	a.subscriptionUseCase = subscriptionUseCase

	notificationUseCase, err := notification.NewUseCase(notification.UseCaseDependencies{
		SubscriptionRepo: a.ports.SubscriptionRepository,
		WeatherUseCase:   a.weatherUseCase,
		Notifier:         a.ports.Notifier,
		Config:           a.ports.ConfigProvider,
		Logger:           a.ports.Logger,
		Metrics:          a.ports.Metrics,
		Clock:            a.ports.Clock,
	})
	if err != nil {
		return fmt.Errorf("create notification use case: %w", err)
	}
	a.notificationUseCase = notificationUseCase

	slog.Info("Use cases initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	scheduler, err := infrastructure.NewGocronTickScheduler(infrastructure.GocronTickSchedulerParams{
		Location: a.ports.ConfigProvider.GetSchedulerConfig().Location,
		Runner:   a.notificationUseCase,
		Times:    a.subscriptionUseCase,
		Logger:   a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create tick scheduler: %w", err)
	}
	a.scheduler = scheduler
	a.subscriptionUseCase.SetScheduler(scheduler)

	systemHealthChecker := infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		Checkers:       a.deps.HealthCheckers(),
		ConfigProvider: a.ports.ConfigProvider,
	})

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config: api.ServerConfig{
			Port: a.config.Server.Port,
		},
		WeatherUseCase:      a.weatherUseCase,
		SubscriptionUseCase: a.subscriptionUseCase,
		NotificationUseCase: a.notificationUseCase,
		HealthChecker:       systemHealthChecker,
		Gatherer:            a.deps.Registry(),
		Clock:               a.ports.Clock,
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	// Store router for testing access
	a.router = httpAdapter.GetRouter()

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      httpAdapter.GetRouter(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("Adapters initialized successfully")
	return nil
}

// Start runs the tick scheduler and serves HTTP until the server is shut down
func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting application...")

	if err := a.StartScheduler(ctx); err != nil {
		return err
	}

	slog.Info("Starting HTTP server", "port", a.config.Server.Port)
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

// StartScheduler schedules ticks at every configured and subscribed time of day
func (a *Application) StartScheduler(ctx context.Context) error {
	if err := a.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start tick scheduler: %w", err)
	}
	return nil
}

func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	a.scheduler.Stop()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}

	if err := a.Close(); err != nil {
		slog.Warn("Error closing resources", "error", err)
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Close releases database and cache connections without touching the HTTP server
func (a *Application) Close() error {
	return a.deps.Cleanup()
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}

// GetWeatherUseCase returns the weather use case
func (a *Application) GetWeatherUseCase() *weather.UseCase {
	return a.weatherUseCase
}

// GetSubscriptionUseCase returns the subscription use case
func (a *Application) GetSubscriptionUseCase() *subscription.UseCase {
	return a.subscriptionUseCase
}

// GetNotificationUseCase returns the notification use case
func (a *Application) GetNotificationUseCase() *notification.UseCase {
	return a.notificationUseCase
}
