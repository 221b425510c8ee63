// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to use cases
package api

import (
	"context"
	"fmt"

	"code.cloudfoundry.org/clock"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weathernotify.app/internal/core/notification"
	"weathernotify.app/internal/core/subscription"
	"weathernotify.app/internal/core/weather"
	"weathernotify.app/internal/ports"
	"weathernotify.app/pkg/errors"
	"weathernotify.app/pkg/validation"
)

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port int
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router              *gin.Engine
	config              ServerConfig
	weatherUseCase      WeatherUseCase
	subscriptionUseCase SubscriptionUseCase
	notificationUseCase NotificationUseCase
	healthChecker       ports.SystemHealthChecker
	clock               clock.Clock
}

// Use case interfaces that the HTTP adapter depends on
type WeatherUseCase interface {
	GetCurrent(ctx context.Context, loc weather.Location) (weather.Snapshot, error)
	GetForecast(ctx context.Context, loc weather.Location) (weather.Series, error)
	IconURL(snapshot weather.Snapshot) string
}

type SubscriptionUseCase interface {
	Register(ctx context.Context, params subscription.RegisterParams) (*subscription.Subscription, error)
	Cancel(ctx context.Context, channelID int64) error
	Get(ctx context.Context, channelID int64) (*subscription.Subscription, error)
	List(ctx context.Context) ([]*subscription.Subscription, error)
}

type NotificationUseCase interface {
	RunTick(ctx context.Context) (*notification.TickReport, error)
	SendNow(ctx context.Context, channelID int64) error
	Preview(ctx context.Context, channelID int64) (ports.Message, error)
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config              ServerConfig
	WeatherUseCase      WeatherUseCase
	SubscriptionUseCase SubscriptionUseCase
	NotificationUseCase NotificationUseCase
	HealthChecker       ports.SystemHealthChecker
	// Gatherer backs /metrics; nil uses the default Prometheus registry
	Gatherer prometheus.Gatherer
	Clock    clock.Clock
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}
	if err := registerValidations(); err != nil {
		return nil, errors.NewConfigurationError("failed to register request validations", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	server := &HTTPServerAdapter{
		router:              router,
		config:              opts.Config,
		weatherUseCase:      opts.WeatherUseCase,
		subscriptionUseCase: opts.SubscriptionUseCase,
		notificationUseCase: opts.NotificationUseCase,
		healthChecker:       opts.HealthChecker,
		clock:               opts.Clock,
	}

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	server.setupRoutes(gatherer)
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.WeatherUseCase == nil {
		return errors.NewValidationError("weather use case is required")
	}
	if opts.SubscriptionUseCase == nil {
		return errors.NewValidationError("subscription use case is required")
	}
	if opts.NotificationUseCase == nil {
		return errors.NewValidationError("notification use case is required")
	}
	if opts.HealthChecker == nil {
		return errors.NewValidationError("health checker is required")
	}
	if opts.Clock == nil {
		return errors.NewValidationError("clock is required")
	}
	return nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes(gatherer prometheus.Gatherer) {
	api := s.router.Group("/api")
	{
		api.GET("/weather", s.getWeather)
		api.GET("/forecast", s.getForecast)

		api.GET("/subscriptions", s.listSubscriptions)
		api.GET("/subscriptions/:channel_id", s.getSubscription)
		api.PUT("/subscriptions/:channel_id", s.registerSubscription)
		api.DELETE("/subscriptions/:channel_id", s.cancelSubscription)
		api.GET("/subscriptions/:channel_id/preview", s.previewNotification)
		api.POST("/subscriptions/:channel_id/send", s.sendNotification)

		api.POST("/ticks", s.runTick)
	}

	s.router.GET("/health", s.getHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}

// registerValidations adds the custom binding tags used by request structs
func registerValidations() error {
	engine, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return engine.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		return validation.IsValidTimeOfDay(fl.Field().String())
	})
}
