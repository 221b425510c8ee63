package ports

import (
	"context"
	"time"
)

// WeatherConfig represents weather service configuration
type WeatherConfig struct {
	EnableCache bool
	CacheTTL    time.Duration
	AssetHost   string
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port int
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

// CacheConfig represents cache configuration
type CacheConfig struct {
	Type  string
	Redis RedisConfig
}

// RedisConfig represents Redis configuration
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  int
	ReadTimeout  int
	WriteTimeout int
}

// SchedulerConfig represents scheduler configuration
type SchedulerConfig struct {
	Location        *time.Location
	DefaultTimes    []int // minutes after midnight
	Window          time.Duration
	DeliveryTimeout time.Duration
}

// NotifierConfig represents delivery configuration
type NotifierConfig struct {
	Type    string
	BaseURL string
}

// ConfigProvider defines the contract for configuration management
type ConfigProvider interface {
	GetWeatherConfig() WeatherConfig
	GetServerConfig() ServerConfig
	GetDatabaseConfig() DatabaseConfig
	GetCacheConfig() CacheConfig
	GetSchedulerConfig() SchedulerConfig
	GetNotifierConfig() NotifierConfig
}

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// TickResult summarises one scheduler tick for metrics
type TickResult struct {
	Due      int
	Skipped  int
	Fired    int
	Failed   int
	Conflict int
	Duration time.Duration
}

// MetricsCollector defines the contract for metrics collection
type MetricsCollector interface {
	RecordTick(ctx context.Context, result TickResult)
	RecordDelivery(ctx context.Context, notifier string, success bool)
	RecordWeatherAPICall(ctx context.Context, provider, endpoint string, success bool)
	RecordCacheHit(ctx context.Context)
	RecordCacheMiss(ctx context.Context)
}
