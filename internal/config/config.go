package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"weathernotify.app/pkg/errors"
)

const (
	maxRedisDB                = 15
	maxCacheTTLMinutes        = 1440
	maxWindowMinutes          = 60
	maxDeliveryTimeoutSeconds = 600
	maxPortNumber             = 65535
	clockLayout               = "15:04"
)

// Config represents the application configuration structure
type Config struct {
	Server    ServerConfig    `split_words:"true"`
	Database  DatabaseConfig  `split_words:"true"`
	Weather   WeatherConfig   `split_words:"true"`
	Scheduler SchedulerConfig `split_words:"true"`
	Notifier  NotifierConfig  `split_words:"true"`
	Cache     CacheConfig     `split_words:"true"`
	Log       LogConfig       `split_words:"true"`
}

type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

type DatabaseConfig struct {
	Driver     string `envconfig:"DB_DRIVER" default:"postgres"`
	Host       string `envconfig:"DB_HOST" default:"localhost"`
	Port       int    `envconfig:"DB_PORT" default:"5432"`
	User       string `envconfig:"DB_USER" default:"postgres"`
	Password   string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name       string `envconfig:"DB_NAME" default:"weathernotify"`
	SSLMode    string `envconfig:"DB_SSL_MODE" default:"disable"`
	SQLitePath string `envconfig:"DB_SQLITE_PATH" default:"weathernotify.db"`
}

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type WeatherConfig struct {
	OpenWeatherMapKey     string `envconfig:"OPENWEATHERMAP_API_KEY"`
	OpenWeatherMapBaseURL string `envconfig:"OPENWEATHERMAP_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	Lang                  string `envconfig:"WEATHER_LANG" default:"ja"`
	AssetHost             string `envconfig:"WEATHER_ASSET_HOST" default:"openweathermap.org"`
	EnableCache           bool   `envconfig:"WEATHER_ENABLE_CACHE" default:"true"`
	EnableLogging         bool   `envconfig:"WEATHER_ENABLE_LOGGING" default:"true"`
	CacheTTLMinutes       int    `envconfig:"WEATHER_CACHE_TTL_MINUTES" default:"10"`
	MaxRetries            int    `envconfig:"WEATHER_MAX_RETRIES" default:"2"`
	TimeoutSeconds        int    `envconfig:"WEATHER_TIMEOUT_SECONDS" default:"10"`
}

// CacheType represents the type of cache to use
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	CacheTypeMemory
	CacheTypeRedis
)

// String returns the string representation of cache type
func (c CacheType) String() string {
	switch c {
	case CacheTypeMemory:
		return "memory"
	case CacheTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the cache type is valid
func (c CacheType) IsValid() bool {
	return c == CacheTypeMemory || c == CacheTypeRedis
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	switch s {
	case "memory":
		return CacheTypeMemory
	case "redis":
		return CacheTypeRedis
	default:
		return CacheTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Type  CacheType   `envconfig:"CACHE_TYPE" default:"memory"`
	Redis RedisConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

type SchedulerConfig struct {
	Timezone               string   `envconfig:"SCHEDULER_TIMEZONE" default:"Asia/Tokyo"`
	DefaultTimes           []string `envconfig:"SCHEDULER_DEFAULT_TIMES" default:"00:05"`
	WindowMinutes          int      `envconfig:"SCHEDULER_WINDOW_MINUTES" default:"1"`
	DeliveryTimeoutSeconds int      `envconfig:"SCHEDULER_DELIVERY_TIMEOUT_SECONDS" default:"30"`
}

// Location resolves the configured zone
func (s SchedulerConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, errors.NewConfigurationError(fmt.Sprintf("SCHEDULER_TIMEZONE %q is not a known zone", s.Timezone), err)
	}
	return loc, nil
}

// DefaultMinutes returns the default tick times as minutes after midnight
func (s SchedulerConfig) DefaultMinutes() ([]int, error) {
	minutes := make([]int, 0, len(s.DefaultTimes))
	for _, raw := range s.DefaultTimes {
		parsed, err := time.Parse(clockLayout, strings.TrimSpace(raw))
		if err != nil {
			return nil, errors.NewConfigurationError(fmt.Sprintf("SCHEDULER_DEFAULT_TIMES entry %q must be HH:MM", raw), err)
		}
		minutes = append(minutes, parsed.Hour()*60+parsed.Minute())
	}
	return minutes, nil
}

// NotifierType represents the delivery channel implementation
type NotifierType int

const (
	NotifierTypeUnknown NotifierType = iota
	NotifierTypeDiscord
	NotifierTypeLog
)

// String returns the string representation of notifier type
func (n NotifierType) String() string {
	switch n {
	case NotifierTypeDiscord:
		return "discord"
	case NotifierTypeLog:
		return "log"
	default:
		return "unknown"
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (n *NotifierType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "discord":
		*n = NotifierTypeDiscord
	case "log":
		*n = NotifierTypeLog
	default:
		*n = NotifierTypeUnknown
	}
	return nil
}

type NotifierConfig struct {
	Type           NotifierType `envconfig:"NOTIFIER_TYPE" default:"discord"`
	DiscordToken   string       `envconfig:"DISCORD_BOT_TOKEN"`
	DiscordBaseURL string       `envconfig:"DISCORD_API_BASE_URL" default:"https://discord.com/api/v10"`
	TimeoutSeconds int          `envconfig:"NOTIFIER_TIMEOUT_SECONDS" default:"10"`
}

type LogConfig struct {
	Level    string `envconfig:"LOG_LEVEL" default:"info"`
	Format   string `envconfig:"LOG_FORMAT" default:"json"`
	FilePath string `envconfig:"LOG_FILE_PATH" default:""`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	if err := c.Notifier.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

func (d *DatabaseConfig) Validate() error {
	switch d.Driver {
	case "sqlite":
		if d.SQLitePath == "" {
			return errors.NewConfigurationError("DB_SQLITE_PATH cannot be empty when DB_DRIVER is sqlite", nil)
		}
		return nil
	case "postgres":
	default:
		return errors.NewConfigurationError("DB_DRIVER must be one of: postgres, sqlite", nil)
	}

	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > maxPortNumber {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	return d.ValidateSSLMode()
}

func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

func (w *WeatherConfig) Validate() error {
	if w.OpenWeatherMapKey == "" {
		return errors.NewConfigurationError("OPENWEATHERMAP_API_KEY must be configured", nil)
	}
	if !strings.HasPrefix(w.OpenWeatherMapBaseURL, "http://") && !strings.HasPrefix(w.OpenWeatherMapBaseURL, "https://") {
		return errors.NewConfigurationError("OPENWEATHERMAP_API_BASE_URL must start with http:// or https://", nil)
	}
	if w.AssetHost == "" {
		return errors.NewConfigurationError("WEATHER_ASSET_HOST cannot be empty", nil)
	}
	if w.CacheTTLMinutes < 1 || w.CacheTTLMinutes > maxCacheTTLMinutes {
		return errors.NewConfigurationError("WEATHER_CACHE_TTL_MINUTES must be between 1 and 1440 minutes", nil)
	}
	if w.MaxRetries < 0 {
		return errors.NewConfigurationError("WEATHER_MAX_RETRIES cannot be negative", nil)
	}
	if w.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("WEATHER_TIMEOUT_SECONDS must be at least 1 second", nil)
	}
	return nil
}

func (c *CacheConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis", nil)
	}

	if c.Type == CacheTypeRedis {
		return c.Redis.Validate()
	}

	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis cache", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (s *SchedulerConfig) Validate() error {
	if _, err := s.Location(); err != nil {
		return err
	}
	if len(s.DefaultTimes) == 0 {
		return errors.NewConfigurationError("SCHEDULER_DEFAULT_TIMES needs at least one HH:MM entry", nil)
	}
	if _, err := s.DefaultMinutes(); err != nil {
		return err
	}
	if s.WindowMinutes < 1 || s.WindowMinutes > maxWindowMinutes {
		return errors.NewConfigurationError("SCHEDULER_WINDOW_MINUTES must be between 1 and 60", nil)
	}
	if s.DeliveryTimeoutSeconds < 1 || s.DeliveryTimeoutSeconds > maxDeliveryTimeoutSeconds {
		return errors.NewConfigurationError("SCHEDULER_DELIVERY_TIMEOUT_SECONDS must be between 1 and 600", nil)
	}
	return nil
}

func (n *NotifierConfig) Validate() error {
	switch n.Type {
	case NotifierTypeLog:
		return nil
	case NotifierTypeDiscord:
	default:
		return errors.NewConfigurationError("NOTIFIER_TYPE must be one of: discord, log", nil)
	}

	if n.DiscordToken == "" {
		return errors.NewConfigurationError("DISCORD_BOT_TOKEN must be set when NOTIFIER_TYPE is discord", nil)
	}
	if !strings.HasPrefix(n.DiscordBaseURL, "http://") && !strings.HasPrefix(n.DiscordBaseURL, "https://") {
		return errors.NewConfigurationError("DISCORD_API_BASE_URL must start with http:// or https://", nil)
	}
	if n.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("NOTIFIER_TIMEOUT_SECONDS must be at least 1 second", nil)
	}
	return nil
}
