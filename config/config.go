package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"travelcast.app/errors"
)

// Config represents the application configuration structure
type Config struct {
	Server    ServerConfig    `split_words:"true"`
	Database  DatabaseConfig  `split_words:"true"`
	Geocoding GeocodingConfig `split_words:"true"`
	IPLocator IPLocatorConfig `split_words:"true"`
	Forecast  ForecastConfig  `split_words:"true"`
	Cache     CacheConfig     `split_words:"true"`
	Media     MediaConfig     `split_words:"true"`
	Advisory  AdvisoryConfig  `split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// DatabaseConfig contains history store connection settings. SQLite is the
// default; postgres is available for shared deployments.
type DatabaseConfig struct {
	Driver     string `envconfig:"DB_DRIVER" default:"sqlite"`
	SQLitePath string `envconfig:"DB_SQLITE_PATH" default:"search_history.db"`
	Host       string `envconfig:"DB_HOST" default:"localhost"`
	Port       int    `envconfig:"DB_PORT" default:"5432"`
	User       string `envconfig:"DB_USER" default:"postgres"`
	Password   string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name       string `envconfig:"DB_NAME" default:"travelcast"`
	SSLMode    string `envconfig:"DB_SSL_MODE" default:"disable"`
}

// GetDSN returns a formatted postgres connection string
func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// GeocodingConfig contains settings for the forward/reverse geocoding provider
type GeocodingConfig struct {
	BaseURL   string        `envconfig:"GEOCODING_BASE_URL" default:"https://nominatim.openstreetmap.org"`
	UserAgent string        `envconfig:"GEOCODING_USER_AGENT" default:"travelcast-app"`
	Language  string        `envconfig:"GEOCODING_LANGUAGE" default:"en"`
	Timeout   time.Duration `envconfig:"GEOCODING_TIMEOUT" default:"10s"`
}

// IPLocatorConfig contains settings for the IP geolocation provider
type IPLocatorConfig struct {
	BaseURL string        `envconfig:"IP_LOCATOR_BASE_URL" default:"https://ipwho.is"`
	Timeout time.Duration `envconfig:"IP_LOCATOR_TIMEOUT" default:"6s"`
}

// ForecastConfig contains settings for the weather forecast provider
type ForecastConfig struct {
	BaseURL     string        `envconfig:"FORECAST_BASE_URL" default:"https://api.open-meteo.com/v1"`
	Timeout     time.Duration `envconfig:"FORECAST_TIMEOUT" default:"10s"`
	DefaultDays int           `envconfig:"FORECAST_DEFAULT_DAYS" default:"5"`
	// LogFile enables JSON provider traffic logging when non-empty.
	LogFile string `envconfig:"FORECAST_LOG_FILE" default:""`
}

// CacheConfig contains settings for the result caches in front of the
// resolver and forecast client
type CacheConfig struct {
	Backend       string        `envconfig:"CACHE_BACKEND" default:"memory"`
	RedisAddr     string        `envconfig:"CACHE_REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string        `envconfig:"CACHE_REDIS_PASSWORD" default:""`
	RedisDB       int           `envconfig:"CACHE_REDIS_DB" default:"0"`
	GeocodeTTL    time.Duration `envconfig:"CACHE_GEOCODE_TTL" default:"15m"`
	ReverseTTL    time.Duration `envconfig:"CACHE_REVERSE_TTL" default:"10m"`
	ForecastTTL   time.Duration `envconfig:"CACHE_FORECAST_TTL" default:"5m"`
}

// MediaConfig contains API keys and endpoints for location media lookups.
// Empty keys disable the corresponding lookup.
type MediaConfig struct {
	YouTubeAPIKey     string        `envconfig:"YOUTUBE_API_KEY" default:""`
	YouTubeBaseURL    string        `envconfig:"YOUTUBE_BASE_URL" default:"https://www.googleapis.com/youtube/v3"`
	UnsplashAccessKey string        `envconfig:"UNSPLASH_ACCESS_KEY" default:""`
	UnsplashBaseURL   string        `envconfig:"UNSPLASH_BASE_URL" default:"https://api.unsplash.com"`
	ResultCount       int           `envconfig:"MEDIA_RESULT_COUNT" default:"3"`
	Timeout           time.Duration `envconfig:"MEDIA_TIMEOUT" default:"10s"`
}

// AdvisoryConfig contains settings for the hosted-model travel advisory calls
type AdvisoryConfig struct {
	APIToken         string        `envconfig:"ADVISORY_API_TOKEN" default:""`
	BaseURL          string        `envconfig:"ADVISORY_BASE_URL" default:"https://router.huggingface.co/v1"`
	Model            string        `envconfig:"ADVISORY_MODEL" default:"openai/gpt-oss-120b"`
	Timeout          time.Duration `envconfig:"ADVISORY_TIMEOUT" default:"30s"`
	BreakerThreshold uint32        `envconfig:"ADVISORY_BREAKER_THRESHOLD" default:"3"`
	BreakerCooldown  time.Duration `envconfig:"ADVISORY_BREAKER_COOLDOWN" default:"60s"`
}

// LoadConfig loads and validates application configuration from environment variables
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

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Geocoding.Validate(); err != nil {
		return err
	}
	if err := c.IPLocator.Validate(); err != nil {
		return err
	}
	if err := c.Forecast.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Media.Validate(); err != nil {
		return err
	}
	if err := c.Advisory.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// Validate checks database configuration
func (d *DatabaseConfig) Validate() error {
	switch d.Driver {
	case "sqlite":
		if d.SQLitePath == "" {
			return errors.NewConfigurationError("DB_SQLITE_PATH cannot be empty", nil)
		}
	case "postgres":
		if d.Host == "" {
			return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
		}
		if d.Port < 1 || d.Port > 65535 {
			return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
		}
		if d.User == "" {
			return errors.NewConfigurationError("DB_USER cannot be empty", nil)
		}
		if d.Name == "" {
			return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
		}
		if err := d.validateSSLMode(); err != nil {
			return err
		}
	default:
		return errors.NewConfigurationError("DB_DRIVER must be either 'sqlite' or 'postgres'", nil)
	}
	return nil
}

func (d *DatabaseConfig) validateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

// Validate checks geocoding provider configuration
func (g *GeocodingConfig) Validate() error {
	if err := validateBaseURL("GEOCODING_BASE_URL", g.BaseURL); err != nil {
		return err
	}
	if g.UserAgent == "" {
		return errors.NewConfigurationError("GEOCODING_USER_AGENT cannot be empty", nil)
	}
	if g.Timeout <= 0 {
		return errors.NewConfigurationError("GEOCODING_TIMEOUT must be positive", nil)
	}
	return nil
}

// Validate checks IP locator configuration
func (i *IPLocatorConfig) Validate() error {
	if err := validateBaseURL("IP_LOCATOR_BASE_URL", i.BaseURL); err != nil {
		return err
	}
	if i.Timeout <= 0 {
		return errors.NewConfigurationError("IP_LOCATOR_TIMEOUT must be positive", nil)
	}
	return nil
}

// Validate checks forecast provider configuration
func (f *ForecastConfig) Validate() error {
	if err := validateBaseURL("FORECAST_BASE_URL", f.BaseURL); err != nil {
		return err
	}
	if f.Timeout <= 0 {
		return errors.NewConfigurationError("FORECAST_TIMEOUT must be positive", nil)
	}
	if f.DefaultDays < 1 || f.DefaultDays > 7 {
		return errors.NewConfigurationError("FORECAST_DEFAULT_DAYS must be between 1 and 7", nil)
	}
	return nil
}

// Validate checks cache configuration
func (c *CacheConfig) Validate() error {
	if c.Backend != "memory" && c.Backend != "redis" {
		return errors.NewConfigurationError("CACHE_BACKEND must be either 'memory' or 'redis'", nil)
	}
	if c.Backend == "redis" && c.RedisAddr == "" {
		return errors.NewConfigurationError("CACHE_REDIS_ADDR cannot be empty", nil)
	}
	if c.GeocodeTTL <= 0 || c.ReverseTTL <= 0 || c.ForecastTTL <= 0 {
		return errors.NewConfigurationError("cache TTLs must be positive", nil)
	}
	return nil
}

// Validate checks media configuration
func (m *MediaConfig) Validate() error {
	if m.YouTubeAPIKey != "" {
		if err := validateBaseURL("YOUTUBE_BASE_URL", m.YouTubeBaseURL); err != nil {
			return err
		}
	}
	if m.UnsplashAccessKey != "" {
		if err := validateBaseURL("UNSPLASH_BASE_URL", m.UnsplashBaseURL); err != nil {
			return err
		}
	}
	if m.ResultCount < 1 || m.ResultCount > 10 {
		return errors.NewConfigurationError("MEDIA_RESULT_COUNT must be between 1 and 10", nil)
	}
	return nil
}

// Validate checks advisory configuration
func (a *AdvisoryConfig) Validate() error {
	if a.APIToken == "" {
		// Advisory is optional; an empty token disables the feature.
		return nil
	}
	if err := validateBaseURL("ADVISORY_BASE_URL", a.BaseURL); err != nil {
		return err
	}
	if a.Model == "" {
		return errors.NewConfigurationError("ADVISORY_MODEL cannot be empty", nil)
	}
	if a.Timeout <= 0 {
		return errors.NewConfigurationError("ADVISORY_TIMEOUT must be positive", nil)
	}
	return nil
}

func validateBaseURL(name, value string) error {
	if value == "" {
		return errors.NewConfigurationError(name+" cannot be empty", nil)
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return errors.NewConfigurationError(name+" must start with http:// or https://", nil)
	}
	return nil
}
