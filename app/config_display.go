package app

import (
	"log"
	"os"
	"sort"
	"strings"

	"travelcast.app/config"
)

// ConfigDisplayer handles configuration and environment variable display
type ConfigDisplayer struct{}

// NewConfigDisplayer creates a new configuration displayer
func NewConfigDisplayer() *ConfigDisplayer {
	return &ConfigDisplayer{}
}

// PrintConfig prints all fields in the configuration
func (cd *ConfigDisplayer) PrintConfig(cfg *config.Config) {
	log.Println("==== APPLICATION CONFIGURATION ====")

	log.Printf("SERVER:\n")
	log.Printf("  Port: %d\n", cfg.Server.Port)

	log.Printf("\nDATABASE:\n")
	log.Printf("  Driver: %s\n", cfg.Database.Driver)
	log.Printf("  SQLite Path: %s\n", cfg.Database.SQLitePath)
	log.Printf("  Host: %s\n", cfg.Database.Host)
	log.Printf("  Port: %d\n", cfg.Database.Port)
	log.Printf("  User: %s\n", cfg.Database.User)
	log.Printf("  Password: %s\n", cd.maskString(cfg.Database.Password))
	log.Printf("  Name: %s\n", cfg.Database.Name)

	log.Printf("\nGEOCODING:\n")
	log.Printf("  Base URL: %s\n", cfg.Geocoding.BaseURL)
	log.Printf("  User Agent: %s\n", cfg.Geocoding.UserAgent)
	log.Printf("  Language: %s\n", cfg.Geocoding.Language)

	log.Printf("\nIP LOCATOR:\n")
	log.Printf("  Base URL: %s\n", cfg.IPLocator.BaseURL)

	log.Printf("\nFORECAST:\n")
	log.Printf("  Base URL: %s\n", cfg.Forecast.BaseURL)
	log.Printf("  Default Days: %d\n", cfg.Forecast.DefaultDays)
	log.Printf("  Log File: %s\n", cfg.Forecast.LogFile)

	log.Printf("\nCACHE:\n")
	log.Printf("  Backend: %s\n", cfg.Cache.Backend)
	log.Printf("  Redis Addr: %s\n", cfg.Cache.RedisAddr)
	log.Printf("  Geocode TTL: %s\n", cfg.Cache.GeocodeTTL)
	log.Printf("  Reverse TTL: %s\n", cfg.Cache.ReverseTTL)
	log.Printf("  Forecast TTL: %s\n", cfg.Cache.ForecastTTL)

	log.Printf("\nMEDIA:\n")
	log.Printf("  YouTube Key: %s\n", cd.maskString(cfg.Media.YouTubeAPIKey))
	log.Printf("  Unsplash Key: %s\n", cd.maskString(cfg.Media.UnsplashAccessKey))
	log.Printf("  Result Count: %d\n", cfg.Media.ResultCount)

	log.Printf("\nADVISORY:\n")
	log.Printf("  API Token: %s\n", cd.maskString(cfg.Advisory.APIToken))
	log.Printf("  Base URL: %s\n", cfg.Advisory.BaseURL)
	log.Printf("  Model: %s\n", cfg.Advisory.Model)

	log.Println("===================================")
}

// PrintAllEnvVars prints all environment variables available to the application
func (cd *ConfigDisplayer) PrintAllEnvVars() {
	log.Println("==== ENVIRONMENT VARIABLES ====")

	envVars := os.Environ()
	sort.Strings(envVars)

	for _, env := range envVars {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}

		key := pair[0]
		value := pair[1]

		if cd.isSensitive(key) {
			value = cd.maskString(value)
		}

		log.Printf("%s=%s\n", key, value)
	}

	log.Println("===============================")
}

// maskString masks sensitive information like passwords and API keys
func (cd *ConfigDisplayer) maskString(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	visible := len(s) / 4
	return s[:visible] + strings.Repeat("*", len(s)-visible)
}

// isSensitive checks if an environment variable key is considered sensitive
func (cd *ConfigDisplayer) isSensitive(key string) bool {
	sensitiveKeys := []string{
		"API_KEY", "PASSWORD", "SECRET", "TOKEN", "KEY", "PASS", "PWD",
	}

	key = strings.ToUpper(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(key, sensitive) {
			return true
		}
	}

	return false
}
