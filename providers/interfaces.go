package providers

import (
	"time"

	"travelcast.app/metrics"
	"travelcast.app/models"
	"travelcast.app/providers/cache"
)

// GeocodingProvider defines the interface for forward and reverse geocoding
type GeocodingProvider interface {
	ForwardGeocode(text string) (*models.ResolvedLocation, error)
	ReverseGeocode(lat, lon float64) (string, error)
}

// IPLocatorProvider defines the interface for IP-based geolocation
type IPLocatorProvider interface {
	Locate() (*models.ResolvedLocation, error)
}

// ForecastProvider defines the interface for weather forecast providers
type ForecastProvider interface {
	FetchForecast(lat, lon float64, days int) (*models.ForecastResult, error)
}

// LocationResolver turns a user-supplied location query into a resolved location
type LocationResolver interface {
	Resolve(query models.LocationQuery) (*models.ResolvedLocation, error)
}

// ResolutionStrategy is one tier of the current-position fallback ladder
type ResolutionStrategy interface {
	Resolve(query models.LocationQuery) (*models.ResolvedLocation, error)
	Name() string
}

// VideoProvider defines the interface for location video search
type VideoProvider interface {
	SearchVideos(query string, maxResults int) ([]models.VideoResult, error)
}

// ImageProvider defines the interface for location image search
type ImageProvider interface {
	SearchImages(query string, count int) ([]string, error)
}

// AdvisoryProvider defines the interface for hosted-model advisory generation
type AdvisoryProvider interface {
	GenerateAdvice(prompt string) (string, error)
}

// Cache aliases to avoid circular imports
type GenericCache = cache.GenericCacheInterface
type LocationCache = cache.LocationCacheInterface
type ForecastCache = cache.ForecastCacheInterface

// FileLogger defines the interface for file logging of provider traffic
type FileLogger interface {
	LogRequest(providerName, target string)
	LogResponse(providerName, target string, summary map[string]interface{}, duration time.Duration)
	LogError(providerName, target string, err error, duration time.Duration)
}

// CacheMetricsReporter exposes cache statistics for diagnostics
type CacheMetricsReporter interface {
	GetMetrics() *metrics.CacheMetrics
}
