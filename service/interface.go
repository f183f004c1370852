package service

import (
	"travelcast.app/models"
	"travelcast.app/providers"
)

// LocationResolverInterface is an alias to the providers interface
type LocationResolverInterface = providers.LocationResolver

// ForecastProviderInterface is an alias to the providers interface
type ForecastProviderInterface = providers.ForecastProvider

// WeatherServiceInterface defines the interface for resolve and forecast operations
type WeatherServiceInterface interface {
	Resolve(query models.LocationQuery) (*models.ResolvedLocation, error)
	GetForecast(lat, lon float64, days int) (*models.ForecastResult, error)
	GetReport(query models.LocationQuery, days int) (*models.WeatherReport, error)
}

// AdvisoryServiceInterface generates travel advice for a location and horizon
type AdvisoryServiceInterface interface {
	GetAdvisory(query models.LocationQuery, days int) (*models.AdvisoryResult, error)
}

// MediaServiceInterface looks up map, video and photo media for a place
type MediaServiceInterface interface {
	GetMedia(query string) (*models.MediaResult, error)
}

// HistoryServiceInterface defines the interface for search history operations
type HistoryServiceInterface interface {
	Record(query string) error
	List() ([]models.HistoryRecord, error)
	Delete(query string) error
	ExportCSV() ([]byte, error)
}

// HistoryRepositoryInterface defines the interface for history data operations
type HistoryRepositoryInterface interface {
	Add(query string) error
	List() ([]models.HistoryRecord, error)
	DeleteByQuery(query string) error
	Count() (int64, error)
}
