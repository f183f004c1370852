// Package service implements business logic for the application
package service

import (
	"log/slog"

	"travelcast.app/models"
)

// WeatherService orchestrates location resolution and forecast retrieval
type WeatherService struct {
	resolver LocationResolverInterface
	forecast ForecastProviderInterface
	history  HistoryServiceInterface
}

// NewWeatherService creates a new weather service
func NewWeatherService(
	resolver LocationResolverInterface,
	forecast ForecastProviderInterface,
	history HistoryServiceInterface,
) *WeatherService {
	return &WeatherService{
		resolver: resolver,
		forecast: forecast,
		history:  history,
	}
}

// Resolve turns a location query into coordinates and a display name.
func (s *WeatherService) Resolve(query models.LocationQuery) (*models.ResolvedLocation, error) {
	return s.resolver.Resolve(query)
}

// GetForecast retrieves the forecast for explicit coordinates.
func (s *WeatherService) GetForecast(lat, lon float64, days int) (*models.ForecastResult, error) {
	return s.forecast.FetchForecast(lat, lon, days)
}

// GetReport resolves the query and fetches its forecast in one step. A
// successful report appends the resolved display name to the search history;
// a history write failure is logged but never fails the report.
func (s *WeatherService) GetReport(query models.LocationQuery, days int) (*models.WeatherReport, error) {
	location, err := s.resolver.Resolve(query)
	if err != nil {
		return nil, err
	}

	forecast, err := s.forecast.FetchForecast(location.Latitude, location.Longitude, days)
	if err != nil {
		return nil, err
	}

	if err := s.history.Record(location.DisplayName); err != nil {
		slog.Warn("failed to record search history", "query", location.DisplayName, "error", err)
	}

	return &models.WeatherReport{
		Location: *location,
		Forecast: *forecast,
	}, nil
}
