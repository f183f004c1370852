package service

import (
	"fmt"
	"strings"

	"travelcast.app/errors"
	"travelcast.app/models"
	"travelcast.app/providers"
)

// AdvisoryService generates travel advice from a forecast summary via a
// hosted language model
type AdvisoryService struct {
	resolver LocationResolverInterface
	forecast ForecastProviderInterface
	advisor  providers.AdvisoryProvider
	enabled  bool
}

// NewAdvisoryService creates a new advisory service. A nil advisor or
// disabled flag means no API token was configured.
func NewAdvisoryService(
	resolver LocationResolverInterface,
	forecast ForecastProviderInterface,
	advisor providers.AdvisoryProvider,
	enabled bool,
) *AdvisoryService {
	return &AdvisoryService{
		resolver: resolver,
		forecast: forecast,
		advisor:  advisor,
		enabled:  enabled,
	}
}

// GetAdvisory resolves the location, fetches its forecast and asks the
// advisor for travel recommendations covering the requested horizon.
func (s *AdvisoryService) GetAdvisory(query models.LocationQuery, days int) (*models.AdvisoryResult, error) {
	if !s.enabled || s.advisor == nil {
		return nil, errors.NewExternalAPIError("travel advisory is not configured", nil)
	}

	location, err := s.resolver.Resolve(query)
	if err != nil {
		return nil, err
	}

	forecast, err := s.forecast.FetchForecast(location.Latitude, location.Longitude, days)
	if err != nil {
		return nil, err
	}

	advice, err := s.advisor.GenerateAdvice(buildAdvisoryPrompt(location.DisplayName, days, forecast))
	if err != nil {
		return nil, err
	}

	return &models.AdvisoryResult{
		Place:  location.DisplayName,
		Days:   days,
		Advice: advice,
	}, nil
}

// buildAdvisoryPrompt renders the forecast into a compact day-by-day summary
// the model can reason over.
func buildAdvisoryPrompt(place string, days int, forecast *models.ForecastResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "I am planning a trip to %s for the next %d days.\n", place, days)
	b.WriteString("Here is the weather forecast:\n")

	for _, day := range forecast.Daily {
		fmt.Fprintf(&b, "- %s: %s, high %.1f C, low %.1f C", day.Date, day.Condition.Label, day.TempMaxC, day.TempMinC)
		if day.PrecipitationMm != nil {
			fmt.Fprintf(&b, ", precipitation %.1f mm", *day.PrecipitationMm)
		}
		if day.Sunrise != nil && day.Sunset != nil {
			fmt.Fprintf(&b, ", sunrise %s, sunset %s", *day.Sunrise, *day.Sunset)
		}
		b.WriteString("\n")
	}

	b.WriteString("Give practical travel recommendations for this trip: what to pack, " +
		"what outdoor activities suit this weather, any precautions to take, and " +
		"any weather-related health advice. Keep it concise.")

	return b.String()
}
