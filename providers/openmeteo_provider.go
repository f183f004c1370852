package providers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"travelcast.app/config"
	"travelcast.app/errors"
	"travelcast.app/models"
	"travelcast.app/weathercode"
)

const (
	dailyFields  = "temperature_2m_max,temperature_2m_min,weathercode,sunrise,sunset,precipitation_sum"
	hourlyFields = "temperature_2m,precipitation,weathercode,windspeed_10m"
)

// OpenMeteoProvider implements ForecastProvider for the Open-Meteo forecast API
type OpenMeteoProvider struct {
	baseURL string
	client  *http.Client
}

// NewOpenMeteoProvider creates a new Open-Meteo forecast provider
func NewOpenMeteoProvider(config *config.ForecastConfig) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		baseURL: config.BaseURL,
		client:  &http.Client{Timeout: config.Timeout},
	}
}

// Typed payload decoded once at the provider boundary. Optional fields are
// pointers so missing values surface as absent instead of zero.
type openMeteoResponse struct {
	Timezone       string            `json:"timezone"`
	CurrentWeather *openMeteoCurrent `json:"current_weather"`
	Daily          *openMeteoDaily   `json:"daily"`
}

type openMeteoCurrent struct {
	Time          *string  `json:"time"`
	Temperature   *float64 `json:"temperature"`
	Windspeed     *float64 `json:"windspeed"`
	Winddirection *float64 `json:"winddirection"`
	Weathercode   *int     `json:"weathercode"`
}

type openMeteoDaily struct {
	Time             []string   `json:"time"`
	TemperatureMax   []float64  `json:"temperature_2m_max"`
	TemperatureMin   []float64  `json:"temperature_2m_min"`
	Weathercode      []int      `json:"weathercode"`
	Sunrise          []string   `json:"sunrise"`
	Sunset           []string   `json:"sunset"`
	PrecipitationSum []*float64 `json:"precipitation_sum"`
}

// FetchForecast retrieves current conditions and a days-long daily forecast.
// A single GET, no retries; the daily sequence has exactly days entries.
func (p *OpenMeteoProvider) FetchForecast(lat, lon float64, days int) (*models.ForecastResult, error) {
	if lat < -90 || lat > 90 {
		return nil, errors.NewValidationError("latitude must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return nil, errors.NewValidationError("longitude must be between -180 and 180")
	}
	if days < 1 || days > 7 {
		return nil, errors.NewValidationError("forecast days must be between 1 and 7")
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("current_weather", "true")
	params.Set("timezone", "auto")
	params.Set("daily", dailyFields)
	params.Set("forecast_days", strconv.Itoa(days))
	params.Set("hourly", hourlyFields)

	resp, err := p.client.Get(fmt.Sprintf("%s/forecast?%s", p.baseURL, params.Encode()))
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to reach forecast service", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(fmt.Sprintf("forecast service returned status code %d", resp.StatusCode), nil)
	}

	var payload openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewExternalAPIError("failed to decode forecast response", err)
	}

	daily, err := buildDailyEntries(payload.Daily, days)
	if err != nil {
		return nil, err
	}

	return &models.ForecastResult{
		Timezone: payload.Timezone,
		Current:  buildCurrentConditions(payload.CurrentWeather),
		Daily:    daily,
	}, nil
}

func buildCurrentConditions(current *openMeteoCurrent) models.CurrentConditions {
	if current == nil {
		return models.CurrentConditions{Condition: weathercode.Lookup(-1)}
	}

	code := -1
	if current.Weathercode != nil {
		code = *current.Weathercode
	}

	return models.CurrentConditions{
		ObservedAt:       current.Time,
		TemperatureC:     current.Temperature,
		WindspeedKmh:     current.Windspeed,
		WindDirectionDeg: current.Winddirection,
		Condition:        weathercode.Lookup(code),
	}
}

func buildDailyEntries(daily *openMeteoDaily, days int) ([]models.DailyForecastEntry, error) {
	if daily == nil {
		return nil, errors.NewExternalAPIError("invalid forecast response format: missing daily data", nil)
	}
	if len(daily.Time) < days || len(daily.TemperatureMax) < days || len(daily.TemperatureMin) < days {
		return nil, errors.NewExternalAPIError("invalid forecast response format: incomplete daily data", nil)
	}

	entries := make([]models.DailyForecastEntry, 0, days)
	for i := 0; i < days; i++ {
		code := -1
		if i < len(daily.Weathercode) {
			code = daily.Weathercode[i]
		}

		entry := models.DailyForecastEntry{
			Date:      daily.Time[i],
			TempMaxC:  daily.TemperatureMax[i],
			TempMinC:  daily.TemperatureMin[i],
			Condition: weathercode.Lookup(code),
		}
		if i < len(daily.PrecipitationSum) && daily.PrecipitationSum[i] != nil {
			entry.PrecipitationMm = daily.PrecipitationSum[i]
		}
		if i < len(daily.Sunrise) {
			sunrise := daily.Sunrise[i]
			entry.Sunrise = &sunrise
		}
		if i < len(daily.Sunset) {
			sunset := daily.Sunset[i]
			entry.Sunset = &sunset
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
