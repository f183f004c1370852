package providers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"travelcast.app/config"
	apperrors "travelcast.app/errors"
)

const openMeteoFiveDayBody = `{
	"timezone": "Europe/Paris",
	"current_weather": {
		"time": "2025-06-10T14:00",
		"temperature": 21.4,
		"windspeed": 12.3,
		"winddirection": 245.0,
		"weathercode": 2
	},
	"daily": {
		"time": ["2025-06-10", "2025-06-11", "2025-06-12", "2025-06-13", "2025-06-14"],
		"temperature_2m_max": [22.1, 23.5, 19.8, 18.2, 20.0],
		"temperature_2m_min": [12.3, 13.1, 11.0, 10.5, 11.8],
		"weathercode": [2, 61, 3, 95, 0],
		"sunrise": ["2025-06-10T05:49", "2025-06-11T05:49", "2025-06-12T05:48", "2025-06-13T05:48", "2025-06-14T05:48"],
		"sunset": ["2025-06-10T21:51", "2025-06-11T21:52", "2025-06-12T21:53", "2025-06-13T21:53", "2025-06-14T21:54"],
		"precipitation_sum": [0.0, 4.2, null, 12.7, 0.0]
	}
}`

func TestOpenMeteoProvider_FetchForecast(t *testing.T) {
	t.Run("ValidForecastResponse", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.String(), "/forecast")
			assert.Contains(t, r.URL.String(), "latitude=48.85")
			assert.Contains(t, r.URL.String(), "longitude=2.35")
			assert.Contains(t, r.URL.String(), "current_weather=true")
			assert.Contains(t, r.URL.String(), "forecast_days=5")
			assert.Contains(t, r.URL.String(), "timezone=auto")

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, err := w.Write([]byte(openMeteoFiveDayBody))
			require.NoError(t, err)
		}))
		defer mockServer.Close()

		provider := NewOpenMeteoProvider(&config.ForecastConfig{BaseURL: mockServer.URL})
		forecast, err := provider.FetchForecast(48.85, 2.35, 5)

		require.NoError(t, err)
		require.NotNil(t, forecast)
		assert.Equal(t, "Europe/Paris", forecast.Timezone)

		require.NotNil(t, forecast.Current.TemperatureC)
		assert.Equal(t, 21.4, *forecast.Current.TemperatureC)
		assert.Equal(t, 2, forecast.Current.Condition.Code)
		assert.Equal(t, "Partly cloudy", forecast.Current.Condition.Label)

		require.Len(t, forecast.Daily, 5)
		assert.Equal(t, "2025-06-10", forecast.Daily[0].Date)
		assert.Equal(t, "2025-06-14", forecast.Daily[4].Date)
		assert.Equal(t, 22.1, forecast.Daily[0].TempMaxC)
		assert.Equal(t, 12.3, forecast.Daily[0].TempMinC)
		assert.Equal(t, "Slight rain", forecast.Daily[1].Condition.Label)

		require.NotNil(t, forecast.Daily[1].PrecipitationMm)
		assert.Equal(t, 4.2, *forecast.Daily[1].PrecipitationMm)
		assert.Nil(t, forecast.Daily[2].PrecipitationMm)

		require.NotNil(t, forecast.Daily[0].Sunrise)
		assert.Equal(t, "2025-06-10T05:49", *forecast.Daily[0].Sunrise)
	})

	t.Run("TruncatesExtraDays", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, err := w.Write([]byte(openMeteoFiveDayBody))
			require.NoError(t, err)
		}))
		defer mockServer.Close()

		provider := NewOpenMeteoProvider(&config.ForecastConfig{BaseURL: mockServer.URL})
		forecast, err := provider.FetchForecast(48.85, 2.35, 3)

		require.NoError(t, err)
		require.Len(t, forecast.Daily, 3)
		assert.Equal(t, "2025-06-12", forecast.Daily[2].Date)
	})

	t.Run("UnknownWeathercode", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, err := w.Write([]byte(`{
				"timezone": "UTC",
				"current_weather": {"temperature": 10.0, "weathercode": 42},
				"daily": {
					"time": ["2025-06-10"],
					"temperature_2m_max": [15.0],
					"temperature_2m_min": [8.0],
					"weathercode": [42]
				}
			}`))
			require.NoError(t, err)
		}))
		defer mockServer.Close()

		provider := NewOpenMeteoProvider(&config.ForecastConfig{BaseURL: mockServer.URL})
		forecast, err := provider.FetchForecast(10.0, 10.0, 1)

		require.NoError(t, err)
		assert.Equal(t, "Unknown", forecast.Current.Condition.Label)
		assert.Equal(t, "Unknown", forecast.Daily[0].Condition.Label)
	})

	t.Run("MissingCurrentWeather", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, err := w.Write([]byte(`{
				"timezone": "UTC",
				"daily": {
					"time": ["2025-06-10"],
					"temperature_2m_max": [15.0],
					"temperature_2m_min": [8.0],
					"weathercode": [0]
				}
			}`))
			require.NoError(t, err)
		}))
		defer mockServer.Close()

		provider := NewOpenMeteoProvider(&config.ForecastConfig{BaseURL: mockServer.URL})
		forecast, err := provider.FetchForecast(10.0, 10.0, 1)

		require.NoError(t, err)
		assert.Nil(t, forecast.Current.TemperatureC)
		assert.Equal(t, "Unknown", forecast.Current.Condition.Label)
		require.Len(t, forecast.Daily, 1)
	})

	t.Run("IncompleteDailyData", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, err := w.Write([]byte(`{
				"timezone": "UTC",
				"daily": {
					"time": ["2025-06-10", "2025-06-11"],
					"temperature_2m_max": [15.0, 16.0],
					"temperature_2m_min": [8.0, 9.0],
					"weathercode": [0, 1]
				}
			}`))
			require.NoError(t, err)
		}))
		defer mockServer.Close()

		provider := NewOpenMeteoProvider(&config.ForecastConfig{BaseURL: mockServer.URL})
		forecast, err := provider.FetchForecast(10.0, 10.0, 5)

		assert.Error(t, err)
		assert.Nil(t, forecast)

		var appErr *apperrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.ExternalAPIError, appErr.Type)
		assert.Contains(t, appErr.Message, "incomplete daily data")
	})

	t.Run("MissingDailyBlock", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, err := w.Write([]byte(`{"timezone": "UTC"}`))
			require.NoError(t, err)
		}))
		defer mockServer.Close()

		provider := NewOpenMeteoProvider(&config.ForecastConfig{BaseURL: mockServer.URL})
		forecast, err := provider.FetchForecast(10.0, 10.0, 1)

		assert.Error(t, err)
		assert.Nil(t, forecast)

		var appErr *apperrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.ExternalAPIError, appErr.Type)
		assert.Contains(t, appErr.Message, "missing daily data")
	})

	t.Run("InvalidCoordinates", func(t *testing.T) {
		provider := NewOpenMeteoProvider(&config.ForecastConfig{BaseURL: "https://forecast.example.com"})

		_, err := provider.FetchForecast(91.0, 0.0, 5)
		var appErr *apperrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.ValidationError, appErr.Type)

		_, err = provider.FetchForecast(0.0, 181.0, 5)
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.ValidationError, appErr.Type)
	})

	t.Run("InvalidDays", func(t *testing.T) {
		provider := NewOpenMeteoProvider(&config.ForecastConfig{BaseURL: "https://forecast.example.com"})

		for _, days := range []int{0, 8, -1} {
			_, err := provider.FetchForecast(48.85, 2.35, days)
			assert.Error(t, err)

			var appErr *apperrors.AppError
			assert.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperrors.ValidationError, appErr.Type)
			assert.Contains(t, appErr.Message, "forecast days must be between 1 and 7")
		}
	})

	t.Run("ServerError", func(t *testing.T) {
		mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer mockServer.Close()

		provider := NewOpenMeteoProvider(&config.ForecastConfig{BaseURL: mockServer.URL})
		forecast, err := provider.FetchForecast(48.85, 2.35, 5)

		assert.Error(t, err)
		assert.Nil(t, forecast)

		var appErr *apperrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.ExternalAPIError, appErr.Type)
	})
}
