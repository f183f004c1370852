package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"travelcast.app/config"
	apperrors "travelcast.app/errors"
	"travelcast.app/models"
)

type fakeWeatherService struct {
	location  *models.ResolvedLocation
	forecast  *models.ForecastResult
	report    *models.WeatherReport
	err       error
	lastQuery models.LocationQuery
	lastDays  int
}

func (f *fakeWeatherService) Resolve(query models.LocationQuery) (*models.ResolvedLocation, error) {
	f.lastQuery = query
	return f.location, f.err
}

func (f *fakeWeatherService) GetForecast(lat, lon float64, days int) (*models.ForecastResult, error) {
	f.lastDays = days
	return f.forecast, f.err
}

func (f *fakeWeatherService) GetReport(query models.LocationQuery, days int) (*models.WeatherReport, error) {
	f.lastQuery = query
	f.lastDays = days
	return f.report, f.err
}

type fakeAdvisoryService struct {
	result *models.AdvisoryResult
	err    error
}

func (f *fakeAdvisoryService) GetAdvisory(query models.LocationQuery, days int) (*models.AdvisoryResult, error) {
	return f.result, f.err
}

type fakeMediaService struct {
	result *models.MediaResult
	err    error
}

func (f *fakeMediaService) GetMedia(query string) (*models.MediaResult, error) {
	return f.result, f.err
}

type fakeHistoryService struct {
	records []models.HistoryRecord
	csv     []byte
	err     error
	deleted []string
}

func (f *fakeHistoryService) Record(query string) error {
	return f.err
}

func (f *fakeHistoryService) List() ([]models.HistoryRecord, error) {
	return f.records, f.err
}

func (f *fakeHistoryService) Delete(query string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, query)
	return nil
}

func (f *fakeHistoryService) ExportCSV() ([]byte, error) {
	return f.csv, f.err
}

type serverFixture struct {
	server   *Server
	weather  *fakeWeatherService
	advisory *fakeAdvisoryService
	media    *fakeMediaService
	history  *fakeHistoryService
}

func newTestServer(t *testing.T) *serverFixture {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Server.Port = 8080
	cfg.Database.Driver = "sqlite"
	cfg.Forecast.DefaultDays = 5
	cfg.Geocoding.BaseURL = "https://nominatim.openstreetmap.org"
	cfg.Forecast.BaseURL = "https://api.open-meteo.com/v1"

	weather := &fakeWeatherService{}
	advisory := &fakeAdvisoryService{}
	media := &fakeMediaService{}
	history := &fakeHistoryService{}

	server := NewServer(db, cfg, weather, advisory, media, history)

	return &serverFixture{
		server:   server,
		weather:  weather,
		advisory: advisory,
		media:    media,
		history:  history,
	}
}

func (f *serverFixture) request(method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	f.server.GetRouter().ServeHTTP(w, req)
	return w
}

func sampleReport() *models.WeatherReport {
	return &models.WeatherReport{
		Location: models.ResolvedLocation{Latitude: 48.85, Longitude: 2.35, DisplayName: "Paris, France"},
		Forecast: models.ForecastResult{
			Timezone: "Europe/Paris",
			Daily: []models.DailyForecastEntry{
				{Date: "2025-06-10", TempMaxC: 22.1, TempMinC: 12.3},
			},
		},
	}
}

func TestGetWeatherEndpoint(t *testing.T) {
	t.Run("PlaceQuery", func(t *testing.T) {
		f := newTestServer(t)
		f.weather.report = sampleReport()

		w := f.request(http.MethodGet, "/api/weather?place=Paris")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, models.QueryFreeText, f.weather.lastQuery.Kind)
		assert.Equal(t, 5, f.weather.lastDays)

		var report models.WeatherReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		assert.Equal(t, "Paris, France", report.Location.DisplayName)
	})

	t.Run("CoordinateQuery", func(t *testing.T) {
		f := newTestServer(t)
		f.weather.report = sampleReport()

		w := f.request(http.MethodGet, "/api/weather?lat=48.85&lon=2.35&days=3")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, models.QueryCoordinates, f.weather.lastQuery.Kind)
		assert.Equal(t, 48.85, f.weather.lastQuery.Latitude)
		assert.Equal(t, 3, f.weather.lastDays)
	})

	t.Run("AutoQueryWithClientCoords", func(t *testing.T) {
		f := newTestServer(t)
		f.weather.report = sampleReport()

		w := f.request(http.MethodGet, "/api/weather?auto=true&coords=50.45,30.52")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, models.QueryCurrentPosition, f.weather.lastQuery.Kind)
		assert.True(t, f.weather.lastQuery.HasClientCoords)
		assert.Equal(t, 50.45, f.weather.lastQuery.Latitude)
		assert.Equal(t, 30.52, f.weather.lastQuery.Longitude)
	})

	t.Run("AutoQueryWithoutCoords", func(t *testing.T) {
		f := newTestServer(t)
		f.weather.report = sampleReport()

		w := f.request(http.MethodGet, "/api/weather?auto=1")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, models.QueryCurrentPosition, f.weather.lastQuery.Kind)
		assert.False(t, f.weather.lastQuery.HasClientCoords)
	})

	t.Run("MissingLocationSelector", func(t *testing.T) {
		f := newTestServer(t)

		w := f.request(http.MethodGet, "/api/weather")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "one of place, lat/lon or auto is required")
	})

	t.Run("MalformedCoords", func(t *testing.T) {
		f := newTestServer(t)

		w := f.request(http.MethodGet, "/api/weather?auto=1&coords=not-coords")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("DaysOutOfRange", func(t *testing.T) {
		f := newTestServer(t)
		f.weather.report = sampleReport()

		w := f.request(http.MethodGet, "/api/weather?place=Paris&days=9")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("LocationNotFound", func(t *testing.T) {
		f := newTestServer(t)
		f.weather.err = apperrors.NewNotFoundError("could not geocode location: 'nowhere'")

		w := f.request(http.MethodGet, "/api/weather?place=nowhere")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "could not geocode location")
	})

	t.Run("UpstreamFailure", func(t *testing.T) {
		f := newTestServer(t)
		f.weather.err = apperrors.NewExternalAPIError("forecast service returned status code 500", nil)

		w := f.request(http.MethodGet, "/api/weather?place=Paris")

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestResolveEndpoint(t *testing.T) {
	t.Run("ReturnsResolvedLocation", func(t *testing.T) {
		f := newTestServer(t)
		f.weather.location = &models.ResolvedLocation{Latitude: 48.85, Longitude: 2.35, DisplayName: "Paris, France"}

		w := f.request(http.MethodGet, "/api/resolve?place=Paris")

		assert.Equal(t, http.StatusOK, w.Code)

		var location models.ResolvedLocation
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &location))
		assert.Equal(t, "Paris, France", location.DisplayName)
	})

	t.Run("MissingSelector", func(t *testing.T) {
		f := newTestServer(t)

		w := f.request(http.MethodGet, "/api/resolve")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestForecastEndpoint(t *testing.T) {
	t.Run("ValidRequest", func(t *testing.T) {
		f := newTestServer(t)
		f.weather.forecast = &models.ForecastResult{Timezone: "Europe/Paris"}

		w := f.request(http.MethodGet, "/api/forecast?lat=48.85&lon=2.35&days=3")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 3, f.weather.lastDays)
	})

	t.Run("DefaultDays", func(t *testing.T) {
		f := newTestServer(t)
		f.weather.forecast = &models.ForecastResult{Timezone: "Europe/Paris"}

		w := f.request(http.MethodGet, "/api/forecast?lat=48.85&lon=2.35")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 5, f.weather.lastDays)
	})

	t.Run("MissingCoordinates", func(t *testing.T) {
		f := newTestServer(t)

		w := f.request(http.MethodGet, "/api/forecast?lat=48.85")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "lat and lon parameters are required")
	})

	t.Run("NonNumericDays", func(t *testing.T) {
		f := newTestServer(t)

		w := f.request(http.MethodGet, "/api/forecast?lat=48.85&lon=2.35&days=soon")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdvisoryEndpoint(t *testing.T) {
	t.Run("ReturnsAdvice", func(t *testing.T) {
		f := newTestServer(t)
		f.advisory.result = &models.AdvisoryResult{Place: "Paris, France", Days: 5, Advice: "Pack a rain jacket."}

		w := f.request(http.MethodGet, "/api/advisory?place=Paris")

		assert.Equal(t, http.StatusOK, w.Code)

		var result models.AdvisoryResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, "Pack a rain jacket.", result.Advice)
	})

	t.Run("NotConfigured", func(t *testing.T) {
		f := newTestServer(t)
		f.advisory.err = apperrors.NewExternalAPIError("travel advisory is not configured", nil)

		w := f.request(http.MethodGet, "/api/advisory?place=Paris")

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "not configured")
	})
}

func TestMediaEndpoint(t *testing.T) {
	t.Run("ReturnsMediaBundle", func(t *testing.T) {
		f := newTestServer(t)
		f.media.result = &models.MediaResult{
			MapURL: "https://maps.google.com/maps?q=Paris&z=10&output=embed",
			Videos: []models.VideoResult{{Title: "Paris in 4K", VideoID: "abc123"}},
			Images: []string{"https://images.unsplash.com/photo-1"},
		}

		w := f.request(http.MethodGet, "/api/media?query=Paris")

		assert.Equal(t, http.StatusOK, w.Code)

		var result models.MediaResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Contains(t, result.MapURL, "output=embed")
		require.Len(t, result.Videos, 1)
	})

	t.Run("MissingQuery", func(t *testing.T) {
		f := newTestServer(t)

		w := f.request(http.MethodGet, "/api/media")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHistoryEndpoints(t *testing.T) {
	t.Run("ListHistory", func(t *testing.T) {
		f := newTestServer(t)
		f.history.records = []models.HistoryRecord{
			{ID: 2, Query: "Kyiv", CreatedAt: time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)},
			{ID: 1, Query: "Paris", CreatedAt: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)},
		}

		w := f.request(http.MethodGet, "/api/history")

		assert.Equal(t, http.StatusOK, w.Code)

		var records []models.HistoryRecord
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
		require.Len(t, records, 2)
		assert.Equal(t, "Kyiv", records[0].Query)
	})

	t.Run("DeleteHistory", func(t *testing.T) {
		f := newTestServer(t)

		w := f.request(http.MethodDelete, "/api/history?query=Paris")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"Paris"}, f.history.deleted)
	})

	t.Run("DeleteUnknownQueryStillOK", func(t *testing.T) {
		f := newTestServer(t)

		w := f.request(http.MethodDelete, "/api/history?query=Atlantis")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("DeleteWithoutQuery", func(t *testing.T) {
		f := newTestServer(t)

		w := f.request(http.MethodDelete, "/api/history")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ExportCSV", func(t *testing.T) {
		f := newTestServer(t)
		f.history.csv = []byte("id,query,created_at\n1,Paris,2025-06-10T09:00:00Z\n")

		w := f.request(http.MethodGet, "/api/history/export")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
		assert.Equal(t, "attachment; filename=search_history.csv", w.Header().Get("Content-Disposition"))
		assert.True(t, strings.HasPrefix(w.Body.String(), "id,query,created_at"))
	})

	t.Run("ListFailure", func(t *testing.T) {
		f := newTestServer(t)
		f.history.err = apperrors.NewDatabaseError("failed to list history records", nil)

		w := f.request(http.MethodGet, "/api/history")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Internal server error")
	})
}

func TestHealthEndpoint(t *testing.T) {
	f := newTestServer(t)

	w := f.request(http.MethodGet, "/api/health")

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])

	database, ok := body["database"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, database["connected"])
	assert.Equal(t, "sqlite", database["driver"])
}

func TestMetricsEndpoint(t *testing.T) {
	f := newTestServer(t)

	w := f.request(http.MethodGet, "/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("GeneratesIDWhenAbsent", func(t *testing.T) {
		f := newTestServer(t)
		f.weather.report = sampleReport()

		w := f.request(http.MethodGet, "/api/weather?place=Paris")

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("EchoesInboundID", func(t *testing.T) {
		f := newTestServer(t)
		f.weather.report = sampleReport()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/weather?place=Paris", nil)
		req.Header.Set("X-Request-ID", "trace-me-123")
		f.server.GetRouter().ServeHTTP(w, req)

		assert.Equal(t, "trace-me-123", w.Header().Get("X-Request-ID"))
	})
}
