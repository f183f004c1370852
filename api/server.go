// Package api implements the HTTP server and request handlers
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
	"travelcast.app/config"
	apperrors "travelcast.app/errors"
	"travelcast.app/models"
	"travelcast.app/service"
)

// Server represents the HTTP server and API handler
type Server struct {
	router          *gin.Engine
	db              *gorm.DB
	config          *config.Config
	weatherService  service.WeatherServiceInterface
	advisoryService service.AdvisoryServiceInterface
	mediaService    service.MediaServiceInterface
	historyService  service.HistoryServiceInterface
}

// NewServer creates and configures a new HTTP server
func NewServer(
	db *gorm.DB,
	config *config.Config,
	weatherService service.WeatherServiceInterface,
	advisoryService service.AdvisoryServiceInterface,
	mediaService service.MediaServiceInterface,
	historyService service.HistoryServiceInterface,
) *Server {
	router := gin.Default()
	router.Use(RequestIDMiddleware())
	registerValidations()

	server := &Server{
		router:          router,
		db:              db,
		config:          config,
		weatherService:  weatherService,
		advisoryService: advisoryService,
		mediaService:    mediaService,
		historyService:  historyService,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/weather", s.getWeather)
		api.GET("/resolve", s.resolveLocation)
		api.GET("/forecast", s.getForecast)
		api.GET("/advisory", s.getAdvisory)
		api.GET("/media", s.getMedia)
		api.GET("/history", s.listHistory)
		api.DELETE("/history", s.deleteHistory)
		api.GET("/history/export", s.exportHistory)
		api.GET("/health", s.healthCheck)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.ServeStaticFiles()
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// validateCoordsFormat validates the browser-reported "lat,lon" pair format
func validateCoordsFormat(fl validator.FieldLevel) bool {
	_, _, err := parseCoordsParam(fl.Field().String())
	return err == nil
}

// registerValidations registers custom binding validators on gin's engine
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("coords", validateCoordsFormat); err != nil {
			slog.Warn("Failed to register coords validator", "error", err)
		}
	}
}

// locationQueryFromRequest maps the shared location query parameters onto a
// LocationQuery. Exactly one selector is honored, checked in order: place,
// lat/lon, auto.
func locationQueryFromRequest(req *models.LocationRequest) (models.LocationQuery, error) {
	switch {
	case strings.TrimSpace(req.Place) != "":
		return models.FreeTextQuery(req.Place), nil
	case req.Lat != nil && req.Lon != nil:
		return models.CoordinatesQuery(*req.Lat, *req.Lon), nil
	case req.Auto:
		if req.Coords != "" {
			lat, lon, err := parseCoordsParam(req.Coords)
			if err != nil {
				return models.LocationQuery{}, err
			}
			return models.CurrentPositionQueryWithCoords(lat, lon), nil
		}
		return models.CurrentPositionQuery(), nil
	default:
		return models.LocationQuery{}, apperrors.NewValidationError("one of place, lat/lon or auto is required")
	}
}

// parseCoordsParam parses the browser-reported "lat,lon" pair.
func parseCoordsParam(coords string) (float64, float64, error) {
	parts := strings.SplitN(coords, ",", 2)
	if len(parts) != 2 {
		return 0, 0, apperrors.NewValidationError("coords must be formatted as 'lat,lon'")
	}

	lat, latErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if latErr != nil || lonErr != nil {
		return 0, 0, apperrors.NewValidationError("coords must be formatted as 'lat,lon'")
	}

	return lat, lon, nil
}

func (s *Server) bindLocationRequest(c *gin.Context) (*models.LocationRequest, models.LocationQuery, bool) {
	var req models.LocationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		s.handleError(c, apperrors.NewValidationError("invalid request format"))
		return nil, models.LocationQuery{}, false
	}

	query, err := locationQueryFromRequest(&req)
	if err != nil {
		s.handleError(c, err)
		return nil, models.LocationQuery{}, false
	}

	return &req, query, true
}

func (s *Server) getWeather(c *gin.Context) {
	req, query, ok := s.bindLocationRequest(c)
	if !ok {
		return
	}

	slog.Debug("Getting weather report", "kind", query.Kind, "days", req.Days)
	report, err := s.weatherService.GetReport(query, req.Days)
	if err != nil {
		slog.Error("Weather report error", "error", err, "kind", query.Kind)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) resolveLocation(c *gin.Context) {
	_, query, ok := s.bindLocationRequest(c)
	if !ok {
		return
	}

	location, err := s.weatherService.Resolve(query)
	if err != nil {
		slog.Error("Resolve error", "error", err, "kind", query.Kind)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, location)
}

func (s *Server) getForecast(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		s.handleError(c, apperrors.NewValidationError("lat and lon parameters are required"))
		return
	}

	days := s.config.Forecast.DefaultDays
	if daysParam := c.Query("days"); daysParam != "" {
		parsed, err := strconv.Atoi(daysParam)
		if err != nil {
			s.handleError(c, apperrors.NewValidationError("days must be an integer"))
			return
		}
		days = parsed
	}

	forecast, err := s.weatherService.GetForecast(lat, lon, days)
	if err != nil {
		slog.Error("Forecast error", "error", err, "lat", lat, "lon", lon)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, forecast)
}

func (s *Server) getAdvisory(c *gin.Context) {
	req, query, ok := s.bindLocationRequest(c)
	if !ok {
		return
	}

	advisory, err := s.advisoryService.GetAdvisory(query, req.Days)
	if err != nil {
		slog.Error("Advisory error", "error", err, "kind", query.Kind)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, advisory)
}

func (s *Server) getMedia(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		s.handleError(c, apperrors.NewValidationError("query parameter is required"))
		return
	}

	media, err := s.mediaService.GetMedia(query)
	if err != nil {
		slog.Error("Media error", "error", err, "query", query)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, media)
}

func (s *Server) listHistory(c *gin.Context) {
	records, err := s.historyService.List()
	if err != nil {
		slog.Error("History list error", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

func (s *Server) deleteHistory(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		s.handleError(c, apperrors.NewValidationError("query parameter is required"))
		return
	}

	if err := s.historyService.Delete(query); err != nil {
		slog.Error("History delete error", "error", err, "query", query)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "History entry deleted"})
}

func (s *Server) exportHistory(c *gin.Context) {
	data, err := s.historyService.ExportCSV()
	if err != nil {
		slog.Error("History export error", "error", err)
		s.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=search_history.csv")
	c.Data(http.StatusOK, "text/csv", data)
}

func (s *Server) healthCheck(c *gin.Context) {
	dbConnected := true
	if sqlDB, err := s.db.DB(); err != nil || sqlDB.Ping() != nil {
		dbConnected = false
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"database": gin.H{
			"connected": dbConnected,
			"driver":    s.config.Database.Driver,
		},
		"providers": gin.H{
			"geocoding": s.config.Geocoding.BaseURL,
			"forecast":  s.config.Forecast.BaseURL,
			"advisory":  s.config.Advisory.APIToken != "",
			"youtube":   s.config.Media.YouTubeAPIKey != "",
			"unsplash":  s.config.Media.UnsplashAccessKey != "",
		},
	})
}

// handleError handles different types of application errors
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	var statusCode int
	var message string

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ValidationError:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case apperrors.NotFoundError:
			statusCode = http.StatusNotFound
			message = appErr.Message
		case apperrors.ExternalAPIError:
			statusCode = http.StatusBadGateway
			message = appErr.Message
		case apperrors.DatabaseError:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		case apperrors.ConfigurationError:
			statusCode = http.StatusServiceUnavailable
			message = appErr.Message
		default:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		}
	} else {
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}
