// Package app wires configuration, storage, providers and the HTTP server
package app

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"travelcast.app/api"
	"travelcast.app/config"
	"travelcast.app/database"
	"travelcast.app/providers"
	"travelcast.app/providers/cache"
	"travelcast.app/repository"
	"travelcast.app/service"
)

// Application represents the main application with all its dependencies
type Application struct {
	config *config.Config
	db     *gorm.DB
	server *api.Server
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeDatabase(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

func (app *Application) initializeDatabase() error {
	slog.Info("Initializing history store...", "driver", app.config.Database.Driver)

	db, err := database.InitDB(app.config.Database)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return fmt.Errorf("initialize database connection: %w", err)
	}

	if err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		return fmt.Errorf("run database migrations: %w", err)
	}

	app.db = db
	slog.Info("History store initialized successfully")
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	resolver, forecast, err := app.buildProviders()
	if err != nil {
		return fmt.Errorf("build providers: %w", err)
	}

	historyRepo := repository.NewHistoryRepository(app.db)
	historyService := service.NewHistoryService(historyRepo)

	weatherService := service.NewWeatherService(resolver, forecast, historyService)

	advisoryEnabled := app.config.Advisory.APIToken != ""
	var advisor providers.AdvisoryProvider
	if advisoryEnabled {
		advisor = providers.NewHuggingFaceProvider(&app.config.Advisory)
	} else {
		slog.Info("Travel advisory disabled, no API token configured")
	}
	advisoryService := service.NewAdvisoryService(resolver, forecast, advisor, advisoryEnabled)

	mediaService := service.NewMediaService(
		providers.NewYouTubeProvider(&app.config.Media),
		providers.NewUnsplashProvider(&app.config.Media),
		&app.config.Media,
	)

	app.server = api.NewServer(
		app.db,
		app.config,
		weatherService,
		advisoryService,
		mediaService,
		historyService,
	)

	slog.Info("Services initialized successfully")
	return nil
}

// buildProviders assembles the resolver and forecast pipelines: raw provider,
// optional traffic logging, then the metrics-instrumented cache proxy.
func (app *Application) buildProviders() (providers.LocationResolver, providers.ForecastProvider, error) {
	geocoder := providers.NewNominatimProvider(&app.config.Geocoding)
	ipLocator := providers.NewIPWhoisProvider(&app.config.IPLocator)

	locationCache := cache.NewLocationCache(
		providers.NewInstrumentedCache(cache.NewFromConfig(&app.config.Cache), "geocode"),
	)
	forecastCache := cache.NewForecastCache(
		providers.NewInstrumentedCache(cache.NewFromConfig(&app.config.Cache), "forecast"),
	)

	resolver := providers.NewResolverCacheProxy(
		providers.NewGeoResolver(geocoder, ipLocator),
		locationCache,
		app.config.Cache.GeocodeTTL,
		app.config.Cache.ReverseTTL,
	)

	var forecast providers.ForecastProvider = providers.NewOpenMeteoProvider(&app.config.Forecast)
	if app.config.Forecast.LogFile != "" {
		fileLogger, err := providers.NewFileLogger(app.config.Forecast.LogFile)
		if err != nil {
			return nil, nil, fmt.Errorf("create forecast traffic logger: %w", err)
		}
		forecast = providers.NewForecastLoggerDecorator(forecast, fileLogger, "openmeteo")
	}
	forecast = providers.NewForecastCacheProxy(forecast, forecastCache, app.config.Cache.ForecastTTL)

	return resolver, forecast, nil
}

// Start starts the application
func (app *Application) Start() error {
	slog.Info("Starting HTTP server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	slog.Info("Shutting down application...")

	if app.db != nil {
		if err := database.CloseDB(app.db); err != nil {
			slog.Warn("Error closing database", "error", err)
		}
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (app *Application) Config() *config.Config {
	return app.config
}
