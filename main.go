package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"travelcast.app/app"
)

func main() {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found or error loading it")
	}

	configDisplayer := app.NewConfigDisplayer()

	// Uncomment to dump the full environment when debugging config issues
	// configDisplayer.PrintAllEnvVars()

	application, err := app.NewApplication()
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	configDisplayer.PrintConfig(application.Config())

	setupGracefulShutdown(application)

	slog.Info("Starting Travelcast dashboard...")
	if err := application.Start(); err != nil {
		slog.Error("Failed to start application", "error", err)
		os.Exit(1)
	}
}

func setupGracefulShutdown(app *app.Application) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		slog.Info("Received shutdown signal...")
		if err := app.Shutdown(); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
		os.Exit(0)
	}()
}
