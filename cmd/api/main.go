// Package main provides the entrypoint for the scootstats API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/scootstats/scootstats/internal/api"
	"github.com/scootstats/scootstats/internal/api/middleware"
	"github.com/scootstats/scootstats/internal/dashboard"
	"github.com/scootstats/scootstats/internal/ingest"
	"github.com/scootstats/scootstats/internal/prefs"
	"github.com/scootstats/scootstats/internal/telemetry"
)

// Version is set at compile time via ldflags.
var Version = "dev"

func main() {
	const serviceName = "scootstats-api"

	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().Msg("starting scootstats API")

	port := getEnvOrDefault("APP_PORT", "8080")
	env := getEnvOrDefault("APP_ENV", "development")
	otlpEndpoint := getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	prefsPath := getEnvOrDefault("PREFS_PATH", "data/prefs.json")

	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        os.Getenv("OTEL_ENABLED") == "true",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	prefsRepo, err := prefs.NewFileRepository(prefsPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", prefsPath).Msg("failed to open preferences store")
	}
	log.Info().Str("path", prefsPath).Msg("preferences store ready")

	loader := ingest.NewLoader(ingest.LoaderConfig{
		Logger: log.With().Str("component", "loader").Logger(),
	})

	dashboardService := dashboard.NewService(dashboard.ServiceConfig{
		Loader: loader,
		Prefs:  prefsRepo,
		Logger: log.With().Str("component", "dashboard").Logger(),
	})
	if dashboardService.Connected() {
		log.Info().Msg("restored persisted source URL, waiting for first refresh")
	}

	router := api.NewRouter(api.RouterConfig{
		Version:   Version,
		Logger:    log,
		Metrics:   metrics,
		Dashboard: dashboardService,
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
