// Package api provides the HTTP API for scootstats.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/scootstats/scootstats/internal/api/handler"
	"github.com/scootstats/scootstats/internal/api/middleware"
	"github.com/scootstats/scootstats/internal/dashboard"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version   string
	Logger    zerolog.Logger
	Metrics   *middleware.Metrics
	Dashboard *dashboard.Service
}

// NewRouter creates the chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware, order matters.
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing())
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.ContentTypeJSON)

	opsHandler := handler.NewOpsHandler(cfg.Version)
	sourceHandler := handler.NewSourceHandler(cfg.Dashboard)
	rideHandler := handler.NewRideHandler(cfg.Dashboard)
	statsHandler := handler.NewStatsHandler(cfg.Dashboard)
	filterHandler := handler.NewFilterHandler(cfg.Dashboard)
	prefsHandler := handler.NewPrefsHandler(cfg.Dashboard)
	exportHandler := handler.NewExportHandler(cfg.Dashboard, cfg.Logger)

	// Connect and refresh hit the upstream sheet; everything else reads
	// in-memory state.
	fetchRateLimit := middleware.RateLimitByIP(middleware.FetchRateLimit)
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		r.Route("/source", func(r chi.Router) {
			r.Get("/", sourceHandler.Status)
			r.With(fetchRateLimit).Post("/", sourceHandler.Connect)
			r.With(fetchRateLimit).Post("/refresh", sourceHandler.Refresh)
			r.Delete("/", sourceHandler.Disconnect)
		})

		r.Group(func(r chi.Router) {
			r.Use(standardRateLimit)

			r.Get("/rides", rideHandler.List)
			r.Get("/rides/{rideId}", rideHandler.Get)

			r.Route("/stats", func(r chi.Router) {
				r.Get("/", statsHandler.Totals)
				r.Get("/monthly", statsHandler.Monthly)
				r.Get("/calendar", statsHandler.Calendar)
				r.Get("/summaries", statsHandler.Summaries)
				r.Get("/modes", statsHandler.Modes)
				r.Get("/behavior", statsHandler.Behavior)
				r.Get("/years", statsHandler.Years)
			})

			r.Route("/filters", func(r chi.Router) {
				r.Get("/", filterHandler.Get)
				r.Put("/", filterHandler.Put)
				r.Post("/period/{periodKey}", filterHandler.TogglePeriod)
			})

			r.Route("/prefs", func(r chi.Router) {
				r.Get("/theme", prefsHandler.GetTheme)
				r.Put("/theme", prefsHandler.PutTheme)
			})

			r.Get("/export/summaries.xlsx", exportHandler.Summaries)
		})
	})

	return r
}
