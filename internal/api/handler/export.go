package handler

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/scootstats/scootstats/internal/api/middleware"
	"github.com/scootstats/scootstats/internal/api/response"
	"github.com/scootstats/scootstats/internal/dashboard"
	"github.com/scootstats/scootstats/internal/export"
)

// ExportHandler serves spreadsheet downloads of the aggregate views.
type ExportHandler struct {
	service *dashboard.Service
	logger  zerolog.Logger
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(service *dashboard.Service, logger zerolog.Logger) *ExportHandler {
	return &ExportHandler{service: service, logger: logger}
}

// Summaries handles GET /v1/export/summaries.xlsx?period=.
func (h *ExportHandler) Summaries(w http.ResponseWriter, r *http.Request) {
	period, ok := parsePeriod(r.URL.Query().Get("period"))
	if !ok {
		response.BadRequest(w, r, "period must be daily, weekly, or monthly")
		return
	}

	summaries := h.service.Summaries(period)

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s-summaries.xlsx", period))
	if requestID := middleware.GetRequestID(r.Context()); requestID != "" {
		w.Header().Set("X-Request-Id", requestID)
	}

	if err := export.WriteSummaries(w, period, summaries); err != nil {
		// Headers are already written; all we can do is log.
		h.logger.Error().Err(err).Msg("failed to write summary export")
	}
}
