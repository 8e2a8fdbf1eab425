package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/scootstats/scootstats/internal/api/models"
	"github.com/scootstats/scootstats/internal/api/response"
	"github.com/scootstats/scootstats/internal/dashboard"
	"github.com/scootstats/scootstats/internal/ingest"
)

// SourceHandler handles the data-source lifecycle.
type SourceHandler struct {
	service *dashboard.Service
}

// NewSourceHandler creates a SourceHandler.
func NewSourceHandler(service *dashboard.Service) *SourceHandler {
	return &SourceHandler{service: service}
}

// Status handles GET /v1/source.
func (h *SourceHandler) Status(w http.ResponseWriter, r *http.Request) {
	status := models.SourceStatus{
		Connected: h.service.Connected(),
		URL:       h.service.SourceURL(),
		RideCount: h.service.Aggregates().Totals.Rides,
	}
	if t := h.service.LastRefresh(); !t.IsZero() {
		refreshed := t.UTC().Truncate(time.Second)
		status.LastRefresh = &refreshed
	}
	response.JSON(w, r, http.StatusOK, status)
}

// Connect handles POST /v1/source: verify the URL by fetching it, then
// adopt it as the data source.
func (h *SourceHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var input models.ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body")
		return
	}

	input.URL = strings.TrimSpace(input.URL)
	if input.URL == "" {
		response.BadRequest(w, r, "url is required")
		return
	}
	if u, err := url.Parse(input.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		response.BadRequest(w, r, "url must be an http(s) URL")
		return
	}

	if err := h.service.Connect(r.Context(), input.URL); err != nil {
		writeIngestError(w, r, err)
		return
	}

	h.Status(w, r)
}

// Refresh handles POST /v1/source/refresh. On failure the last good data
// is preserved server-side; the error is returned for a transient banner.
func (h *SourceHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Refresh(r.Context()); err != nil {
		if errors.Is(err, dashboard.ErrNotConnected) {
			response.BadRequest(w, r, "no data source connected")
			return
		}
		writeIngestError(w, r, err)
		return
	}
	h.Status(w, r)
}

// Disconnect handles DELETE /v1/source.
func (h *SourceHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	h.service.Disconnect(r.Context())
	response.NoContent(w, r)
}

// writeIngestError maps a classified ingest failure onto the HTTP error
// surface, keeping the user-actionable message intact.
func writeIngestError(w http.ResponseWriter, r *http.Request, err error) {
	var ingestErr *ingest.Error
	message := err.Error()
	if errors.As(err, &ingestErr) {
		message = ingestErr.Message
	}

	switch {
	case errors.Is(err, ingest.ErrTimeout):
		response.GatewayTimeout(w, r, message)
	case errors.Is(err, ingest.ErrWrongFormat), errors.Is(err, ingest.ErrEmptyData):
		response.Unprocessable(w, r, message)
	case errors.Is(err, ingest.ErrBadStatus), errors.Is(err, ingest.ErrProcessing):
		response.BadGateway(w, r, message)
	default:
		response.BadGateway(w, r, message)
	}
}
