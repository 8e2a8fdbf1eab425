package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scootstats/scootstats/internal/api/response"
	"github.com/scootstats/scootstats/internal/dashboard"
	"github.com/scootstats/scootstats/internal/ride"
)

// FilterHandler manages the active ride filter.
type FilterHandler struct {
	service *dashboard.Service
}

// NewFilterHandler creates a FilterHandler.
func NewFilterHandler(service *dashboard.Service) *FilterHandler {
	return &FilterHandler{service: service}
}

// Get handles GET /v1/filters.
func (h *FilterHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.service.Filter())
}

// Put handles PUT /v1/filters: replace the active filter. Aggregates are
// recomputed synchronously before the response is written.
func (h *FilterHandler) Put(w http.ResponseWriter, r *http.Request) {
	var f ride.Filter
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		response.BadRequest(w, r, "invalid JSON body")
		return
	}

	h.service.SetFilter(f)
	response.JSON(w, r, http.StatusOK, h.service.Filter())
}

// TogglePeriod handles POST /v1/filters/period/{periodKey}: select the
// clicked aggregate period, or clear it when already selected.
func (h *FilterHandler) TogglePeriod(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "periodKey")
	if key == "" {
		response.BadRequest(w, r, "periodKey is required")
		return
	}

	response.JSON(w, r, http.StatusOK, h.service.TogglePeriod(key))
}
