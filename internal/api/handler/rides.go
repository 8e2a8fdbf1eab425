package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scootstats/scootstats/internal/api/models"
	"github.com/scootstats/scootstats/internal/api/response"
	"github.com/scootstats/scootstats/internal/dashboard"
	"github.com/scootstats/scootstats/pkg/polyline"
)

// RideHandler serves the ride collection and per-ride detail.
type RideHandler struct {
	service *dashboard.Service
}

// NewRideHandler creates a RideHandler.
func NewRideHandler(service *dashboard.Service) *RideHandler {
	return &RideHandler{service: service}
}

// List handles GET /v1/rides: the filtered collection in source order.
func (h *RideHandler) List(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.service.Rides())
}

// Get handles GET /v1/rides/{rideId}: one ride with its decoded route.
func (h *RideHandler) Get(w http.ResponseWriter, r *http.Request) {
	rideID := chi.URLParam(r, "rideId")
	if rideID == "" {
		response.BadRequest(w, r, "rideId is required")
		return
	}

	rd, err := h.service.Ride(rideID)
	if err != nil {
		if errors.Is(err, dashboard.ErrRideNotFound) {
			response.NotFound(w, r, "ride not found")
			return
		}
		response.InternalError(w, r, "failed to load ride")
		return
	}

	response.JSON(w, r, http.StatusOK, models.RideDetail{
		Ride:  rd,
		Route: polyline.Decode(rd.RouteEncoding),
	})
}
