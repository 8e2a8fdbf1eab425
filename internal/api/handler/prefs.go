package handler

import (
	"encoding/json"
	"net/http"

	"github.com/scootstats/scootstats/internal/api/models"
	"github.com/scootstats/scootstats/internal/api/response"
	"github.com/scootstats/scootstats/internal/dashboard"
)

// PrefsHandler serves the persisted user preferences.
type PrefsHandler struct {
	service *dashboard.Service
}

// NewPrefsHandler creates a PrefsHandler.
func NewPrefsHandler(service *dashboard.Service) *PrefsHandler {
	return &PrefsHandler{service: service}
}

// GetTheme handles GET /v1/prefs/theme.
func (h *PrefsHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.Theme{Theme: h.service.Theme(r.Context())})
}

// PutTheme handles PUT /v1/prefs/theme.
func (h *PrefsHandler) PutTheme(w http.ResponseWriter, r *http.Request) {
	var input models.Theme
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body")
		return
	}

	if err := h.service.SetTheme(r.Context(), input.Theme); err != nil {
		response.BadRequest(w, r, err.Error())
		return
	}
	response.JSON(w, r, http.StatusOK, input)
}
