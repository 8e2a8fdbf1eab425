// Package handler implements the HTTP handlers for the scootstats API.
package handler

import (
	"net/http"
	"time"

	"github.com/scootstats/scootstats/internal/api/models"
	"github.com/scootstats/scootstats/internal/api/response"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version string
}

// NewOpsHandler creates an OpsHandler.
func NewOpsHandler(version string) *OpsHandler {
	return &OpsHandler{version: version}
}

// HealthCheck handles GET /v1/ops/health.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.Health{
		Status:  "ok",
		Time:    time.Now().UTC(),
		Version: h.version,
	})
}

// ReadinessCheck handles GET /v1/ops/ready. The service has no required
// backing stores, so readiness equals liveness.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.Health{
		Status:  "ready",
		Time:    time.Now().UTC(),
		Version: h.version,
	})
}
