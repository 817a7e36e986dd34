package driver

import (
	"net/http"
	"time"

	"github.com/alorle/iptv-aggregator/internal/application"
)

// HealthHTTPHandler handles HTTP requests for health checks.
type HealthHTTPHandler struct {
	service *application.HealthService
}

// NewHealthHTTPHandler creates a new HTTP handler for health checks.
func NewHealthHTTPHandler(service *application.HealthService) *HealthHTTPHandler {
	return &HealthHTTPHandler{service: service}
}

// healthResponse represents the JSON response for health check endpoint.
type healthResponse struct {
	Status    string `json:"status"`
	LastRun   string `json:"last_run,omitempty"`
	Reachable int    `json:"reachable"`
	Error     string `json:"error,omitempty"`
}

// ServeHTTP handles GET /health
func (h *HealthHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	status := h.service.Check()

	resp := healthResponse{
		Status:    status.Status,
		Reachable: status.Reachable,
		Error:     status.Error,
	}
	if status.HasRun() {
		resp.LastRun = status.LastRun.UTC().Format(time.RFC3339)
	}

	httpStatus := http.StatusOK
	if status.Status == "error" {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, resp)
}
