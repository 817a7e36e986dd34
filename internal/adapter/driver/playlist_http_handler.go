package driver

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/alorle/iptv-aggregator/internal/application"
)

const playlistContentType = "audio/x-mpegurl"

// PlaylistHTTPHandler serves the last generated playlist file.
type PlaylistHTTPHandler struct {
	path   string
	health *application.HealthService
	logger *slog.Logger
}

// NewPlaylistHTTPHandler creates a new HTTP handler for the playlist at path.
func NewPlaylistHTTPHandler(path string, health *application.HealthService, logger *slog.Logger) *PlaylistHTTPHandler {
	return &PlaylistHTTPHandler{path: path, health: health, logger: logger}
}

// ServeHTTP handles GET /playlist.m3u
func (h *PlaylistHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if !h.health.PlaylistReady() {
		writeError(w, http.StatusServiceUnavailable, "playlist not generated yet")
		return
	}

	data, err := os.ReadFile(h.path)
	if err != nil {
		h.logger.Error("failed to read playlist", "path", h.path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", playlistContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
