package driver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alorle/iptv-aggregator/internal/application"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestPlaylistHTTPHandler_ServeHTTP(t *testing.T) {
	const body = "#EXTM3U\n#EXTINF:-1,A\nhttp://a\n"

	setup := func(t *testing.T, ready bool) (*PlaylistHTTPHandler, string) {
		t.Helper()
		path := filepath.Join(t.TempDir(), "best_sorted.m3u")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("writing playlist: %v", err)
		}
		health := application.NewHealthService()
		if ready {
			health.Record(application.Report{}, nil)
		}
		return NewPlaylistHTTPHandler(path, health, newTestLogger()), path
	}

	t.Run("GET /playlist.m3u serves the file", func(t *testing.T) {
		handler, _ := setup(t, true)

		req := httptest.NewRequest(http.MethodGet, "/playlist.m3u", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "audio/x-mpegurl" {
			t.Errorf("expected Content-Type 'audio/x-mpegurl', got %q", ct)
		}
		if rec.Body.String() != body {
			t.Errorf("body = %q, want %q", rec.Body.String(), body)
		}
	})

	t.Run("returns 503 before the first run", func(t *testing.T) {
		handler, _ := setup(t, false)

		req := httptest.NewRequest(http.MethodGet, "/playlist.m3u", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("expected status 503, got %d", rec.Code)
		}
		var resp errorResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Error == "" {
			t.Error("expected an error message")
		}
	})

	t.Run("returns 500 when the file is gone", func(t *testing.T) {
		handler, path := setup(t, true)
		if err := os.Remove(path); err != nil {
			t.Fatalf("removing playlist: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/playlist.m3u", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", rec.Code)
		}
	})

	t.Run("POST returns 405", func(t *testing.T) {
		handler, _ := setup(t, true)

		req := httptest.NewRequest(http.MethodPost, "/playlist.m3u", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected status 405, got %d", rec.Code)
		}
	})
}
