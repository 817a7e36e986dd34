package driven

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alorle/iptv-aggregator/internal/m3u"
	"github.com/alorle/iptv-aggregator/internal/playlist"
)

// PlaylistFileWriter writes the playlist as an M3U file. The file is built
// under a temporary name in the same directory and renamed over the target.
// It implements the driven.PlaylistWriter port.
type PlaylistFileWriter struct {
	path string
}

// NewPlaylistFileWriter creates a writer targeting path.
func NewPlaylistFileWriter(path string) *PlaylistFileWriter {
	return &PlaylistFileWriter{path: path}
}

// Path returns the destination file.
func (w *PlaylistFileWriter) Path() string {
	return w.path
}

// Write replaces the destination with entries, in order.
func (w *PlaylistFileWriter) Write(ctx context.Context, entries []playlist.Entry) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	enc := m3u.NewEncoder()
	for _, e := range entries {
		enc.AddChannel(&m3u.Channel{
			Title:    e.Channel,
			URI:      e.URL,
			Duration: m3u.LiveDuration,
			TVGTags: &m3u.TVGTags{
				Name:       e.Channel,
				Logo:       e.LogoURL,
				GroupTitle: e.GroupTitle,
			},
		})
	}

	dir := filepath.Dir(w.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp playlist: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	buf := bufio.NewWriter(tmp)
	if err := enc.Encode(buf); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encoding playlist: %w", err)
	}
	if err := buf.Flush(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing playlist: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp playlist: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting playlist permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), w.path); err != nil {
		return fmt.Errorf("replacing playlist: %w", err)
	}
	return nil
}
