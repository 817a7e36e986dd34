package driven

import (
	"context"

	"github.com/alorle/iptv-aggregator/internal/playlist"
)

// PlaylistWriter defines the interface for emitting the final playlist.
type PlaylistWriter interface {
	// Write replaces the previous playlist with entries, in the given order.
	Write(ctx context.Context, entries []playlist.Entry) error
}
