package driven

import (
	"context"
	"time"
)

// CachedSource is a stored copy of a source body.
type CachedSource struct {
	Content   []byte
	FetchedAt time.Time
}

// SourceCache defines the interface for persisting fetched source bodies.
// This is a driven port implemented by concrete adapters (e.g., BoltDB).
type SourceCache interface {
	// Get returns the stored copy for address. Returns source.ErrCacheMiss
	// if nothing is stored.
	Get(ctx context.Context, address string) (CachedSource, error)

	// Put stores content for address, stamped with the current time.
	Put(ctx context.Context, address string, content []byte) error
}
