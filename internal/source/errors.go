package source

import "errors"

var (
	// ErrUnavailable marks a source whose content could not be obtained.
	// The source contributes no entries to the run.
	ErrUnavailable = errors.New("source unavailable")

	// ErrCacheMiss is returned by source caches when no content is stored for an address.
	ErrCacheMiss = errors.New("source not cached")
)
