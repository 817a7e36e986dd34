package driven

import (
	"context"

	"github.com/alorle/iptv-aggregator/internal/reference"
)

// ReferenceLoader defines the interface for loading the classification lists.
type ReferenceLoader interface {
	// LoadNational returns the national channel list. A missing list is
	// reported with an error wrapping reference.ErrFileMissing together with
	// an empty set.
	LoadNational(ctx context.Context) (reference.Set, error)

	// LoadRegional returns every regional list that could be read. Lists
	// that are missing are skipped and reported through the returned error,
	// which wraps reference.ErrFileMissing.
	LoadRegional(ctx context.Context) (reference.Regional, error)
}
