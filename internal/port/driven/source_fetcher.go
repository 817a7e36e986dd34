package driven

import "context"

// SourceFetcher defines the interface for retrieving the raw content of a channel list.
// This is a driven port that will be implemented by concrete adapters (e.g., HTTP client).
type SourceFetcher interface {
	// Fetch returns the decoded body of the list at address. Any failure
	// (transport error, non-200 status, undecodable body) is reported as an
	// error wrapping source.ErrUnavailable.
	Fetch(ctx context.Context, address string) ([]byte, error)
}
