package driven

import (
	"context"
	"time"
)

// StreamChecker defines the interface for testing whether a stream URL answers.
type StreamChecker interface {
	// Check performs a single request to url and returns the time until the
	// response status was received. A nil error means the status was exactly 200.
	Check(ctx context.Context, url string) (time.Duration, error)
}
