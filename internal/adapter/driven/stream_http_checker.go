package driven

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const defaultCheckTimeout = 10 * time.Second

// StreamHTTPChecker probes stream URLs with a single GET request.
// It implements the driven.StreamChecker port.
type StreamHTTPChecker struct {
	client *http.Client
}

// NewStreamHTTPChecker creates a checker. Connections are not reused between
// checks, and redirects are followed by the client as usual. The timeout
// bounds a whole check; callers may impose a tighter one through the context.
func NewStreamHTTPChecker(timeout time.Duration, userAgent string) *StreamHTTPChecker {
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableKeepAlives = true

	return &StreamHTTPChecker{
		client: &http.Client{
			Timeout:   timeout,
			Transport: withUserAgent(transport, userAgent),
		},
	}
}

// Check returns the time until response headers arrived. Only status 200 counts
// as reachable. The body is never read.
func (c *StreamHTTPChecker) Check(ctx context.Context, url string) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	latency := time.Since(start)
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return latency, nil
}
