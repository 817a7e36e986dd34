package driven

import "net/http"

// headerTransport sets fixed headers on every outgoing request.
type headerTransport struct {
	headers map[string]string
	base    http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(t.headers) == 0 {
		return t.base.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	return t.base.RoundTrip(req)
}

// withUserAgent wraps base so requests carry userAgent. An empty userAgent
// leaves requests untouched.
func withUserAgent(base http.RoundTripper, userAgent string) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if userAgent == "" {
		return base
	}
	return &headerTransport{
		headers: map[string]string{"User-Agent": userAgent},
		base:    base,
	}
}
