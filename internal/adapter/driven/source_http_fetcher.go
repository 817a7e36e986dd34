package driven

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/andybalholm/brotli"
	"golang.org/x/net/html/charset"

	"github.com/alorle/iptv-aggregator/internal/source"
)

const (
	defaultFetchTimeout = 30 * time.Second
	defaultFallbackText = "gbk"
)

// SourceHTTPFetcher downloads channel lists over HTTP and returns their
// UTF-8 text. It implements the driven.SourceFetcher port.
type SourceHTTPFetcher struct {
	client   *http.Client
	fallback string
}

// SourceHTTPFetcherOptions configure a SourceHTTPFetcher. Zero values select defaults.
type SourceHTTPFetcherOptions struct {
	Timeout   time.Duration
	UserAgent string
	// FallbackCharset decodes bodies that are neither labelled nor valid UTF-8.
	FallbackCharset string
	Transport       http.RoundTripper
}

// NewSourceHTTPFetcher creates a new fetcher.
func NewSourceHTTPFetcher(opts SourceHTTPFetcherOptions) *SourceHTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultFetchTimeout
	}
	if opts.FallbackCharset == "" {
		opts.FallbackCharset = defaultFallbackText
	}
	return &SourceHTTPFetcher{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: withUserAgent(opts.Transport, opts.UserAgent),
		},
		fallback: opts.FallbackCharset,
	}
}

// Fetch retrieves the list at address. Every failure wraps source.ErrUnavailable.
func (f *SourceHTTPFetcher) Fetch(ctx context.Context, address string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request for %s: %v", source.ErrUnavailable, address, err)
	}
	req.Header.Set("Accept-Encoding", "br, gzip")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", source.ErrUnavailable, address, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", source.ErrUnavailable, address, resp.StatusCode)
	}

	body, err := readDecompressed(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", source.ErrUnavailable, address, err)
	}

	text, err := toUTF8(body, resp.Header.Get("Content-Type"), f.fallback)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", source.ErrUnavailable, address, err)
	}
	return text, nil
}

func readDecompressed(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "br":
		r = brotli.NewReader(resp.Body)
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	case "", "identity":
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", resp.Header.Get("Content-Encoding"))
	}
	return io.ReadAll(r)
}

// toUTF8 converts body using the charset declared in contentType. Undeclared
// bodies that are not valid UTF-8 are decoded with the fallback charset.
func toUTF8(body []byte, contentType, fallback string) ([]byte, error) {
	label := ""
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		label = params["charset"]
	}
	if label == "" {
		if utf8.Valid(body) {
			return body, nil
		}
		label = fallback
	}

	enc, name := charset.Lookup(label)
	if enc == nil {
		return nil, fmt.Errorf("unknown charset %q", label)
	}
	if name == "utf-8" {
		return body, nil
	}
	return enc.NewDecoder().Bytes(body)
}
