package application

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/alorle/iptv-aggregator/internal/playlist"
	"github.com/alorle/iptv-aggregator/internal/port/driven"
	"github.com/alorle/iptv-aggregator/internal/reference"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// mockStreamChecker implements driven.StreamChecker for testing.
type mockStreamChecker struct {
	checkFunc func(ctx context.Context, url string) (time.Duration, error)
}

func (m *mockStreamChecker) Check(ctx context.Context, url string) (time.Duration, error) {
	if m.checkFunc != nil {
		return m.checkFunc(ctx, url)
	}
	return time.Millisecond, nil
}

// mockSourceFetcher implements driven.SourceFetcher for testing.
type mockSourceFetcher struct {
	fetchFunc func(ctx context.Context, address string) ([]byte, error)
}

func (m *mockSourceFetcher) Fetch(ctx context.Context, address string) ([]byte, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, address)
	}
	return nil, nil
}

// mockSourceCache implements driven.SourceCache for testing.
type mockSourceCache struct {
	getFunc func(ctx context.Context, address string) (driven.CachedSource, error)
	putFunc func(ctx context.Context, address string, content []byte) error
}

func (m *mockSourceCache) Get(ctx context.Context, address string) (driven.CachedSource, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, address)
	}
	return driven.CachedSource{}, nil
}

func (m *mockSourceCache) Put(ctx context.Context, address string, content []byte) error {
	if m.putFunc != nil {
		return m.putFunc(ctx, address, content)
	}
	return nil
}

// mockReferenceLoader implements driven.ReferenceLoader for testing.
type mockReferenceLoader struct {
	loadNationalFunc func(ctx context.Context) (reference.Set, error)
	loadRegionalFunc func(ctx context.Context) (reference.Regional, error)
}

func (m *mockReferenceLoader) LoadNational(ctx context.Context) (reference.Set, error) {
	if m.loadNationalFunc != nil {
		return m.loadNationalFunc(ctx)
	}
	return reference.Set{}, nil
}

func (m *mockReferenceLoader) LoadRegional(ctx context.Context) (reference.Regional, error) {
	if m.loadRegionalFunc != nil {
		return m.loadRegionalFunc(ctx)
	}
	return reference.Regional{}, nil
}

// mockPlaylistWriter implements driven.PlaylistWriter for testing.
type mockPlaylistWriter struct {
	writeFunc func(ctx context.Context, entries []playlist.Entry) error
}

func (m *mockPlaylistWriter) Write(ctx context.Context, entries []playlist.Entry) error {
	if m.writeFunc != nil {
		return m.writeFunc(ctx, entries)
	}
	return nil
}
