package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/alorle/iptv-aggregator/internal/port/driven"
	"github.com/alorle/iptv-aggregator/internal/source"
	"github.com/alorle/iptv-aggregator/metrics"
)

// SourceService loads source lists, serving fresh copies from an optional cache.
type SourceService struct {
	fetcher driven.SourceFetcher
	cache   driven.SourceCache
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// NewSourceService creates a new SourceService. A nil cache or a
// non-positive ttl disables caching.
func NewSourceService(fetcher driven.SourceFetcher, cache driven.SourceCache, ttl time.Duration, logger *slog.Logger) *SourceService {
	return &SourceService{
		fetcher: fetcher,
		cache:   cache,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
	}
}

// Load returns the content of the list at address. A cached copy younger
// than the ttl is used without contacting the source. Stale copies are never
// served: fetch failures wrap source.ErrUnavailable.
func (s *SourceService) Load(ctx context.Context, address string) ([]byte, error) {
	if s.cachingEnabled() {
		cached, err := s.cache.Get(ctx, address)
		switch {
		case err == nil && s.now().Sub(cached.FetchedAt) < s.ttl:
			s.logger.Debug("using cached source", "source", address, "fetched_at", cached.FetchedAt)
			metrics.RecordSourceFetch("cached")
			return cached.Content, nil
		case err != nil && !errors.Is(err, source.ErrCacheMiss):
			s.logger.Warn("source cache read failed", "source", address, "error", err)
		}
	}

	content, err := s.fetcher.Fetch(ctx, address)
	if err != nil {
		metrics.RecordSourceFetch("failed")
		return nil, err
	}
	metrics.RecordSourceFetch("fetched")

	if s.cachingEnabled() {
		if err := s.cache.Put(ctx, address, content); err != nil {
			s.logger.Warn("source cache write failed", "source", address, "error", err)
		}
	}

	return content, nil
}

func (s *SourceService) cachingEnabled() bool {
	return s.cache != nil && s.ttl > 0
}
