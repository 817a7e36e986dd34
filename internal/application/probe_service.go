package application

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/alorle/iptv-aggregator/internal/channel"
	"github.com/alorle/iptv-aggregator/internal/port/driven"
	"github.com/alorle/iptv-aggregator/internal/probe"
	"github.com/alorle/iptv-aggregator/metrics"
)

const (
	DefaultProbeTimeout     = 10 * time.Second
	DefaultProbeMaxParallel = 30
)

// ProbeOptions bound the probing work. Zero values select defaults;
// a zero RatePerSecond disables dispatch rate limiting.
type ProbeOptions struct {
	Timeout       time.Duration
	MaxParallel   int
	RatePerSecond float64
}

// ProbeService checks the reachability of channel entries.
type ProbeService struct {
	checker     driven.StreamChecker
	logger      *slog.Logger
	timeout     time.Duration
	maxParallel int
	limiter     *rate.Limiter
}

// NewProbeService creates a new ProbeService.
func NewProbeService(checker driven.StreamChecker, logger *slog.Logger, opts ProbeOptions) *ProbeService {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultProbeTimeout
	}
	if opts.MaxParallel <= 0 {
		opts.MaxParallel = DefaultProbeMaxParallel
	}

	var limiter *rate.Limiter
	if opts.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), 1)
	}

	return &ProbeService{
		checker:     checker,
		logger:      logger,
		timeout:     opts.Timeout,
		maxParallel: opts.MaxParallel,
		limiter:     limiter,
	}
}

// Probe checks every entry and returns one result per entry, in input order.
// At most MaxParallel checks are in flight; each has its own timeout and a
// failed check never affects the others. All checks have finished when Probe
// returns.
func (s *ProbeService) Probe(ctx context.Context, entries []channel.Entry) []probe.Result {
	results := make([]probe.Result, len(entries))

	var g errgroup.Group
	g.SetLimit(s.maxParallel)

	for i, e := range entries {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				results[i] = s.result(e, 0, err)
				continue
			}
		}
		g.Go(func() error {
			results[i] = s.check(ctx, e)
			return nil
		})
	}

	_ = g.Wait()
	return results
}

func (s *ProbeService) check(ctx context.Context, e channel.Entry) probe.Result {
	probeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	latency, err := s.checker.Check(probeCtx, e.URL())
	if err != nil {
		s.logger.Debug("stream unreachable", "channel", e.Name(), "url", e.URL(), "error", err)
	}
	return s.result(e, latency, err)
}

func (s *ProbeService) result(e channel.Entry, latency time.Duration, checkErr error) probe.Result {
	reachable := checkErr == nil
	metrics.RecordProbe(reachable, latency)

	r, err := probe.NewResult(e, reachable, max(latency, 0))
	if err != nil {
		// The zero Result reads as unreachable.
		s.logger.Warn("discarding invalid probe result", "url", e.URL(), "error", err)
	}
	return r
}
