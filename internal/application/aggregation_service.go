package application

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/alorle/iptv-aggregator/internal/classify"
	"github.com/alorle/iptv-aggregator/internal/playlist"
	"github.com/alorle/iptv-aggregator/internal/port/driven"
	"github.com/alorle/iptv-aggregator/internal/probe"
	"github.com/alorle/iptv-aggregator/internal/source"
	"github.com/alorle/iptv-aggregator/metrics"
)

// Report summarizes one aggregation run.
type Report struct {
	RunID         string
	StartedAt     time.Time
	Sources       int
	SourcesFailed int
	Extracted     int
	Reachable     int
	// Buckets maps each group title to its number of channels.
	Buckets  map[string]int
	Output   string
	Duration time.Duration
}

// AggregationService produces the merged playlist from the configured sources.
type AggregationService struct {
	sources     []string
	loader      *SourceService
	references  driven.ReferenceLoader
	prober      *ProbeService
	writer      driven.PlaylistWriter
	classifyOpt classify.Options
	logger      *slog.Logger
	now         func() time.Time
}

// NewAggregationService creates a new AggregationService. Sources are
// processed in the given order.
func NewAggregationService(
	sources []string,
	loader *SourceService,
	references driven.ReferenceLoader,
	prober *ProbeService,
	writer driven.PlaylistWriter,
	classifyOpt classify.Options,
	logger *slog.Logger,
) *AggregationService {
	return &AggregationService{
		sources:     slices.Clone(sources),
		loader:      loader,
		references:  references,
		prober:      prober,
		writer:      writer,
		classifyOpt: classifyOpt,
		logger:      logger,
		now:         time.Now,
	}
}

// Run executes one aggregation: load references, then for each source fetch,
// extract and probe its entries, classify the reachable ones and finally write
// the ordered playlist. Unavailable sources and missing reference files are
// logged and skipped. Only a cancelled context or a failed write is returned
// as an error, and in both cases the previous playlist is left in place.
func (s *AggregationService) Run(ctx context.Context) (Report, error) {
	start := s.now()
	report := Report{
		RunID:     uuid.NewString(),
		StartedAt: start,
		Sources:   len(s.sources),
		Buckets:   map[string]int{},
	}
	if p, ok := s.writer.(interface{ Path() string }); ok {
		report.Output = p.Path()
	}
	logger := s.logger.With("run_id", report.RunID)

	classifier := s.loadClassifier(ctx, logger)
	agg := playlist.NewAggregator()

	for _, address := range s.sources {
		if ctx.Err() != nil {
			break
		}

		content, err := s.loader.Load(ctx, address)
		if err != nil {
			report.SourcesFailed++
			logger.Warn("source unavailable", "source", address, "error", err)
			continue
		}

		entries := slices.Collect(source.Extract(content, source.FormatFromAddress(address)))
		report.Extracted += len(entries)

		reachable := probe.ReachableEntries(s.prober.Probe(ctx, entries))
		report.Reachable += len(reachable)

		for _, e := range reachable {
			bucket := classifier.Classify(e.Name())
			label := classifier.Label(bucket)
			report.Buckets[label]++
			agg.Add(bucket, playlist.Entry{
				Channel:    e.Name(),
				URL:        e.URL(),
				LogoURL:    classifier.LogoURL(e.Name()),
				GroupTitle: label,
			})
		}

		logger.Info("source processed",
			"source", address,
			"extracted", len(entries),
			"reachable", len(reachable),
		)
	}

	// An interrupted run must not replace the previous playlist.
	if err := ctx.Err(); err != nil {
		report.Duration = s.now().Sub(start)
		return report, fmt.Errorf("aggregation interrupted: %w", err)
	}

	if err := s.writer.Write(ctx, agg.Entries()); err != nil {
		report.Duration = s.now().Sub(start)
		metrics.RecordRunFailure()
		return report, fmt.Errorf("writing playlist: %w", err)
	}

	report.Duration = s.now().Sub(start)
	metrics.SetChannelsPerGroup(report.Buckets)
	metrics.RecordRun(s.now())

	logger.Info("playlist generated",
		"sources", report.Sources,
		"sources_failed", report.SourcesFailed,
		"extracted", report.Extracted,
		"reachable", report.Reachable,
		"output", report.Output,
		"duration", report.Duration,
	)

	return report, nil
}

func (s *AggregationService) loadClassifier(ctx context.Context, logger *slog.Logger) *classify.Classifier {
	national, err := s.references.LoadNational(ctx)
	if err != nil {
		logger.Warn("national reference list unavailable", "error", err)
	}

	regional, err := s.references.LoadRegional(ctx)
	if err != nil {
		logger.Warn("regional reference lists incomplete", "error", err)
	}

	logger.Debug("reference lists loaded", "national", national.Len(), "regions", regional.Len())
	return classify.NewClassifier(national, regional, s.classifyOpt)
}
