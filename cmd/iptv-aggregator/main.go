package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.etcd.io/bbolt"

	"github.com/alorle/iptv-aggregator/config"
	"github.com/alorle/iptv-aggregator/internal/adapter/driven"
	"github.com/alorle/iptv-aggregator/internal/application"
	"github.com/alorle/iptv-aggregator/internal/classify"
	port "github.com/alorle/iptv-aggregator/internal/port/driven"
)

var configFile string

// app bundles the wired services shared by the subcommands.
type app struct {
	cfg         *config.Config
	logger      *slog.Logger
	aggregation *application.AggregationService
	closeFn     func() error
}

func (a *app) Close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}

func newApp() (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	a := &app{cfg: cfg, logger: logger}

	var cache port.SourceCache
	if cfg.Fetch.CachePath != "" {
		db, err := bbolt.Open(cfg.Fetch.CachePath, 0600, &bbolt.Options{Timeout: 1 * time.Second})
		if err != nil {
			return nil, fmt.Errorf("failed to open source cache: %w", err)
		}
		a.closeFn = db.Close

		cache, err = driven.NewSourceCacheBoltDB(db)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create source cache: %w", err)
		}
	}

	fetcher := driven.NewSourceHTTPFetcher(driven.SourceHTTPFetcherOptions{
		Timeout:         cfg.Fetch.Timeout,
		UserAgent:       cfg.Fetch.UserAgent,
		FallbackCharset: cfg.Fetch.FallbackCharset,
	})
	checker := driven.NewStreamHTTPChecker(cfg.Probe.Timeout, cfg.Probe.UserAgent)
	references := driven.NewReferenceFileLoader(
		cfg.Reference.NationalFile,
		cfg.Reference.RegionalFiles,
		cfg.Reference.RegionalDir,
	)
	writer := driven.NewPlaylistFileWriter(cfg.Output.Path)

	sourceService := application.NewSourceService(fetcher, cache, cfg.Fetch.CacheTTL, logger)
	probeService := application.NewProbeService(checker, logger, application.ProbeOptions{
		Timeout:       cfg.Probe.Timeout,
		MaxParallel:   cfg.Probe.MaxParallel,
		RatePerSecond: cfg.Probe.RatePerSecond,
	})

	a.aggregation = application.NewAggregationService(
		cfg.Sources,
		sourceService,
		references,
		probeService,
		writer,
		classifyOptions(cfg),
		logger,
	)

	return a, nil
}

func classifyOptions(cfg *config.Config) classify.Options {
	return classify.Options{
		SatelliteMarker: cfg.Classify.SatelliteMarker,
		LogoBaseURL:     cfg.Classify.LogoBaseURL,
		LogoSuffix:      cfg.Classify.LogoSuffix,
		Labels: classify.Labels{
			National:  cfg.Classify.Labels.National,
			Satellite: cfg.Classify.Labels.Satellite,
			Other:     cfg.Classify.Labels.Other,
		},
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "iptv-aggregator",
		Short:         "Aggregate public IPTV lists into a single checked M3U playlist",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to the YAML config file (default $CONFIG_FILE or config.yaml)")

	rootCmd.AddCommand(newRunCmd(), newServeCmd(), newConfigCmd())
	return rootCmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			cfg.Print(cmd.OutOrStdout())
			return nil
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
