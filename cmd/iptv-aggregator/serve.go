package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/alorle/iptv-aggregator/internal/adapter/driver"
	"github.com/alorle/iptv-aggregator/internal/application"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Regenerate the playlist periodically and serve it over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer func() {
				if err := a.Close(); err != nil {
					a.logger.Error("error closing source cache", "error", err)
				}
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, a)
		},
	}
}

func serve(ctx context.Context, a *app) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	health := application.NewHealthService()

	mux := http.NewServeMux()
	mux.Handle("/playlist.m3u", driver.NewPlaylistHTTPHandler(a.cfg.Output.Path, health, a.logger))
	mux.Handle("/health", driver.NewHealthHTTPHandler(health))
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         a.cfg.ListenAddr(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	refreshDone := make(chan struct{})
	go func() {
		defer close(refreshDone)
		refresh(ctx, a, health)
	}()

	var err error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received, shutting down gracefully")
	case err = <-serverErr:
		a.logger.Error("server error", "error", err)
	}

	cancel()
	<-refreshDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		a.logger.Error("server shutdown error", "error", shutdownErr)
	}

	a.logger.Info("server stopped")
	return err
}

// refresh generates the playlist immediately and then on every refresh
// interval until ctx is cancelled.
func refresh(ctx context.Context, a *app, health *application.HealthService) {
	ticker := time.NewTicker(a.cfg.HTTP.RefreshInterval)
	defer ticker.Stop()

	for {
		report, err := a.aggregation.Run(ctx)
		if ctx.Err() != nil {
			return
		}
		health.Record(report, err)
		if err != nil {
			a.logger.Error("playlist generation failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
