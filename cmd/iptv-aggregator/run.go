package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Generate the playlist once and exit",
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

			return runOnce(ctx, a)
		},
	}
}

func runOnce(ctx context.Context, a *app) error {
	a.logger.Info("starting iptv-aggregator",
		"sources", len(a.cfg.Sources),
		"output", a.cfg.Output.Path,
		"max_parallel", a.cfg.Probe.MaxParallel,
		"probe_timeout", a.cfg.Probe.Timeout,
	)

	_, err := a.aggregation.Run(ctx)
	return err
}
