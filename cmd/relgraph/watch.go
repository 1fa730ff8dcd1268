package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/relgraph/source"
)

func watchCmd() *cobra.Command {
	flags := &materializeFlags{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Materialize, then re-run whenever a source file changes",
		Long: `Materialize once, then watch the discovered source files and re-run the
full load on every change. A full reload is idempotent, so each run replaces
the previous outputs wholesale.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			metrics, stopMetrics, err := setupMetrics(flags.metricsAddr)
			if err != nil {
				return err
			}
			defer stopMetrics()

			report, err := materialize(ctx, cfg, metrics)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report.Summary())

			paths, err := source.Discover(cfg.Sources.Patterns)
			if err != nil {
				return err
			}
			watcher, err := source.NewWatcher(source.WatchConfig{
				Enabled:       true,
				DebounceDelay: cfg.Watch.DebounceDelay,
			}, paths, slog.Default())
			if err != nil {
				return err
			}
			defer watcher.Stop()
			watcher.Start(ctx)

			for {
				select {
				case <-ctx.Done():
					return nil
				case _, ok := <-watcher.Reloads():
					if !ok {
						return nil
					}
					report, err := materialize(ctx, cfg, metrics)
					if err != nil {
						slog.Error("reload failed", "error", err)
						continue
					}
					fmt.Fprint(cmd.OutOrStdout(), report.Summary())
				}
			}
		},
	}

	addMaterializeFlags(cmd, flags)
	return cmd
}
