package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"transcriptflow/internal/watcher"
)

func newWatchCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch a directory for request files and process each listed URL",
		Long:  "Monitors the configured watch directory. Dropping a .txt or .urls file with one video or playlist URL per line starts a run for each.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			if cfg.Paths.Watch == "" {
				return fmt.Errorf("paths.watch must be set for watch mode")
			}
			if err := ensureDirectories(cfg); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			handle := func(ctx context.Context, origin string) error {
				r, err := buildRunner(cfg, log, nil)
				if err != nil {
					return err
				}
				report, err := r.Run(ctx, origin)
				if err != nil {
					return err
				}
				log.Info(ctx, "Run %s for %s: %d documents, %d skips, %d failures",
					report.RunID, origin, len(report.DocumentsWritten), len(report.Skips), len(report.Failures))
				return nil
			}

			w, err := watcher.New(cfg.Paths.Watch, handle, log, cfg.Performance.MaxConcurrent)
			if err != nil {
				return err
			}
			defer w.Stop()

			log.Info(ctx, "Watching %s. Press Ctrl+C to stop.", cfg.Paths.Watch)
			if err := w.Start(ctx); err != nil && err != context.Canceled {
				return err
			}
			return nil
		},
	}
}
