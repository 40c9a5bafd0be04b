package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"transcriptflow/internal/runner"
)

func newRunCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run <origin-url>",
		Short: "Process one video or playlist URL end to end",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			if err := ensureDirectories(cfg); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			progress := func(ev runner.ProgressEvent) {
				log.Info(ctx, "[%s] %s (%d%%)", ev.Stage, ev.Ref, ev.Percent)
			}
			r, err := buildRunner(cfg, log, progress)
			if err != nil {
				return err
			}

			report, err := r.Run(ctx, args[0])
			if err != nil {
				return err
			}
			printReport(cmd, report)
			if report.Cancelled {
				return fmt.Errorf("run %s cancelled", report.RunID)
			}
			return nil
		},
	}
}

func printReport(cmd *cobra.Command, report runner.RunReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s: %d items selected, %d transcripts acquired\n",
		report.RunID, report.ItemsSelected, report.TranscriptsAcquired)
	for _, path := range report.DocumentsWritten {
		fmt.Fprintf(out, "  written: %s\n", path)
	}
	for _, skip := range report.Skips {
		fmt.Fprintf(out, "  skipped: %s (%s)\n", skip.Title, skip.Reason)
	}
	for _, failure := range report.Failures {
		fmt.Fprintf(out, "  failed:  %s (%s): %v\n", failure.Ref, failure.Cause, failure.Err)
	}
}
