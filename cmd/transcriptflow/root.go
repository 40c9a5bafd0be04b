package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"transcriptflow/internal/config"
	"transcriptflow/internal/logger"
	"transcriptflow/internal/styles"
)

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "transcriptflow",
		Short:         "Turn long-form videos into styled written documents",
		Long:          "transcriptflow acquires video transcripts (captions first, audio transcription as fallback) and rewrites them into styled markdown documents.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the YAML config file")

	root.AddCommand(newRunCommand(&configPath))
	root.AddCommand(newWatchCommand(&configPath))
	root.AddCommand(newStylesCommand())
	return root
}

func newStylesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List the available rewriting styles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range styles.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

// loadApp loads configuration and builds the logger; the shared front half
// of every command that processes videos.
func loadApp(configPath string) (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, logger.New(cfg.Logging.Level), nil
}

func ensureDirectories(cfg *config.Config) error {
	dirs := []string{cfg.Paths.Output, cfg.Paths.Temp}
	if cfg.Paths.Watch != "" {
		dirs = append(dirs, cfg.Paths.Watch)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
