package main

import (
	"time"

	"transcriptflow/internal/acquirer"
	"transcriptflow/internal/config"
	"transcriptflow/internal/gemini"
	"transcriptflow/internal/logger"
	"transcriptflow/internal/refiner"
	"transcriptflow/internal/runner"
	"transcriptflow/internal/styles"
	"transcriptflow/internal/transcriber"
	"transcriptflow/internal/writer"
	"transcriptflow/internal/youtube"
	"transcriptflow/pkg/executor"
)

// buildRunner wires the full pipeline from configuration: yt-dlp resolution
// and captions, optional audio-transcription fallback, Gemini refinement,
// and the document writer.
func buildRunner(cfg *config.Config, log logger.Logger, progress func(runner.ProgressEvent)) (runner.Runner, error) {
	selectedStyles, err := styles.Resolve(cfg.Processing.Styles)
	if err != nil {
		return nil, err
	}

	exec := executor.New()
	yt := youtube.New(exec, log, cfg.Paths.Temp, youtube.Options{
		CaptionLanguages: cfg.YouTube.CaptionLanguages,
		CookiePath:       cfg.YouTube.CookiePath,
	})

	var stt transcriber.Transcriber
	if cfg.Fallback.Enabled {
		stt = transcriber.New(exec, log, transcriber.Settings{
			OpenAIKey:             cfg.Keys.OpenAI,
			TempDir:               cfg.Paths.Temp,
			SegmentCeiling:        time.Duration(cfg.Fallback.SegmentCeilingSeconds) * time.Second,
			KeepIntermediateFiles: cfg.Fallback.KeepIntermediateFiles,
			CookiePath:            cfg.YouTube.CookiePath,
		})
	}

	acq := acquirer.New(yt, stt, log, cfg.Fallback.Enabled)
	gen := gemini.New(cfg.Keys.Gemini, cfg.Processing.Model, log,
		gemini.WithMaxAttempts(cfg.Processing.MaxAttempts))
	ref := refiner.New(gen, log, cfg.Processing.OutputLanguage)
	w := writer.New(cfg.Paths.Output, cfg.Processing.WriteDocx, log)

	return runner.New(yt, acq, ref, w, runner.Settings{
		Selection: acquirer.SelectionRange{
			StartIndex: cfg.Selection.StartIndex,
			EndIndex:   cfg.Selection.EndIndex,
		},
		Styles:         selectedStyles,
		ChunkSize:      cfg.Processing.ChunkSize,
		MinTailWords:   cfg.Processing.MinTailWords,
		MaxConcurrent:  cfg.Performance.MaxConcurrent,
		TranscriptFile: cfg.Paths.TranscriptFile,
		Progress:       progress,
	}, log), nil
}
