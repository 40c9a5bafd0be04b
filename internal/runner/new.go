package runner

import (
	"transcriptflow/internal/acquirer"
	"transcriptflow/internal/logger"
	"transcriptflow/internal/refiner"
	"transcriptflow/internal/styles"
	"transcriptflow/internal/writer"
	"transcriptflow/internal/youtube"
)

// Settings carries the run-shaping knobs resolved from configuration.
type Settings struct {
	Selection      acquirer.SelectionRange
	Styles         []styles.Spec
	ChunkSize      int
	MinTailWords   int
	MaxConcurrent  int
	TranscriptFile string // when set, acquired transcripts are also saved here
	Progress       func(ProgressEvent)
}

type implRunner struct {
	resolver youtube.Resolver
	acquirer acquirer.Acquirer
	refiner  refiner.Refiner
	writer   writer.Writer
	settings Settings
	l        logger.Logger
}

// New wires a Runner from its collaborators.
func New(resolver youtube.Resolver, acq acquirer.Acquirer, ref refiner.Refiner, w writer.Writer, settings Settings, l logger.Logger) Runner {
	if settings.MaxConcurrent < 1 {
		settings.MaxConcurrent = 1
	}
	return &implRunner{
		resolver: resolver,
		acquirer: acq,
		refiner:  ref,
		writer:   w,
		settings: settings,
		l:        l,
	}
}
