package acquirer

import (
	"transcriptflow/internal/logger"
	"transcriptflow/internal/transcriber"
	"transcriptflow/internal/youtube"
)

type implAcquirer struct {
	captions        youtube.CaptionSource
	transcriber     transcriber.Transcriber
	logger          logger.Logger
	fallbackEnabled bool
}

// New creates an Acquirer. transcriber may be nil when fallback is disabled.
func New(captions youtube.CaptionSource, stt transcriber.Transcriber, log logger.Logger, fallbackEnabled bool) Acquirer {
	return &implAcquirer{
		captions:        captions,
		transcriber:     stt,
		logger:          log,
		fallbackEnabled: fallbackEnabled && stt != nil,
	}
}
