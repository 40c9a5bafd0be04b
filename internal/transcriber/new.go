package transcriber

import (
	"net/http"
	"time"

	"transcriptflow/internal/logger"
	"transcriptflow/pkg/executor"
)

type implTranscriber struct {
	executor       executor.Executor
	logger         logger.Logger
	openai         *openAIClient
	tempDir        string
	segmentCeiling time.Duration
	keepFiles      bool
	cookiePath     string
}

// Settings configures the fallback transcription pipeline.
type Settings struct {
	OpenAIKey string
	// BaseURL overrides the transcription endpoint (tests).
	BaseURL string
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
	TempDir    string
	// SegmentCeiling caps each audio segment's duration. Defaults to 10m.
	SegmentCeiling time.Duration
	// KeepIntermediateFiles leaves audio and segments on disk for debugging.
	KeepIntermediateFiles bool
	CookiePath            string
}

// New creates a Transcriber that downloads audio with yt-dlp, segments it on
// silence with ffmpeg, and transcribes segments with OpenAI.
func New(exec executor.Executor, log logger.Logger, settings Settings) Transcriber {
	ceiling := settings.SegmentCeiling
	if ceiling <= 0 {
		ceiling = 10 * time.Minute
	}
	return &implTranscriber{
		executor:       exec,
		logger:         log,
		openai:         newOpenAIClient(settings.OpenAIKey, settings.BaseURL, settings.HTTPClient),
		tempDir:        settings.TempDir,
		segmentCeiling: ceiling,
		keepFiles:      settings.KeepIntermediateFiles,
		cookiePath:     settings.CookiePath,
	}
}
