package youtube

import (
	"transcriptflow/internal/logger"
	"transcriptflow/pkg/executor"
)

type implService struct {
	executor   executor.Executor
	logger     logger.Logger
	tempDir    string
	languages  []string
	cookiePath string
}

// Options carries optional yt-dlp settings.
type Options struct {
	// CaptionLanguages in preference order; defaults to English.
	CaptionLanguages []string
	// CookiePath passes a cookies file for age-restricted content.
	CookiePath string
}

// New creates a yt-dlp backed Resolver and CaptionSource. tempDir holds
// downloaded caption files until they are parsed.
func New(exec executor.Executor, log logger.Logger, tempDir string, opts Options) interface {
	Resolver
	CaptionSource
} {
	languages := opts.CaptionLanguages
	if len(languages) == 0 {
		languages = []string{"en"}
	}
	return &implService{
		executor:   exec,
		logger:     log,
		tempDir:    tempDir,
		languages:  languages,
		cookiePath: opts.CookiePath,
	}
}
