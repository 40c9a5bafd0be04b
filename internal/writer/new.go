package writer

import (
	"transcriptflow/internal/logger"
)

type implWriter struct {
	outputDir string
	writeDocx bool
	l         logger.Logger
}

// New builds a Writer rooted at outputDir. When writeDocx is set, every
// markdown document is also rendered to a .docx next to it.
//
// File names are derived from sanitized titles, so two distinct videos with
// titles that sanitize identically overwrite each other (last writer wins).
func New(outputDir string, writeDocx bool, l logger.Logger) Writer {
	return &implWriter{
		outputDir: outputDir,
		writeDocx: writeDocx,
		l:         l,
	}
}
