package transcriber

import (
	"context"
	"errors"
)

// Transcriber re-derives a transcript from an item's audio when captions
// are unavailable. Implementations own audio download, segmentation, and
// cleanup of intermediate files.
type Transcriber interface {
	TranscribeAudio(ctx context.Context, itemID string) (string, error)
}

// ErrTranscriptionUnavailable means no transcript could be derived from
// audio; the item should be recorded as skipped.
var ErrTranscriptionUnavailable = errors.New("transcription unavailable")
