// Package transcriber implements fallback transcription: when an item has
// no usable captions, its audio is downloaded, segmented on silence, and
// transcribed segment by segment.
package transcriber

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// TranscribeAudio derives a transcript for one item from its audio track.
// All intermediate files live in a per-call temp directory that is removed
// afterwards unless keep-intermediate-files is set.
func (t *implTranscriber) TranscribeAudio(ctx context.Context, itemID string) (string, error) {
	dir, err := os.MkdirTemp(t.tempDir, "stt-*")
	if err != nil {
		return "", fmt.Errorf("%w: create temp dir: %w", ErrTranscriptionUnavailable, err)
	}
	if !t.keepFiles {
		defer os.RemoveAll(dir)
	}

	audioPath, err := t.downloadAudio(ctx, dir, itemID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTranscriptionUnavailable, err)
	}

	totalSeconds, err := t.probeDuration(ctx, audioPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTranscriptionUnavailable, err)
	}

	silences, err := t.detectSilence(ctx, audioPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTranscriptionUnavailable, err)
	}

	segments := planSegments(silences, totalSeconds, t.segmentCeiling.Seconds())
	if len(segments) == 0 {
		return "", fmt.Errorf("%w: audio produced no usable segments", ErrTranscriptionUnavailable)
	}
	t.logger.Info(ctx, "Transcribing %s: %d segments over %.0fs of audio", itemID, len(segments), totalSeconds)

	var parts []string
	for i, seg := range segments {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		segmentPath, err := t.exportSegment(ctx, audioPath, seg, i)
		if err != nil {
			t.logger.Warn(ctx, "Segment %d/%d export failed: %v", i+1, len(segments), err)
			continue
		}

		text, err := t.openai.transcribeFile(ctx, segmentPath)
		if err != nil {
			t.logger.Warn(ctx, "Segment %d/%d transcription failed: %v", i+1, len(segments), err)
			continue
		}
		t.logger.Debug(ctx, "Segment %d/%d transcribed: %d characters", i+1, len(segments), len(text))
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("%w: every segment failed to transcribe", ErrTranscriptionUnavailable)
	}
	return strings.Join(parts, " "), nil
}
