// Package acquirer turns selected playlist items into transcript records.
// Caption retrieval failures never abort a run: expected failures (captions
// disabled, none published) and unexpected ones alike route to the
// speech-to-text fallback when it is enabled, and to a skip outcome when it
// is not or when it also fails.
package acquirer

import (
	"context"
	"errors"
	"strings"

	"transcriptflow/internal/youtube"
)

const (
	skipNoTranscript     = "no transcript obtainable"
	skipFallbackDisabled = "no captions and fallback disabled"
)

func (a *implAcquirer) Select(source youtube.VideoSource, rng SelectionRange) []youtube.Item {
	return rng.Apply(source.Items)
}

func (a *implAcquirer) AcquireItem(ctx context.Context, origin string, item youtube.Item) Outcome {
	title := item.Title
	if strings.TrimSpace(title) == "" {
		// Title resolution is best effort; a synthetic placeholder keeps
		// output files nameable.
		title = "Video " + item.ID
	}

	text, err := a.captions.FetchCaptions(ctx, item.ID)
	if err == nil && strings.TrimSpace(text) != "" {
		record := NewTranscriptRecord(item.ID, title, origin, text, SourceDirectCaption)
		a.logger.Info(ctx, "Captions acquired for %s (%d words)", item.ID, record.WordCount)
		return Outcome{ItemID: item.ID, Title: title, Record: &record}
	}

	switch {
	case err == nil:
		a.logger.Debug(ctx, "Captions for %s were empty, trying fallback", item.ID)
	case errors.Is(err, youtube.ErrCaptionsDisabled), errors.Is(err, youtube.ErrNoCaptionsFound):
		a.logger.Debug(ctx, "No captions for %s (%v), trying fallback", item.ID, err)
	default:
		a.logger.Warn(ctx, "Caption retrieval for %s failed (%v), trying fallback", item.ID, err)
	}

	if !a.fallbackEnabled {
		return Outcome{ItemID: item.ID, Title: title, SkipReason: skipFallbackDisabled}
	}

	text, err = a.transcriber.TranscribeAudio(ctx, item.ID)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			a.logger.Warn(ctx, "Fallback transcription for %s failed: %v", item.ID, err)
		}
		return Outcome{ItemID: item.ID, Title: title, SkipReason: skipNoTranscript}
	}

	record := NewTranscriptRecord(item.ID, title, origin, text, SourceSpeechToText)
	a.logger.Info(ctx, "Fallback transcript acquired for %s (%d words)", item.ID, record.WordCount)
	return Outcome{ItemID: item.ID, Title: title, Record: &record}
}
