package acquirer

import "transcriptflow/internal/chunker"

// TranscriptSource records which path produced a transcript.
type TranscriptSource string

const (
	SourceDirectCaption TranscriptSource = "direct-caption"
	SourceSpeechToText  TranscriptSource = "speech-to-text-fallback"
)

// TranscriptRecord is one successfully acquired transcript. Text is always
// non-empty; items with no obtainable text become skip outcomes instead.
type TranscriptRecord struct {
	ItemID    string
	Title     string
	Origin    string
	Text      string
	Source    TranscriptSource
	WordCount int
}

// NewTranscriptRecord derives the word count at construction.
func NewTranscriptRecord(itemID, title, origin, text string, source TranscriptSource) TranscriptRecord {
	return TranscriptRecord{
		ItemID:    itemID,
		Title:     title,
		Origin:    origin,
		Text:      text,
		Source:    source,
		WordCount: chunker.WordCount(text),
	}
}

// Outcome is the per-item acquisition result: a record, or a skip reason.
type Outcome struct {
	ItemID     string
	Title      string
	Record     *TranscriptRecord
	SkipReason string
}

// Skipped reports whether the item produced no transcript.
func (o Outcome) Skipped() bool {
	return o.Record == nil
}
