package acquirer

import (
	"context"

	"transcriptflow/internal/youtube"
)

// Acquirer obtains transcripts for selected items, trying direct captions
// first and falling back to audio transcription when allowed. Callers drive
// the per-item loop themselves so they can interleave progress reporting
// and cancellation checks between items.
type Acquirer interface {
	// Select applies the range to a resolved source's items.
	Select(source youtube.VideoSource, rng SelectionRange) []youtube.Item
	// AcquireItem produces the outcome for one item. Item-level failures
	// never return an error; they become skip outcomes.
	AcquireItem(ctx context.Context, origin string, item youtube.Item) Outcome
}
