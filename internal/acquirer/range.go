package acquirer

import "transcriptflow/internal/youtube"

// SelectionRange is the 1-based slice of a resolved item list to process.
// EndIndex 0 means "through the last item". Validation (end >= start when
// both set) happens at config load; an empty resulting slice is a valid,
// reportable outcome rather than an error.
type SelectionRange struct {
	StartIndex int
	EndIndex   int
}

// Apply slices items to the selected half-open range, clamped to bounds.
func (r SelectionRange) Apply(items []youtube.Item) []youtube.Item {
	start := r.StartIndex - 1
	if start < 0 {
		start = 0
	}
	if start >= len(items) {
		return nil
	}

	end := len(items)
	if r.EndIndex > 0 && r.EndIndex < end {
		end = r.EndIndex
	}
	if end <= start {
		return nil
	}
	return items[start:end]
}
