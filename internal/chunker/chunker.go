// Package chunker partitions transcript text into bounded word windows for
// per-call generation. The partition is deterministic: the same input always
// produces the same boundaries, so reruns regenerate identical documents.
package chunker

import "strings"

// Chunk is one contiguous word-range slice of a transcript.
type Chunk struct {
	Index     int
	Text      string
	WordCount int
}

// Split partitions text into consecutive windows of at most maxWords words.
// When the final window would fall below minTailWords and more than one
// window exists, it is merged into the previous window instead, so the last
// emitted chunk is never a tiny tail.
//
// The chunks cover every word in order with no gaps or overlaps: joining
// their texts with single spaces reproduces the word sequence exactly.
func Split(text string, maxWords, minTailWords int) []Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if maxWords <= 0 {
		maxWords = len(words)
	}

	var bounds [][2]int
	for start := 0; start < len(words); start += maxWords {
		end := start + maxWords
		if end > len(words) {
			end = len(words)
		}
		bounds = append(bounds, [2]int{start, end})
	}

	if len(bounds) > 1 {
		last := bounds[len(bounds)-1]
		if last[1]-last[0] < minTailWords {
			bounds[len(bounds)-2][1] = last[1]
			bounds = bounds[:len(bounds)-1]
		}
	}

	chunks := make([]Chunk, 0, len(bounds))
	for i, b := range bounds {
		chunks = append(chunks, Chunk{
			Index:     i,
			Text:      strings.Join(words[b[0]:b[1]], " "),
			WordCount: b[1] - b[0],
		})
	}
	return chunks
}

// WordCount reports the number of whitespace-delimited words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
