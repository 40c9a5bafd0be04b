package chunker

import (
	"fmt"
	"strings"
	"testing"
)

func makeWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(words, " ")
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name         string
		words        int
		maxWords     int
		minTailWords int
		wantSizes    []int
	}{
		{"empty text", 0, 10, 2, nil},
		{"single short chunk", 5, 10, 2, []int{5}},
		{"exact multiple", 20, 10, 2, []int{10, 10}},
		{"tail above floor kept", 25, 10, 3, []int{10, 10, 5}},
		{"tail below floor merged", 22, 10, 3, []int{10, 12}},
		{"single chunk never merged", 3, 10, 5, []int{3}},
		{"floor larger than window", 15, 10, 10, []int{15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := makeWords(tt.words)
			chunks := Split(text, tt.maxWords, tt.minTailWords)

			if len(chunks) != len(tt.wantSizes) {
				t.Fatalf("Split() produced %d chunks, want %d", len(chunks), len(tt.wantSizes))
			}
			for i, c := range chunks {
				if c.Index != i {
					t.Errorf("chunk %d has index %d", i, c.Index)
				}
				if c.WordCount != tt.wantSizes[i] {
					t.Errorf("chunk %d word count = %d, want %d", i, c.WordCount, tt.wantSizes[i])
				}
			}
		})
	}
}

func TestSplitLosslessPartition(t *testing.T) {
	text := makeWords(137)
	chunks := Split(text, 25, 10)

	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, c.Text)
	}
	if got := strings.Join(parts, " "); got != text {
		t.Errorf("joined chunks do not reproduce original text")
	}
}

func TestSplitDeterministic(t *testing.T) {
	text := makeWords(999)
	first := Split(text, 100, 30)
	for i := 0; i < 5; i++ {
		again := Split(text, 100, 30)
		if len(again) != len(first) {
			t.Fatalf("run %d produced %d chunks, first run produced %d", i, len(again), len(first))
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("run %d chunk %d differs from first run", i, j)
			}
		}
	}
}

// Mirrors the long-transcript scenario: 150k words at 70k per window yields
// windows of 70k/70k/10k, and the 10k tail merges into the second window.
func TestSplitLongTranscriptTailMerge(t *testing.T) {
	text := makeWords(150000)
	chunks := Split(text, 70000, 14000)

	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if chunks[0].WordCount != 70000 {
		t.Errorf("first chunk word count = %d, want 70000", chunks[0].WordCount)
	}
	if chunks[1].WordCount != 80000 {
		t.Errorf("second chunk word count = %d, want 80000", chunks[1].WordCount)
	}
}

func TestSplitTailNeverBelowFloor(t *testing.T) {
	for words := 1; words <= 60; words++ {
		chunks := Split(makeWords(words), 10, 4)
		if len(chunks) < 2 {
			continue
		}
		last := chunks[len(chunks)-1]
		if last.WordCount < 4 {
			t.Errorf("%d words: final chunk has %d words, below floor", words, last.WordCount)
		}
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount("  one   two\nthree "); got != 3 {
		t.Errorf("WordCount() = %d, want 3", got)
	}
	if got := WordCount(""); got != 0 {
		t.Errorf("WordCount(empty) = %d, want 0", got)
	}
}
