package acquirer

import (
	"fmt"
	"os"
	"strings"
)

// recordDelimiter introduces each record; header lines follow in fixed
// order, then a blank line, then the raw transcript text. The delimiter is
// chosen so records can be re-split by prefix scanning alone.
const recordDelimiter = "=== TRANSCRIPT ==="

// WriteRecords persists acquired transcripts to one intermediate file.
func WriteRecords(path string, records []TranscriptRecord) error {
	var b strings.Builder
	for _, r := range records {
		b.WriteString(recordDelimiter + "\n")
		b.WriteString("Title: " + r.Title + "\n")
		b.WriteString("Origin: " + r.Origin + "\n")
		b.WriteString("Source: " + string(r.Source) + "\n")
		b.WriteString("\n")
		b.WriteString(r.Text + "\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write transcript file: %w", err)
	}
	return nil
}

// ReadRecords re-splits an intermediate transcript file into records.
// Records whose body is empty are dropped, mirroring the invariant that a
// TranscriptRecord always carries text.
func ReadRecords(path string) ([]TranscriptRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript file: %w", err)
	}

	var records []TranscriptRecord
	var current *TranscriptRecord
	var body []string
	inHeader := false

	flush := func() {
		if current == nil {
			return
		}
		if text := strings.TrimSpace(strings.Join(body, "\n")); text != "" {
			records = append(records, NewTranscriptRecord("", current.Title, current.Origin, text, current.Source))
		}
		current = nil
		body = nil
	}

	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimRight(raw, "\r")

		if line == recordDelimiter {
			flush()
			current = &TranscriptRecord{}
			inHeader = true
			continue
		}
		if current == nil {
			continue
		}

		if inHeader {
			switch {
			case strings.HasPrefix(line, "Title: "):
				current.Title = strings.TrimPrefix(line, "Title: ")
				continue
			case strings.HasPrefix(line, "Origin: "):
				current.Origin = strings.TrimPrefix(line, "Origin: ")
				continue
			case strings.HasPrefix(line, "Source: "):
				current.Source = TranscriptSource(strings.TrimPrefix(line, "Source: "))
				continue
			default:
				inHeader = false
				if line == "" {
					continue
				}
			}
		}
		body = append(body, line)
	}
	flush()

	return records, nil
}
