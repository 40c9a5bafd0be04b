// Package textutil provides filename-safety helpers for output documents.
package textutil

import "strings"

const (
	// maxStemLength bounds sanitized stems for cross-platform paths.
	maxStemLength = 200
	// placeholderStem replaces titles that sanitize to nothing.
	placeholderStem = "untitled_video"
)

// illegalReplacer strips characters rejected by common filesystems and
// spells out ampersands so titles like "Q&A" stay readable.
var illegalReplacer = strings.NewReplacer(
	"<", "",
	">", "",
	":", "",
	"\"", "",
	"/", "",
	"\\", "",
	"|", "",
	"?", "",
	"*", "",
	"&", "and",
)

// SanitizeStem maps an arbitrary title to a filesystem-safe file stem.
// Whitespace runs collapse to single underscores and the result is capped
// at 200 characters, preferring to cut at an underscore boundary. The
// function is idempotent: sanitizing a sanitized stem returns it unchanged.
func SanitizeStem(title string) string {
	cleaned := illegalReplacer.Replace(strings.TrimSpace(title))
	cleaned = strings.Join(strings.Fields(cleaned), "_")
	if cleaned == "" {
		return placeholderStem
	}

	runes := []rune(cleaned)
	if len(runes) <= maxStemLength {
		return cleaned
	}

	capped := string(runes[:maxStemLength])
	if idx := strings.LastIndex(capped, "_"); idx > 0 {
		capped = capped[:idx]
	}
	return capped
}
