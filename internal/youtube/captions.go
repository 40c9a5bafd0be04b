package youtube

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var cueTagPattern = regexp.MustCompile(`<[^>]*>`)

// FetchCaptions downloads published captions for one item and flattens them
// to plain word-delimited text. Manual subtitles win over auto-generated
// ones when both exist.
func (s *implService) FetchCaptions(ctx context.Context, itemID string) (string, error) {
	dir, err := os.MkdirTemp(s.tempDir, "captions-*")
	if err != nil {
		return "", fmt.Errorf("create captions dir: %w", err)
	}
	defer os.RemoveAll(dir)

	args := []string{
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-format", "vtt",
		"--sub-langs", strings.Join(s.languages, ","),
		"--no-warnings",
		"-o", filepath.Join(dir, "%(id)s.%(ext)s"),
	}
	args = s.appendCookieArgs(args)
	args = append(args, itemID)

	_, stderr, err := s.executor.ExecuteCapture(ctx, "yt-dlp", args...)
	if err != nil {
		if classified := classifyCaptionFailure(stderr); classified != nil {
			return "", classified
		}
		return "", fmt.Errorf("fetch captions: %w (%s)", err, strings.TrimSpace(stderr))
	}

	vttPath, err := firstCaptionFile(dir)
	if err != nil {
		return "", err
	}
	if vttPath == "" {
		return "", ErrNoCaptionsFound
	}

	data, err := os.ReadFile(vttPath)
	if err != nil {
		return "", fmt.Errorf("read captions: %w", err)
	}

	text := ParseVTT(string(data))
	if text == "" {
		return "", ErrNoCaptionsFound
	}

	s.logger.Debug(ctx, "Captions for %s: %d characters", itemID, len(text))
	return text, nil
}

// classifyCaptionFailure maps yt-dlp diagnostics to the caption error
// taxonomy. Anything unrecognized stays an ordinary error.
func classifyCaptionFailure(stderr string) error {
	lowered := strings.ToLower(stderr)
	switch {
	case strings.Contains(lowered, "subtitles are disabled"):
		return ErrCaptionsDisabled
	case strings.Contains(lowered, "no subtitles"),
		strings.Contains(lowered, "no closed captions"):
		return ErrNoCaptionsFound
	default:
		return nil
	}
}

func firstCaptionFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("scan captions dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".vtt") {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", nil
}

// ParseVTT flattens WebVTT caption content to plain text. Cue headers,
// timestamps, and inline tags are dropped; consecutive duplicate lines
// (auto-caption rolling windows) collapse to one.
func ParseVTT(content string) string {
	var lines []string
	var previous string

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "",
			strings.HasPrefix(line, "WEBVTT"),
			strings.HasPrefix(line, "Kind:"),
			strings.HasPrefix(line, "Language:"),
			strings.HasPrefix(line, "NOTE"),
			strings.HasPrefix(line, "STYLE"),
			strings.Contains(line, "-->"),
			isCueNumber(line):
			continue
		}

		line = cueTagPattern.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" || line == previous {
			continue
		}
		lines = append(lines, line)
		previous = line
	}

	return strings.Join(lines, " ")
}

func isCueNumber(line string) bool {
	if line == "" {
		return false
	}
	for _, r := range line {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
