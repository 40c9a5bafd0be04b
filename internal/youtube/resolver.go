package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

type dumpEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type dumpPayload struct {
	Type    string      `json:"_type"`
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Entries []dumpEntry `json:"entries"`
}

// Resolve asks yt-dlp for the flat item list behind an origin URL. Playlists
// yield their entries in playback order; a plain video yields one item.
func (s *implService) Resolve(ctx context.Context, origin string) (VideoSource, error) {
	args := []string{
		"--flat-playlist",
		"--dump-single-json",
		"--no-warnings",
	}
	args = s.appendCookieArgs(args)
	args = append(args, origin)

	out, err := s.executor.Execute(ctx, "yt-dlp", args...)
	if err != nil {
		return VideoSource{}, &ResolutionError{Origin: origin, Err: err}
	}

	source, err := parseResolvedSource(origin, out)
	if err != nil {
		return VideoSource{}, &ResolutionError{Origin: origin, Err: err}
	}

	s.logger.Info(ctx, "Resolved %s: %s (%d items)", source.Kind, source.Title, len(source.Items))
	return source, nil
}

func parseResolvedSource(origin, payload string) (VideoSource, error) {
	var parsed dumpPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(payload)), &parsed); err != nil {
		return VideoSource{}, fmt.Errorf("parse item list: %w", err)
	}

	source := VideoSource{
		Origin: origin,
		Title:  parsed.Title,
	}

	if parsed.Type == "playlist" {
		source.Kind = KindPlaylist
		for _, entry := range parsed.Entries {
			if entry.ID == "" {
				continue
			}
			source.Items = append(source.Items, Item{ID: entry.ID, Title: entry.Title})
		}
	} else {
		source.Kind = KindSingle
		if parsed.ID != "" {
			source.Items = []Item{{ID: parsed.ID, Title: parsed.Title}}
		}
	}

	if len(source.Items) == 0 {
		return VideoSource{}, fmt.Errorf("origin resolved to no items")
	}
	if source.Title == "" {
		source.Title = origin
	}
	return source, nil
}

func (s *implService) appendCookieArgs(args []string) []string {
	if s.cookiePath != "" {
		return append(args, "--cookies", s.cookiePath)
	}
	return args
}
