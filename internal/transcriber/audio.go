package transcriber

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// downloadAudio fetches an item's audio track as m4a at 128 kbps, which is
// small enough to segment quickly while keeping speech intelligible.
func (t *implTranscriber) downloadAudio(ctx context.Context, dir, itemID string) (string, error) {
	audioPath := filepath.Join(dir, itemID+".m4a")

	args := []string{
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", "m4a",
		"--audio-quality", "128K",
		"--no-playlist",
		"--no-warnings",
		"-o", "%(id)s.%(ext)s",
	}
	if t.cookiePath != "" {
		args = append(args, "--cookies", t.cookiePath)
	}
	args = append(args, itemID)

	// yt-dlp runs inside the per-call temp dir so the relative output
	// template lands the file there.
	if _, err := t.executor.ExecuteInDir(ctx, dir, "yt-dlp", args...); err != nil {
		return "", fmt.Errorf("download audio: %w", err)
	}
	return audioPath, nil
}

// probeDuration reads the audio duration in seconds via ffprobe.
func (t *implTranscriber) probeDuration(ctx context.Context, audioPath string) (float64, error) {
	out, err := t.executor.Execute(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		audioPath,
	)
	if err != nil {
		return 0, fmt.Errorf("probe duration: %w", err)
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", strings.TrimSpace(out), err)
	}
	return seconds, nil
}

// exportSegment cuts one [start,end) span out of the audio as its own m4a.
func (t *implTranscriber) exportSegment(ctx context.Context, audioPath string, seg segment, index int) (string, error) {
	base := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	segmentPath := fmt.Sprintf("%s_segment_%02d.m4a", base, index+1)

	_, err := t.executor.Execute(ctx, "ffmpeg",
		"-i", audioPath,
		"-ss", formatSeconds(seg.Start),
		"-to", formatSeconds(seg.End),
		"-vn",
		"-c:a", "aac",
		"-y",
		segmentPath,
	)
	if err != nil {
		return "", fmt.Errorf("export segment %d: %w", index+1, err)
	}
	return segmentPath, nil
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}
