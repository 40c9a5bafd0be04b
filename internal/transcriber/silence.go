package transcriber

import (
	"context"
	"regexp"
	"strconv"
)

const (
	silenceNoiseThreshold = "-30dB"
	silenceMinLength      = 0.5
	// minSegmentSeconds drops spans too short to hold real speech.
	minSegmentSeconds = 5.0
)

// segment is one [Start,End) span of the source audio, in seconds.
type segment struct {
	Start float64
	End   float64
}

type silenceSpan struct {
	Start float64
	End   float64
}

var silenceEventPattern = regexp.MustCompile(`silence_(start|end): ([\d.]+)`)

// detectSilence runs ffmpeg's silencedetect filter over the audio. The
// filter reports on stderr, so the capture variant of the executor is used
// and the exit status is ignored in favor of parseable events.
func (t *implTranscriber) detectSilence(ctx context.Context, audioPath string) ([]silenceSpan, error) {
	_, stderr, err := t.executor.ExecuteCapture(ctx, "ffmpeg",
		"-i", audioPath,
		"-af", "silencedetect=noise="+silenceNoiseThreshold+":d="+strconv.FormatFloat(silenceMinLength, 'f', 1, 64),
		"-f", "null", "-",
	)
	if err != nil && stderr == "" {
		return nil, err
	}
	return parseSilenceEvents(stderr), nil
}

// parseSilenceEvents pairs silence_start/silence_end markers into spans.
// Unmatched starts (silence running to end of file) are dropped; the final
// segment boundary comes from the total duration instead.
func parseSilenceEvents(stderr string) []silenceSpan {
	matches := silenceEventPattern.FindAllStringSubmatch(stderr, -1)

	var spans []silenceSpan
	var pendingStart *float64
	for _, m := range matches {
		value, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		if m[1] == "start" {
			v := value
			pendingStart = &v
		} else if pendingStart != nil {
			spans = append(spans, silenceSpan{Start: *pendingStart, End: value})
			pendingStart = nil
		}
	}
	return spans
}

// planSegments builds the transcription segments: speech spans between
// silences, dropping spans under minSegmentSeconds and splitting any span
// longer than the ceiling so no single segment exceeds it.
func planSegments(silences []silenceSpan, totalSeconds, ceilingSeconds float64) []segment {
	var spans []segment
	lastEnd := 0.0
	for _, s := range silences {
		if s.Start-lastEnd >= minSegmentSeconds {
			spans = append(spans, segment{Start: lastEnd, End: s.Start})
		}
		lastEnd = s.End
	}
	if totalSeconds-lastEnd >= minSegmentSeconds {
		spans = append(spans, segment{Start: lastEnd, End: totalSeconds})
	}

	var out []segment
	for _, span := range spans {
		start := span.Start
		for span.End-start > ceilingSeconds {
			out = append(out, segment{Start: start, End: start + ceilingSeconds})
			start += ceilingSeconds
		}
		if span.End > start {
			out = append(out, segment{Start: start, End: span.End})
		}
	}
	return out
}
