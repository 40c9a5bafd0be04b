package refiner

import (
	"context"
	"fmt"
	"strings"

	"transcriptflow/internal/gemini"
)

const continuationPreamble = "You are continuing a document that is being written in sections. " +
	"The previous section ended with the text below. Continue seamlessly from it and do not repeat it.\n\n" +
	"Previous section:\n%s\n\n---\n\n"

func (r *implRefiner) Refine(ctx context.Context, job Job, observe ChunkObserver) Result {
	result := Result{Job: job, State: StatePending}
	total := len(job.Chunks)
	if total == 0 {
		result.State = StateFailed
		result.Cause = CauseTerminal
		result.Err = fmt.Errorf("refine %q [%s]: transcript has no content", job.Record.Title, job.Style.Name)
		return result
	}

	stylePrompt := job.Style.Prompt(r.language)
	var sections []string
	var previous string

	result.State = StateRunning
	for i, chunk := range job.Chunks {
		if err := ctx.Err(); err != nil {
			r.l.Warn(ctx, "Refinement cancelled for %q [%s] at chunk %d/%d", job.Record.Title, job.Style.Name, i+1, total)
			result.State = StateCancelled
			result.Err = err
			return result
		}

		prompt := buildPrompt(stylePrompt, previous, chunk.Text)
		r.l.Debug(ctx, "Refining %q [%s] chunk %d/%d (%d words)", job.Record.Title, job.Style.Name, i+1, total, chunk.WordCount)

		text, err := r.generator.Generate(ctx, prompt)
		if err != nil {
			result.State = StateFailed
			result.Err = fmt.Errorf("refine %q [%s] chunk %d/%d: %w", job.Record.Title, job.Style.Name, i+1, total, err)
			// Only errors the generator actually retried count as
			// exhaustion; unclassified failures got a single attempt
			// and are terminal for this job.
			if gemini.Retryable(err) {
				result.Cause = CauseRetryExhausted
			} else {
				result.Cause = CauseTerminal
			}
			return result
		}

		sections = append(sections, text)
		previous = text
		if observe != nil {
			observe(job, i+1, total)
		}
	}

	result.State = StateCompleted
	result.Document = &Document{
		Title:     job.Record.Title,
		Origin:    job.Record.Origin,
		StyleName: job.Style.Name,
		Body:      strings.TrimSpace(strings.Join(sections, "\n\n")),
	}
	return result
}

// buildPrompt assembles the per-chunk prompt. Only the immediately preceding
// generated section is carried forward, so prompt size stays bounded no
// matter how long the transcript is.
func buildPrompt(stylePrompt, previous, chunkText string) string {
	var b strings.Builder
	if previous != "" {
		fmt.Fprintf(&b, continuationPreamble, previous)
	}
	b.WriteString(stylePrompt)
	b.WriteString("\n\n")
	b.WriteString(chunkText)
	return b.String()
}
