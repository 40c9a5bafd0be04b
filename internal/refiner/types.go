package refiner

import (
	"transcriptflow/internal/acquirer"
	"transcriptflow/internal/chunker"
	"transcriptflow/internal/styles"
)

// State tracks a refinement job through its lifecycle. Running is
// re-entered once per chunk; Cancelled is terminal and distinct from Failed.
type State string

const (
	StatePending   State = "pending"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
	StateCancelled State = "cancelled"
)

// FailureCause distinguishes why a job failed.
type FailureCause string

const (
	// CauseRetryExhausted means transient generation failures persisted
	// through every bounded retry attempt.
	CauseRetryExhausted FailureCause = "retry-exhausted"
	// CauseTerminal means the generation service rejected the job in a
	// way retries cannot fix.
	CauseTerminal FailureCause = "terminal"
)

// Job is the unit of refinement work: one transcript under one style, with
// its chunk partition fixed at construction.
type Job struct {
	Record acquirer.TranscriptRecord
	Style  styles.Spec
	Chunks []chunker.Chunk
}

// NewJob partitions the record's text and pairs it with a style.
func NewJob(record acquirer.TranscriptRecord, style styles.Spec, maxWords, minTailWords int) Job {
	return Job{
		Record: record,
		Style:  style,
		Chunks: chunker.Split(record.Text, maxWords, minTailWords),
	}
}

// Document is one assembled per-style output document.
type Document struct {
	Title     string
	Origin    string
	StyleName string
	Body      string
}

// Result is a job's terminal outcome.
type Result struct {
	Job      Job
	State    State
	Document *Document
	Cause    FailureCause
	Err      error
}
