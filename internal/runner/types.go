package runner

// Stage identifies the phase a progress event belongs to. Percent resets to
// zero when a run moves from acquisition into refinement.
type Stage string

const (
	StageResolving Stage = "resolving"
	StageAcquiring Stage = "acquiring"
	StageRefining  Stage = "refining"
)

// ProgressEvent is one observable step of a run. Ref names the unit being
// worked on: an item title during acquisition, "title [style]" during
// refinement.
type ProgressEvent struct {
	RunID   string
	Stage   Stage
	Ref     string
	Done    int
	Total   int
	Percent int
}

// SkipEntry records an item that produced no transcript.
type SkipEntry struct {
	ItemID string
	Title  string
	Reason string
}

// FailureEntry records a refinement or write failure for one video/style
// pair.
type FailureEntry struct {
	Ref   string
	Cause string
	Err   error
}

// RunReport summarizes one completed run.
type RunReport struct {
	RunID               string
	Origin              string
	ItemsSelected       int
	TranscriptsAcquired int
	DocumentsWritten    []string
	Skips               []SkipEntry
	Failures            []FailureEntry
	Cancelled           bool
}

func percent(done, total int) int {
	if total <= 0 {
		return 100
	}
	return done * 100 / total
}
