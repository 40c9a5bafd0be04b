package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"transcriptflow/internal/acquirer"
	"transcriptflow/internal/gemini"
	"transcriptflow/internal/logger"
	"transcriptflow/internal/refiner"
	"transcriptflow/internal/styles"
	"transcriptflow/internal/writer"
	"transcriptflow/internal/youtube"
)

type fakeResolver struct {
	source youtube.VideoSource
	err    error
}

func (f *fakeResolver) Resolve(_ context.Context, origin string) (youtube.VideoSource, error) {
	if f.err != nil {
		return youtube.VideoSource{}, &youtube.ResolutionError{Origin: origin, Err: f.err}
	}
	return f.source, nil
}

// fakeCaptions serves canned caption text per item and lets selected items
// fail with a classified error.
type fakeCaptions struct {
	text map[string]string
}

func (f *fakeCaptions) FetchCaptions(_ context.Context, itemID string) (string, error) {
	text, ok := f.text[itemID]
	if !ok {
		return "", youtube.ErrCaptionsDisabled
	}
	return text, nil
}

type fakeGenerator struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("generated-%d", f.calls), nil
}

type progressCollector struct {
	mu     sync.Mutex
	events []ProgressEvent
}

func (p *progressCollector) record(ev ProgressEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *progressCollector) byStage(stage Stage) []ProgressEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []ProgressEvent
	for _, ev := range p.events {
		if ev.Stage == stage {
			out = append(out, ev)
		}
	}
	return out
}

func testStyles(t *testing.T, names ...string) []styles.Spec {
	t.Helper()
	specs, err := styles.Resolve(names)
	if err != nil {
		t.Fatalf("Resolve(%v): %v", names, err)
	}
	return specs
}

// newTestRunner wires a runner over in-memory collaborators: a canned
// resolver, the real acquirer with fake captions, the real refiner with a
// fake generator, and the real writer into a temp dir.
func newTestRunner(t *testing.T, resolver *fakeResolver, captions *fakeCaptions, gen *fakeGenerator, settings Settings) (Runner, string) {
	t.Helper()
	outDir := t.TempDir()
	nop := logger.Nop()

	acq := acquirer.New(captions, nil, nop, false)
	ref := refiner.New(gen, nop, "English")
	w := writer.New(outDir, false, nop)

	if settings.ChunkSize == 0 {
		settings.ChunkSize = 100
	}
	if settings.MinTailWords == 0 {
		settings.MinTailWords = 20
	}
	if settings.Selection.StartIndex == 0 {
		settings.Selection.StartIndex = 1
	}
	if settings.MaxConcurrent == 0 {
		settings.MaxConcurrent = 2
	}
	return New(resolver, acq, ref, w, settings, nop), outDir
}

func TestRunProducesDocumentPerVideoAndStyle(t *testing.T) {
	resolver := &fakeResolver{source: youtube.VideoSource{
		Origin: "https://example.com/playlist",
		Kind:   youtube.KindPlaylist,
		Items: []youtube.Item{
			{ID: "a", Title: "First Video"},
			{ID: "b", Title: "Second Video"},
		},
	}}
	captions := &fakeCaptions{text: map[string]string{
		"a": "words from the first video",
		"b": "words from the second video",
	}}
	gen := &fakeGenerator{}
	progress := &progressCollector{}

	r, outDir := newTestRunner(t, resolver, captions, gen, Settings{
		Styles:   testStyles(t, "Summary", "Educational"),
		Progress: progress.record,
	})

	report, err := r.Run(context.Background(), "https://example.com/playlist")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.ItemsSelected != 2 || report.TranscriptsAcquired != 2 {
		t.Errorf("selected/acquired = %d/%d, want 2/2", report.ItemsSelected, report.TranscriptsAcquired)
	}
	if len(report.DocumentsWritten) != 4 {
		t.Fatalf("documents = %d, want 2 videos x 2 styles", len(report.DocumentsWritten))
	}
	if len(report.Failures) != 0 || report.Cancelled {
		t.Errorf("unexpected failures %v or cancellation", report.Failures)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 4 {
		t.Errorf("files on disk = %d, want 4", len(entries))
	}

	acquiring := progress.byStage(StageAcquiring)
	if len(acquiring) != 2 || acquiring[len(acquiring)-1].Percent != 100 {
		t.Errorf("acquiring progress = %+v, want 2 events ending at 100%%", acquiring)
	}
	refining := progress.byStage(StageRefining)
	if len(refining) != 4 || refining[len(refining)-1].Percent != 100 {
		t.Errorf("refining progress = %+v, want 4 chunk events ending at 100%%", refining)
	}
}

// One long transcript, two styles: the word windows are 700/700/100, the
// short tail merges into the second window, so each style costs exactly two
// generation calls and yields exactly one file.
func TestRunTailMergeBoundsGenerationCalls(t *testing.T) {
	words := make([]string, 1500)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	resolver := &fakeResolver{source: youtube.VideoSource{
		Origin: "o",
		Kind:   youtube.KindSingle,
		Items:  []youtube.Item{{ID: "long", Title: "Long Talk"}},
	}}
	captions := &fakeCaptions{text: map[string]string{"long": strings.Join(words, " ")}}
	gen := &fakeGenerator{}

	r, outDir := newTestRunner(t, resolver, captions, gen, Settings{
		Styles:       testStyles(t, "Summary", "Educational"),
		ChunkSize:    700,
		MinTailWords: 140,
	})

	report, err := r.Run(context.Background(), "o")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if gen.calls != 4 {
		t.Errorf("generation calls = %d, want 2 chunks x 2 styles", gen.calls)
	}
	if len(report.DocumentsWritten) != 2 {
		t.Errorf("documents = %d, want one per style", len(report.DocumentsWritten))
	}

	entries, _ := os.ReadDir(outDir)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	want := []string{"Long_Talk [Educational].md", "Long_Talk [Summary].md"}
	if len(names) != 2 || names[0] != want[0] || names[1] != want[1] {
		t.Errorf("files = %v, want %v", names, want)
	}
}

func TestRunReportsSkipsAndContinues(t *testing.T) {
	resolver := &fakeResolver{source: youtube.VideoSource{
		Origin: "o",
		Kind:   youtube.KindPlaylist,
		Items: []youtube.Item{
			{ID: "ok", Title: "Has Captions"},
			{ID: "missing", Title: "No Captions"},
		},
	}}
	captions := &fakeCaptions{text: map[string]string{"ok": "caption words"}}
	gen := &fakeGenerator{}

	r, _ := newTestRunner(t, resolver, captions, gen, Settings{
		Styles: testStyles(t, "Summary"),
	})

	report, err := r.Run(context.Background(), "o")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(report.Skips) != 1 || report.Skips[0].ItemID != "missing" {
		t.Fatalf("skips = %+v, want the caption-less item", report.Skips)
	}
	if len(report.DocumentsWritten) != 1 {
		t.Errorf("documents = %d, want 1", len(report.DocumentsWritten))
	}
}

func TestRunResolutionFailureAborts(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("playlist is private")}
	r, _ := newTestRunner(t, resolver, &fakeCaptions{}, &fakeGenerator{}, Settings{
		Styles: testStyles(t, "Summary"),
	})

	_, err := r.Run(context.Background(), "https://example.com/private")
	var resErr *youtube.ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("err = %v, want ResolutionError", err)
	}
}

func TestRunSelectionRangeApplied(t *testing.T) {
	resolver := &fakeResolver{source: youtube.VideoSource{
		Origin: "o",
		Kind:   youtube.KindPlaylist,
		Items:  []youtube.Item{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}, {ID: "c", Title: "C"}},
	}}
	captions := &fakeCaptions{text: map[string]string{"a": "ta", "b": "tb", "c": "tc"}}

	r, _ := newTestRunner(t, resolver, captions, &fakeGenerator{}, Settings{
		Selection: acquirer.SelectionRange{StartIndex: 2, EndIndex: 2},
		Styles:    testStyles(t, "Summary"),
	})

	report, err := r.Run(context.Background(), "o")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.ItemsSelected != 1 {
		t.Fatalf("selected = %d, want 1", report.ItemsSelected)
	}
	if len(report.DocumentsWritten) != 1 || !strings.Contains(report.DocumentsWritten[0], "B [Summary]") {
		t.Errorf("documents = %v, want only item B", report.DocumentsWritten)
	}
}

func TestRunWritesTranscriptFile(t *testing.T) {
	resolver := &fakeResolver{source: youtube.VideoSource{
		Origin: "o",
		Kind:   youtube.KindSingle,
		Items:  []youtube.Item{{ID: "a", Title: "Solo"}},
	}}
	captions := &fakeCaptions{text: map[string]string{"a": "solo transcript words"}}
	transcriptPath := filepath.Join(t.TempDir(), "transcripts.txt")

	r, _ := newTestRunner(t, resolver, captions, &fakeGenerator{}, Settings{
		Styles:         testStyles(t, "Summary"),
		TranscriptFile: transcriptPath,
	})

	if _, err := r.Run(context.Background(), "o"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	records, err := acquirer.ReadRecords(transcriptPath)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(records) != 1 || records[0].Text != "solo transcript words" {
		t.Errorf("records = %+v, want the acquired transcript", records)
	}
}

func TestRunRefinementFailureReported(t *testing.T) {
	resolver := &fakeResolver{source: youtube.VideoSource{
		Origin: "o",
		Kind:   youtube.KindSingle,
		Items:  []youtube.Item{{ID: "a", Title: "Solo"}},
	}}
	captions := &fakeCaptions{text: map[string]string{"a": "transcript"}}
	gen := &fakeGenerator{err: fmt.Errorf("generate: %w", gemini.ErrContentRejected)}

	r, outDir := newTestRunner(t, resolver, captions, gen, Settings{
		Styles: testStyles(t, "Summary"),
	})

	report, err := r.Run(context.Background(), "o")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Failures) != 1 {
		t.Fatalf("failures = %+v, want 1", report.Failures)
	}
	if report.Failures[0].Cause != string(refiner.CauseTerminal) {
		t.Errorf("cause = %s, want terminal", report.Failures[0].Cause)
	}

	entries, _ := os.ReadDir(outDir)
	if len(entries) != 0 {
		t.Errorf("failed job must write nothing, found %d files", len(entries))
	}
}

func TestRunRefiningProgressIsMonotonic(t *testing.T) {
	items := make([]youtube.Item, 6)
	captionText := make(map[string]string, len(items))
	for i := range items {
		id := fmt.Sprintf("v%d", i)
		items[i] = youtube.Item{ID: id, Title: "Video " + id}
		captionText[id] = "a short single chunk transcript"
	}
	resolver := &fakeResolver{source: youtube.VideoSource{
		Origin: "o",
		Kind:   youtube.KindPlaylist,
		Items:  items,
	}}
	progress := &progressCollector{}

	r, _ := newTestRunner(t, resolver, &fakeCaptions{text: captionText}, &fakeGenerator{}, Settings{
		Styles:        testStyles(t, "Summary", "Educational"),
		MaxConcurrent: 4,
		Progress:      progress.record,
	})

	if _, err := r.Run(context.Background(), "o"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	refining := progress.byStage(StageRefining)
	if len(refining) != 12 {
		t.Fatalf("refining events = %d, want one per job", len(refining))
	}
	for i, ev := range refining {
		if ev.Done != i+1 {
			t.Fatalf("event %d has Done=%d; done counts must arrive in order", i, ev.Done)
		}
	}
}

func TestRunCancellation(t *testing.T) {
	resolver := &fakeResolver{source: youtube.VideoSource{
		Origin: "o",
		Kind:   youtube.KindSingle,
		Items:  []youtube.Item{{ID: "a", Title: "Solo"}},
	}}
	captions := &fakeCaptions{text: map[string]string{"a": "one two three four five six"}}

	ctx, cancel := context.WithCancel(context.Background())
	gen := &fakeGenerator{}
	cancellingGen := generatorFunc(func(c context.Context, prompt string) (string, error) {
		cancel()
		return gen.Generate(c, prompt)
	})

	outDir := t.TempDir()
	nop := logger.Nop()
	r := New(resolver,
		acquirer.New(captions, nil, nop, false),
		refiner.New(cancellingGen, nop, "English"),
		writer.New(outDir, false, nop),
		Settings{
			Selection:     acquirer.SelectionRange{StartIndex: 1},
			Styles:        testStyles(t, "Summary", "Educational"),
			ChunkSize:     2,
			MinTailWords:  1,
			MaxConcurrent: 1,
		}, nop)

	report, err := r.Run(ctx, "o")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !report.Cancelled {
		t.Error("report should be marked cancelled")
	}

	// Every (video, style) job gets a recorded outcome, whether it was
	// interrupted mid-chunk or never started.
	if len(report.Failures) != 2 {
		t.Fatalf("failures = %+v, want an entry per job", report.Failures)
	}
	for _, failure := range report.Failures {
		if failure.Cause != causeCancelled {
			t.Errorf("failure %s cause = %s, want %s", failure.Ref, failure.Cause, causeCancelled)
		}
	}

	entries, _ := os.ReadDir(outDir)
	if len(entries) != 0 {
		t.Errorf("cancelled run must write nothing, found %d files", len(entries))
	}
}

type generatorFunc func(ctx context.Context, prompt string) (string, error)

func (f generatorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
