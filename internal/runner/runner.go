package runner

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"transcriptflow/internal/acquirer"
	"transcriptflow/internal/refiner"
)

const (
	causeWriteError = "write-error"
	causeCancelled  = "cancelled"
)

func (r *implRunner) Run(ctx context.Context, origin string) (RunReport, error) {
	report := RunReport{RunID: uuid.NewString(), Origin: origin}
	r.l.Info(ctx, "Run %s started for %s", report.RunID, origin)

	r.emit(ProgressEvent{RunID: report.RunID, Stage: StageResolving, Ref: origin, Total: 1})
	source, err := r.resolver.Resolve(ctx, origin)
	if err != nil {
		return report, err
	}

	items := r.acquirer.Select(source, r.settings.Selection)
	report.ItemsSelected = len(items)
	if len(items) == 0 {
		r.l.Warn(ctx, "Run %s: selection matched no items", report.RunID)
		return report, nil
	}

	var records []acquirer.TranscriptRecord
	for i, item := range items {
		if ctx.Err() != nil {
			report.Cancelled = true
			return report, nil
		}
		outcome := r.acquirer.AcquireItem(ctx, origin, item)
		if outcome.Skipped() {
			report.Skips = append(report.Skips, SkipEntry{
				ItemID: outcome.ItemID,
				Title:  outcome.Title,
				Reason: outcome.SkipReason,
			})
		} else {
			records = append(records, *outcome.Record)
		}
		r.emit(ProgressEvent{
			RunID:   report.RunID,
			Stage:   StageAcquiring,
			Ref:     outcome.Title,
			Done:    i + 1,
			Total:   len(items),
			Percent: percent(i+1, len(items)),
		})
	}
	report.TranscriptsAcquired = len(records)

	if r.settings.TranscriptFile != "" && len(records) > 0 {
		if err := acquirer.WriteRecords(r.settings.TranscriptFile, records); err != nil {
			r.l.Warn(ctx, "Run %s: could not save transcripts to %s: %v", report.RunID, r.settings.TranscriptFile, err)
		}
	}

	if len(records) > 0 {
		r.refineAll(ctx, records, &report)
	}
	if ctx.Err() != nil {
		report.Cancelled = true
	}

	r.l.Info(ctx, "Run %s finished: %d documents, %d skips, %d failures",
		report.RunID, len(report.DocumentsWritten), len(report.Skips), len(report.Failures))
	return report, nil
}

// refineAll fans the video-by-style job matrix out over a bounded worker
// set. Progress is chunk-granular: the denominator is the total chunk count
// across every job, so long transcripts move the bar proportionally.
func (r *implRunner) refineAll(ctx context.Context, records []acquirer.TranscriptRecord, report *RunReport) {
	var jobs []refiner.Job
	totalChunks := 0
	for _, rec := range records {
		for _, style := range r.settings.Styles {
			job := refiner.NewJob(rec, style, r.settings.ChunkSize, r.settings.MinTailWords)
			jobs = append(jobs, job)
			totalChunks += len(job.Chunks)
		}
	}

	var (
		mu         sync.Mutex
		doneChunks int
	)
	// Counting and emitting happen under the same lock so observers never
	// see the done count move backward.
	chunkDone := func(job refiner.Job, _, _ int) {
		mu.Lock()
		defer mu.Unlock()
		doneChunks++
		r.emit(ProgressEvent{
			RunID:   report.RunID,
			Stage:   StageRefining,
			Ref:     jobRef(job),
			Done:    doneChunks,
			Total:   totalChunks,
			Percent: percent(doneChunks, totalChunks),
		})
	}

	sem := newSemaphore(r.settings.MaxConcurrent)
	var wg sync.WaitGroup
	for i, job := range jobs {
		if err := sem.acquire(ctx); err != nil {
			// Jobs that never started still get a recorded outcome.
			mu.Lock()
			for _, unstarted := range jobs[i:] {
				report.Failures = append(report.Failures, FailureEntry{
					Ref:   jobRef(unstarted),
					Cause: causeCancelled,
					Err:   err,
				})
			}
			mu.Unlock()
			break
		}
		wg.Add(1)
		go func(job refiner.Job) {
			defer wg.Done()
			defer sem.release()

			res := r.refiner.Refine(ctx, job, chunkDone)
			mu.Lock()
			defer mu.Unlock()
			switch res.State {
			case refiner.StateCompleted:
				path, err := r.writer.Write(*res.Document)
				if err != nil {
					report.Failures = append(report.Failures, FailureEntry{
						Ref:   jobRef(job),
						Cause: causeWriteError,
						Err:   err,
					})
					return
				}
				report.DocumentsWritten = append(report.DocumentsWritten, path)
			case refiner.StateCancelled:
				report.Failures = append(report.Failures, FailureEntry{
					Ref:   jobRef(job),
					Cause: causeCancelled,
					Err:   res.Err,
				})
			default:
				report.Failures = append(report.Failures, FailureEntry{
					Ref:   jobRef(job),
					Cause: string(res.Cause),
					Err:   res.Err,
				})
			}
		}(job)
	}
	wg.Wait()
}

func (r *implRunner) emit(ev ProgressEvent) {
	if r.settings.Progress != nil {
		r.settings.Progress(ev)
	}
}

func jobRef(job refiner.Job) string {
	return fmt.Sprintf("%s [%s]", job.Record.Title, job.Style.Name)
}
