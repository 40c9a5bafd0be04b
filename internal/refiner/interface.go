package refiner

import "context"

// ChunkObserver is invoked after each successfully refined chunk.
type ChunkObserver func(job Job, done, total int)

// Refiner turns a chunked transcript into a styled document.
type Refiner interface {
	Refine(ctx context.Context, job Job, observe ChunkObserver) Result
}
