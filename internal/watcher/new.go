package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"transcriptflow/internal/logger"
)

// New creates a Watcher over watchDir. Each origin listed in a dropped
// request file is handed to handler, at most maxConcurrent at a time.
func New(watchDir string, handler RequestHandler, log logger.Logger, maxConcurrent int) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(watchDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	return &implWatcher{
		watchDir:  watchDir,
		handler:   handler,
		logger:    log,
		watcher:   fsw,
		semaphore: make(chan struct{}, maxConcurrent),
	}, nil
}
