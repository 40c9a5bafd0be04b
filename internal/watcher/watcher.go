// Package watcher turns a directory into a drop box for processing
// requests. A request file (.txt or .urls) lists one origin URL per line;
// blank lines and #-comments are ignored.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"transcriptflow/internal/logger"
)

// settleDelay gives the writing process time to finish before the file is
// read.
const settleDelay = 500 * time.Millisecond

type implWatcher struct {
	watchDir  string
	handler   RequestHandler
	logger    logger.Logger
	watcher   *fsnotify.Watcher
	semaphore chan struct{}
	wg        sync.WaitGroup
}

func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watching %s for request files (.txt, .urls)", w.watchDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for in-flight requests to finish...")
			w.wg.Wait()
			w.logger.Info(ctx, "Watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isRequestFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring %s", event.Name)
				continue
			}
			w.logger.Info(ctx, "New request file: %s", event.Name)
			time.Sleep(settleDelay)
			if err := w.dispatchFile(ctx, event.Name); err != nil {
				if ctx.Err() != nil {
					w.wg.Wait()
					return ctx.Err()
				}
				w.logger.Error(ctx, "Could not read %s: %v", event.Name, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// dispatchFile reads the request file and hands each origin to the handler
// on its own goroutine, gated by the semaphore.
func (w *implWatcher) dispatchFile(ctx context.Context, path string) error {
	origins, err := readOrigins(path)
	if err != nil {
		return err
	}
	if len(origins) == 0 {
		w.logger.Warn(ctx, "Request file %s contains no origins", path)
		return nil
	}

	for _, origin := range origins {
		select {
		case w.semaphore <- struct{}{}:
		case <-ctx.Done():
			return ctx.Err()
		}
		w.wg.Add(1)
		go func(origin string) {
			defer w.wg.Done()
			defer func() { <-w.semaphore }()

			if err := w.handler(ctx, origin); err != nil {
				w.logger.Error(ctx, "Request %s failed: %v", origin, err)
			}
		}(origin)
	}
	return nil
}

func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func isRequestFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".urls":
		return true
	}
	return false
}

func readOrigins(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var origins []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		origins = append(origins, line)
	}
	return origins, nil
}
