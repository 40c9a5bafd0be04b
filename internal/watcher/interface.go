package watcher

import "context"

// Watcher monitors a directory for new request files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// RequestHandler processes one origin URL read from a request file.
type RequestHandler func(ctx context.Context, origin string) error
