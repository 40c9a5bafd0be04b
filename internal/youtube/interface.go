package youtube

import "context"

// Resolver turns one origin URL into an ordered item list.
type Resolver interface {
	Resolve(ctx context.Context, origin string) (VideoSource, error)
}

// CaptionSource retrieves directly published captions for one item.
// Failures are classified: ErrCaptionsDisabled and ErrNoCaptionsFound are
// expected outcomes that trigger fallback transcription upstream.
type CaptionSource interface {
	FetchCaptions(ctx context.Context, itemID string) (string, error)
}
