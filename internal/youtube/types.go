package youtube

import "errors"

// SourceKind distinguishes playlists from single items.
type SourceKind string

const (
	KindPlaylist SourceKind = "playlist"
	KindSingle   SourceKind = "single"
)

// Item is one playable unit inside a source.
type Item struct {
	ID    string
	Title string // best effort; may be empty
}

// VideoSource is one resolved origin: a playlist or a single item, with its
// items in playback order.
type VideoSource struct {
	Origin string
	Kind   SourceKind
	Title  string
	Items  []Item
}

var (
	// ErrCaptionsDisabled means the uploader turned captions off.
	ErrCaptionsDisabled = errors.New("captions disabled")
	// ErrNoCaptionsFound means no captions exist in the requested languages.
	ErrNoCaptionsFound = errors.New("no captions available")
)

// ResolutionError reports that an origin's item list could not be resolved.
// It is the only acquisition failure that aborts a whole run.
type ResolutionError struct {
	Origin string
	Err    error
}

func (e *ResolutionError) Error() string {
	return "resolve " + e.Origin + ": " + e.Err.Error()
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
