// Package writer persists refined documents. Markdown is the primary
// format; a docx rendering can be emitted alongside it.
package writer

import "transcriptflow/internal/refiner"

// Writer saves one refined document and returns the markdown path.
type Writer interface {
	Write(doc refiner.Document) (string, error)
}
