package writer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"transcriptflow/internal/refiner"
	"transcriptflow/internal/textutil"
)

// Write renders doc as markdown under the output directory. The file name
// is the sanitized title stem plus the style name in brackets, so every
// style of the same video lands beside the others. The file is written to a
// temp path first and renamed into place, so readers never see a partial
// document.
func (w *implWriter) Write(doc refiner.Document) (string, error) {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir %s: %w", w.outputDir, err)
	}

	stem := textutil.SanitizeStem(doc.Title)
	path := filepath.Join(w.outputDir, fmt.Sprintf("%s [%s].md", stem, doc.StyleName))

	content := renderMarkdown(doc)
	if err := atomicWrite(path, []byte(content)); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	w.l.Info(context.Background(), "Saved document: %s", path)

	if w.writeDocx {
		docxPath := strings.TrimSuffix(path, ".md") + ".docx"
		if err := markdownToDocx(doc.Title, doc.Body, docxPath); err != nil {
			// Markdown already landed, so a docx failure is not fatal.
			w.l.Warn(context.Background(), "Docx rendering failed for %s: %v", docxPath, err)
		} else {
			w.l.Info(context.Background(), "Saved document: %s", docxPath)
		}
	}

	return path, nil
}

func renderMarkdown(doc refiner.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	fmt.Fprintf(&b, "**Original Video URL:** %s\n\n", doc.Origin)
	b.WriteString(doc.Body)
	b.WriteString("\n")
	return b.String()
}

func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".doc-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
