package fs

import (
	"os"
	"path/filepath"

	"github.com/fwojciec/policydoc"
)

// Ensure ExportWriter implements policydoc.ExportWriter at compile time.
var _ policydoc.ExportWriter = (*ExportWriter)(nil)

// ExportWriter saves exports as files in a directory. Each file is written
// to a temporary name first and renamed into place, so readers never see a
// partial export.
type ExportWriter struct {
	dir string
}

// NewExportWriter creates a new ExportWriter that writes into dir.
func NewExportWriter(dir string) *ExportWriter {
	return &ExportWriter{dir: dir}
}

// WriteExport writes exp under its filename and returns the final path.
func (w *ExportWriter) WriteExport(exp *policydoc.Exported) (string, error) {
	if exp.Filename == "" || filepath.Base(exp.Filename) != exp.Filename {
		return "", policydoc.Errorf(policydoc.EINVALID, "invalid export filename %q", exp.Filename)
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", err
	}

	finalPath := filepath.Join(w.dir, exp.Filename)
	tmpPath := finalPath + ".tmp"

	if err := os.WriteFile(tmpPath, []byte(exp.Body), 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}

	return finalPath, nil
}
