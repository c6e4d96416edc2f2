package mock

import "github.com/fwojciec/policydoc"

var _ policydoc.ExportWriter = (*ExportWriter)(nil)

// ExportWriter is a mock implementation of policydoc.ExportWriter.
type ExportWriter struct {
	WriteExportFn func(exp *policydoc.Exported) (string, error)
}

func (w *ExportWriter) WriteExport(exp *policydoc.Exported) (string, error) {
	return w.WriteExportFn(exp)
}
