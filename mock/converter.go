package mock

import "github.com/fwojciec/policydoc"

var _ policydoc.Converter = (*Converter)(nil)

// Converter is a mock implementation of policydoc.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
