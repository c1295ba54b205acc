package mock

import "github.com/fwojciec/poiscout"

var _ poiscout.Converter = (*Converter)(nil)

// Converter is a mock implementation of poiscout.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
