package mock

import "github.com/fwojciec/poiscout"

var _ poiscout.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of poiscout.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*poiscout.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*poiscout.ExtractResult, error) {
	return e.ExtractFn(html)
}
