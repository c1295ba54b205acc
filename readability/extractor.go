// Package readability implements the fallback content extractor, used
// when trafilatura declines a page.
package readability

import (
	"strings"

	"github.com/fwojciec/poiscout"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements poiscout.Extractor at compile time.
var _ poiscout.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*poiscout.ExtractResult, error) {
	if rawHTML == "" {
		return nil, poiscout.Errorf(poiscout.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &poiscout.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
