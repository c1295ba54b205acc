package mock

import "github.com/fwojciec/poiscout"

var _ poiscout.LinkLister = (*LinkLister)(nil)

// LinkLister is a mock implementation of poiscout.LinkLister.
type LinkLister struct {
	ListLinksFn func(html string, baseURL string) ([]string, error)
}

func (l *LinkLister) ListLinks(html string, baseURL string) ([]string, error) {
	return l.ListLinksFn(html, baseURL)
}
