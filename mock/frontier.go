package mock

import (
	"context"

	"github.com/fwojciec/poiscout"
)

var _ poiscout.Frontier = (*Frontier)(nil)

// Frontier is a mock implementation of poiscout.Frontier.
type Frontier struct {
	PushFn        func(u poiscout.ScoredURL)
	PopFn         func() (poiscout.ScoredURL, bool)
	LenFn         func() int
	MarkVisitedFn func(url string)
	VisitedFn     func(url string) bool
}

func (f *Frontier) Push(u poiscout.ScoredURL) {
	f.PushFn(u)
}

func (f *Frontier) Pop() (poiscout.ScoredURL, bool) {
	return f.PopFn()
}

func (f *Frontier) Len() int {
	return f.LenFn()
}

func (f *Frontier) MarkVisited(url string) {
	f.MarkVisitedFn(url)
}

func (f *Frontier) Visited(url string) bool {
	return f.VisitedFn(url)
}

var _ poiscout.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of poiscout.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
