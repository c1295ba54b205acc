package mock

import (
	"context"

	"github.com/fwojciec/poiscout"
)

var _ poiscout.Asker = (*Asker)(nil)

// Asker is a mock implementation of poiscout.Asker.
type Asker struct {
	AskFn func(ctx context.Context, crawlID, question string) (string, error)
}

func (a *Asker) Ask(ctx context.Context, crawlID, question string) (string, error) {
	return a.AskFn(ctx, crawlID, question)
}
