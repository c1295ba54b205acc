package mock

import (
	"context"

	"github.com/fwojciec/poiscout"
)

var _ poiscout.Validator = (*Validator)(nil)

// Validator is a mock implementation of poiscout.Validator.
type Validator struct {
	ValidateFn func(ctx context.Context, poi poiscout.POI) (*poiscout.Verdict, error)
}

func (v *Validator) Validate(ctx context.Context, poi poiscout.POI) (*poiscout.Verdict, error) {
	return v.ValidateFn(ctx, poi)
}
