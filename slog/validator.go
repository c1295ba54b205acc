package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/poiscout"
)

// Ensure LoggingValidator implements poiscout.Validator.
var _ poiscout.Validator = (*LoggingValidator)(nil)

// LoggingValidator wraps a Validator with logging.
type LoggingValidator struct {
	next   poiscout.Validator
	logger *slog.Logger
}

// NewLoggingValidator creates a new LoggingValidator.
func NewLoggingValidator(next poiscout.Validator, logger *slog.Logger) *LoggingValidator {
	return &LoggingValidator{next: next, logger: logger}
}

// Validate delegates to the wrapped validator and logs the verdict.
func (v *LoggingValidator) Validate(ctx context.Context, poi poiscout.POI) (verdict *poiscout.Verdict, err error) {
	defer func(begin time.Time) {
		v.logger.Info("poi validation",
			"name", poi.Name,
			"valid", verdict != nil && verdict.IsValid,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return v.next.Validate(ctx, poi)
}
