package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	relerrors "github.com/ariel-frischer/autorelease/internal/errors"
)

// TimeoutError represents a stage cut short by the run deadline
type TimeoutError struct {
	Timeout time.Duration // The configured run timeout, zero when unknown
	Stage   string        // The stage that was running
	Err     error         // Underlying error (context.DeadlineExceeded)
}

// Error returns a human-readable error message with timeout details
func (e *TimeoutError) Error() string {
	if e.Timeout > 0 {
		return fmt.Sprintf("timed out after %v (hint: increase --timeout)", e.Timeout)
	}
	return "timed out (hint: increase --timeout)"
}

// Unwrap returns the underlying error for errors.Is/As compatibility
func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// classify gives err the kind of the stage it came from. Errors that
// already carry a kind keep it; deadline errors are reported as timeouts.
func classify(err error, kind relerrors.Kind, stage string, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		if relerrors.As(err) != nil {
			kind = relerrors.KindOf(err)
		}
		return relerrors.Wrap(&TimeoutError{Timeout: timeout, Stage: stage, Err: err}, kind, stage)
	}
	if relerrors.As(err) != nil {
		return err
	}
	return relerrors.Wrap(err, kind, stage)
}
