package solver

import (
	"errors"
	"fmt"
)

// Domain errors for integration calls.
var (
	// ErrTolerance indicates a non-positive or non-finite tolerance.
	ErrTolerance = errors.New("solver: tolerance must be positive and finite")

	// ErrUnorderedTimes indicates a bad output-time grid.
	ErrUnorderedTimes = errors.New("solver: output times must be finite and non-decreasing")

	// ErrDimensionMismatch indicates the derivative returned a vector of the
	// wrong dimension.
	ErrDimensionMismatch = errors.New("solver: derivative dimension does not match state")

	// ErrToleranceUnreachable indicates too many consecutive step rejections.
	ErrToleranceUnreachable = errors.New("solver: tolerance unreachable (rejection limit reached)")

	// ErrStepUnderflow indicates the step size shrank below time resolution.
	ErrStepUnderflow = errors.New("solver: step size underflow")

	// ErrNonFiniteState indicates NaN or Inf entered the integration.
	ErrNonFiniteState = errors.New("solver: non-finite state (NaN or Inf detected)")
)

// StepError wraps a sentinel error with the position of the failed attempt.
type StepError struct {
	Step int
	Time float64
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
