package dynamo

import (
	"errors"
	"fmt"
)

// Precondition errors. Errors returned by callbacks are passed through as-is
// and never wrapped.
var (
	// ErrInvalidConfig is the parent of every configuration error.
	ErrInvalidConfig = errors.New("dynamo: invalid config")

	// ErrNegativeSteps indicates a negative step count.
	ErrNegativeSteps = fmt.Errorf("%w: step count must not be negative", ErrInvalidConfig)

	// ErrInvalidDt indicates a zero, negative or non-finite step size.
	ErrInvalidDt = fmt.Errorf("%w: dt must be positive and finite", ErrInvalidConfig)

	// ErrNoAdvance indicates a driver built without an advance callback.
	ErrNoAdvance = fmt.Errorf("%w: advance callback is required", ErrInvalidConfig)
)

// StepError records where an ensemble member failed.
type StepError struct {
	Member  int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("member %d: %v", e.Member, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
