package solver

import (
	"errors"
	"fmt"
)

// Sentinel errors for the solver's failure taxonomy. They are used
// internally (tests and code can errors.Is/errors.As against them) but
// never cross the Solve boundary directly — Result.ErrorMessage always
// carries the plain string built from one of these via err.Error().
var (
	// ErrContradiction means a cell's possible set became empty during
	// collapse or propagation.
	ErrContradiction = errors.New("contradiction")

	// ErrCancelled means the cancellation signal fired before Solve
	// reached finalisation.
	ErrCancelled = errors.New("operation canceled")

	// ErrEmptyConfiguration means Solve was called with no tiles.
	ErrEmptyConfiguration = errors.New("empty configuration: no tiles")

	// ErrRetryBudgetExhausted means every retry attempt ended in
	// contradiction.
	ErrRetryBudgetExhausted = errors.New("contradiction after exhausting retry budget")
)

// ContradictionError wraps ErrContradiction with the position that
// triggered it, for callers and tests that want the detail; Error()
// still satisfies errors.Is(err, ErrContradiction) via Unwrap.
type ContradictionError struct {
	X, Y int
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("contradiction at cell (%d,%d)", e.X, e.Y)
}

func (e *ContradictionError) Unwrap() error { return ErrContradiction }
