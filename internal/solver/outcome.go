package solver

import "fmt"

// Outcome is the classification of one call to Find. Exactly one of
// [Success], [InvalidBounds], [MaxIterationsReached] or [NumericalError]
// is returned; the set is closed and consumers switch exhaustively.
type Outcome interface {
	// Kind returns a stable lowercase tag for the variant, used in
	// persisted metadata and table output.
	Kind() string
	fmt.Stringer

	isOutcome()
}

// Success reports a root approximation. Iterations is 0 when a supplied
// bound already satisfied the tolerance.
type Success struct {
	Root       float64
	Iterations int
}

// InvalidBounds reports a precondition failure on the caller-supplied
// interval or function values. No iteration was attempted.
type InvalidBounds struct {
	Reason string
}

// MaxIterationsReached reports an exhausted iteration budget. BestApprox is
// the midpoint of the final bracket and may be good enough for the caller.
type MaxIterationsReached struct {
	BestApprox float64
	Iterations int
}

// NumericalError reports floating-point degeneracy: a non-finite value, or
// a bracket narrower than the configured minimum interval.
type NumericalError struct {
	Reason string
}

func (Success) isOutcome()              {}
func (InvalidBounds) isOutcome()        {}
func (MaxIterationsReached) isOutcome() {}
func (NumericalError) isOutcome()       {}

func (Success) Kind() string              { return "success" }
func (InvalidBounds) Kind() string        { return "invalid_bounds" }
func (MaxIterationsReached) Kind() string { return "max_iterations" }
func (NumericalError) Kind() string       { return "numerical_error" }

func (o Success) String() string {
	return fmt.Sprintf("Root found: %g (after %d iterations)", o.Root, o.Iterations)
}

func (o InvalidBounds) String() string {
	return fmt.Sprintf("Invalid bounds: %s", o.Reason)
}

func (o MaxIterationsReached) String() string {
	return fmt.Sprintf("Max iterations reached: best approximation %g (after %d iterations)", o.BestApprox, o.Iterations)
}

func (o NumericalError) String() string {
	return fmt.Sprintf("Numerical error: %s", o.Reason)
}
