package solver

import (
	"fmt"
	"math"
)

// Func is a scalar function of one real variable. It may return NaN or
// ±Inf at any point; the solver detects and classifies non-finite values
// instead of propagating them.
type Func func(x float64) float64

const (
	DefaultTolerance     = 1e-10
	DefaultMaxIterations = 1000
	DefaultMinInterval   = 1e-15
)

// Config holds the solve parameters. All three fields must be positive.
type Config struct {
	// Tolerance is the magnitude below which a function value counts as
	// zero, and the bracket width below which the midpoint is accepted.
	Tolerance float64
	// MaxIterations bounds the number of bisection steps.
	MaxIterations int
	// MinInterval is the bracket width below which further halving is
	// numerically meaningless.
	MinInterval float64
}

func DefaultConfig() Config {
	return Config{
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
		MinInterval:   DefaultMinInterval,
	}
}

// Iteration is the bracket state at one completed bisection step. Iter is
// 1-based; Width is the bracket width before narrowing.
type Iteration struct {
	Iter  int
	Left  float64
	Right float64
	Mid   float64
	FMid  float64
	Width float64
}

// Observer receives each completed iteration. Observation must not affect
// the outcome; the solver calls OnIteration after evaluating the midpoint
// and before classifying it.
type Observer interface {
	OnIteration(it Iteration)
}

// Trace is an Observer that records the full iteration history.
type Trace struct {
	Iterations []Iteration
}

func (t *Trace) OnIteration(it Iteration) {
	t.Iterations = append(t.Iterations, it)
}

// MultiObserver fans one iteration stream out to several observers.
type MultiObserver []Observer

func (m MultiObserver) OnIteration(it Iteration) {
	for _, o := range m {
		o.OnIteration(it)
	}
}

// Find locates a root of f in [a, b] by bisection. The bracket must be
// finite, ordered, and carry strictly opposite signs at its endpoints;
// violations are reported as outcome variants, never as panics or errors.
func Find(f Func, a, b float64, cfg Config) Outcome {
	return FindObserved(f, a, b, cfg, nil)
}

// FindObserved is Find with a per-iteration hook. A nil observer is valid.
func FindObserved(f Func, a, b float64, cfg Config, obs Observer) Outcome {
	// Precondition order matters: cheap, precise failures first.
	if !isFinite(a) || !isFinite(b) {
		return InvalidBounds{Reason: "bounds must be finite numbers"}
	}
	if a >= b {
		return InvalidBounds{Reason: "left bound must be less than right bound"}
	}

	fa, fb := f(a), f(b)
	if !isFinite(fa) || !isFinite(fb) {
		return NumericalError{Reason: "Function values at bounds are not finite"}
	}

	// A bound that already satisfies the tolerance wins before the sign
	// test, so an exact root at an endpoint is a Success, not a rejection.
	if math.Abs(fa) < cfg.Tolerance {
		return Success{Root: a, Iterations: 0}
	}
	if math.Abs(fb) < cfg.Tolerance {
		return Success{Root: b, Iterations: 0}
	}

	if !oppositeSigns(fa, fb) {
		return InvalidBounds{Reason: "Function must have opposite signs at bounds"}
	}

	// Loop invariant: f(left) and f(right) have strictly opposite signs
	// at the top of every iteration.
	left, right := a, b
	for iter := 0; ; iter++ {
		if iter >= cfg.MaxIterations {
			return MaxIterationsReached{BestApprox: (left + right) / 2, Iterations: iter}
		}
		if right-left < cfg.MinInterval {
			return NumericalError{Reason: "interval too small for float precision"}
		}

		mid := (left + right) / 2
		if !isFinite(mid) {
			return NumericalError{Reason: "midpoint exceeded acceptable limit"}
		}
		fmid := f(mid)
		if !isFinite(fmid) {
			return NumericalError{Reason: fmt.Sprintf("Function value at %g is not finite", mid)}
		}

		if obs != nil {
			obs.OnIteration(Iteration{
				Iter:  iter + 1,
				Left:  left,
				Right: right,
				Mid:   mid,
				FMid:  fmid,
				Width: right - left,
			})
		}

		if math.Abs(fmid) < cfg.Tolerance {
			return Success{Root: mid, Iterations: iter + 1}
		}
		if right-left < cfg.Tolerance {
			// Bracket converged even though f(mid) did not; accept the
			// midpoint as the answer.
			return Success{Root: mid, Iterations: iter + 1}
		}

		// Re-evaluate f(left) rather than carrying the previous value
		// forward; a cached value can never go stale this way.
		if oppositeSigns(f(left), fmid) {
			right = mid
		} else {
			left = mid
		}
	}
}

// oppositeSigns is the strict test: zero is neither positive nor negative.
func oppositeSigns(x, y float64) bool {
	return (x > 0 && y < 0) || (x < 0 && y > 0)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
