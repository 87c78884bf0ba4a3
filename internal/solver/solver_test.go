package solver

import (
	"math"
	"strings"
	"testing"
)

func TestFindKnownRoots(t *testing.T) {
	tests := []struct {
		name string
		f    Func
		a, b float64
		root float64
	}{
		{"sqrt2", func(x float64) float64 { return x*x - 2 }, 1.0, 2.0, math.Sqrt2},
		{"plastic", func(x float64) float64 { return x*x*x - x - 1 }, 1.0, 2.0, 1.3247179572447460},
		{"pi", math.Sin, 3.0, 4.0, math.Pi},
	}

	for _, tt := range tests {
		out := Find(tt.f, tt.a, tt.b, DefaultConfig())
		s, ok := out.(Success)
		if !ok {
			t.Fatalf("%s: expected Success, got %T (%v)", tt.name, out, out)
		}
		if math.Abs(s.Root-tt.root) > 1e-8 {
			t.Errorf("%s: expected root ~%.10f, got %.10f", tt.name, tt.root, s.Root)
		}
		if s.Iterations <= 0 {
			t.Errorf("%s: expected positive iteration count, got %d", tt.name, s.Iterations)
		}
	}
}

func TestFindInvalidBounds(t *testing.T) {
	linear := func(x float64) float64 { return x + 1 }

	tests := []struct {
		name   string
		f      Func
		a, b   float64
		reason string
	}{
		{"nan left", linear, math.NaN(), 1.0, "bounds must be finite numbers"},
		{"nan right", linear, 0.0, math.NaN(), "bounds must be finite numbers"},
		{"inf left", linear, math.Inf(-1), 1.0, "bounds must be finite numbers"},
		{"reversed", linear, 2.0, 1.0, "left bound must be less than right bound"},
		{"equal", linear, 1.0, 1.0, "left bound must be less than right bound"},
		{"same sign", linear, 0.0, 1.0, "Function must have opposite signs at bounds"},
		{"both negative", func(x float64) float64 { return -x - 5 }, 0.0, 1.0, "Function must have opposite signs at bounds"},
	}

	for _, tt := range tests {
		out := Find(tt.f, tt.a, tt.b, DefaultConfig())
		ib, ok := out.(InvalidBounds)
		if !ok {
			t.Fatalf("%s: expected InvalidBounds, got %T (%v)", tt.name, out, out)
		}
		if ib.Reason != tt.reason {
			t.Errorf("%s: expected reason %q, got %q", tt.name, tt.reason, ib.Reason)
		}
	}
}

func TestFindBoundAlreadyRoot(t *testing.T) {
	f := func(x float64) float64 { return x }

	out := Find(f, 0.0, 1.0, DefaultConfig())
	s, ok := out.(Success)
	if !ok {
		t.Fatalf("expected Success, got %T (%v)", out, out)
	}
	if s.Root != 0.0 {
		t.Errorf("expected root at left bound, got %g", s.Root)
	}
	if s.Iterations != 0 {
		t.Errorf("expected 0 iterations for a bound hit, got %d", s.Iterations)
	}

	out = Find(f, -1.0, 0.0, DefaultConfig())
	s, ok = out.(Success)
	if !ok {
		t.Fatalf("expected Success, got %T (%v)", out, out)
	}
	if s.Root != 0.0 || s.Iterations != 0 {
		t.Errorf("expected right-bound root with 0 iterations, got %g after %d", s.Root, s.Iterations)
	}
}

func TestFindFirstMidpointHit(t *testing.T) {
	// Midpoint of [-1, 1] is an exact root; counts as one completed iteration.
	out := Find(func(x float64) float64 { return x }, -1.0, 1.0, DefaultConfig())
	s, ok := out.(Success)
	if !ok {
		t.Fatalf("expected Success, got %T (%v)", out, out)
	}
	if s.Root != 0.0 {
		t.Errorf("expected root 0, got %g", s.Root)
	}
	if s.Iterations != 1 {
		t.Errorf("expected 1 iteration, got %d", s.Iterations)
	}
}

func TestFindMaxIterations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxIterations = 1

	out := Find(func(x float64) float64 { return x*x - 2 }, 1.0, 2.0, cfg)
	m, ok := out.(MaxIterationsReached)
	if !ok {
		t.Fatalf("expected MaxIterationsReached, got %T (%v)", out, out)
	}
	if m.Iterations != 1 {
		t.Errorf("expected 1 iteration, got %d", m.Iterations)
	}
	if m.BestApprox < 1.0 || m.BestApprox > 2.0 {
		t.Errorf("best approximation %g outside original bracket", m.BestApprox)
	}
}

func TestFindNonFiniteAtBounds(t *testing.T) {
	f := func(x float64) float64 {
		if x == 0 {
			return math.NaN()
		}
		return x
	}

	out := Find(f, 0.0, 1.0, DefaultConfig())
	ne, ok := out.(NumericalError)
	if !ok {
		t.Fatalf("expected NumericalError, got %T (%v)", out, out)
	}
	if ne.Reason != "Function values at bounds are not finite" {
		t.Errorf("unexpected reason %q", ne.Reason)
	}
}

func TestFindNonFiniteAtMidpoint(t *testing.T) {
	// Finite with opposite signs at the bounds, NaN at the first midpoint.
	f := func(x float64) float64 {
		if x == 0.5 {
			return math.NaN()
		}
		return x - 0.3
	}

	out := Find(f, 0.0, 1.0, DefaultConfig())
	ne, ok := out.(NumericalError)
	if !ok {
		t.Fatalf("expected NumericalError, got %T (%v)", out, out)
	}
	if !strings.Contains(ne.Reason, "0.5") || !strings.Contains(ne.Reason, "is not finite") {
		t.Errorf("reason should embed the midpoint, got %q", ne.Reason)
	}
}

func TestFindIntervalTooSmall(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tolerance = 1e-30 // never satisfied by f below
	cfg.MinInterval = 2.0

	out := Find(func(x float64) float64 { return x - 0.3 }, 0.0, 1.0, cfg)
	ne, ok := out.(NumericalError)
	if !ok {
		t.Fatalf("expected NumericalError, got %T (%v)", out, out)
	}
	if ne.Reason != "interval too small for float precision" {
		t.Errorf("unexpected reason %q", ne.Reason)
	}
}

func TestFindBracketConvergedBeforeTolerance(t *testing.T) {
	// Steep line: the bracket narrows below tolerance long before |f(mid)|
	// does, so the width branch must accept the midpoint.
	root := math.Sqrt2
	f := func(x float64) float64 { return 1e6 * (x - root) }

	cfg := DefaultConfig()
	cfg.Tolerance = 1e-3

	out := Find(f, 1.0, 2.0, cfg)
	s, ok := out.(Success)
	if !ok {
		t.Fatalf("expected Success, got %T (%v)", out, out)
	}
	if math.Abs(s.Root-root) > cfg.Tolerance {
		t.Errorf("expected root within %g of %g, got %g", cfg.Tolerance, root, s.Root)
	}
}

func TestFindIdempotent(t *testing.T) {
	f := func(x float64) float64 { return x*x*x - x - 1 }

	first := Find(f, 1.0, 2.0, DefaultConfig())
	second := Find(f, 1.0, 2.0, DefaultConfig())
	if first != second {
		t.Errorf("expected identical outcomes, got %v then %v", first, second)
	}
}

// invariantObserver fails the test if the bracket ever stops straddling
// the root.
type invariantObserver struct {
	t *testing.T
	f Func
}

func (o *invariantObserver) OnIteration(it Iteration) {
	if !oppositeSigns(o.f(it.Left), o.f(it.Right)) {
		o.t.Errorf("iteration %d: bracket [%g, %g] lost sign opposition", it.Iter, it.Left, it.Right)
	}
	if it.Width != it.Right-it.Left {
		o.t.Errorf("iteration %d: width %g does not match bracket", it.Iter, it.Width)
	}
}

func TestFindBracketInvariant(t *testing.T) {
	f := func(x float64) float64 { return x*x - 2 }
	out := FindObserved(f, 1.0, 2.0, DefaultConfig(), &invariantObserver{t: t, f: f})
	if _, ok := out.(Success); !ok {
		t.Fatalf("expected Success, got %T (%v)", out, out)
	}
}

func TestFindObservationDoesNotPerturb(t *testing.T) {
	f := math.Sin

	trace := &Trace{}
	observed := FindObserved(f, 3.0, 4.0, DefaultConfig(), trace)
	plain := Find(f, 3.0, 4.0, DefaultConfig())

	if observed != plain {
		t.Errorf("observed outcome %v differs from plain %v", observed, plain)
	}
	s := plain.(Success)
	if len(trace.Iterations) != s.Iterations {
		t.Errorf("expected %d recorded iterations, got %d", s.Iterations, len(trace.Iterations))
	}
	last := trace.Iterations[len(trace.Iterations)-1]
	if last.Mid != s.Root {
		t.Errorf("final recorded midpoint %g should equal the root %g", last.Mid, s.Root)
	}
}

func TestMultiObserver(t *testing.T) {
	f := func(x float64) float64 { return x*x - 2 }

	a, b := &Trace{}, &Trace{}
	FindObserved(f, 1.0, 2.0, DefaultConfig(), MultiObserver{a, b})

	if len(a.Iterations) == 0 {
		t.Fatal("expected iterations in first trace")
	}
	if len(a.Iterations) != len(b.Iterations) {
		t.Errorf("traces diverged: %d vs %d", len(a.Iterations), len(b.Iterations))
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Tolerance != 1e-10 {
		t.Errorf("expected tolerance 1e-10, got %g", cfg.Tolerance)
	}
	if cfg.MaxIterations != 1000 {
		t.Errorf("expected 1000 iterations, got %d", cfg.MaxIterations)
	}
	if cfg.MinInterval != 1e-15 {
		t.Errorf("expected min interval 1e-15, got %g", cfg.MinInterval)
	}
}

func TestOppositeSigns(t *testing.T) {
	tests := []struct {
		x, y float64
		want bool
	}{
		{1, -1, true},
		{-1, 1, true},
		{1, 1, false},
		{-1, -1, false},
		{0, 1, false},
		{0, -1, false},
		{-1, 0, false},
		{0, 0, false},
	}
	for _, tt := range tests {
		if got := oppositeSigns(tt.x, tt.y); got != tt.want {
			t.Errorf("oppositeSigns(%g, %g) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
