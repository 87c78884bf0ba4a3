// Package solver implements bisection root finding over a bounded interval.
//
// Find takes a scalar function and a bracket whose endpoint values have
// opposite signs and narrows the bracket until the function value at the
// midpoint falls below the configured tolerance:
//
//	out := solver.Find(func(x float64) float64 { return x*x - 2 }, 1, 2, solver.DefaultConfig())
//	switch o := out.(type) {
//	case solver.Success:
//	    fmt.Println(o.Root, o.Iterations)
//	case solver.InvalidBounds:
//	    // bad interval or non-bracketing values
//	case solver.MaxIterationsReached:
//	    // best midpoint approximation is still available
//	case solver.NumericalError:
//	    // non-finite value or bracket collapse
//	}
//
// Every failure mode is a variant of [Outcome]; Find never panics and never
// returns a Go error. Calls are independent and safe to run concurrently as
// long as the supplied function is.
package solver
