// Package report renders solve results for the terminal: outcome lines,
// summary tables, and asciigraph convergence plots.
package report

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/bisect/internal/solver"
)

const (
	plotHeight = 10
	plotWidth  = 70
)

// Summary renders a tabwriter block describing the solve and its outcome.
func Summary(function string, left, right float64, cfg solver.Config, outcome solver.Outcome) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "function:\t%s\n", function)
	fmt.Fprintf(w, "bracket:\t[%g, %g]\n", left, right)
	fmt.Fprintf(w, "tolerance:\t%g\n", cfg.Tolerance)
	fmt.Fprintf(w, "max iterations:\t%d\n", cfg.MaxIterations)
	fmt.Fprintf(w, "min interval:\t%g\n", cfg.MinInterval)
	fmt.Fprintf(w, "outcome:\t%s\n", outcome.Kind())

	switch o := outcome.(type) {
	case solver.Success:
		fmt.Fprintf(w, "root:\t%.12g\n", o.Root)
		fmt.Fprintf(w, "iterations:\t%d\n", o.Iterations)
	case solver.MaxIterationsReached:
		fmt.Fprintf(w, "best approx:\t%.12g\n", o.BestApprox)
		fmt.Fprintf(w, "iterations:\t%d\n", o.Iterations)
	case solver.InvalidBounds:
		fmt.Fprintf(w, "reason:\t%s\n", o.Reason)
	case solver.NumericalError:
		fmt.Fprintf(w, "reason:\t%s\n", o.Reason)
	}

	w.Flush()
	return b.String()
}

// ConvergencePlot graphs log10 of the bracket width per iteration. The
// width halves every step, so a healthy solve is a straight descending line.
func ConvergencePlot(trace []solver.Iteration) string {
	if len(trace) == 0 {
		return "no iterations to plot"
	}

	// Non-positive widths have no log and would spike the line at 0.
	widths := make([]float64, 0, len(trace))
	for _, it := range trace {
		if it.Width > 0 {
			widths = append(widths, math.Log10(it.Width))
		}
	}
	if len(widths) == 0 {
		return "no iterations to plot"
	}

	return asciigraph.Plot(widths,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption("log10 bracket width"),
	)
}

// MidpointPlot graphs the midpoint per iteration as it settles on the root.
func MidpointPlot(trace []solver.Iteration) string {
	if len(trace) == 0 {
		return "no iterations to plot"
	}

	mids := make([]float64, len(trace))
	for i, it := range trace {
		mids[i] = it.Mid
	}

	return asciigraph.Plot(mids,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption("midpoint"),
	)
}
