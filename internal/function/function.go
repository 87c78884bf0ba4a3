// Package function provides the catalog of sample functions and the
// expression parser used by the CLI. Catalog entries carry a bracket known
// to contain a root so they can be solved without extra flags.
package function

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/bisect/internal/solver"
)

// Sample is a named function together with a bracket that straddles one of
// its roots.
type Sample struct {
	Name        string
	Description string
	Left        float64
	Right       float64
	F           solver.Func
}

var catalog = map[string]Sample{
	"quadratic": {
		Name:        "quadratic",
		Description: "x^2 - 2, root at sqrt(2)",
		Left:        1.0,
		Right:       2.0,
		F:           func(x float64) float64 { return x*x - 2 },
	},
	"cubic": {
		Name:        "cubic",
		Description: "x^3 - x - 1, root at the plastic number",
		Left:        1.0,
		Right:       2.0,
		F:           func(x float64) float64 { return x*x*x - x - 1 },
	},
	"sine": {
		Name:        "sine",
		Description: "sin(x), root at pi",
		Left:        3.0,
		Right:       4.0,
		F:           math.Sin,
	},
	"expdecay": {
		Name:        "expdecay",
		Description: "exp(-x) - 1/2, root at ln(2)",
		Left:        0.0,
		Right:       2.0,
		F:           func(x float64) float64 { return math.Exp(-x) - 0.5 },
	},
	"logshift": {
		Name:        "logshift",
		Description: "ln(x) - 1, root at e",
		Left:        1.0,
		Right:       4.0,
		F:           func(x float64) float64 { return math.Log(x) - 1 },
	},
	"xsinx": {
		Name:        "xsinx",
		Description: "x*sin(x) - 1, first positive root",
		Left:        1.0,
		Right:       2.0,
		F:           func(x float64) float64 { return x*math.Sin(x) - 1 },
	},
}

// Get returns the catalog entry for name.
func Get(name string) (Sample, error) {
	s, ok := catalog[name]
	if !ok {
		return Sample{}, fmt.Errorf("unknown function: %s", name)
	}
	return s, nil
}

// List returns all catalog entries sorted by name.
func List() []Sample {
	samples := make([]Sample, 0, len(catalog))
	for _, s := range catalog {
		samples = append(samples, s)
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].Name < samples[j].Name })
	return samples
}

// Names returns the sorted catalog names.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
