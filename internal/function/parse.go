package function

import (
	"math"
	"regexp"
	"strconv"

	"github.com/Knetic/govaluate"

	"github.com/san-kum/bisect/internal/solver"
)

// decimalComma matches a comma used as a decimal separator, i.e. one with
// digits on both sides. Argument-separator commas as in pow(x, 2) are left
// alone.
var decimalComma = regexp.MustCompile(`(\d),(\d)`)

// evalFuncs are the math helpers available inside parsed expressions.
var evalFuncs = map[string]govaluate.ExpressionFunction{
	"sin":  unary(math.Sin),
	"cos":  unary(math.Cos),
	"tan":  unary(math.Tan),
	"exp":  unary(math.Exp),
	"log":  unary(math.Log),
	"sqrt": unary(math.Sqrt),
	"abs":  unary(math.Abs),
	"pow": func(args ...interface{}) (interface{}, error) {
		if len(args) < 2 {
			return math.NaN(), nil
		}
		return math.Pow(toFloat(args[0]), toFloat(args[1])), nil
	},
}

func unary(f func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) < 1 {
			return math.NaN(), nil
		}
		return f(toFloat(args[0])), nil
	}
}

// Parse compiles an expression in the variable x, e.g. "x*x - 2" or
// "sin(x) + 1/2", into a solver.Func. Syntax errors are reported here;
// evaluation failures and non-numeric results surface as NaN at call time,
// which the solver classifies as a numerical error.
func Parse(expr string) (solver.Func, error) {
	// Tolerate decimal commas in pasted constants.
	expr = decimalComma.ReplaceAllString(expr, "$1.$2")

	parsed, err := govaluate.NewEvaluableExpressionWithFunctions(expr, evalFuncs)
	if err != nil {
		return nil, err
	}

	return func(x float64) float64 {
		v, err := parsed.Evaluate(map[string]interface{}{"x": x})
		if err != nil {
			return math.NaN()
		}
		switch t := v.(type) {
		case float64:
			return t
		case int:
			return float64(t)
		case int64:
			return float64(t)
		default:
			return math.NaN()
		}
	}, nil
}

func toFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}
