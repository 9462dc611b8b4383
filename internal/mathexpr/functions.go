package mathexpr

import (
	"math"
	"strings"
)

// Function is a pure numeric function callable from an expression as
// [name < arg1, arg2].
type Function struct {
	Name   string
	Params []string
	Fn     func(args ...float64) float64
}

// Arity is the number of arguments the function takes.
func (f Function) Arity() int { return len(f.Params) }

// Signature renders the function the way it is called, e.g. "pow < x, y".
func (f Function) Signature() string {
	return f.Name + " < " + strings.Join(f.Params, ", ")
}

func unary(name, param string, fn func(float64) float64) Function {
	return Function{
		Name:   name,
		Params: []string{param},
		Fn:     func(a ...float64) float64 { return fn(a[0]) },
	}
}

func binary(name, p1, p2 string, fn func(float64, float64) float64) Function {
	return Function{
		Name:   name,
		Params: []string{p1, p2},
		Fn:     func(a ...float64) float64 { return fn(a[0], a[1]) },
	}
}

// DefaultFunctions is the built-in function table. Names may repeat with
// different arities.
var DefaultFunctions = []Function{
	unary("abs", "value", math.Abs),
	unary("acos", "d", math.Acos),
	unary("acosh", "d", math.Acosh),
	unary("asin", "d", math.Asin),
	unary("asinh", "d", math.Asinh),
	unary("atan", "d", math.Atan),
	binary("atan2", "y", "x", math.Atan2),
	unary("atanh", "d", math.Atanh),
	unary("cbrt", "d", math.Cbrt),
	unary("ceiling", "a", math.Ceil),
	binary("copysign", "x", "y", math.Copysign),
	unary("cos", "d", math.Cos),
	unary("cosh", "value", math.Cosh),
	unary("exp", "d", math.Exp),
	unary("floor", "d", math.Floor),
	{
		Name:   "fusedmultiplyadd",
		Params: []string{"x", "y", "z"},
		Fn:     func(a ...float64) float64 { return math.FMA(a[0], a[1], a[2]) },
	},
	binary("ieeeremainder", "x", "y", math.Remainder),
	unary("log", "d", math.Log),
	binary("log", "a", "newBase", func(a, base float64) float64 { return math.Log(a) / math.Log(base) }),
	unary("log10", "d", math.Log10),
	unary("log2", "x", math.Log2),
	binary("max", "val1", "val2", math.Max),
	binary("min", "val1", "val2", math.Min),
	binary("pow", "x", "y", math.Pow),
	unary("round", "a", math.RoundToEven),
	unary("sign", "value", sign),
	unary("sin", "a", math.Sin),
	unary("sinh", "value", math.Sinh),
	unary("sqrt", "d", math.Sqrt),
	unary("tan", "a", math.Tan),
	unary("tanh", "value", math.Tanh),
	unary("truncate", "d", math.Trunc),
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Lookup finds the function named name (case-insensitive) taking arity
// arguments.
func Lookup(table []Function, name string, arity int) (Function, bool) {
	for _, f := range table {
		if strings.EqualFold(f.Name, name) && f.Arity() == arity {
			return f, true
		}
	}
	return Function{}, false
}

// Listing renders one signature per line, in table order.
func Listing(table []Function) string {
	var sb strings.Builder
	for _, f := range table {
		sb.WriteString(f.Signature())
		sb.WriteByte('\n')
	}
	return sb.String()
}
