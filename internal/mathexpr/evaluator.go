// Package mathexpr evaluates arithmetic expressions that may contain nested
// function calls written in brackets:
//
//	10 + [pow < 2, [sqrt < 16]] * 3
//
// Calls are resolved into numbers first, then the remaining arithmetic is
// computed with decimal precision. Resolution problems do not abort the
// evaluation; they are substituted into the expression as readable
// diagnostics.
package mathexpr

import (
	"fmt"
	"math"
	"strings"

	"github.com/codegangsta/mimic/internal/parser"
	"github.com/shopspring/decimal"
)

// NotComputable is the answer for expressions that do not reduce to a number.
const NotComputable = "Could not compute!"

// Call is one parsed [name < args] occurrence.
type Call struct {
	Name string
	Args []string // unevaluated sub-expressions
	Span Span
}

// ParseCall reads a span as a function call. It reports false when the span
// has no delimiter between name and arguments. The name ends at the first
// delimiter at any depth, so a span opening with a nested call gets a name
// like "[abs" that no function matches.
func ParseCall(span Span) (Call, bool) {
	idx := strings.IndexRune(span.Content, parser.Delimiter)
	if idx < 0 {
		return Call{}, false
	}
	return Call{
		Name: strings.TrimSpace(span.Content[:idx]),
		Args: SplitArguments(strings.TrimSpace(span.Content[idx+1:])),
		Span: span,
	}, true
}

// Result is the outcome of an evaluation.
type Result struct {
	Expression  string
	Residual    string // the expression after all calls were resolved
	Value       decimal.Decimal
	OK          bool
	Diagnostics []string
}

// String is the user-facing answer: the value, the residual expression when
// diagnostics explain the failure, or NotComputable.
func (r Result) String() string {
	switch {
	case r.OK:
		return r.Value.String()
	case len(r.Diagnostics) > 0:
		return r.Residual
	}
	return NotComputable
}

// Evaluator resolves bracketed calls against a function table. It holds no
// mutable state and may be shared between goroutines.
type Evaluator struct {
	functions []Function
}

// New returns an Evaluator over the given table, or DefaultFunctions when
// none is given.
func New(functions ...Function) *Evaluator {
	if len(functions) == 0 {
		functions = DefaultFunctions
	}
	return &Evaluator{functions: functions}
}

// Functions returns the function table.
func (e *Evaluator) Functions() []Function { return e.functions }

// Evaluate resolves every call in expr and computes the result.
func (e *Evaluator) Evaluate(expr string) Result {
	var diags []string
	residual := e.Reduce(expr, &diags)

	res := Result{Expression: expr, Residual: residual, Diagnostics: diags}
	v, err := Calculate(residual)
	if err == nil {
		res.Value, res.OK = v, true
	}
	return res
}

// Reduce replaces every well-formed call in expr with its value, layer by
// layer, until a pass changes nothing. Diagnostics produced along the way
// are appended to diags when it is non-nil.
func (e *Evaluator) Reduce(expr string, diags *[]string) string {
	for {
		next, changed := e.reduceLayer(expr, diags)
		if !changed {
			return next
		}
		expr = next
	}
}

func (e *Evaluator) reduceLayer(expr string, diags *[]string) (string, bool) {
	spans := ExtractSpans(expr)
	if len(spans) == 0 {
		return expr, false
	}

	var sb strings.Builder
	changed, last := false, 0
	for _, span := range spans {
		call, ok := ParseCall(span)
		if !ok {
			continue
		}
		sb.WriteString(expr[last:span.Start])
		sb.WriteString(e.resolve(call, diags))
		last = span.End
		changed = true
	}
	sb.WriteString(expr[last:])

	return sb.String(), changed
}

// resolve evaluates the arguments of call and applies the matching function.
func (e *Evaluator) resolve(call Call, diags *[]string) string {
	values := make([]float64, len(call.Args))
	for i, arg := range call.Args {
		reduced := e.Reduce(arg, diags)
		v, err := Calculate(reduced)
		if err != nil {
			return diagnose(diags, fmt.Sprintf("bad argument (%s: %s)", call.Name, reduced))
		}
		values[i] = v.InexactFloat64()
	}

	fn, ok := Lookup(e.functions, call.Name, len(values))
	if !ok {
		return diagnose(diags, fmt.Sprintf("unknown function (%s/%d)", call.Name, len(values)))
	}

	out := fn.Fn(values...)
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return diagnose(diags, fmt.Sprintf("undefined (%s)", call.Name))
	}
	return decimal.NewFromFloat(out).String()
}

// bracketFree keeps diagnostics from forming new spans, so every pass that
// changes the expression removes at least one opening bracket.
var bracketFree = strings.NewReplacer("[", "(", "]", ")")

func diagnose(diags *[]string, msg string) string {
	msg = bracketFree.Replace(msg)
	if diags != nil {
		*diags = append(*diags, msg)
	}
	return msg
}
