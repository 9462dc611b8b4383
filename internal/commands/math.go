package commands

import (
	"context"
	"strings"

	"github.com/codegangsta/mimic/internal/mathexpr"
)

// MathCommand handles math - evaluates an expression with bracketed function calls
type MathCommand struct {
	evaluator *mathexpr.Evaluator
}

func NewMathCommand(evaluator *mathexpr.Evaluator) *MathCommand {
	if evaluator == nil {
		evaluator = mathexpr.New()
	}
	return &MathCommand{evaluator: evaluator}
}

func (c *MathCommand) Descriptor() Descriptor {
	return Descriptor{
		Keyword: "math",
		Syntax:  "math < expression/all",
		Description: "solves an expression like 59 * 10 / 4 + (2 + 2 * 2). " +
			"Functions are written in square brackets with their arguments separated by commas: " +
			"10 + [pow < 2, 8]. Arguments may be expressions or other functions: [sin < [cos < 40]]. " +
			"math < all lists every function",
		Capability: TextOnly,
	}
}

func (c *MathCommand) ExecuteText(ctx context.Context, req *Request) (*Response, error) {
	expr := strings.ReplaceAll(req.Remainder(), "\n", " ")
	if expr == "" {
		return Reply(notEnoughParams), nil
	}
	if strings.EqualFold(expr, "all") {
		return Reply(strings.TrimRight(mathexpr.Listing(c.evaluator.Functions()), "\n")), nil
	}
	return Reply(c.evaluator.Evaluate(expr).String()), nil
}
