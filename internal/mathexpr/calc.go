package mathexpr

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrSyntax is returned for anything that is not plain arithmetic.
	ErrSyntax = errors.New("invalid expression")
	// ErrDivisionByZero is returned when a divisor evaluates to zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// Calculate evaluates + - * / with parentheses and unary signs over decimal
// literals. Usual precedence applies: * and / bind tighter than + and -, and
// operators of equal precedence associate to the left.
func Calculate(expr string) (decimal.Decimal, error) {
	c := &calculator{src: expr}
	c.skipSpace()
	if c.done() {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrSyntax)
	}

	v, err := c.sum()
	if err != nil {
		return decimal.Zero, err
	}
	if !c.done() {
		return decimal.Zero, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, c.src[c.pos], c.pos)
	}
	return v, nil
}

type calculator struct {
	src string
	pos int
}

func (c *calculator) done() bool { return c.pos >= len(c.src) }

func (c *calculator) skipSpace() {
	for !c.done() {
		switch c.src[c.pos] {
		case ' ', '\t', '\n', '\r':
			c.pos++
		default:
			return
		}
	}
}

// accept consumes b if it is the next non-space byte.
func (c *calculator) accept(b byte) bool {
	if !c.done() && c.src[c.pos] == b {
		c.pos++
		c.skipSpace()
		return true
	}
	return false
}

func (c *calculator) sum() (decimal.Decimal, error) {
	left, err := c.product()
	if err != nil {
		return left, err
	}
	for {
		switch {
		case c.accept('+'):
			right, err := c.product()
			if err != nil {
				return right, err
			}
			left = left.Add(right)
		case c.accept('-'):
			right, err := c.product()
			if err != nil {
				return right, err
			}
			left = left.Sub(right)
		default:
			return left, nil
		}
	}
}

func (c *calculator) product() (decimal.Decimal, error) {
	left, err := c.unary()
	if err != nil {
		return left, err
	}
	for {
		switch {
		case c.accept('*'):
			right, err := c.unary()
			if err != nil {
				return right, err
			}
			left = left.Mul(right)
		case c.accept('/'):
			right, err := c.unary()
			if err != nil {
				return right, err
			}
			if right.IsZero() {
				return decimal.Zero, ErrDivisionByZero
			}
			left = left.Div(right)
		default:
			return left, nil
		}
	}
}

func (c *calculator) unary() (decimal.Decimal, error) {
	switch {
	case c.accept('-'):
		v, err := c.unary()
		return v.Neg(), err
	case c.accept('+'):
		return c.unary()
	}
	return c.primary()
}

func (c *calculator) primary() (decimal.Decimal, error) {
	if c.accept('(') {
		v, err := c.sum()
		if err != nil {
			return v, err
		}
		if !c.accept(')') {
			return decimal.Zero, fmt.Errorf("%w: missing )", ErrSyntax)
		}
		return v, nil
	}
	return c.number()
}

func (c *calculator) number() (decimal.Decimal, error) {
	start := c.pos
	digits, dot := 0, false
	for !c.done() {
		ch := c.src[c.pos]
		if ch >= '0' && ch <= '9' {
			digits++
		} else if ch == '.' && !dot {
			dot = true
		} else {
			break
		}
		c.pos++
	}

	if digits == 0 {
		if c.done() {
			return decimal.Zero, fmt.Errorf("%w: unexpected end", ErrSyntax)
		}
		return decimal.Zero, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, c.src[c.pos], c.pos)
	}

	lit := c.src[start:c.pos]
	c.skipSpace()

	v, err := decimal.NewFromString(lit)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return v, nil
}
