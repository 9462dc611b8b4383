package commands

import (
	"context"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// unitGroup holds units of one quantity as factors of a common base unit.
type unitGroup struct {
	name  string
	units map[string]decimal.Decimal
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

var unitGroups = []unitGroup{
	{"file size", map[string]decimal.Decimal{
		"b": dec(1), "kb": dec(1 << 10), "mb": dec(1 << 20), "gb": dec(1 << 30), "tb": dec(1 << 40),
	}},
	{"distance", map[string]decimal.Decimal{
		"mm": decimal.New(1, -3), "cm": decimal.New(1, -2), "m": dec(1), "km": dec(1000),
	}},
	{"mass", map[string]decimal.Decimal{
		"g": decimal.New(1, -3), "kg": dec(1), "t": dec(1000),
	}},
	{"liquid", map[string]decimal.Decimal{
		"ml": decimal.New(1, -3), "l": dec(1),
	}},
	{"time", map[string]decimal.Decimal{
		"ms": decimal.New(1, -3), "sec": dec(1), "min": dec(60), "h": dec(3600), "d": dec(86400), "day": dec(86400),
	}},
	{"angle", map[string]decimal.Decimal{
		"rad": dec(1), "deg": decimal.NewFromFloat(math.Pi / 180),
	}},
}

func findUnit(unit string) (unitGroup, decimal.Decimal, bool) {
	for _, g := range unitGroups {
		if f, ok := g.units[unit]; ok {
			return g, f, true
		}
	}
	return unitGroup{}, decimal.Decimal{}, false
}

// ConvertUnits converts value from one unit to another of the same quantity.
func ConvertUnits(value decimal.Decimal, from, to string) (decimal.Decimal, error) {
	from, to = strings.ToLower(from), strings.ToLower(to)

	fromGroup, fromFactor, ok := findUnit(from)
	if !ok {
		return decimal.Decimal{}, &UnitError{Unit: from}
	}
	toGroup, toFactor, ok := findUnit(to)
	if !ok {
		return decimal.Decimal{}, &UnitError{Unit: to}
	}
	if fromGroup.name != toGroup.name {
		return decimal.Decimal{}, &UnitError{Unit: to, Want: fromGroup.name}
	}
	return value.Mul(fromFactor).Div(toFactor), nil
}

// UnitError reports an unknown unit or a unit of the wrong quantity.
type UnitError struct {
	Unit string
	Want string // quantity the unit should have measured
}

func (e *UnitError) Error() string {
	if e.Want != "" {
		return "unit " + e.Unit + " is not a " + e.Want + " unit"
	}
	return "unknown unit " + e.Unit
}

// ConvertCommand handles convert - converts a value between units
type ConvertCommand struct{}

func NewConvertCommand() *ConvertCommand { return &ConvertCommand{} }

func (c *ConvertCommand) Descriptor() Descriptor {
	return Descriptor{
		Keyword: "convert",
		Syntax:  "convert < value from < to",
		Description: "converts value between units, like convert < 1024 kb < mb. Supported units:\n\n" +
			"file size (b, kb, mb, gb, tb)\n" +
			"distance (mm, cm, m, km)\n" +
			"mass (g, kg, t)\n" +
			"time (ms, sec, min, h, d)\n" +
			"angle (deg, rad)\n" +
			"liquid (ml, l)",
		Capability: TextOnly,
	}
}

func (c *ConvertCommand) ExecuteText(ctx context.Context, req *Request) (*Response, error) {
	if len(req.Args) < 2 {
		return Reply(notEnoughParams), nil
	}
	pair := strings.Fields(req.Args[0])
	if len(pair) < 2 {
		return Reply(notEnoughParams), nil
	}

	value, err := decimal.NewFromString(strings.ReplaceAll(pair[0], ",", "."))
	if err != nil {
		return Replyf("%q is not a number", pair[0]), nil
	}
	from, to := pair[1], strings.TrimSpace(req.Args[1])

	result, err := ConvertUnits(value, from, to)
	if err != nil {
		return Reply(capitalize(err.Error())), nil
	}
	return Replyf("%s %s = %s %s", value, from, result.Round(10), to), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
