package values

import (
	"strings"

	"github.com/yacobolo/atomcss/internal/parser"
	"github.com/yacobolo/atomcss/internal/tokens"
)

// Unit groups by dimension kind
var (
	lengthUnits = set(
		"px", "em", "rem", "ex", "rex", "ch", "rch", "cap", "rcap", "ic", "ric", "lh", "rlh",
		"vw", "vh", "vi", "vb", "vmin", "vmax",
		"svw", "svh", "svi", "svb", "svmin", "svmax",
		"lvw", "lvh", "lvi", "lvb", "lvmin", "lvmax",
		"dvw", "dvh", "dvi", "dvb", "dvmin", "dvmax",
		"cqw", "cqh", "cqi", "cqb", "cqmin", "cqmax",
		"cm", "mm", "q", "in", "pt", "pc",
	)
	angleUnits      = set("deg", "grad", "rad", "turn")
	timeUnits       = set("s", "ms")
	resolutionUnits = set("dpi", "dpcm", "dppx", "x")
	flexUnits       = set("fr")
)

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}

// IsLengthUnit reports whether unit is a CSS length unit
func IsLengthUnit(unit string) bool {
	return lengthUnits[strings.ToLower(unit)]
}

// Number is a unitless number
type Number struct {
	Value float64
}

func (Number) isValue()         {}
func (v Number) String() string { return FormatNumber(v.Value) }

// Percentage is a number followed by %
type Percentage struct {
	Value float64
}

func (Percentage) isValue()         {}
func (v Percentage) String() string { return FormatNumber(v.Value) + "%" }

// Length is a distance such as 400px or 1.5rem
type Length struct {
	Value float64
	Unit  string
}

func (Length) isValue()         {}
func (v Length) String() string { return FormatNumber(v.Value) + v.Unit }

// Angle is a rotation such as 45deg or .5turn
type Angle struct {
	Value float64
	Unit  string
}

func (Angle) isValue()         {}
func (v Angle) String() string { return FormatNumber(v.Value) + v.Unit }

// Time is a duration such as 200ms or 1s
type Time struct {
	Value float64
	Unit  string
}

func (Time) isValue()         {}
func (v Time) String() string { return FormatNumber(v.Value) + v.Unit }

// Milliseconds returns the duration in ms
func (v Time) Milliseconds() float64 {
	if v.Unit == "s" {
		return v.Value * 1000
	}
	return v.Value
}

// Resolution is a pixel density such as 2dppx or 96dpi
type Resolution struct {
	Value float64
	Unit  string
}

func (Resolution) isValue()         {}
func (v Resolution) String() string { return FormatNumber(v.Value) + v.Unit }

// Flex is a grid track fraction such as 1fr
type Flex struct {
	Value float64
}

func (Flex) isValue()         {}
func (v Flex) String() string { return FormatNumber(v.Value) + "fr" }

// Fraction is a ratio such as 16/9. Both terms are kept as written and the
// ratio is never reduced.
type Fraction struct {
	Numerator   float64
	Denominator float64
}

func (Fraction) isValue() {}

// String prints "16 / 9"
func (v Fraction) String() string {
	return FormatNumber(v.Numerator) + " / " + FormatNumber(v.Denominator)
}

// Dimension is a number with a unit no specific grammar knows
type Dimension struct {
	Value float64
	Unit  string
}

func (Dimension) isValue()         {}
func (v Dimension) String() string { return FormatNumber(v.Value) + v.Unit }

// dimensionWith matches dimension tokens whose unit is in units
func dimensionWith(units map[string]bool, expected string) parser.Parser[tokens.Token] {
	return parser.Match(func(t tokens.Token) bool {
		return t.Kind == tokens.Dimension && units[strings.ToLower(t.Unit)]
	}, expected)
}

// LengthParser parses a length dimension. A bare 0 is accepted as a
// unitless zero length.
func LengthParser() parser.Parser[Length] {
	return parser.OneOf(
		parser.Map(dimensionWith(lengthUnits, "length"), func(t tokens.Token) Length {
			return Length{Value: t.Number, Unit: strings.ToLower(t.Unit)}
		}),
		parser.Map(
			parser.Where(parser.Number(), func(n float64) bool { return n == 0 }, "length"),
			func(float64) Length { return Length{} },
		),
	)
}

// AngleParser parses an angle dimension
func AngleParser() parser.Parser[Angle] {
	return parser.Map(dimensionWith(angleUnits, "angle"), func(t tokens.Token) Angle {
		return Angle{Value: t.Number, Unit: strings.ToLower(t.Unit)}
	})
}

// TimeParser parses a time dimension
func TimeParser() parser.Parser[Time] {
	return parser.Map(dimensionWith(timeUnits, "time"), func(t tokens.Token) Time {
		return Time{Value: t.Number, Unit: strings.ToLower(t.Unit)}
	})
}

// ResolutionParser parses a resolution dimension
func ResolutionParser() parser.Parser[Resolution] {
	return parser.Map(dimensionWith(resolutionUnits, "resolution"), func(t tokens.Token) Resolution {
		return Resolution{Value: t.Number, Unit: strings.ToLower(t.Unit)}
	})
}

// FlexParser parses an fr dimension
func FlexParser() parser.Parser[Flex] {
	return parser.Map(dimensionWith(flexUnits, "flex"), func(t tokens.Token) Flex {
		return Flex{Value: t.Number}
	})
}

// PercentageParser parses a percentage token
func PercentageParser() parser.Parser[Percentage] {
	return parser.Map(parser.Token(tokens.Percentage), func(t tokens.Token) Percentage {
		return Percentage{Value: t.Number}
	})
}

// NumberParser parses a unitless number
func NumberParser() parser.Parser[Number] {
	return parser.Map(parser.Number(), func(n float64) Number { return Number{Value: n} })
}

// FractionParser parses "N/M" with optional whitespace around the slash
func FractionParser() parser.Parser[Fraction] {
	return parser.Map(
		parser.Seq3(parser.Number(), parser.Padded(parser.Delim('/')), parser.Number()),
		func(t parser.Tuple3[float64, parser.Empty, float64]) Fraction {
			return Fraction{Numerator: t.First, Denominator: t.Third}
		},
	)
}

// dimensionValue parses any known dimension into its specific node
func dimensionValue() parser.Parser[Value] {
	return parser.OneOf(
		upcast(parser.Map(dimensionWith(lengthUnits, "length"), func(t tokens.Token) Length {
			return Length{Value: t.Number, Unit: strings.ToLower(t.Unit)}
		})),
		upcast(AngleParser()),
		upcast(TimeParser()),
		upcast(ResolutionParser()),
		upcast(FlexParser()),
		upcast(parser.Map(parser.Token(tokens.Dimension), func(t tokens.Token) Dimension {
			return Dimension{Value: t.Number, Unit: t.Unit}
		})),
	)
}
