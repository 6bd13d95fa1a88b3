package values

import (
	"strings"

	"github.com/yacobolo/atomcss/internal/parser"
	"github.com/yacobolo/atomcss/internal/tokens"
)

// HexColor is a #rgb, #rgba, #rrggbb or #rrggbbaa colour
type HexColor struct {
	Hex string // Without the leading '#'
}

func (HexColor) isValue()         {}
func (v HexColor) String() string { return "#" + v.Hex }

// NamedColor is a colour keyword such as "rebeccapurple" or "currentcolor"
type NamedColor struct {
	Name string
}

func (NamedColor) isValue()         {}
func (v NamedColor) String() string { return v.Name }

// ColorFunction is rgb(), hsl() and the other colour functions
type ColorFunction struct {
	Name       string
	Components []Value
	Alpha      Value // nil when absent
	Commas     bool  // Legacy comma separated syntax
}

func (ColorFunction) isValue() {}

// String prints the function in the syntax it was written in
func (v ColorFunction) String() string {
	parts := make([]string, len(v.Components))
	for i, c := range v.Components {
		parts[i] = c.String()
	}

	var b strings.Builder
	b.WriteString(v.Name)
	b.WriteByte('(')
	if v.Commas {
		b.WriteString(strings.Join(parts, ","))
		if v.Alpha != nil {
			b.WriteByte(',')
			b.WriteString(v.Alpha.String())
		}
	} else {
		b.WriteString(strings.Join(parts, " "))
		if v.Alpha != nil {
			b.WriteString(" / ")
			b.WriteString(v.Alpha.String())
		}
	}
	b.WriteByte(')')
	return b.String()
}

var colorFunctions = set("rgb", "rgba", "hsl", "hsla", "hwb", "lab", "lch", "oklab", "oklch", "color")

var namedColors = set(
	"transparent", "currentcolor",
	"aliceblue", "antiquewhite", "aqua", "aquamarine", "azure", "beige", "bisque", "black",
	"blanchedalmond", "blue", "blueviolet", "brown", "burlywood", "cadetblue", "chartreuse",
	"chocolate", "coral", "cornflowerblue", "cornsilk", "crimson", "cyan", "darkblue", "darkcyan",
	"darkgoldenrod", "darkgray", "darkgreen", "darkgrey", "darkkhaki", "darkmagenta",
	"darkolivegreen", "darkorange", "darkorchid", "darkred", "darksalmon", "darkseagreen",
	"darkslateblue", "darkslategray", "darkslategrey", "darkturquoise", "darkviolet", "deeppink",
	"deepskyblue", "dimgray", "dimgrey", "dodgerblue", "firebrick", "floralwhite", "forestgreen",
	"fuchsia", "gainsboro", "ghostwhite", "gold", "goldenrod", "gray", "green", "greenyellow",
	"grey", "honeydew", "hotpink", "indianred", "indigo", "ivory", "khaki", "lavender",
	"lavenderblush", "lawngreen", "lemonchiffon", "lightblue", "lightcoral", "lightcyan",
	"lightgoldenrodyellow", "lightgray", "lightgreen", "lightgrey", "lightpink", "lightsalmon",
	"lightseagreen", "lightskyblue", "lightslategray", "lightslategrey", "lightsteelblue",
	"lightyellow", "lime", "limegreen", "linen", "magenta", "maroon", "mediumaquamarine",
	"mediumblue", "mediumorchid", "mediumpurple", "mediumseagreen", "mediumslateblue",
	"mediumspringgreen", "mediumturquoise", "mediumvioletred", "midnightblue", "mintcream",
	"mistyrose", "moccasin", "navajowhite", "navy", "oldlace", "olive", "olivedrab", "orange",
	"orangered", "orchid", "palegoldenrod", "palegreen", "paleturquoise", "palevioletred",
	"papayawhip", "peachpuff", "peru", "pink", "plum", "powderblue", "purple", "rebeccapurple",
	"red", "rosybrown", "royalblue", "saddlebrown", "salmon", "sandybrown", "seagreen",
	"seashell", "sienna", "silver", "skyblue", "slateblue", "slategray", "slategrey", "snow",
	"springgreen", "steelblue", "tan", "teal", "thistle", "tomato", "turquoise", "violet",
	"wheat", "white", "whitesmoke", "yellow", "yellowgreen",
)

// IsNamedColor reports whether name is a CSS colour keyword
func IsNamedColor(name string) bool {
	return namedColors[strings.ToLower(name)]
}

// ColorParser parses a hex colour, a named colour or a colour function
func ColorParser() parser.Parser[Value] {
	return parser.OneOf(
		upcast(HexColorParser()),
		upcast(parser.Map(
			parser.Where(parser.Ident(), IsNamedColor, "color"),
			func(s string) NamedColor { return NamedColor{Name: strings.ToLower(s)} },
		)),
		upcast(colorFunction()),
	)
}

// HexColorParser parses #rgb, #rgba, #rrggbb and #rrggbbaa
func HexColorParser() parser.Parser[HexColor] {
	return parser.Map(
		parser.Match(func(t tokens.Token) bool {
			return t.Kind == tokens.Hash && isHexColor(t.Text)
		}, "hex color"),
		func(t tokens.Token) HexColor { return HexColor{Hex: strings.ToLower(t.Text)} },
	)
}

func isHexColor(s string) bool {
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

func colorComponent() parser.Parser[Value] {
	return parser.OneOf(
		upcast(PercentageParser()),
		upcast(AngleParser()),
		upcast(NumberParser()),
		upcast(VarParser()),
		upcast(parser.Map(parser.Keyword("none"), func(s string) Ident { return Ident{Name: s} })),
	)
}

func colorFunction() parser.Parser[ColorFunction] {
	name := parser.Map(
		parser.Match(func(t tokens.Token) bool {
			return t.Kind == tokens.Function && colorFunctions[strings.ToLower(t.Text)]
		}, "color function"),
		func(t tokens.Token) string { return strings.ToLower(t.Text) },
	)

	legacy := parser.Map(
		parser.SeparatedBy(parser.Padded(colorComponent()), parser.Kind(tokens.Comma)),
		func(items []Value) ColorFunction {
			fn := ColorFunction{Commas: true, Components: items}
			if len(items) == 4 {
				fn.Components, fn.Alpha = items[:3], items[3]
			}
			return fn
		},
	)

	modern := parser.Map(
		parser.Seq2(
			parser.Padded(parser.SeparatedBy(colorComponent(), parser.Whitespace())),
			parser.Optional(parser.Then(parser.Padded(parser.Delim('/')), colorComponent())),
		),
		func(t parser.Tuple2[[]Value, *Value]) ColorFunction {
			fn := ColorFunction{Components: t.First}
			if t.Second != nil {
				fn.Alpha = *t.Second
			}
			return fn
		},
	)

	// modern first: a single component would otherwise be taken as a
	// one-element legacy list
	body := parser.OneOf(
		parser.Where(modern, func(fn ColorFunction) bool { return len(fn.Components) >= 3 }, "color components"),
		parser.Where(legacy, func(fn ColorFunction) bool { return len(fn.Components) == 3 }, "color components"),
	)

	return parser.Map(
		parser.Seq3(name, body, parser.Then(parser.OptionalWhitespace(), parser.Kind(tokens.RightParen))),
		func(t parser.Tuple3[string, ColorFunction, parser.Empty]) ColorFunction {
			fn := t.Second
			fn.Name = t.First
			return fn
		},
	)
}
