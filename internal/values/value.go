// Package values holds the CSS value grammars: numeric types, colours,
// keywords, var() references, calc() expressions, transform lists and shadow
// lists. Every node prints back to CSS with String.
package values

import (
	"strconv"
	"strings"

	"github.com/yacobolo/atomcss/internal/parser"
	"github.com/yacobolo/atomcss/internal/tokens"
)

// Value is a parsed CSS component value
type Value interface {
	String() string
	isValue()
}

// Ident is a bare identifier such as "auto" or "flex-start"
type Ident struct {
	Name string
}

func (Ident) isValue()         {}
func (v Ident) String() string { return v.Name }

// QuotedString is a CSS string literal
type QuotedString struct {
	Text string
}

func (QuotedString) isValue() {}

// String prints the literal with double quotes
func (v QuotedString) String() string {
	return `"` + strings.ReplaceAll(v.Text, `"`, `\"`) + `"`
}

// URL is a url(...) token kept verbatim
type URL struct {
	Raw string
}

func (URL) isValue()         {}
func (v URL) String() string { return v.Raw }

// List is a space or comma separated sequence of values
type List struct {
	Items []Value
	Comma bool
}

func (List) isValue() {}

// String joins the items with " " or ", "
func (v List) String() string {
	sep := " "
	if v.Comma {
		sep = ", "
	}
	parts := make([]string, len(v.Items))
	for i, item := range v.Items {
		parts[i] = item.String()
	}
	return strings.Join(parts, sep)
}

// Func is a generic function call that no specific grammar claims
type Func struct {
	Name string
	Args []Value
}

func (Func) isValue() {}

// String prints name(args) with comma separated arguments
func (v Func) String() string {
	return v.Name + "(" + List{Items: v.Args, Comma: true}.String() + ")"
}

// FormatNumber prints a number the way CSS expects: shortest round-trip
// form, no exponent, no trailing zeros
func FormatNumber(n float64) string {
	if n == 0 {
		return "0"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Component parses any single component value. The specific grammars are
// tried first; identifiers, strings and unknown functions are the fallback.
func Component() parser.Parser[Value] {
	return parser.Lazy(func() parser.Parser[Value] {
		return parser.OneOf(
			upcast(CSSWideKeywordParser()),
			upcast(VarParser()),
			upcast(CalcParser()),
			upcast(ColorParser()),
			dimensionValue(),
			upcast(FractionParser()),
			upcast(PercentageParser()),
			upcast(NumberParser()),
			upcast(TransformFunctionParser()),
			genericFunc(),
			parser.Map(parser.Ident(), func(s string) Value { return Ident{Name: s} }),
			parser.Map(parser.Token(tokens.String), func(t tokens.Token) Value { return QuotedString{Text: t.Text} }),
			parser.Map(parser.Token(tokens.URL), func(t tokens.Token) Value { return URL{Raw: t.Raw} }),
		)
	})
}

// ComponentList parses comma separated groups of space separated components
func ComponentList() parser.Parser[Value] {
	group := parser.Map(
		parser.SeparatedBy(Component(), parser.Whitespace()),
		func(items []Value) Value {
			if len(items) == 1 {
				return items[0]
			}
			return List{Items: items}
		},
	)
	return parser.Map(
		parser.SeparatedBy(group, comma()),
		func(groups []Value) Value {
			if len(groups) == 1 {
				return groups[0]
			}
			return List{Items: groups, Comma: true}
		},
	)
}

// Parse parses a full declaration value
func Parse(s string) (Value, error) {
	return parser.ParseToEnd(ComponentList(), s)
}

func genericFunc() parser.Parser[Value] {
	return parser.Map(
		parser.Seq2(
			parser.Token(tokens.Function),
			parser.Skip(parser.Optional(parser.Padded(ComponentList())), closeParen()),
		),
		func(t parser.Tuple2[tokens.Token, *Value]) Value {
			f := Func{Name: t.First.Text}
			if t.Second != nil {
				f.Args = Items(*t.Second, true)
			}
			return f
		},
	)
}

// Items unwraps a list of the given separator kind; any other value is a
// list of one
func Items(v Value, comma bool) []Value {
	if l, ok := v.(List); ok && l.Comma == comma {
		return l.Items
	}
	return []Value{v}
}

func comma() parser.Parser[parser.Empty] {
	return parser.Padded(parser.Kind(tokens.Comma))
}

func closeParen() parser.Parser[parser.Empty] {
	return parser.Then(parser.OptionalWhitespace(), parser.Kind(tokens.RightParen))
}

// upcast widens a parser of a concrete node to Parser[Value]
func upcast[T Value](p parser.Parser[T]) parser.Parser[Value] {
	return parser.Map(p, func(v T) Value { return v })
}
