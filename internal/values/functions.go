package values

import (
	"strings"

	"github.com/yacobolo/atomcss/internal/parser"
	"github.com/yacobolo/atomcss/internal/tokens"
)

// CSSWideKeyword is one of the keywords every property accepts
type CSSWideKeyword struct {
	Name string
}

func (CSSWideKeyword) isValue()         {}
func (v CSSWideKeyword) String() string { return v.Name }

var cssWideKeywords = set("inherit", "initial", "unset", "revert", "revert-layer")

// IsCSSWideKeyword reports whether s is inherit, initial, unset, revert or revert-layer
func IsCSSWideKeyword(s string) bool {
	return cssWideKeywords[strings.ToLower(strings.TrimSpace(s))]
}

// CSSWideKeywordParser parses a CSS-wide keyword
func CSSWideKeywordParser() parser.Parser[CSSWideKeyword] {
	return parser.Map(
		parser.Where(parser.Ident(), IsCSSWideKeyword, "css-wide keyword"),
		func(s string) CSSWideKeyword { return CSSWideKeyword{Name: strings.ToLower(s)} },
	)
}

// Var is a var(--name, fallback) reference
type Var struct {
	Name     string
	Fallback Value // nil when absent
}

func (Var) isValue() {}

// String prints var(--name) or var(--name, fallback)
func (v Var) String() string {
	if v.Fallback == nil {
		return "var(" + v.Name + ")"
	}
	return "var(" + v.Name + ", " + v.Fallback.String() + ")"
}

// VarParser parses a var() reference
func VarParser() parser.Parser[Var] {
	name := parser.Where(parser.Ident(), func(s string) bool {
		return strings.HasPrefix(s, "--") && len(s) > 2
	}, "custom property name")

	fallback := parser.Then(
		parser.Padded(parser.Kind(tokens.Comma)),
		parser.Lazy(ComponentList),
	)

	return parser.Map(
		parser.Seq3(
			parser.Function("var"),
			parser.Padded(name),
			parser.Skip(parser.Optional(fallback), closeParen()),
		),
		func(t parser.Tuple3[string, string, *Value]) Var {
			v := Var{Name: t.Second}
			if t.Third != nil {
				v.Fallback = *t.Third
			}
			return v
		},
	)
}

// Calc is a calc() expression
type Calc struct {
	Expr Value
}

func (Calc) isValue()         {}
func (v Calc) String() string { return "calc(" + v.Expr.String() + ")" }

// CalcOperation is a binary operation inside calc()
type CalcOperation struct {
	Left  Value
	Op    byte // '+', '-', '*' or '/'
	Right Value
}

func (CalcOperation) isValue() {}

// String prints "left op right"
func (v CalcOperation) String() string {
	return v.Left.String() + " " + string(v.Op) + " " + v.Right.String()
}

// CalcGroup is a parenthesised calc sub-expression
type CalcGroup struct {
	Inner Value
}

func (CalcGroup) isValue()         {}
func (v CalcGroup) String() string { return "(" + v.Inner.String() + ")" }

// CalcParser parses calc(<sum>)
func CalcParser() parser.Parser[Calc] {
	return parser.Map(
		parser.Seq2(parser.Function("calc"), parser.Skip(parser.Padded(calcSum()), closeParen())),
		func(t parser.Tuple2[string, Value]) Calc { return Calc{Expr: t.Second} },
	)
}

// calcSum is product (WS ('+'|'-') WS product)*. The spaces around + and -
// are mandatory in CSS.
func calcSum() parser.Parser[Value] {
	op := parser.OneOf(
		parser.Map(parser.Delim('+'), func(parser.Empty) byte { return '+' }),
		parser.Map(parser.Delim('-'), func(parser.Empty) byte { return '-' }),
	)
	return foldOperations(
		calcProduct(),
		parser.SurroundedBy(parser.Whitespace(), op, parser.Whitespace()),
	)
}

func calcProduct() parser.Parser[Value] {
	op := parser.OneOf(
		parser.Map(parser.Delim('*'), func(parser.Empty) byte { return '*' }),
		parser.Map(parser.Delim('/'), func(parser.Empty) byte { return '/' }),
	)
	return foldOperations(calcUnit(), parser.Padded(op))
}

func calcUnit() parser.Parser[Value] {
	return parser.Lazy(func() parser.Parser[Value] {
		return parser.OneOf(
			dimensionValue(),
			upcast(PercentageParser()),
			upcast(NumberParser()),
			upcast(VarParser()),
			upcast(CalcParser()),
			upcast(parser.Map(
				parser.SurroundedBy(parser.Kind(tokens.LeftParen), parser.Padded(calcSum()), parser.Kind(tokens.RightParen)),
				func(v Value) CalcGroup { return CalcGroup{Inner: v} },
			)),
		)
	})
}

// foldOperations parses operand (op operand)* into a left-associative tree
func foldOperations(operand parser.Parser[Value], op parser.Parser[byte]) parser.Parser[Value] {
	return parser.Map(
		parser.Seq2(operand, parser.ZeroOrMore(parser.Seq2(op, operand))),
		func(t parser.Tuple2[Value, []parser.Tuple2[byte, Value]]) Value {
			acc := t.First
			for _, step := range t.Second {
				acc = CalcOperation{Left: acc, Op: step.First, Right: step.Second}
			}
			return acc
		},
	)
}

// TransformFunction is one function of a transform list
type TransformFunction struct {
	Name string
	Args []Value
}

func (TransformFunction) isValue() {}

// String prints name(a, b)
func (v TransformFunction) String() string {
	return v.Name + "(" + List{Items: v.Args, Comma: true}.String() + ")"
}

// TransformList is a space separated list of transform functions
type TransformList struct {
	Functions []TransformFunction
}

func (TransformList) isValue() {}

// String prints the functions separated by spaces
func (v TransformList) String() string {
	parts := make([]string, len(v.Functions))
	for i, fn := range v.Functions {
		parts[i] = fn.String()
	}
	return strings.Join(parts, " ")
}

var transformFunctions = set(
	"matrix", "matrix3d", "perspective",
	"rotate", "rotate3d", "rotatex", "rotatey", "rotatez",
	"scale", "scale3d", "scalex", "scaley", "scalez",
	"skew", "skewx", "skewy",
	"translate", "translate3d", "translatex", "translatey", "translatez",
)

// TransformFunctionParser parses one transform function
func TransformFunctionParser() parser.Parser[TransformFunction] {
	name := parser.Match(func(t tokens.Token) bool {
		return t.Kind == tokens.Function && transformFunctions[strings.ToLower(t.Text)]
	}, "transform function")

	arg := parser.OneOf(
		upcast(CalcParser()),
		upcast(VarParser()),
		dimensionValue(),
		upcast(PercentageParser()),
		upcast(NumberParser()),
	)

	return parser.Map(
		parser.Seq2(name, parser.Skip(parser.SeparatedBy(parser.Padded(arg), parser.Kind(tokens.Comma)), parser.Kind(tokens.RightParen))),
		func(t parser.Tuple2[tokens.Token, []Value]) TransformFunction {
			return TransformFunction{Name: t.First.Text, Args: t.Second}
		},
	)
}

// TransformListParser parses transform functions separated by whitespace
func TransformListParser() parser.Parser[TransformList] {
	return parser.Map(
		parser.SeparatedBy(TransformFunctionParser(), parser.Whitespace()),
		func(fns []TransformFunction) TransformList { return TransformList{Functions: fns} },
	)
}
