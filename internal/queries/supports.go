package queries

import (
	"strings"

	"github.com/yacobolo/atomcss/internal/parser"
	"github.com/yacobolo/atomcss/internal/tokens"
)

// SupportsRule is a node of an @supports condition
type SupportsRule interface {
	String() string
	Accept(v SupportsVisitor)
	isSupportsRule()
}

// SupportsVisitor receives exactly one call per Accept
type SupportsVisitor interface {
	VisitDeclaration(SupportsDeclaration)
	VisitSelector(SupportsSelector)
	VisitSupportsNot(SupportsNot)
	VisitSupportsAnd(SupportsAnd)
	VisitSupportsOr(SupportsOr)
}

// SupportsDeclaration tests a property/value pair: (display: grid)
type SupportsDeclaration struct {
	Property string
	Value    string
}

// SupportsSelector tests selector support: selector(:has(a))
type SupportsSelector struct {
	Selector string
}

// SupportsNot negates a condition
type SupportsNot struct {
	Rule SupportsRule
}

// SupportsAnd is a conjunction
type SupportsAnd struct {
	Rules []SupportsRule
}

// SupportsOr is a disjunction
type SupportsOr struct {
	Rules []SupportsRule
}

func (SupportsDeclaration) isSupportsRule() {}
func (SupportsSelector) isSupportsRule()    {}
func (SupportsNot) isSupportsRule()         {}
func (SupportsAnd) isSupportsRule()         {}
func (SupportsOr) isSupportsRule()          {}

func (r SupportsDeclaration) Accept(v SupportsVisitor) { v.VisitDeclaration(r) }
func (r SupportsSelector) Accept(v SupportsVisitor)    { v.VisitSelector(r) }
func (r SupportsNot) Accept(v SupportsVisitor)         { v.VisitSupportsNot(r) }
func (r SupportsAnd) Accept(v SupportsVisitor)         { v.VisitSupportsAnd(r) }
func (r SupportsOr) Accept(v SupportsVisitor)          { v.VisitSupportsOr(r) }

func (r SupportsDeclaration) String() string { return "(" + r.Property + ": " + r.Value + ")" }
func (r SupportsSelector) String() string    { return "selector(" + r.Selector + ")" }
func (r SupportsNot) String() string         { return "not " + inParens(r.Rule) }
func (r SupportsAnd) String() string         { return joinSupports(r.Rules, " and ") }
func (r SupportsOr) String() string          { return joinSupports(r.Rules, " or ") }

func joinSupports(rules []SupportsRule, sep string) string {
	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = inParens(r)
	}
	return strings.Join(parts, sep)
}

// inParens wraps compound conditions so they can be combined
func inParens(r SupportsRule) string {
	switch r.(type) {
	case SupportsDeclaration, SupportsSelector:
		return r.String()
	}
	return "(" + r.String() + ")"
}

// SupportsQuery is a complete @supports prelude
type SupportsQuery struct {
	Rule SupportsRule
}

// String prints "@supports " followed by the condition
func (q SupportsQuery) String() string {
	return "@supports " + q.Rule.String()
}

// ParseSupportsQuery parses "@supports <condition>"
func ParseSupportsQuery(s string) (SupportsQuery, error) {
	return parser.ParseToEnd(SupportsQueryParser(), s)
}

// SupportsQueryParser parses "@supports <condition>"
func SupportsQueryParser() parser.Parser[SupportsQuery] {
	atSupports := parser.Match(func(t tokens.Token) bool {
		return t.Kind == tokens.AtKeyword && strings.EqualFold(t.Text, "supports")
	}, `"@supports"`)

	return parser.Map(
		parser.Then(atSupports, parser.Then(parser.OptionalWhitespace(), supportsCondition())),
		func(r SupportsRule) SupportsQuery { return SupportsQuery{Rule: r} },
	)
}

// supportsCondition is: not <in-parens> | <in-parens> [and <in-parens>]* |
// <in-parens> [or <in-parens>]*. Mixing and/or without parentheses is invalid.
func supportsCondition() parser.Parser[SupportsRule] {
	return parser.Lazy(func() parser.Parser[SupportsRule] {
		keywordSep := func(word string) parser.Parser[string] {
			return parser.SurroundedBy(parser.Whitespace(), parser.Keyword(word), parser.Whitespace())
		}

		not := parser.Map(
			parser.Then(parser.Skip(parser.Keyword("not"), parser.Whitespace()), supportsInParens()),
			func(r SupportsRule) SupportsRule { return SupportsNot{Rule: r} },
		)

		and := parser.Map(
			parser.Where(
				parser.SeparatedBy(supportsInParens(), keywordSep("and")),
				func(rs []SupportsRule) bool { return len(rs) > 1 },
				`"and"`,
			),
			func(rs []SupportsRule) SupportsRule { return SupportsAnd{Rules: rs} },
		)

		or := parser.Map(
			parser.Where(
				parser.SeparatedBy(supportsInParens(), keywordSep("or")),
				func(rs []SupportsRule) bool { return len(rs) > 1 },
				`"or"`,
			),
			func(rs []SupportsRule) SupportsRule { return SupportsOr{Rules: rs} },
		)

		return parser.OneOf(not, and, or, supportsInParens())
	})
}

func supportsInParens() parser.Parser[SupportsRule] {
	return parser.Lazy(func() parser.Parser[SupportsRule] {
		return parser.OneOf(
			supportsDeclaration(),
			supportsSelector(),
			parenthesised(supportsCondition()),
		)
	})
}

func supportsDeclaration() parser.Parser[SupportsRule] {
	property := parser.Map(parser.Ident(), strings.ToLower)
	colon := parser.Padded(parser.Kind(tokens.Colon))

	return parser.Map(
		parser.SurroundedBy(
			openParen(),
			parser.Seq3(property, colon, balancedText()),
			parser.Kind(tokens.RightParen),
		),
		func(t parser.Tuple3[string, parser.Empty, string]) SupportsRule {
			return SupportsDeclaration{Property: t.First, Value: t.Third}
		},
	)
}

func supportsSelector() parser.Parser[SupportsRule] {
	return parser.Map(
		parser.SurroundedBy(parser.Function("selector"), balancedText(), parser.Kind(tokens.RightParen)),
		func(s string) SupportsRule { return SupportsSelector{Selector: s} },
	)
}

// balancedText consumes tokens up to the ')' that closes the current group
// and returns their text with whitespace collapsed. It fails on empty text.
func balancedText() parser.Parser[string] {
	return func(c tokens.Cursor) parser.Result[string] {
		start := c
		var b strings.Builder
		depth := 0
		for {
			tok, ok := c.Peek()
			if !ok {
				return parser.Fail[string]("')'")(c)
			}
			switch tok.Kind {
			case tokens.Function, tokens.LeftParen, tokens.LeftBracket:
				depth++
			case tokens.RightParen, tokens.RightBracket:
				if depth == 0 {
					text := strings.TrimSpace(b.String())
					if text == "" {
						return parser.Fail[string]("value")(start)
					}
					return parser.Result[string]{Value: text, Rest: c}
				}
				depth--
			}
			if tok.Kind == tokens.Whitespace {
				b.WriteByte(' ')
			} else {
				b.WriteString(tok.Raw)
			}
			c = c.Advance()
		}
	}
}
