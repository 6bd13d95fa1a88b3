package queries

import (
	"math"
	"strings"

	"github.com/yacobolo/atomcss/internal/parser"
	"github.com/yacobolo/atomcss/internal/tokens"
	"github.com/yacobolo/atomcss/internal/values"
)

// rangeEpsilon is added to or subtracted from an exclusive bound when a
// range comparison is rewritten as min-/max- feature
const rangeEpsilon = 0.01

var mediaTypes = []string{"all", "print", "screen"}

var wordRules = map[string]bool{
	"color":       true,
	"monochrome":  true,
	"grid":        true,
	"color-index": true,
}

// rangeFeatures may appear in range comparisons such as (width > 400px)
var rangeFeatures = map[string]bool{
	"width":         true,
	"height":        true,
	"device-width":  true,
	"device-height": true,
	"inline-size":   true,
	"block-size":    true,
}

// ParseMediaQuery parses "@media <condition>" with the flat grammar, where
// parentheses only wrap single features and (not ...) negations
func ParseMediaQuery(s string) (MediaQuery, error) {
	return parser.ParseToEnd(MediaQueryParser(), s)
}

// ParseMediaQueryRecursive parses "@media <condition>" allowing arbitrary
// parenthesised nesting of and/or/not
func ParseMediaQueryRecursive(s string) (MediaQuery, error) {
	return parser.ParseToEnd(MediaQueryRecursiveParser(), s)
}

// MediaQueryParser is the flat grammar
func MediaQueryParser() parser.Parser[MediaQuery] {
	return mediaQuery(OrSeparatedMediaRules())
}

// MediaQueryRecursiveParser is the recursive grammar
func MediaQueryRecursiveParser() parser.Parser[MediaQuery] {
	return mediaQuery(recursiveOr())
}

func mediaQuery(condition parser.Parser[MediaRule]) parser.Parser[MediaQuery] {
	atMedia := parser.Match(func(t tokens.Token) bool {
		return t.Kind == tokens.AtKeyword && strings.EqualFold(t.Text, "media")
	}, `"@media"`)

	return parser.Map(
		parser.Then(atMedia, parser.Then(parser.OptionalWhitespace(), condition)),
		func(r MediaRule) MediaQuery { return MediaQuery{Rule: r} },
	)
}

// OrSeparatedMediaRules parses conjunctions separated by "," or "or"
func OrSeparatedMediaRules() parser.Parser[MediaRule] {
	return orOf(AndSeparatedMediaRules())
}

// AndSeparatedMediaRules parses flat terms separated by "and"
func AndSeparatedMediaRules() parser.Parser[MediaRule] {
	return andOf(flatTerm())
}

func orOf(operand parser.Parser[MediaRule]) parser.Parser[MediaRule] {
	sep := parser.OneOf(
		parser.Padded(parser.Kind(tokens.Comma)),
		parser.SurroundedBy(parser.Whitespace(), parser.Map(parser.Keyword("or"), empty[string]), parser.Whitespace()),
	)
	return parser.Map(parser.SeparatedBy(operand, sep), func(rs []MediaRule) MediaRule { return NewOr(rs...) })
}

func andOf(operand parser.Parser[MediaRule]) parser.Parser[MediaRule] {
	sep := parser.SurroundedBy(parser.Whitespace(), parser.Keyword("and"), parser.Whitespace())
	return parser.Map(parser.SeparatedBy(operand, sep), func(rs []MediaRule) MediaRule { return NewAnd(rs...) })
}

func empty[T any](T) parser.Empty { return parser.Empty{} }

// flatTerm is a single term of the flat grammar
func flatTerm() parser.Parser[MediaRule] {
	return parser.Lazy(func() parser.Parser[MediaRule] {
		return parser.OneOf(
			MediaKeywordParser(),
			WordRuleParser(),
			PairParser(),
			DoubleInequalityParser(),
			InequalityParser(),
			notTerm(flatTerm()),
			parenNot(flatTerm()),
		)
	})
}

func recursiveOr() parser.Parser[MediaRule] {
	return parser.Lazy(func() parser.Parser[MediaRule] {
		return orOf(andOf(recursiveTerm()))
	})
}

func recursiveTerm() parser.Parser[MediaRule] {
	return parser.Lazy(func() parser.Parser[MediaRule] {
		return parser.OneOf(
			MediaKeywordParser(),
			WordRuleParser(),
			PairParser(),
			DoubleInequalityParser(),
			InequalityParser(),
			notTerm(recursiveTerm()),
			parenNot(recursiveTerm()),
			parenthesised(recursiveOr()),
		)
	})
}

func openParen() parser.Parser[parser.Empty] {
	return parser.Skip(parser.Kind(tokens.LeftParen), parser.OptionalWhitespace())
}

func closeParen() parser.Parser[parser.Empty] {
	return parser.Then(parser.OptionalWhitespace(), parser.Kind(tokens.RightParen))
}

func parenthesised[T any](p parser.Parser[T]) parser.Parser[T] {
	return parser.SurroundedBy(openParen(), p, closeParen())
}

// notTerm is "not <term>"
func notTerm(term parser.Parser[MediaRule]) parser.Parser[MediaRule] {
	return parser.Map(
		parser.Then(parser.Skip(parser.Keyword("not"), parser.Whitespace()), term),
		func(r MediaRule) MediaRule { return NotRule{Rule: r} },
	)
}

// parenNot is "(not <term>)"
func parenNot(term parser.Parser[MediaRule]) parser.Parser[MediaRule] {
	return parenthesised(notTerm(term))
}

// MediaKeywordParser parses [not|only] all|print|screen
func MediaKeywordParser() parser.Parser[MediaRule] {
	types := make([]parser.Parser[string], len(mediaTypes))
	for i, t := range mediaTypes {
		types[i] = parser.Keyword(t)
	}
	modifier := parser.Skip(parser.OneOf(parser.Keyword("not"), parser.Keyword("only")), parser.Whitespace())

	return parser.Map(
		parser.Seq2(parser.Optional(modifier), parser.OneOf(types...)),
		func(t parser.Tuple2[*string, string]) MediaRule {
			kw := MediaKeyword{Key: t.Second}
			if t.First != nil {
				kw.Not = *t.First == "not"
				kw.Only = *t.First == "only"
			}
			return kw
		},
	)
}

// WordRuleParser parses boolean feature tests such as (color)
func WordRuleParser() parser.Parser[MediaRule] {
	word := parser.Where(
		parser.Map(parser.Ident(), strings.ToLower),
		func(s string) bool { return wordRules[s] },
		"boolean media feature",
	)
	return parser.Map(parenthesised(word), func(s string) MediaRule { return WordRule{KeyValue: s} })
}

// PairParser parses (feature: value)
func PairParser() parser.Parser[MediaRule] {
	key := parser.Map(parser.Ident(), strings.ToLower)
	colon := parser.Padded(parser.Kind(tokens.Colon))

	return parser.Map(
		parser.Where(
			parenthesised(parser.Seq3(key, colon, pairValue())),
			func(t parser.Tuple3[string, parser.Empty, values.Value]) bool {
				return validPairValue(t.First, t.Third)
			},
			"valid media feature value",
		),
		func(t parser.Tuple3[string, parser.Empty, values.Value]) MediaRule {
			return Pair{Key: t.First, Value: t.Third}
		},
	)
}

func pairValue() parser.Parser[values.Value] {
	return parser.OneOf(
		upcast(values.FractionParser()),
		upcast(values.LengthParser()),
		upcast(values.ResolutionParser()),
		upcast(values.NumberParser()),
		upcast(parser.Map(parser.Ident(), func(s string) values.Ident { return values.Ident{Name: strings.ToLower(s)} })),
	)
}

// validPairValue checks the value type for features with a fixed type
func validPairValue(key string, v values.Value) bool {
	feature := strings.TrimPrefix(strings.TrimPrefix(key, "min-"), "max-")
	switch {
	case rangeFeatures[feature]:
		_, ok := v.(values.Length)
		return ok
	case feature == "aspect-ratio" || feature == "device-aspect-ratio":
		switch v.(type) {
		case values.Fraction, values.Number:
			return true
		}
		return false
	case feature == "resolution":
		_, ok := v.(values.Resolution)
		return ok
	}
	return true
}

// comparison is one of < <= > >=
type comparison struct {
	greater   bool
	inclusive bool
}

// flip turns "v < feature" into "feature > v"
func (c comparison) flip() comparison {
	c.greater = !c.greater
	return c
}

// toPair rewrites "feature <op> value" as a min-/max- pair. An exclusive
// unitless zero bound becomes px so the adjusted value stays a length.
func (c comparison) toPair(feature string, v values.Length) Pair {
	key := "max-" + feature
	if c.greater {
		key = "min-" + feature
	}
	if c.inclusive {
		return Pair{Key: key, Value: v}
	}
	if v.Unit == "" {
		v.Unit = "px"
	}
	if c.greater {
		v.Value += rangeEpsilon
	} else {
		v.Value -= rangeEpsilon
	}
	v.Value = math.Round(v.Value*10000) / 10000
	return Pair{Key: key, Value: v}
}

func comparisonParser() parser.Parser[comparison] {
	op := parser.OneOf(
		parser.Map(parser.Delim('<'), func(parser.Empty) bool { return false }),
		parser.Map(parser.Delim('>'), func(parser.Empty) bool { return true }),
	)
	return parser.Padded(parser.Map(
		parser.Seq2(op, parser.Optional(parser.Delim('='))),
		func(t parser.Tuple2[bool, *parser.Empty]) comparison {
			return comparison{greater: t.First, inclusive: t.Second != nil}
		},
	))
}

func rangeFeature() parser.Parser[string] {
	return parser.Where(
		parser.Map(parser.Ident(), strings.ToLower),
		func(s string) bool { return rangeFeatures[s] },
		"range media feature",
	)
}

func lengthBound() parser.Parser[values.Length] {
	return parser.Where(values.LengthParser(), func(l values.Length) bool { return l.Unit != "" || l.Value == 0 }, "length")
}

// InequalityParser parses (width > 400px) and (400px < width)
func InequalityParser() parser.Parser[MediaRule] {
	featureFirst := parser.Map(
		parser.Seq3(rangeFeature(), comparisonParser(), lengthBound()),
		func(t parser.Tuple3[string, comparison, values.Length]) MediaRule {
			return t.Second.toPair(t.First, t.Third)
		},
	)
	valueFirst := parser.Map(
		parser.Seq3(lengthBound(), comparisonParser(), rangeFeature()),
		func(t parser.Tuple3[values.Length, comparison, string]) MediaRule {
			return t.Second.flip().toPair(t.Third, t.First)
		},
	)
	return parenthesised(parser.OneOf(featureFirst, valueFirst))
}

// DoubleInequalityParser parses (768px <= width <= 1280px). Both comparisons
// must point the same way; each side keeps its own inclusiveness.
func DoubleInequalityParser() parser.Parser[MediaRule] {
	body := parser.Where(
		parser.Seq4(
			lengthBound(),
			comparisonParser(),
			rangeFeature(),
			parser.Seq2(comparisonParser(), lengthBound()),
		),
		func(t parser.Tuple4[values.Length, comparison, string, parser.Tuple2[comparison, values.Length]]) bool {
			return t.Second.greater == t.Fourth.First.greater
		},
		"matching comparison direction",
	)

	return parenthesised(parser.Map(body,
		func(t parser.Tuple4[values.Length, comparison, string, parser.Tuple2[comparison, values.Length]]) MediaRule {
			left := t.Second.flip().toPair(t.Third, t.First)
			right := t.Fourth.First.toPair(t.Third, t.Fourth.Second)
			return NewAnd(left, right)
		},
	))
}

func upcast[T values.Value](p parser.Parser[T]) parser.Parser[values.Value] {
	return parser.Map(p, func(v T) values.Value { return v })
}
