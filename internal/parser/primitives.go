package parser

import (
	"fmt"
	"strings"

	"github.com/yacobolo/atomcss/internal/tokens"
)

// Empty is the value of parsers that only recognise input
type Empty struct{}

// Match consumes one token satisfying pred
func Match(pred func(tokens.Token) bool, expected string) Parser[tokens.Token] {
	return func(c tokens.Cursor) Result[tokens.Token] {
		tok, ok := c.Peek()
		if !ok || !pred(tok) {
			return fail[tokens.Token](c, expected)
		}
		return succeed(tok, c.Advance())
	}
}

// Token consumes one token of the given kind
func Token(kind tokens.Kind) Parser[tokens.Token] {
	return Match(func(t tokens.Token) bool { return t.Kind == kind }, kind.String())
}

// Ident consumes an identifier and returns its name
func Ident() Parser[string] {
	return Map(Token(tokens.Ident), func(t tokens.Token) string { return t.Text })
}

// Keyword consumes the identifier word (ASCII case-insensitive) and returns it lower-cased
func Keyword(word string) Parser[string] {
	lower := strings.ToLower(word)
	return Map(
		Match(func(t tokens.Token) bool { return t.IsIdent(word) }, fmt.Sprintf("%q", lower)),
		func(tokens.Token) string { return lower },
	)
}

// Function consumes a function token with the given name, e.g. "calc("
func Function(name string) Parser[string] {
	lower := strings.ToLower(name)
	return Map(
		Match(func(t tokens.Token) bool {
			return t.Kind == tokens.Function && strings.EqualFold(t.Text, name)
		}, fmt.Sprintf("%q", lower+"(")),
		func(tokens.Token) string { return lower },
	)
}

// Delim consumes the single delimiter character r
func Delim(r byte) Parser[Empty] {
	return Map(
		Match(func(t tokens.Token) bool { return t.IsDelim(r) }, fmt.Sprintf("'%c'", r)),
		func(tokens.Token) Empty { return Empty{} },
	)
}

// Kind consumes a token of the given kind and discards it
func Kind(kind tokens.Kind) Parser[Empty] {
	return Map(Token(kind), func(tokens.Token) Empty { return Empty{} })
}

// Whitespace consumes one or more whitespace tokens
func Whitespace() Parser[Empty] {
	return func(c tokens.Cursor) Result[Empty] {
		tok, ok := c.Peek()
		if !ok || tok.Kind != tokens.Whitespace {
			return fail[Empty](c, "whitespace")
		}
		return succeed(Empty{}, c.SkipWhitespace())
	}
}

// OptionalWhitespace consumes any whitespace and never fails
func OptionalWhitespace() Parser[Empty] {
	return func(c tokens.Cursor) Result[Empty] {
		return succeed(Empty{}, c.SkipWhitespace())
	}
}

// Number consumes a plain number token
func Number() Parser[float64] {
	return Map(Token(tokens.Number), func(t tokens.Token) float64 { return t.Number })
}

// Integer consumes a number token without a fractional part
func Integer() Parser[int] {
	return Map(
		Where(Token(tokens.Number), func(t tokens.Token) bool {
			return t.Number == float64(int(t.Number)) && !strings.ContainsAny(t.Raw, ".eE")
		}, "integer"),
		func(t tokens.Token) int { return int(t.Number) },
	)
}

// EOF succeeds only when no tokens remain
func EOF() Parser[Empty] {
	return func(c tokens.Cursor) Result[Empty] {
		if !c.AtEnd() {
			return fail[Empty](c, "end of input")
		}
		return succeed(Empty{}, c)
	}
}
