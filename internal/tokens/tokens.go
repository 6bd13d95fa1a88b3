// Package tokens adapts the tdewolff CSS lexer into an immutable token stream
// that the combinator parsers consume left to right.
package tokens

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Kind is the category of a token
type Kind int

// Token kinds produced by Tokenize
const (
	Other Kind = iota
	Ident
	Function
	AtKeyword
	Hash
	String
	URL
	Delim
	Number
	Percentage
	Dimension
	Whitespace
	Colon
	Semicolon
	Comma
	LeftBracket
	RightBracket
	LeftParen
	RightParen
	LeftBrace
	RightBrace
)

var kindNames = map[Kind]string{
	Other:        "other",
	Ident:        "ident",
	Function:     "function",
	AtKeyword:    "at-keyword",
	Hash:         "hash",
	String:       "string",
	URL:          "url",
	Delim:        "delim",
	Number:       "number",
	Percentage:   "percentage",
	Dimension:    "dimension",
	Whitespace:   "whitespace",
	Colon:        "colon",
	Semicolon:    "semicolon",
	Comma:        "comma",
	LeftBracket:  "'['",
	RightBracket: "']'",
	LeftParen:    "'('",
	RightParen:   "')'",
	LeftBrace:    "'{'",
	RightBrace:   "'}'",
}

// String returns a human readable kind name used in parse errors
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Token is one lexical unit of a CSS string
type Token struct {
	Kind   Kind
	Raw    string  // Source text: "400px", "@media", "rgb("
	Text   string  // Ident name, function name without "(", at-keyword without "@", unquoted string
	Number float64 // Numeric value for Number, Percentage and Dimension
	Unit   string  // "px" for Dimension, "%" for Percentage
	Offset int     // Byte offset in the source
}

// String returns the raw source text of the token
func (t Token) String() string {
	return t.Raw
}

// IsIdent reports whether the token is the identifier word (ASCII case-insensitive)
func (t Token) IsIdent(word string) bool {
	return t.Kind == Ident && strings.EqualFold(t.Text, word)
}

// IsDelim reports whether the token is the single delimiter character r
func (t Token) IsDelim(r byte) bool {
	return t.Kind == Delim && len(t.Raw) == 1 && t.Raw[0] == r
}

// Tokenize lexes s into tokens. Comments are dropped; everything else,
// whitespace included, is kept so grammars can decide where spacing matters.
func Tokenize(s string) ([]Token, error) {
	lexer := css.NewLexer(parse.NewInputString(s))

	var toks []Token
	offset := 0
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && err != io.EOF {
				return nil, fmt.Errorf("tokenize %q at offset %d: %w", s, offset, err)
			}
			break
		}

		raw := string(data)
		start := offset
		offset += len(data)

		if tt == css.CommentToken {
			continue
		}

		toks = append(toks, newToken(tt, raw, start))
	}

	return toks, nil
}

// newToken converts one lexer token
func newToken(tt css.TokenType, raw string, offset int) Token {
	tok := Token{Raw: raw, Text: raw, Offset: offset}

	switch tt {
	case css.IdentToken, css.CustomPropertyNameToken:
		tok.Kind = Ident
	case css.FunctionToken:
		tok.Kind = Function
		tok.Text = strings.TrimSuffix(raw, "(")
	case css.AtKeywordToken:
		tok.Kind = AtKeyword
		tok.Text = strings.TrimPrefix(raw, "@")
	case css.HashToken:
		tok.Kind = Hash
		tok.Text = strings.TrimPrefix(raw, "#")
	case css.StringToken:
		tok.Kind = String
		tok.Text = unquote(raw)
	case css.URLToken:
		tok.Kind = URL
	case css.DelimToken:
		tok.Kind = Delim
	case css.NumberToken:
		tok.Kind = Number
		tok.Number, _ = splitNumber(raw)
	case css.PercentageToken:
		tok.Kind = Percentage
		tok.Number, _ = splitNumber(strings.TrimSuffix(raw, "%"))
		tok.Unit = "%"
	case css.DimensionToken:
		tok.Kind = Dimension
		tok.Number, tok.Unit = splitNumber(raw)
	case css.WhitespaceToken:
		tok.Kind = Whitespace
	case css.ColonToken:
		tok.Kind = Colon
	case css.SemicolonToken:
		tok.Kind = Semicolon
	case css.CommaToken:
		tok.Kind = Comma
	case css.LeftBracketToken:
		tok.Kind = LeftBracket
	case css.RightBracketToken:
		tok.Kind = RightBracket
	case css.LeftParenthesisToken:
		tok.Kind = LeftParen
	case css.RightParenthesisToken:
		tok.Kind = RightParen
	case css.LeftBraceToken:
		tok.Kind = LeftBrace
	case css.RightBraceToken:
		tok.Kind = RightBrace
	default:
		tok.Kind = Other
	}

	return tok
}

// splitNumber separates the numeric prefix of a number-like token from its unit
func splitNumber(raw string) (float64, string) {
	i := 0
	if i < len(raw) && (raw[i] == '+' || raw[i] == '-') {
		i++
	}
	for i < len(raw) && isDigit(raw[i]) {
		i++
	}
	if i+1 < len(raw) && raw[i] == '.' && isDigit(raw[i+1]) {
		i++
		for i < len(raw) && isDigit(raw[i]) {
			i++
		}
	}
	// Exponent only when digits follow, otherwise "e" starts the unit (e.g. "em")
	if i < len(raw) && (raw[i] == 'e' || raw[i] == 'E') {
		j := i + 1
		if j < len(raw) && (raw[j] == '+' || raw[j] == '-') {
			j++
		}
		if j < len(raw) && isDigit(raw[j]) {
			for j < len(raw) && isDigit(raw[j]) {
				j++
			}
			i = j
		}
	}

	n, err := strconv.ParseFloat(raw[:i], 64)
	if err != nil {
		return 0, raw[i:]
	}
	return n, raw[i:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// unquote strips the surrounding quotes of a string token and resolves
// backslash escapes of the quote character and backslash itself
func unquote(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	q := raw[0]
	if q != '"' && q != '\'' {
		return raw
	}
	inner := raw[1:]
	inner = strings.TrimSuffix(inner, string(q))

	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
		}
		b.WriteByte(inner[i])
	}
	return b.String()
}
