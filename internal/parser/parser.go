// Package parser is a small parser-combinator toolkit over token cursors.
//
// A Parser never panics and never mutates shared state: it returns a Result
// holding either a value and the remaining cursor, or a *Failure describing
// what was expected where. Alternation is a plain loop over alternatives, so
// probing several grammars costs nothing more than the attempts themselves.
package parser

import (
	"fmt"
	"strings"

	"github.com/yacobolo/atomcss/internal/tokens"
)

// Failure describes why a parser rejected its input
type Failure struct {
	Offset   int    // Source offset of the offending token
	End      int    // Source offset just past the offending token
	Expected string // "')'", "media feature"
	Found    string // "ident \"foo\"", "end of input"
}

// Result is the outcome of running a parser
type Result[T any] struct {
	Value T
	Rest  tokens.Cursor
	Fail  *Failure
}

// OK reports whether the parse succeeded
func (r Result[T]) OK() bool {
	return r.Fail == nil
}

// Parser turns a cursor into a Result
type Parser[T any] func(tokens.Cursor) Result[T]

// succeed builds a successful result
func succeed[T any](v T, rest tokens.Cursor) Result[T] {
	return Result[T]{Value: v, Rest: rest}
}

// fail builds a failed result positioned at the cursor
func fail[T any](c tokens.Cursor, expected string) Result[T] {
	return Result[T]{Rest: c, Fail: failureAt(c, expected)}
}

// failWith propagates an existing failure into another result type
func failWith[T any](f *Failure, rest tokens.Cursor) Result[T] {
	return Result[T]{Rest: rest, Fail: f}
}

func failureAt(c tokens.Cursor, expected string) *Failure {
	return &Failure{
		Offset:   c.Offset(),
		End:      c.End(),
		Expected: expected,
		Found:    describe(c),
	}
}

// describe renders the current token for error messages
func describe(c tokens.Cursor) string {
	tok, ok := c.Peek()
	if !ok {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", tok.Kind, tok.Raw)
}

// furthest keeps the failure that got deeper into the input. Failures at the
// same offset merge their expectations.
func furthest(a, b *Failure) *Failure {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.Offset > a.Offset:
		return b
	case a.Offset > b.Offset:
		return a
	}
	if a.Expected == b.Expected || strings.Contains(a.Expected, b.Expected) {
		return a
	}
	merged := *a
	merged.Expected = a.Expected + " or " + b.Expected
	return &merged
}

// Succeed always succeeds with v without consuming input
func Succeed[T any](v T) Parser[T] {
	return func(c tokens.Cursor) Result[T] {
		return succeed(v, c)
	}
}

// Fail always fails with the given expectation
func Fail[T any](expected string) Parser[T] {
	return func(c tokens.Cursor) Result[T] {
		return fail[T](c, expected)
	}
}

// Label replaces the expectation reported when p fails without consuming
// anything beyond its starting token
func Label[T any](p Parser[T], expected string) Parser[T] {
	return func(c tokens.Cursor) Result[T] {
		r := p(c)
		if r.OK() || r.Fail.Offset > c.Offset() {
			return r
		}
		return fail[T](c, expected)
	}
}

// Lazy defers construction of a parser, which makes recursive grammars possible
func Lazy[T any](build func() Parser[T]) Parser[T] {
	var p Parser[T]
	return func(c tokens.Cursor) Result[T] {
		if p == nil {
			p = build()
		}
		return p(c)
	}
}
