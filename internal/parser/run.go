package parser

import (
	"fmt"

	"github.com/yacobolo/atomcss/internal/tokens"
)

// SyntaxError is the single error reported when a grammar rejects a string
type SyntaxError struct {
	Input    string
	Offset   int
	End      int
	Expected string
	Found    string
}

// Error implements error
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("parse %q: expected %s at offset %d, found %s", e.Input, e.Expected, e.Offset, e.Found)
}

// Span returns the offending part of the input
func (e *SyntaxError) Span() string {
	if e.Offset >= len(e.Input) {
		return ""
	}
	end := e.End
	if end > len(e.Input) || end < e.Offset {
		end = len(e.Input)
	}
	return e.Input[e.Offset:end]
}

// ParseToEnd runs p over s and requires it to consume all input apart from
// surrounding whitespace
func ParseToEnd[T any](p Parser[T], s string) (T, error) {
	var zero T

	c, err := tokens.Stream(s)
	if err != nil {
		return zero, err
	}

	r := Skip(Padded(p), EOF())(c)
	if !r.OK() {
		return zero, toSyntaxError(s, r.Fail)
	}
	return r.Value, nil
}

// ParsePrefix runs p over s and returns the unconsumed cursor
func ParsePrefix[T any](p Parser[T], s string) (T, tokens.Cursor, error) {
	var zero T

	c, err := tokens.Stream(s)
	if err != nil {
		return zero, tokens.Cursor{}, err
	}

	r := p(c)
	if !r.OK() {
		return zero, c, toSyntaxError(s, r.Fail)
	}
	return r.Value, r.Rest, nil
}

func toSyntaxError(s string, f *Failure) *SyntaxError {
	return &SyntaxError{
		Input:    s,
		Offset:   f.Offset,
		End:      f.End,
		Expected: f.Expected,
		Found:    f.Found,
	}
}
