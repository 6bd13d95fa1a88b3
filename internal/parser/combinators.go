package parser

import (
	"github.com/yacobolo/atomcss/internal/tokens"
)

// Tuple2 is the value of Seq2
type Tuple2[A, B any] struct {
	First  A
	Second B
}

// Tuple3 is the value of Seq3
type Tuple3[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Tuple4 is the value of Seq4
type Tuple4[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

// Map transforms the value of a successful parse
func Map[T, U any](p Parser[T], fn func(T) U) Parser[U] {
	return func(c tokens.Cursor) Result[U] {
		r := p(c)
		if !r.OK() {
			return failWith[U](r.Fail, c)
		}
		return succeed(fn(r.Value), r.Rest)
	}
}

// Bind runs p and then the parser chosen from its value
func Bind[T, U any](p Parser[T], next func(T) Parser[U]) Parser[U] {
	return func(c tokens.Cursor) Result[U] {
		r := p(c)
		if !r.OK() {
			return failWith[U](r.Fail, c)
		}
		return next(r.Value)(r.Rest)
	}
}

// Where fails the parse when pred rejects the parsed value
func Where[T any](p Parser[T], pred func(T) bool, expected string) Parser[T] {
	return func(c tokens.Cursor) Result[T] {
		r := p(c)
		if !r.OK() {
			return r
		}
		if !pred(r.Value) {
			return fail[T](c, expected)
		}
		return r
	}
}

// OneOf tries each alternative in order and returns the first success. When
// all fail, the failure that reached furthest into the input is reported.
func OneOf[T any](ps ...Parser[T]) Parser[T] {
	return func(c tokens.Cursor) Result[T] {
		var best *Failure
		for _, p := range ps {
			r := p(c)
			if r.OK() {
				return r
			}
			best = furthest(best, r.Fail)
		}
		if best == nil {
			return fail[T](c, "alternative")
		}
		return failWith[T](best, c)
	}
}

// Optional never fails: it returns nil when p does not match
func Optional[T any](p Parser[T]) Parser[*T] {
	return func(c tokens.Cursor) Result[*T] {
		r := p(c)
		if !r.OK() {
			return succeed[*T](nil, c)
		}
		v := r.Value
		return succeed(&v, r.Rest)
	}
}

// ZeroOrMore applies p until it fails
func ZeroOrMore[T any](p Parser[T]) Parser[[]T] {
	return func(c tokens.Cursor) Result[[]T] {
		var out []T
		for {
			r := p(c)
			// stop on failure or on a match that consumed nothing
			if !r.OK() || r.Rest.Index() == c.Index() {
				return succeed(out, c)
			}
			out = append(out, r.Value)
			c = r.Rest
		}
	}
}

// OneOrMore applies p until it fails, rejecting zero matches
func OneOrMore[T any](p Parser[T]) Parser[[]T] {
	return func(c tokens.Cursor) Result[[]T] {
		first := p(c)
		if !first.OK() {
			return failWith[[]T](first.Fail, c)
		}
		rest := ZeroOrMore(p)(first.Rest)
		return succeed(append([]T{first.Value}, rest.Value...), rest.Rest)
	}
}

// SeparatedBy parses one or more p separated by sep. A trailing separator is
// not consumed.
func SeparatedBy[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return func(c tokens.Cursor) Result[[]T] {
		first := p(c)
		if !first.OK() {
			return failWith[[]T](first.Fail, c)
		}
		out := []T{first.Value}
		c = first.Rest
		for {
			s := sep(c)
			if !s.OK() {
				return succeed(out, c)
			}
			next := p(s.Rest)
			if !next.OK() {
				return succeed(out, c)
			}
			out = append(out, next.Value)
			c = next.Rest
		}
	}
}

// SurroundedBy parses open, p, close and keeps the value of p
func SurroundedBy[O, T, C any](open Parser[O], p Parser[T], close Parser[C]) Parser[T] {
	return func(c tokens.Cursor) Result[T] {
		o := open(c)
		if !o.OK() {
			return failWith[T](o.Fail, c)
		}
		r := p(o.Rest)
		if !r.OK() {
			return failWith[T](r.Fail, c)
		}
		e := close(r.Rest)
		if !e.OK() {
			return failWith[T](e.Fail, c)
		}
		return succeed(r.Value, e.Rest)
	}
}

// Then runs a and b in order and keeps the value of b
func Then[A, B any](a Parser[A], b Parser[B]) Parser[B] {
	return Map(Seq2(a, b), func(t Tuple2[A, B]) B { return t.Second })
}

// Skip runs a and b in order and keeps the value of a
func Skip[A, B any](a Parser[A], b Parser[B]) Parser[A] {
	return Map(Seq2(a, b), func(t Tuple2[A, B]) A { return t.First })
}

// Sequence runs parsers of the same type in order. An empty sequence
// succeeds without consuming input.
func Sequence[T any](ps ...Parser[T]) Parser[[]T] {
	return func(c tokens.Cursor) Result[[]T] {
		out := make([]T, 0, len(ps))
		cur := c
		for _, p := range ps {
			r := p(cur)
			if !r.OK() {
				return failWith[[]T](r.Fail, c)
			}
			out = append(out, r.Value)
			cur = r.Rest
		}
		return succeed(out, cur)
	}
}

// Seq2 runs two parsers in order
func Seq2[A, B any](a Parser[A], b Parser[B]) Parser[Tuple2[A, B]] {
	return func(c tokens.Cursor) Result[Tuple2[A, B]] {
		ra := a(c)
		if !ra.OK() {
			return failWith[Tuple2[A, B]](ra.Fail, c)
		}
		rb := b(ra.Rest)
		if !rb.OK() {
			return failWith[Tuple2[A, B]](rb.Fail, c)
		}
		return succeed(Tuple2[A, B]{ra.Value, rb.Value}, rb.Rest)
	}
}

// Seq3 runs three parsers in order
func Seq3[A, B, C any](a Parser[A], b Parser[B], cp Parser[C]) Parser[Tuple3[A, B, C]] {
	return Map(Seq2(Seq2(a, b), cp), func(t Tuple2[Tuple2[A, B], C]) Tuple3[A, B, C] {
		return Tuple3[A, B, C]{t.First.First, t.First.Second, t.Second}
	})
}

// Seq4 runs four parsers in order
func Seq4[A, B, C, D any](a Parser[A], b Parser[B], cp Parser[C], d Parser[D]) Parser[Tuple4[A, B, C, D]] {
	return Map(Seq2(Seq3(a, b, cp), d), func(t Tuple2[Tuple3[A, B, C], D]) Tuple4[A, B, C, D] {
		return Tuple4[A, B, C, D]{t.First.First, t.First.Second, t.First.Third, t.Second}
	})
}

// Padded allows optional whitespace around p
func Padded[T any](p Parser[T]) Parser[T] {
	return SurroundedBy(OptionalWhitespace(), p, OptionalWhitespace())
}
