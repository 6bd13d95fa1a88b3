package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/atomcss/internal/tokens"
)

func run[T any](t *testing.T, p Parser[T], s string) Result[T] {
	t.Helper()
	c, err := tokens.Stream(s)
	require.NoError(t, err)
	return p(c)
}

func TestOneOf(t *testing.T) {
	p := OneOf(Keyword("screen"), Keyword("print"), Keyword("all"))

	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{input: "screen", want: "screen", ok: true},
		{input: "PRINT", want: "print", ok: true},
		{input: "speech", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := run(t, p, tt.input)
			assert.Equal(t, tt.ok, r.OK())
			if tt.ok {
				assert.Equal(t, tt.want, r.Value)
			}
		})
	}
}

func TestOneOfOrderMatters(t *testing.T) {
	single := Map(Keyword("a"), func(string) []string { return []string{"a"} })
	pair := Map(Seq3(Keyword("a"), Whitespace(), Keyword("b")), func(Tuple3[string, Empty, string]) []string {
		return []string{"a", "b"}
	})

	r := run(t, OneOf(pair, single), "a b")
	require.True(t, r.OK())
	assert.Equal(t, []string{"a", "b"}, r.Value)
	assert.True(t, r.Rest.AtEnd())

	r = run(t, OneOf(single, pair), "a b")
	require.True(t, r.OK())
	assert.Equal(t, []string{"a"}, r.Value)
	assert.False(t, r.Rest.AtEnd())
}

func TestOneOfReportsFurthestFailure(t *testing.T) {
	p := OneOf(
		Then(Keyword("a"), Then(Whitespace(), Keyword("b"))),
		Keyword("c"),
	)

	r := run(t, p, "a x")
	require.False(t, r.OK())
	assert.Equal(t, 2, r.Fail.Offset)
	assert.Equal(t, `"b"`, r.Fail.Expected)
}

func TestOptional(t *testing.T) {
	p := Optional(Keyword("not"))

	r := run(t, p, "not")
	require.True(t, r.OK())
	require.NotNil(t, r.Value)
	assert.Equal(t, "not", *r.Value)

	r = run(t, p, "only")
	require.True(t, r.OK())
	assert.Nil(t, r.Value)
	assert.Equal(t, 0, r.Rest.Index())
}

func TestRepetition(t *testing.T) {
	num := Skip(Number(), OptionalWhitespace())

	r := run(t, OneOrMore(num), "1 2 3")
	require.True(t, r.OK())
	assert.Equal(t, []float64{1, 2, 3}, r.Value)

	r = run(t, OneOrMore(num), "x")
	assert.False(t, r.OK())

	r = run(t, ZeroOrMore(num), "x")
	require.True(t, r.OK())
	assert.Empty(t, r.Value)
}

func TestSeparatedBy(t *testing.T) {
	p := SeparatedBy(Ident(), Padded(Kind(tokens.Comma)))

	r := run(t, p, "a , b,c")
	require.True(t, r.OK())
	assert.Equal(t, []string{"a", "b", "c"}, r.Value)
	assert.True(t, r.Rest.AtEnd())

	// trailing separator is left alone
	r = run(t, p, "a,")
	require.True(t, r.OK())
	assert.Equal(t, []string{"a"}, r.Value)
	assert.False(t, r.Rest.AtEnd())
}

func TestSurroundedBy(t *testing.T) {
	p := SurroundedBy(Kind(tokens.LeftParen), Padded(Ident()), Kind(tokens.RightParen))

	r := run(t, p, "( color )")
	require.True(t, r.OK())
	assert.Equal(t, "color", r.Value)

	r = run(t, p, "(color")
	require.False(t, r.OK())
	assert.Equal(t, "')'", r.Fail.Expected)
	assert.Equal(t, 0, r.Rest.Index())
}

func TestWhere(t *testing.T) {
	positive := Where(Number(), func(n float64) bool { return n > 0 }, "positive number")

	assert.True(t, run(t, positive, "3").OK())

	r := run(t, positive, "-3")
	require.False(t, r.OK())
	assert.Equal(t, "positive number", r.Fail.Expected)
}

func TestSequence(t *testing.T) {
	r := run(t, Sequence[string](), "anything")
	require.True(t, r.OK())
	assert.Empty(t, r.Value)
	assert.Equal(t, 0, r.Rest.Index())

	r = run(t, Sequence(Ident(), Then(Whitespace(), Ident())), "a b")
	require.True(t, r.OK())
	assert.Equal(t, []string{"a", "b"}, r.Value)
}

func TestLazyRecursion(t *testing.T) {
	// nested := "(" nested ")" | ident
	var nested Parser[string]
	nested = Lazy(func() Parser[string] {
		return OneOf(
			SurroundedBy(Kind(tokens.LeftParen), nested, Kind(tokens.RightParen)),
			Ident(),
		)
	})

	v, err := ParseToEnd(nested, "(((deep)))")
	require.NoError(t, err)
	assert.Equal(t, "deep", v)
}

func TestParseToEnd(t *testing.T) {
	v, err := ParseToEnd(Integer(), "  42 ")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = ParseToEnd(Integer(), "42 px")
	require.Error(t, err)

	var syn *SyntaxError
	require.True(t, errors.As(err, &syn))
	assert.Equal(t, 3, syn.Offset)
	assert.Equal(t, "px", syn.Span())
	assert.Equal(t, "end of input", syn.Expected)
	assert.Contains(t, err.Error(), `found ident "px"`)
}

func TestIntegerRejectsFraction(t *testing.T) {
	_, err := ParseToEnd(Integer(), "1.5")
	assert.Error(t, err)
}
