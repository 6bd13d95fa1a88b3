package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSupportsQuery(t *testing.T) {
	tests := []struct {
		input string
		want  SupportsRule
	}{
		{
			input: "@supports (display: grid)",
			want:  SupportsDeclaration{Property: "display", Value: "grid"},
		},
		{
			input: "@supports not (display: grid)",
			want:  SupportsNot{Rule: SupportsDeclaration{Property: "display", Value: "grid"}},
		},
		{
			input: "@supports (display: grid) and (gap: calc(1px + 2px))",
			want: SupportsAnd{Rules: []SupportsRule{
				SupportsDeclaration{Property: "display", Value: "grid"},
				SupportsDeclaration{Property: "gap", Value: "calc(1px + 2px)"},
			}},
		},
		{
			input: "@supports selector(:has(a)) or (not (display: flex))",
			want: SupportsOr{Rules: []SupportsRule{
				SupportsSelector{Selector: ":has(a)"},
				SupportsNot{Rule: SupportsDeclaration{Property: "display", Value: "flex"}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			q, err := ParseSupportsQuery(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Rule)

			again, err := ParseSupportsQuery(q.String())
			require.NoError(t, err, "reparse %q", q.String())
			assert.Equal(t, q, again)
		})
	}
}

func TestSupportsRejectsMixedOperators(t *testing.T) {
	_, err := ParseSupportsQuery("@supports (a: b) and (c: d) or (e: f)")
	assert.Error(t, err)

	q, err := ParseSupportsQuery("@supports (a: b) and ((c: d) or (e: f))")
	require.NoError(t, err)
	assert.Equal(t, "@supports (a: b) and ((c: d) or (e: f))", q.String())
}

func TestSupportsRejects(t *testing.T) {
	for _, input := range []string{"@supports ()", "@supports display: grid", "@supports (display: grid"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseSupportsQuery(input)
			assert.Error(t, err)
		})
	}
}

func TestSupportsTree(t *testing.T) {
	q, err := ParseSupportsQuery("@supports not (display: grid)")
	require.NoError(t, err)

	out := SupportsTree(q)
	assert.Contains(t, out, "@supports")
	assert.Contains(t, out, "not")
	assert.Contains(t, out, "declaration display: grid")
}
