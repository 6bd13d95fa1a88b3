package diag

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesKey(t *testing.T) {
	err := New(InvalidPseudo, Location{File: "a.yaml", Line: 3, Column: 5}, ":hovr")
	wrapped := fmt.Errorf("compile a.yaml: %w", err)

	assert.True(t, errors.Is(wrapped, Sentinel(InvalidPseudo)))
	assert.False(t, errors.Is(wrapped, Sentinel(InvalidMediaQuery)))
	assert.Equal(t, InvalidPseudo, KeyOf(wrapped))
	assert.Equal(t, MessageKey(""), KeyOf(errors.New("plain")))
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "with location and detail",
			err:  New(InvalidPseudo, Location{File: "a.yaml", Line: 3, Column: 5}, ":hovr"),
			want: "a.yaml:3:5: invalid pseudo-class or pseudo-element: :hovr",
		},
		{
			name: "without location",
			err:  New(UnknownVars, Location{}, "accent"),
			want: "theme overrides keys that the variable group does not define: accent",
		},
		{
			name: "with cause",
			err:  Wrap(InvalidMediaQuery, Location{File: "b.yaml"}, "@media x", errors.New("boom")),
			want: "b.yaml: invalid media query: @media x (boom)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestEveryKeyHasMessage(t *testing.T) {
	keys := []MessageKey{
		NonStaticValue, IllegalArgumentLength, IllegalNamespaceValue, IllegalNamespaceName,
		NoObjectSpreads, IllegalPropValue, IllegalPropArrayValue, IllegalNestedPseudo,
		InvalidPseudo, InvalidPseudoOrAtRule, InvalidMediaQuery, InvalidSupportsQuery,
		InvalidCustomPropertyKey, UnclosedFunction, UnknownVars, UnknownNamespace, DuplicateClassName,
	}
	for _, key := range keys {
		assert.NotEqual(t, string(key), Message(key), "missing message for %s", key)
	}
}
