package compiler

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/atomcss/internal/diag"
	"github.com/yacobolo/atomcss/internal/styletree"
)

const tokensYAML = `
defineVars:
  tokens:
    primary: blue
    gap:
      default: 4px
      '@media (min-width: 800px)': 8px
`

func TestDefineVars(t *testing.T) {
	res := compileYAML(t, tokensYAML, DefaultOptions())

	require.Len(t, res.VarGroups, 1)
	g := res.VarGroups[0]
	assert.Equal(t, "x"+Hash("styles.yaml//tokens"), g.ClassName)

	primary, ok := g.Vars.Get("primary")
	require.True(t, ok)
	assert.Equal(t, "--x"+Hash("styles.yaml//tokens.primary"), primary)
	gap, _ := g.Vars.Get("gap")

	require.Len(t, res.Rules, 2)
	assert.Equal(t, ":root{"+primary+":blue;"+gap+":4px;}", res.Rules[0].LTR())
	assert.Equal(t, float64(0), res.Rules[0].Priority)
	assert.Equal(t, "@media (min-width: 800px){:root{"+gap+":8px;}}", res.Rules[1].LTR())
	assert.Equal(t, float64(20), res.Rules[1].Priority)

	ref, ok := g.Ref("gap")
	require.True(t, ok)
	assert.Equal(t, "var("+gap+")", ref)
	_, ok = g.Ref("missing")
	assert.False(t, ok)

	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `{"primary":"var(`+primary+`)","gap":"var(`+gap+`)","__themeName__":"`+g.ClassName+`"}`, string(data))
}

func TestCreateThemeKeyOrderIndependent(t *testing.T) {
	themes := []string{`
createTheme:
  dark:
    vars: buttonTokens
    values:
      bgColor: black
      bgColorDisabled: grey
      cornerRadius: 4
`, `
createTheme:
  dark:
    vars: buttonTokens
    values:
      cornerRadius: 4
      bgColor: black
      bgColorDisabled: grey
`}
	const group = `
defineVars:
  buttonTokens:
    bgColor: blue
    bgColorDisabled: lightgrey
    cornerRadius: 2
`

	var classes, css []string
	for _, theme := range themes {
		res := compileYAML(t, group+theme, DefaultOptions())
		require.Len(t, res.Themes, 1)
		classes = append(classes, res.Themes[0].ClassName)
		last := res.Rules[len(res.Rules)-1]
		css = append(css, last.LTR())
		assert.Equal(t, 0.5, last.Priority)
	}

	assert.Equal(t, classes[0], classes[1])
	assert.Equal(t, css[0], css[1])
	assert.Contains(t, css[0], "."+classes[0]+", ."+classes[0]+":root{")
}

func TestCreateThemeObject(t *testing.T) {
	res := compileYAML(t, tokensYAML+"createTheme:\n  dark:\n    vars: tokens\n    values:\n      gap: {default: 2px, '@media (min-width: 800px)': 6px}\n", DefaultOptions())

	theme := res.Themes[0]
	obj, ok := res.Lookup("dark")
	require.True(t, ok)
	cls, ok := obj.Lookup(theme.Group.ClassName)
	require.True(t, ok)
	assert.Equal(t, theme.ClassName, *cls)

	last := res.Rules[len(res.Rules)-1]
	assert.Equal(t, []string{"@media (min-width: 800px)"}, last.AtRules)
	assert.Equal(t, 20.5, last.Priority)
}

func TestVarErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		key  diag.MessageKey
	}{
		{name: "custom property key", src: "defineVars:\n  t:\n    --primary: blue\n", key: diag.InvalidCustomPropertyKey},
		{name: "pseudo in variable", src: "defineVars:\n  t:\n    a:\n      default: red\n      ':hover': blue\n", key: diag.InvalidPseudoOrAtRule},
		{name: "array variable", src: "defineVars:\n  t:\n    a: [red, blue]\n", key: diag.IllegalPropArrayValue},
		{name: "unknown group", src: "createTheme:\n  dark:\n    vars: nope\n    values:\n      a: red\n", key: diag.UnknownNamespace},
		{name: "unknown key", src: "defineVars:\n  t:\n    a: red\ncreateTheme:\n  dark:\n    vars: t\n    values:\n      b: red\n", key: diag.UnknownVars},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := styletree.Parse([]byte(tt.src), "bad.yaml")
			require.NoError(t, err)
			_, err = Compile(doc, DefaultOptions())
			require.Error(t, err)
			assert.True(t, errors.Is(err, diag.Sentinel(tt.key)), "got %v", err)
		})
	}
}
