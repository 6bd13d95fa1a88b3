package compiler

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/atomcss/internal/diag"
	"github.com/yacobolo/atomcss/internal/shorthands"
	"github.com/yacobolo/atomcss/internal/styletree"
)

func compileYAML(t *testing.T, src string, opts Options) *Result {
	t.Helper()
	doc, err := styletree.Parse([]byte(src), "styles.yaml")
	require.NoError(t, err)
	res, err := Compile(doc, opts)
	require.NoError(t, err)
	return res
}

func classOf(t *testing.T, res *Result, ns, key string) *string {
	t.Helper()
	obj, ok := res.Namespaces.Get(ns)
	require.True(t, ok, "namespace %s", ns)
	cls, ok := obj.Lookup(key)
	require.True(t, ok, "key %s", key)
	return cls
}

func ruleFor(t *testing.T, res *Result, class string) Rule {
	t.Helper()
	for _, r := range res.Rules {
		if r.ClassName == class {
			return r
		}
	}
	t.Fatalf("no rule for %s", class)
	return Rule{}
}

func TestHash(t *testing.T) {
	tests := map[string]string{
		"":                  "ph554m",
		"a":                 "acqbnw",
		"<>colorrednull":    "1e2nbdu",
		"<>colorblue:hover": "17z2mba",
	}
	for in, want := range tests {
		assert.Equal(t, want, Hash(in), in)
	}
}

func TestCreateSimple(t *testing.T) {
	res := compileYAML(t, "create:\n  foo:\n    color: red\n", DefaultOptions())

	cls := classOf(t, res, "foo", "color")
	require.NotNil(t, cls)
	assert.Equal(t, "x1e2nbdu", *cls)

	require.Len(t, res.Rules, 1)
	r := res.Rules[0]
	assert.Equal(t, ".x1e2nbdu{color:red}", r.LTR())
	assert.Empty(t, r.RTL())
	assert.Equal(t, float64(3000), r.Priority)
}

func TestCreateNumberMatchesString(t *testing.T) {
	src := "create:\n" +
		"  n:\n    opacity: 0.5\n    transitionDuration: 500\n" +
		"  s:\n    opacity: '0.5'\n    transitionDuration: '500ms'\n"
	res := compileYAML(t, src, DefaultOptions())

	for _, key := range []string{"opacity", "transition-duration"} {
		n := classOf(t, res, "n", key)
		s := classOf(t, res, "s", key)
		require.NotNil(t, n)
		require.NotNil(t, s)
		assert.Equal(t, *s, *n, key)
	}

	require.Len(t, res.Rules, 2)
	assert.Contains(t, res.Rules[0].LTR(), "{opacity:.5}")
	assert.Contains(t, res.Rules[1].LTR(), "{transition-duration:.5s}")
}

func TestCreateConditions(t *testing.T) {
	src := `
create:
  card:
    color:
      default: red
      ':hover': blue
    width:
      default: 10
      '@media (max-width: 600px)': 5
    height:
      '@media (width > 400px)': 5
    ':hover':
      color: blue
`
	res := compileYAML(t, src, DefaultOptions())

	assert.Equal(t, "x1e2nbdu x17z2mba", *classOf(t, res, "card", "color"))
	assert.Equal(t, "x1fsd2vl x1gsj9oj", *classOf(t, res, "card", "width"))
	assert.Equal(t, "x17z2mba", *classOf(t, res, "card", ":hover_color"))

	hover := ruleFor(t, res, "x17z2mba")
	assert.Equal(t, ".x17z2mba:hover{color:blue}", hover.LTR())
	assert.Equal(t, float64(3130), hover.Priority)

	media := ruleFor(t, res, "x1gsj9oj")
	assert.Equal(t, "@media (max-width: 600px){.x1gsj9oj.x1gsj9oj{width:5px}}", media.LTR())
	assert.Equal(t, float64(4200), media.Priority)

	height := classOf(t, res, "card", "height")
	require.NotNil(t, height)
	r := ruleFor(t, res, *height)
	assert.Equal(t, []string{"@media (min-width: 400.01px)"}, r.AtRules)

	// Same declaration twice: one rule
	count := 0
	for _, r := range res.Rules {
		if r.ClassName == "x17z2mba" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, res.Hits)
}

func TestCreateKeyOrderPreserved(t *testing.T) {
	res := compileYAML(t, "create:\n  a:\n    width: 1\n    color: red\n    zIndex: 2\n", DefaultOptions())
	obj, _ := res.Namespaces.Get("a")

	var keys []string
	for el := obj.Classes.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Key)
	}
	assert.Equal(t, []string{"width", "color", "z-index"}, keys)
}

func TestCreateFallbacks(t *testing.T) {
	src := "create:\n  a:\n    display: [block, flex]\n  b:\n    display: !firstThatWorks [flex, -webkit-box]\n"
	res := compileYAML(t, src, DefaultOptions())

	a := *classOf(t, res, "a", "display")
	assert.Equal(t, "xpnu6ha", a)
	assert.Equal(t, ".xpnu6ha{display:block;display:flex}", ruleFor(t, res, a).LTR())

	b := *classOf(t, res, "b", "display")
	assert.Equal(t, "xhkqi6k", b)
	assert.Equal(t, ".xhkqi6k{display:-webkit-box;display:flex}", ruleFor(t, res, b).LTR())
}

func TestCreatePseudoElementVariants(t *testing.T) {
	res := compileYAML(t, "create:\n  range:\n    '::thumb':\n      color: red\n", DefaultOptions())

	cls := *classOf(t, res, "range", "::thumb_color")
	assert.Equal(t, "x1ephf8l", cls)
	r := ruleFor(t, res, cls)
	assert.Equal(t, ".x1ephf8l::-webkit-slider-thumb, .x1ephf8l::-moz-range-thumb, .x1ephf8l::-ms-thumb{color:red}", r.LTR())
	assert.Equal(t, float64(8000), r.Priority)
}

func TestCreateApplicationOrderResets(t *testing.T) {
	res := compileYAML(t, "create:\n  a:\n    padding: 5\n    paddingTop: 2\n", DefaultOptions())

	assert.Equal(t, "x14odnwx", *classOf(t, res, "a", "padding"))
	assert.NotNil(t, classOf(t, res, "a", "padding-top"))
	assert.Nil(t, classOf(t, res, "a", "padding-left"))
	assert.Equal(t, float64(1000), ruleFor(t, res, "x14odnwx").Priority)
}

func TestCreateLegacyExpansion(t *testing.T) {
	opts := DefaultOptions()
	opts.StyleResolution = shorthands.LegacyExpandShorthands
	res := compileYAML(t, "create:\n  a:\n    padding: 5\n  b:\n    paddingStart: 10\n", opts)

	assert.Equal(t, "x123j3cw", *classOf(t, res, "a", "padding-top"))
	end := *classOf(t, res, "a", "padding-end")
	assert.Equal(t, "x1mpkggp", end)
	r := ruleFor(t, res, end)
	assert.Equal(t, ".x1mpkggp{padding-right:5px}", r.LTR())
	assert.Equal(t, ".x1mpkggp{padding-left:5px}", r.RTL())

	assert.Equal(t, "x1sln4lm", *classOf(t, res, "b", "padding-start"))
}

func TestCreateNullValues(t *testing.T) {
	src := "create:\n  revert:\n    color: null\n  partial:\n    color:\n      default: null\n      ':hover': blue\n"
	res := compileYAML(t, src, DefaultOptions())

	assert.Nil(t, classOf(t, res, "revert", "color"))
	assert.Equal(t, "x17z2mba", *classOf(t, res, "partial", "color"))
	assert.Len(t, res.Rules, 1)
}

func TestCreateDebugAndDev(t *testing.T) {
	opts := DefaultOptions()
	opts.Debug = true
	opts.Dev = true
	opts.FileName = "src/components/Button.styles.yaml"

	res := compileYAML(t, "create:\n  foo:\n    color: red\n", opts)

	assert.Equal(t, "color-x1e2nbdu", *classOf(t, res, "foo", "color"))
	obj, _ := res.Namespaces.Get("foo")
	assert.Equal(t, "button__foo", obj.DevClass)
	require.Len(t, res.Injections, 1)
	assert.Equal(t, `inject(".color-x1e2nbdu{color:red}", 3000)`, res.Injections[0])
}

func TestCreateVendorPrefixes(t *testing.T) {
	opts := DefaultOptions()
	opts.VendorPrefixes = true
	res := compileYAML(t, "create:\n  a:\n    userSelect: none\n", opts)

	require.Len(t, res.Rules, 1)
	assert.Contains(t, res.Rules[0].LTR(), "{-webkit-user-select:none;user-select:none}")
}

func TestCreateDynamic(t *testing.T) {
	res := compileYAML(t, "create:\n  sized(w, tint):\n    width: !param w\n    color: !param tint\n", DefaultOptions())

	obj, _ := res.Namespaces.Get("sized")
	assert.True(t, obj.Dynamic())
	require.Len(t, obj.Vars, 2)

	w := obj.Vars[0]
	assert.Equal(t, "w", w.Param)
	assert.Equal(t, "width", w.Property)
	assert.Equal(t, "--x"+Hash("styles.yaml//sized.w.width"), w.Name)

	cls := *classOf(t, res, "sized", "width")
	assert.Equal(t, ".x"+Hash("<>widthvar("+w.Name+")null")+"{width:var("+w.Name+")}", ruleFor(t, res, cls).LTR())
}

func TestCreateReferences(t *testing.T) {
	src := `
defineVars:
  tokens:
    primary: blue
keyframes:
  fade:
    from: {opacity: 0}
    to: {opacity: 1}
create:
  a:
    color: $tokens.primary
    animationName: $fade
`
	res := compileYAML(t, src, DefaultOptions())

	primary, ok := res.VarGroups[0].Ref("primary")
	require.True(t, ok)
	color := ruleFor(t, res, *classOf(t, res, "a", "color"))
	assert.Contains(t, color.LTR(), "{color:"+primary+"}")

	anim := ruleFor(t, res, *classOf(t, res, "a", "animation-name"))
	assert.Contains(t, anim.LTR(), "{animation-name:x18re5ia-B}")
}

func TestKeyframes(t *testing.T) {
	res := compileYAML(t, "keyframes:\n  fade:\n    from: {opacity: 0}\n    to: {opacity: 1}\n  slide:\n    from: {marginStart: 0}\n    to: {marginStart: 10}\n", DefaultOptions())

	name, ok := res.Animations.Get("fade")
	require.True(t, ok)
	assert.Equal(t, "x18re5ia-B", name)

	r := ruleFor(t, res, name)
	assert.Equal(t, "@keyframes x18re5ia-B{from{opacity:0;}to{opacity:1;}}", r.LTR())
	assert.Equal(t, float64(1), r.Priority)

	slide, _ := res.Animations.Get("slide")
	assert.Contains(t, ruleFor(t, res, slide).LTR(), "margin-inline-start:10px;")
}

func TestCompileIsIdempotent(t *testing.T) {
	src := "create:\n  a:\n    color: red\n    margin: {default: 4, ':focus': 8}\n"
	first := compileYAML(t, src, DefaultOptions())
	second := compileYAML(t, src, DefaultOptions())

	require.Equal(t, len(first.Rules), len(second.Rules))
	for i := range first.Rules {
		assert.Equal(t, first.Rules[i].LTR(), second.Rules[i].LTR())
	}
}

func TestCreateErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		key  diag.MessageKey
	}{
		{name: "nested pseudo classes", src: "create:\n  a:\n    ':hover':\n      ':active':\n        color: red\n", key: diag.IllegalNestedPseudo},
		{name: "at-rule inside pseudo class", src: "create:\n  a:\n    ':hover':\n      '@media print':\n        color: red\n", key: diag.IllegalNestedPseudo},
		{name: "nested pseudo elements", src: "create:\n  a:\n    color:\n      '::before':\n        '::after': red\n", key: diag.IllegalNestedPseudo},
		{name: "bad pseudo", src: "create:\n  a:\n    color:\n      ':1hover': red\n", key: diag.InvalidPseudo},
		{name: "unknown at-rule", src: "create:\n  a:\n    '@font-face':\n      color: red\n", key: diag.InvalidPseudoOrAtRule},
		{name: "condition key without colon", src: "create:\n  a:\n    color:\n      hover: red\n", key: diag.InvalidPseudoOrAtRule},
		{name: "invalid media", src: "create:\n  a:\n    color:\n      '@media (min-width: )': red\n", key: diag.InvalidMediaQuery},
		{name: "invalid supports", src: "create:\n  a:\n    color:\n      '@supports display grid': red\n", key: diag.InvalidSupportsQuery},
		{name: "param outside dynamic namespace", src: "create:\n  a:\n    width: !param w\n", key: diag.NonStaticValue},
		{name: "unknown param", src: "create:\n  a(x):\n    width: !param w\n", key: diag.NonStaticValue},
		{name: "object inside array", src: "create:\n  a:\n    width: [1, {x: 1}]\n", key: diag.IllegalPropArrayValue},
		{name: "unclosed function", src: "create:\n  a:\n    width: 'calc(1px + 2px'\n", key: diag.UnclosedFunction},
		{name: "unknown variable group", src: "create:\n  a:\n    color: $nope.primary\n", key: diag.UnknownNamespace},
		{name: "pseudo object is not a style", src: "create:\n  a:\n    ':hover': red\n", key: diag.IllegalPropValue},
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

func TestRuleJSON(t *testing.T) {
	r := Rule{ClassName: "x1", Priority: 3000, Selectors: []string{".x1"}, LTRDecls: "float:left", RTLDecls: "float:right"}
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `["x1", {"ltr": ".x1{float:left}", "rtl": ".x1{float:right}"}, 3000]`, string(data))

	r.RTLDecls = ""
	data, err = json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `["x1", {"ltr": ".x1{float:left}", "rtl": null}, 3000]`, string(data))
}

func TestNamespaceJSON(t *testing.T) {
	res := compileYAML(t, "create:\n  a:\n    width: 1\n    color: null\n", DefaultOptions())
	obj, _ := res.Namespaces.Get("a")

	data, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `{"width":"x`))
	assert.True(t, strings.HasSuffix(string(data), `,"color":null}`))
}

func TestRegistryDuplicates(t *testing.T) {
	reg := NewRegistry(nil)
	red := Rule{ClassName: "x1", Selectors: []string{".x1"}, LTRDecls: "color:red"}

	added, err := reg.Add(red)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = reg.Add(red)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 1, reg.Hits())

	blue := red
	blue.LTRDecls = "color:blue"
	assert.NoError(t, reg.Check(red))
	assert.True(t, errors.Is(reg.Check(blue), diag.Sentinel(diag.DuplicateClassName)))
	assert.Equal(t, 1, reg.Hits())

	_, err = reg.Add(blue)
	assert.True(t, errors.Is(err, diag.Sentinel(diag.DuplicateClassName)))
	assert.Equal(t, 1, reg.Len())
}
