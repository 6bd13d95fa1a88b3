package merge

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/atomcss/internal/compiler"
	"github.com/yacobolo/atomcss/internal/diag"
	"github.com/yacobolo/atomcss/internal/shorthands"
	"github.com/yacobolo/atomcss/internal/styletree"
)

const namespacesYAML = `
create:
  red:
    color: red
  blue:
    color: blue
  revert:
    color: null
  box:
    width: 10
    padding: 5
  sized(w):
    width: !param w
`

func compile(t *testing.T, src string, opts compiler.Options) (*compiler.Result, *styletree.Document) {
	t.Helper()
	doc, err := styletree.Parse([]byte(src), "styles.yaml")
	require.NoError(t, err)
	res, err := compiler.Compile(doc, opts)
	require.NoError(t, err)
	return res, doc
}

func site(t *testing.T, doc *styletree.Document, name string) styletree.MergeSite {
	t.Helper()
	for _, s := range doc.Merges {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("no merge site %s", name)
	return styletree.MergeSite{}
}

func mergeYAML(t *testing.T, merges string, copts compiler.Options, opts Options) *Output {
	t.Helper()
	res, doc := compile(t, namespacesYAML+"merge:\n"+merges, copts)
	require.NotEmpty(t, doc.Merges)
	out, err := Merge(doc.Merges[0], res, opts)
	require.NoError(t, err)
	return out
}

func TestMergeLastWins(t *testing.T) {
	tests := []struct {
		name string
		args string
		want string
	}{
		{name: "single", args: "[red]", want: "x1e2nbdu"},
		{name: "override", args: "[red, blue]", want: "x" + compiler.Hash("<>colorbluenull")},
		{name: "reset then set", args: "[revert, red]", want: "x1e2nbdu"},
		{name: "set then reset", args: "[red, revert]", want: ""},
		{name: "null argument", args: "[red, null]", want: "x1e2nbdu"},
		{name: "key keeps first position", args: "[red, box, blue]", want: "x" + compiler.Hash("<>colorbluenull") + " x1fsd2vl x14odnwx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := mergeYAML(t, "  s: "+tt.args+"\n", compiler.DefaultOptions(), Options{})
			require.NotNil(t, out.Props)
			assert.Equal(t, tt.want, out.Props.ClassName)
			assert.Nil(t, out.Props.Style)
		})
	}
}

func TestMergeConditionalTable(t *testing.T) {
	out := mergeYAML(t, "  s:\n    - red\n    - isBlue && blue\n    - 'isReset ? revert : box'\n", compiler.DefaultOptions(), Options{})

	require.Nil(t, out.Props)
	assert.Equal(t, []string{"isBlue", "isReset"}, out.Conditions)
	require.Len(t, out.Table, 4)

	blue := "x" + compiler.Hash("<>colorbluenull")
	assert.Equal(t, "x1e2nbdu x1fsd2vl x14odnwx", out.Table[0].ClassName)
	assert.Equal(t, blue+" x1fsd2vl x14odnwx", out.Table[1].ClassName)
	assert.Equal(t, "", out.Table[2].ClassName)
	assert.Equal(t, "", out.Table[3].ClassName)
}

func TestMergeNegatedCondition(t *testing.T) {
	out := mergeYAML(t, "  s: ['!off && red']\n", compiler.DefaultOptions(), Options{})

	assert.Equal(t, []string{"off"}, out.Conditions)
	require.Len(t, out.Table, 2)
	assert.Equal(t, "x1e2nbdu", out.Table[0].ClassName)
	assert.Equal(t, "", out.Table[1].ClassName)
}

func TestMergeStaticConditions(t *testing.T) {
	merges := "  s: ['true && red', 'false && blue']\n"

	out := mergeYAML(t, merges, compiler.DefaultOptions(), Options{})
	require.NotNil(t, out.Props)
	assert.Equal(t, "x1e2nbdu", out.Props.ClassName)

	out = mergeYAML(t, merges, compiler.DefaultOptions(), Options{GenConditionalClasses: true})
	require.Nil(t, out.Props)
	assert.Equal(t, []string{"true", "false"}, out.Conditions)
	require.Len(t, out.Table, 4)
	for _, p := range out.Table {
		assert.Equal(t, "x1e2nbdu", p.ClassName)
	}
}

func TestMergeDeferred(t *testing.T) {
	out := mergeYAML(t, "  s: [red, 'isBlue && blue']\n", compiler.DefaultOptions(), Options{SkipConditional: true})

	require.NotNil(t, out.Deferred)
	assert.Nil(t, out.Props)
	assert.Empty(t, out.Table)
	assert.Equal(t, []string{"isBlue"}, out.Deferred.Conditions)

	assert.Equal(t, "x1e2nbdu", out.Deferred.Evaluate(nil).ClassName)
	assert.Equal(t, "x"+compiler.Hash("<>colorbluenull"), out.Deferred.Evaluate(map[string]bool{"isBlue": true}).ClassName)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"deferred":{"conditions":["isBlue"],"args":[{"then":"red"},{"if":"isBlue","then":"blue"}]}}`, string(data))
}

func TestMergeDevAndDebug(t *testing.T) {
	copts := compiler.DefaultOptions()
	copts.Dev = true
	copts.Debug = true
	copts.FileName = "styles.yaml"

	out := mergeYAML(t, "  s: [red, blue]\n", copts, OptionsFrom(copts))

	require.NotNil(t, out.Props)
	classes := strings.Fields(out.Props.ClassName)
	require.Len(t, classes, 3)
	assert.Equal(t, []string{"styles__red", "styles__blue"}, classes[:2])
	assert.True(t, strings.HasPrefix(classes[2], "color-x"))

	sources := strings.Split(out.Props.DataStyleSrc, "; ")
	require.Len(t, sources, 2)
	for _, src := range sources {
		assert.True(t, strings.HasPrefix(src, "styles.yaml:"), src)
	}
}

func TestMergeInlineVars(t *testing.T) {
	res, doc := compile(t, namespacesYAML+"merge:\n  s: ['sized(10)']\n  t: ['sized(50%)']\n", compiler.DefaultOptions())
	obj, ok := res.Lookup("sized")
	require.True(t, ok)
	name := obj.Vars[0].Name

	out, err := Merge(site(t, doc, "s"), res, Options{})
	require.NoError(t, err)
	require.NotNil(t, out.Props.Style)
	v, ok := out.Props.Style.Get(name)
	require.True(t, ok)
	assert.Equal(t, "10px", v)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"className":"`+out.Props.ClassName+`","style":{"`+name+`":"10px"}}`, string(data))

	out, err = Merge(site(t, doc, "t"), res, Options{})
	require.NoError(t, err)
	v, _ = out.Props.Style.Get(name)
	assert.Equal(t, "50%", v)
}

func TestMergeThemeArgument(t *testing.T) {
	src := `
defineVars:
  tokens:
    primary: blue
createTheme:
  dark:
    vars: tokens
    values:
      primary: black
` + namespacesYAML + "merge:\n  s: [red, dark]\n"
	res, doc := compile(t, src, compiler.DefaultOptions())

	out, err := Merge(doc.Merges[0], res, Options{})
	require.NoError(t, err)
	assert.Equal(t, "x1e2nbdu "+res.Themes[0].ClassName, out.Props.ClassName)
}

func TestMergeLegacyLonghandOverride(t *testing.T) {
	copts := compiler.DefaultOptions()
	copts.StyleResolution = shorthands.LegacyExpandShorthands
	src := "create:\n  a:\n    padding: 5\n  b:\n    paddingStart: 10\nmerge:\n  s: [a, b]\n"
	res, doc := compile(t, src, copts)

	out, err := Merge(doc.Merges[0], res, Options{})
	require.NoError(t, err)

	classes := strings.Fields(out.Props.ClassName)
	require.Len(t, classes, 4)
	assert.Equal(t, "x123j3cw", classes[0])
	assert.Equal(t, "x1mpkggp", classes[1])
	assert.Equal(t, "x1sln4lm", classes[3])
}

func TestMergeErrors(t *testing.T) {
	tests := []struct {
		name   string
		merges string
		key    diag.MessageKey
	}{
		{name: "unknown namespace", merges: "  s: [missing]\n", key: diag.UnknownNamespace},
		{name: "missing arguments", merges: "  s: [sized]\n", key: diag.IllegalArgumentLength},
		{name: "too many arguments", merges: "  s: ['sized(1, 2)']\n", key: diag.IllegalArgumentLength},
		{name: "arguments to static namespace", merges: "  s: ['red(1)']\n", key: diag.IllegalArgumentLength},
		{name: "unknown else branch", merges: "  s: ['c ? red : nope']\n", key: diag.UnknownNamespace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, doc := compile(t, namespacesYAML+"merge:\n"+tt.merges, compiler.DefaultOptions())
			_, err := Merge(doc.Merges[0], res, Options{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, diag.Sentinel(tt.key)), "got %v", err)
		})
	}
}
