package shorthands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/atomcss/internal/styletree"
)

// flat renders expansions as property=value pairs, "null" for resets
func flat(t *testing.T, exps []Expansion) []string {
	t.Helper()
	out := make([]string, len(exps))
	for i, e := range exps {
		switch {
		case e.Value == nil:
			out[i] = e.Property + "=null"
		case e.Value.Kind == styletree.Number:
			out[i] = e.Property + "=#"
		case e.Value.Kind == styletree.Array:
			var items []string
			for _, it := range e.Value.Items {
				items = append(items, it.Str)
			}
			out[i] = e.Property + "=" + joinItems(items)
		default:
			out[i] = e.Property + "=" + e.Value.Str
		}
	}
	return out
}

func joinItems(items []string) string {
	s := "["
	for i, it := range items {
		if i > 0 {
			s += "|"
		}
		s += it
	}
	return s + "]"
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		s, err := New(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
	}

	s, err := New("")
	require.NoError(t, err)
	assert.Equal(t, ApplicationOrder, s.Name())

	_, err = New("bogus")
	assert.Error(t, err)
}

func TestLegacyExpand(t *testing.T) {
	s, err := New(LegacyExpandShorthands)
	require.NoError(t, err)

	tests := []struct {
		name     string
		property string
		value    *styletree.Node
		want     []string
	}{
		{
			name:     "number padding",
			property: "padding",
			value:    styletree.Num(5),
			want:     []string{"padding-top=#", "padding-end=#", "padding-bottom=#", "padding-start=#"},
		},
		{
			name:     "two values",
			property: "margin",
			value:    styletree.Str("1px 2px"),
			want:     []string{"margin-top=1px", "margin-end=2px", "margin-bottom=1px", "margin-start=2px"},
		},
		{
			name:     "three values",
			property: "margin",
			value:    styletree.Str("1px 2px 3px"),
			want:     []string{"margin-top=1px", "margin-end=2px", "margin-bottom=3px", "margin-start=2px"},
		},
		{
			name:     "functions stay whole",
			property: "padding",
			value:    styletree.Str("calc(1px + 2px) 0"),
			want:     []string{"padding-top=calc(1px + 2px)", "padding-end=0", "padding-bottom=calc(1px + 2px)", "padding-start=0"},
		},
		{
			name:     "important kept",
			property: "padding",
			value:    styletree.Str("4px !important"),
			want: []string{
				"padding-top=4px !important", "padding-end=4px !important",
				"padding-bottom=4px !important", "padding-start=4px !important",
			},
		},
		{
			name:     "radius corners",
			property: "border-radius",
			value:    styletree.Str("1px 2px"),
			want: []string{
				"border-top-start-radius=1px", "border-top-end-radius=2px",
				"border-bottom-end-radius=1px", "border-bottom-start-radius=2px",
			},
		},
		{
			name:     "horizontal pair",
			property: "margin-horizontal",
			value:    styletree.Str("auto"),
			want:     []string{"margin-start=auto", "margin-end=auto"},
		},
		{
			name:     "gap with two values",
			property: "gap",
			value:    styletree.Str("1px 2px"),
			want:     []string{"row-gap=1px", "column-gap=2px"},
		},
		{
			name:     "logical longhand renamed",
			property: "padding-inline-start",
			value:    styletree.Str("3px"),
			want:     []string{"padding-start=3px"},
		},
		{
			name:     "null resets every longhand",
			property: "padding",
			value:    styletree.NewNull(),
			want:     []string{"padding-top=null", "padding-end=null", "padding-bottom=null", "padding-start=null"},
		},
		{
			name:     "too many values kept",
			property: "gap",
			value:    styletree.Str("1px 2px 3px"),
			want:     []string{"gap=1px 2px 3px"},
		},
		{
			name:     "fallback arrays regrouped",
			property: "margin-vertical",
			value:    styletree.NewArray(styletree.Str("1px"), styletree.Str("1vh 2vh")),
			want:     []string{"margin-top=[1px|1vh]", "margin-bottom=[1px|2vh]"},
		},
		{
			name:     "plain property",
			property: "color",
			value:    styletree.Str("red"),
			want:     []string{"color=red"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Expand(tt.property, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, flat(t, got))
		})
	}
}

func TestLegacyLaterLonghandSharesKey(t *testing.T) {
	s, _ := New(LegacyExpandShorthands)

	padding, err := s.Expand("padding", styletree.Num(5))
	require.NoError(t, err)
	start, err := s.Expand("padding-start", styletree.Num(10))
	require.NoError(t, err)

	require.Len(t, start, 1)
	var props []string
	for _, e := range padding {
		props = append(props, e.Property)
	}
	assert.Contains(t, props, start[0].Property)
}

func TestApplicationOrder(t *testing.T) {
	s, _ := New(ApplicationOrder)

	got, err := s.Expand("gap", styletree.Str("4px"))
	require.NoError(t, err)
	assert.Equal(t, []string{"gap=4px", "row-gap=null", "column-gap=null"}, flat(t, got))

	got, err = s.Expand("margin-start", styletree.Str("4px"))
	require.NoError(t, err)
	assert.Equal(t, []string{"margin-inline-start=4px"}, flat(t, got))

	got, err = s.Expand("padding", styletree.Num(1))
	require.NoError(t, err)
	assert.Equal(t, "padding=#", flat(t, got)[0])
	assert.Len(t, got, 11)
	assert.Contains(t, flat(t, got), "padding-inline-start=null")

	got, err = s.Expand("color", styletree.NewNull())
	require.NoError(t, err)
	assert.Equal(t, []string{"color=null"}, flat(t, got))
}

func TestPropertySpecificity(t *testing.T) {
	s, _ := New(PropertySpecificity)

	got, err := s.Expand("padding", styletree.Str("1px 2px"))
	require.NoError(t, err)
	assert.Equal(t, []string{"padding=1px 2px"}, flat(t, got))

	got, err = s.Expand("padding-horizontal", styletree.Num(3))
	require.NoError(t, err)
	assert.Equal(t, []string{"padding-inline=#"}, flat(t, got))
}

func TestPriority(t *testing.T) {
	tests := map[string]float64{
		"--gap":               PriorityCustomProperty,
		"margin":              PriorityShorthandOfShorthands,
		"border":              PriorityShorthandOfShorthands,
		"margin-inline":       PriorityShorthandOfLonghands,
		"border-top":          PriorityShorthandOfLonghands,
		"gap":                 PriorityShorthandOfLonghands,
		"margin-inline-start": PriorityLogicalLonghand,
		"color":               PriorityLogicalLonghand,
		"margin-top":          PriorityPhysicalLonghand,
		"width":               PriorityPhysicalLonghand,
		"border-left-color":   PriorityPhysicalLonghand,
	}
	for prop, want := range tests {
		assert.Equal(t, want, Priority(prop), prop)
	}
}
