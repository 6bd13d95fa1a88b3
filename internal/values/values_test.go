package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/atomcss/internal/parser"
)

func TestParseComponents(t *testing.T) {
	tests := []struct {
		input string
		want  Value
	}{
		{input: "400px", want: Length{Value: 400, Unit: "px"}},
		{input: "-.5EM", want: Length{Value: -0.5, Unit: "em"}},
		{input: "45deg", want: Angle{Value: 45, Unit: "deg"}},
		{input: "200ms", want: Time{Value: 200, Unit: "ms"}},
		{input: "2dppx", want: Resolution{Value: 2, Unit: "dppx"}},
		{input: "1fr", want: Flex{Value: 1}},
		{input: "5foo", want: Dimension{Value: 5, Unit: "foo"}},
		{input: "50%", want: Percentage{Value: 50}},
		{input: "1.5", want: Number{Value: 1.5}},
		{input: "16/9", want: Fraction{Numerator: 16, Denominator: 9}},
		{input: "16 / 9", want: Fraction{Numerator: 16, Denominator: 9}},
		{input: "#FFF", want: HexColor{Hex: "fff"}},
		{input: "Red", want: NamedColor{Name: "red"}},
		{input: "revert", want: CSSWideKeyword{Name: "revert"}},
		{input: "auto", want: Ident{Name: "auto"}},
		{input: `"hi"`, want: QuotedString{Text: "hi"}},
		{input: "var(--x)", want: Var{Name: "--x"}},
		{input: "var(--x, 4px)", want: Var{Name: "--x", Fallback: Length{Value: 4, Unit: "px"}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValueStrings(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "rgb(0, 50%, 1)", want: "rgb(0,50%,1)"},
		{input: "rgb(0 128 255 / 50%)", want: "rgb(0 128 255 / 50%)"},
		{input: "hsl(120deg 100% 50%)", want: "hsl(120deg 100% 50%)"},
		{input: "calc(100% - 10px)", want: "calc(100% - 10px)"},
		{input: "calc( (1px + 2px) * 3 )", want: "calc((1px + 2px) * 3)"},
		{input: "translateX(10px) rotate(45deg)", want: "translateX(10px) rotate(45deg)"},
		{input: "1px  solid   red", want: "1px solid red"},
		{input: "a ,b", want: "a, b"},
		{input: "minmax(10px,1fr)", want: "minmax(10px, 1fr)"},
		{input: "var(--x, 1px 2px)", want: "var(--x, 1px 2px)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestCalcStructure(t *testing.T) {
	got, err := parser.ParseToEnd(CalcParser(), "calc(1px + 2px * 3)")
	require.NoError(t, err)

	assert.Equal(t, Calc{Expr: CalcOperation{
		Left:  Length{Value: 1, Unit: "px"},
		Op:    '+',
		Right: CalcOperation{Left: Length{Value: 2, Unit: "px"}, Op: '*', Right: Number{Value: 3}},
	}}, got)
}

func TestCalcRequiresSpacesAroundMinus(t *testing.T) {
	_, err := parser.ParseToEnd(CalcParser(), "calc(1px -2px)")
	assert.Error(t, err)
}

func TestTransformList(t *testing.T) {
	got, err := parser.ParseToEnd(TransformListParser(), "translate(1px, 2px) scale(2)")
	require.NoError(t, err)
	require.Len(t, got.Functions, 2)
	assert.Equal(t, "translate", got.Functions[0].Name)
	assert.Equal(t, []Value{Length{Value: 1, Unit: "px"}, Length{Value: 2, Unit: "px"}}, got.Functions[0].Args)
	assert.Equal(t, "scale(2)", got.Functions[1].String())
}

func TestShadowList(t *testing.T) {
	got, err := ParseShadowList("1px 2px 3px red, inset 0 0 4px 1px #000")
	require.NoError(t, err)
	require.Len(t, got.Shadows, 2)

	first := got.Shadows[0]
	assert.Equal(t, Length{Value: 1, Unit: "px"}, first.OffsetX)
	require.NotNil(t, first.Blur)
	assert.Nil(t, first.Spread)
	assert.Equal(t, NamedColor{Name: "red"}, first.Color)

	second := got.Shadows[1]
	assert.True(t, second.Inset)
	require.NotNil(t, second.Spread)

	assert.Equal(t, "-1px 2px 3px red, inset 0 0 4px 1px #000", got.Mirrored().String())
}

func TestShadowColorFirst(t *testing.T) {
	got, err := ParseShadowList("red 1px 1px")
	require.NoError(t, err)
	assert.Equal(t, "1px 1px red", got.String())
}

func TestParseRejects(t *testing.T) {
	for _, input := range []string{"rgb(1, 2)", "calc(1px +)", "var(x)", "#ggg"} {
		t.Run(input, func(t *testing.T) {
			v, err := Parse(input)
			// unknown functions still parse generically, but never as the specific node
			if err == nil {
				_, isColor := v.(ColorFunction)
				_, isCalc := v.(Calc)
				_, isVar := v.(Var)
				_, isHex := v.(HexColor)
				assert.False(t, isColor || isCalc || isVar || isHex, "parsed %q as %T", input, v)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	parts, err := SplitComponents("1px calc(2px + 3px)  var(--a, 1px 2px)")
	require.NoError(t, err)
	assert.Equal(t, []string{"1px", "calc(2px + 3px)", "var(--a, 1px 2px)"}, parts)

	parts, err = SplitCommas("a, rgb(1,2,3) ,b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "rgb(1,2,3)", "b"}, parts)

	parts, err = SplitComponents("   ")
	require.NoError(t, err)
	assert.Empty(t, parts)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "400.01", FormatNumber(400+0.01))
	assert.Equal(t, "1279.99", FormatNumber(1280-0.01))
	assert.Equal(t, "0", FormatNumber(-0.0))
	assert.Equal(t, "-0.5", FormatNumber(-0.5))
}
