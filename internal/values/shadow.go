package values

import (
	"strings"

	"github.com/yacobolo/atomcss/internal/parser"
)

// Shadow is one box-shadow or text-shadow layer
type Shadow struct {
	OffsetX Length
	OffsetY Length
	Blur    *Length
	Spread  *Length
	Color   Value // nil when absent
	Inset   bool
}

func (Shadow) isValue() {}

// String prints "[inset] x y [blur [spread]] [color]"
func (v Shadow) String() string {
	var parts []string
	if v.Inset {
		parts = append(parts, "inset")
	}
	parts = append(parts, v.OffsetX.String(), v.OffsetY.String())
	if v.Blur != nil {
		parts = append(parts, v.Blur.String())
	}
	if v.Spread != nil {
		parts = append(parts, v.Spread.String())
	}
	if v.Color != nil {
		parts = append(parts, v.Color.String())
	}
	return strings.Join(parts, " ")
}

// Mirrored returns the shadow with its horizontal offset negated
func (v Shadow) Mirrored() Shadow {
	v.OffsetX.Value = -v.OffsetX.Value
	return v
}

// ShadowList is a comma separated list of shadows
type ShadowList struct {
	Shadows []Shadow
}

func (ShadowList) isValue() {}

// String prints the shadows separated by ", "
func (v ShadowList) String() string {
	parts := make([]string, len(v.Shadows))
	for i, s := range v.Shadows {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}

// Mirrored negates the horizontal offset of every shadow
func (v ShadowList) Mirrored() ShadowList {
	out := ShadowList{Shadows: make([]Shadow, len(v.Shadows))}
	for i, s := range v.Shadows {
		out.Shadows[i] = s.Mirrored()
	}
	return out
}

// ShadowParser parses a single shadow. The inset keyword and the colour may
// appear before or after the lengths.
func ShadowParser() parser.Parser[Shadow] {
	inset := parser.Keyword("inset")
	lengths := parser.Where(
		parser.SeparatedBy(LengthParser(), parser.Whitespace()),
		func(ls []Length) bool { return len(ls) >= 2 && len(ls) <= 4 },
		"2 to 4 lengths",
	)

	return parser.Map(
		parser.Seq4(
			parser.Optional(parser.Skip(inset, parser.Whitespace())),
			parser.Optional(parser.Skip(ColorParser(), parser.Whitespace())),
			lengths,
			parser.Seq2(
				parser.Optional(parser.Then(parser.Whitespace(), ColorParser())),
				parser.Optional(parser.Then(parser.Whitespace(), inset)),
			),
		),
		func(t parser.Tuple4[*string, *Value, []Length, parser.Tuple2[*Value, *string]]) Shadow {
			s := Shadow{
				OffsetX: t.Third[0],
				OffsetY: t.Third[1],
				Inset:   t.First != nil || t.Fourth.Second != nil,
			}
			if len(t.Third) > 2 {
				blur := t.Third[2]
				s.Blur = &blur
			}
			if len(t.Third) > 3 {
				spread := t.Third[3]
				s.Spread = &spread
			}
			switch {
			case t.Second != nil:
				s.Color = *t.Second
			case t.Fourth.First != nil:
				s.Color = *t.Fourth.First
			}
			return s
		},
	)
}

// ShadowListParser parses comma separated shadows
func ShadowListParser() parser.Parser[ShadowList] {
	return parser.Map(
		parser.SeparatedBy(ShadowParser(), comma()),
		func(ss []Shadow) ShadowList { return ShadowList{Shadows: ss} },
	)
}

// ParseShadowList parses a full box-shadow/text-shadow value
func ParseShadowList(s string) (ShadowList, error) {
	return parser.ParseToEnd(ShadowListParser(), s)
}
