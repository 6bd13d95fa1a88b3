package shorthands

import (
	"strings"

	"github.com/yacobolo/atomcss/internal/styletree"
	"github.com/yacobolo/atomcss/internal/values"
)

// legacyExpand splits box shorthands into longhands. Horizontal sides use
// start and end so the rtl pass can flip them.
type legacyExpand struct{}

func (legacyExpand) Name() Name { return LegacyExpandShorthands }

// legacyAliases rewrite standard logical names to the direction-aware names
var legacyAliases = map[string]string{
	"margin-inline-start":  "margin-start",
	"margin-inline-end":    "margin-end",
	"margin-block-start":   "margin-top",
	"margin-block-end":     "margin-bottom",
	"padding-inline-start": "padding-start",
	"padding-inline-end":   "padding-end",
	"padding-block-start":  "padding-top",
	"padding-block-end":    "padding-bottom",
	"inset-inline-start":   "start",
	"inset-inline-end":     "end",
	"inset-block-start":    "top",
	"inset-block-end":      "bottom",
	"grid-gap":             "gap",
}

// boxSplit lists longhands in CSS 1-4 value order: top, right, bottom, left
var boxSplit = map[string][]string{
	"margin":        {"margin-top", "margin-end", "margin-bottom", "margin-start"},
	"padding":       {"padding-top", "padding-end", "padding-bottom", "padding-start"},
	"inset":         {"top", "end", "bottom", "start"},
	"border-width":  {"border-top-width", "border-end-width", "border-bottom-width", "border-start-width"},
	"border-style":  {"border-top-style", "border-end-style", "border-bottom-style", "border-start-style"},
	"border-color":  {"border-top-color", "border-end-color", "border-bottom-color", "border-start-color"},
	"border-radius": {"border-top-start-radius", "border-top-end-radius", "border-bottom-end-radius", "border-bottom-start-radius"},
}

// pairSplit lists longhands for one or two value shorthands
var pairSplit = map[string][]string{
	"margin-horizontal":  {"margin-start", "margin-end"},
	"margin-inline":      {"margin-start", "margin-end"},
	"margin-vertical":    {"margin-top", "margin-bottom"},
	"margin-block":       {"margin-top", "margin-bottom"},
	"padding-horizontal": {"padding-start", "padding-end"},
	"padding-inline":     {"padding-start", "padding-end"},
	"padding-vertical":   {"padding-top", "padding-bottom"},
	"padding-block":      {"padding-top", "padding-bottom"},
	"inset-inline":       {"start", "end"},
	"inset-block":        {"top", "bottom"},
	"gap":                {"row-gap", "column-gap"},
	"overflow":           {"overflow-x", "overflow-y"},
}

func (legacyExpand) Expand(property string, value *styletree.Node) ([]Expansion, error) {
	if to, ok := legacyAliases[property]; ok {
		property = to
	}

	targets, ok := boxSplit[property]
	if !ok {
		targets, ok = pairSplit[property]
	}
	if !ok {
		return []Expansion{{Property: property, Value: nullable(value)}}, nil
	}

	if value.IsNull() {
		out := make([]Expansion, len(targets))
		for i, t := range targets {
			out[i] = Expansion{Property: t}
		}
		return out, nil
	}

	if value.Kind == styletree.Array {
		return expandArray(property, targets, value)
	}

	parts, ok := split(value, len(targets))
	if !ok {
		return []Expansion{{Property: property, Value: value}}, nil
	}
	out := make([]Expansion, len(targets))
	for i, t := range targets {
		out[i] = Expansion{Property: t, Value: parts[i]}
	}
	return out, nil
}

// expandArray splits each fallback value and regroups them per longhand.
// If any fallback cannot be split the shorthand is kept as written.
func expandArray(property string, targets []string, value *styletree.Node) ([]Expansion, error) {
	columns := make([][]*styletree.Node, len(targets))
	for _, item := range value.Items {
		parts, ok := split(item, len(targets))
		if !ok {
			return []Expansion{{Property: property, Value: value}}, nil
		}
		for i := range targets {
			columns[i] = append(columns[i], parts[i])
		}
	}
	out := make([]Expansion, len(targets))
	for i, t := range targets {
		arr := styletree.NewArray(columns[i]...)
		arr.Loc = value.Loc
		out[i] = Expansion{Property: t, Value: arr}
	}
	return out, nil
}

// split distributes a value over n longhands using the CSS rules for one to
// n values. Numbers and params are copied to every side.
func split(value *styletree.Node, n int) ([]*styletree.Node, bool) {
	out := make([]*styletree.Node, n)

	switch value.Kind {
	case styletree.Number, styletree.Param:
		for i := range out {
			out[i] = value
		}
		return out, true
	case styletree.String:
	default:
		return nil, false
	}

	raw := strings.TrimSpace(value.Str)
	important := ""
	if strings.HasSuffix(raw, "!important") {
		raw = strings.TrimSpace(strings.TrimSuffix(raw, "!important"))
		important = " !important"
	}

	parts, err := values.SplitComponents(raw)
	if err != nil || len(parts) == 0 || len(parts) > n {
		return nil, false
	}

	var picked []string
	if n == 4 {
		picked = distribute4(parts)
	} else {
		picked = []string{parts[0], parts[len(parts)-1]}
	}

	for i, p := range picked {
		s := styletree.NewString(p + important)
		s.Loc = value.Loc
		out[i] = s
	}
	return out, true
}

// distribute4 applies the top, right, bottom, left rules for one to four
// component values
func distribute4(p []string) []string {
	switch len(p) {
	case 1:
		return []string{p[0], p[0], p[0], p[0]}
	case 2:
		return []string{p[0], p[1], p[0], p[1]}
	case 3:
		return []string{p[0], p[1], p[2], p[1]}
	}
	return []string{p[0], p[1], p[2], p[3]}
}
