// Package normalize canonicalises declaration values so that semantically
// equal styles hash to the same class name.
package normalize

import (
	"math"
	"strings"

	"github.com/yacobolo/atomcss/internal/diag"
	"github.com/yacobolo/atomcss/internal/tokens"
	"github.com/yacobolo/atomcss/internal/values"
)

var (
	angleUnits = map[string]bool{"deg": true, "grad": true, "rad": true, "turn": true}
	timeUnits  = map[string]bool{"s": true, "ms": true}
)

// camelValueProperties take property names as values
var camelValueProperties = map[string]bool{
	"transition-property": true,
	"will-change":         true,
}

// Value canonicalises the value of a dashed property:
//   - whitespace runs collapse to one space; none after '(' or before ')'
//     and none around ','
//   - zero lengths lose their unit (0px -> 0) outside functions; zero
//     angles become 0deg and zero times 0s
//   - times of 10ms or more are written in seconds (500ms -> .5s)
//   - leading zeros are dropped (0.5 -> .5) and numbers print in shortest form
//   - strings use double quotes
//   - property names given as values are dashed (backgroundColor -> background-color)
func Value(property, value string) (string, error) {
	toks, err := tokens.Tokenize(value)
	if err != nil {
		return "", diag.Wrap(diag.IllegalPropValue, diag.Location{}, value, err)
	}

	var (
		out   []string
		depth int
	)
	dashValues := camelValueProperties[property]

	for i, t := range toks {
		switch t.Kind {
		case tokens.Whitespace:
			if len(out) == 0 || i == len(toks)-1 {
				continue
			}
			prev := out[len(out)-1]
			next := toks[i+1]
			if prev == " " || strings.HasSuffix(prev, "(") || prev == "," ||
				next.Kind == tokens.RightParen || next.Kind == tokens.Comma {
				continue
			}
			out = append(out, " ")

		case tokens.Function, tokens.LeftParen:
			depth++
			out = append(out, t.Raw)

		case tokens.RightParen:
			if depth > 0 {
				depth--
			}
			out = append(out, t.Raw)

		case tokens.Number, tokens.Percentage, tokens.Dimension:
			out = append(out, number(t, depth > 0))

		case tokens.String:
			out = append(out, `"`+strings.ReplaceAll(t.Text, `"`, `\"`)+`"`)

		case tokens.Ident:
			if dashValues {
				out = append(out, Dashify(t.Text))
			} else {
				out = append(out, t.Raw)
			}

		default:
			out = append(out, t.Raw)
		}
	}

	if depth > 0 {
		return "", diag.New(diag.UnclosedFunction, diag.Location{}, value)
	}

	return strings.TrimSpace(strings.Join(out, "")), nil
}

// number rewrites one numeric token
func number(t tokens.Token, inFunction bool) string {
	unit := t.Unit
	n := t.Number
	lower := strings.ToLower(unit)

	if t.Kind == tokens.Dimension {
		switch {
		case lower == "ms" && n >= 10:
			n, unit = n/1000, "s"
		case n == 0 && timeUnits[lower]:
			return "0s"
		case n == 0 && angleUnits[lower]:
			return "0deg"
		case n == 0 && !inFunction && values.IsLengthUnit(lower):
			return "0"
		}
	}

	return formatNumber(n) + unit
}

// formatNumber prints n without a leading zero: .5, -.25
func formatNumber(n float64) string {
	s := values.FormatNumber(n)
	switch {
	case strings.HasPrefix(s, "0."):
		return s[1:]
	case strings.HasPrefix(s, "-0."):
		return "-" + s[2:]
	}
	return s
}

// unitless properties accept bare numbers
var unitless = map[string]bool{
	"animation-iteration-count": true,
	"aspect-ratio":              true,
	"border-image-outset":       true,
	"border-image-slice":        true,
	"border-image-width":        true,
	"column-count":              true,
	"fill-opacity":              true,
	"flex":                      true,
	"flex-grow":                 true,
	"flex-shrink":               true,
	"flood-opacity":             true,
	"font-size-adjust":          true,
	"font-weight":               true,
	"grid-area":                 true,
	"grid-column":               true,
	"grid-column-end":           true,
	"grid-column-start":         true,
	"grid-row":                  true,
	"grid-row-end":              true,
	"grid-row-start":            true,
	"initial-letter":            true,
	"line-clamp":                true,
	"line-height":               true,
	"math-depth":                true,
	"opacity":                   true,
	"order":                     true,
	"orphans":                   true,
	"scale":                     true,
	"shape-image-threshold":     true,
	"stop-opacity":              true,
	"stroke-dasharray":          true,
	"stroke-dashoffset":         true,
	"stroke-miterlimit":         true,
	"stroke-opacity":            true,
	"stroke-width":              true,
	"tab-size":                  true,
	"widows":                    true,
	"z-index":                   true,
	"zoom":                      true,
}

var timeProperties = map[string]bool{
	"animation-delay":     true,
	"animation-duration":  true,
	"transition-delay":    true,
	"transition-duration": true,
}

// DefaultUnit is the unit appended to bare numbers for a dashed property
func DefaultUnit(property string) string {
	switch {
	case strings.HasPrefix(property, "--"):
		return ""
	case unitless[property]:
		return ""
	case timeProperties[property]:
		return "ms"
	}
	return "px"
}

// Number converts a bare number for a dashed property, rounding to four
// decimals and appending the property's default unit. The result is
// canonicalised like a string value, so 0.5 and "0.5" agree.
func Number(property string, n float64) string {
	n = math.Round(n*10000) / 10000
	unit := DefaultUnit(property)
	if n == 0 && unit == "px" {
		return "0"
	}
	raw := values.FormatNumber(n) + unit
	if v, err := Value(property, raw); err == nil {
		return v
	}
	return raw
}

// Content quotes the value of the content property unless it is already a
// string, a function such as attr() or a keyword list
func Content(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return `""`
	}
	switch {
	case strings.HasPrefix(v, `"`) || strings.HasPrefix(v, "'"):
		return v
	case strings.Contains(v, "(") && strings.HasSuffix(v, ")"):
		return v
	case contentKeywords[v]:
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
}

var contentKeywords = map[string]bool{
	"normal": true, "none": true, "open-quote": true, "close-quote": true,
	"no-open-quote": true, "no-close-quote": true,
	"inherit": true, "initial": true, "unset": true, "revert": true, "revert-layer": true,
}

// Dashify converts camelCase to kebab-case: backgroundColor -> background-color.
// Vendor names with a leading capital gain a leading dash: WebkitAppearance
// -> -webkit-appearance. Custom properties are returned unchanged.
func Dashify(s string) string {
	if strings.HasPrefix(s, "--") {
		return s
	}
	var b strings.Builder
	if len(s) > 2 && strings.HasPrefix(s, "ms") && s[2] >= 'A' && s[2] <= 'Z' {
		b.WriteByte('-')
	}
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 || isVendor(s) {
				b.WriteByte('-')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isVendor(s string) bool {
	for _, p := range []string{"Webkit", "Moz", "Ms", "O"} {
		if strings.HasPrefix(s, p) && len(s) > len(p) && s[len(p)] >= 'A' && s[len(p)] <= 'Z' {
			return true
		}
	}
	return false
}
