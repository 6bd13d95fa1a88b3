// Package rtl turns direction-dependent declarations into a physical
// left-to-right declaration and, when it differs, a right-to-left override.
package rtl

import (
	"strings"

	"github.com/yacobolo/atomcss/internal/normalize"
	"github.com/yacobolo/atomcss/internal/values"
)

// Options controls optional flips
type Options struct {
	// LegacyValueFlipping mirrors horizontal shadow offsets in RTL
	LegacyValueFlipping bool
}

// physical maps non-standard logical property names to their LTR and RTL
// physical properties
var physical = map[string][2]string{
	"start":                      {"left", "right"},
	"end":                        {"right", "left"},
	"margin-start":               {"margin-left", "margin-right"},
	"margin-end":                 {"margin-right", "margin-left"},
	"padding-start":              {"padding-left", "padding-right"},
	"padding-end":                {"padding-right", "padding-left"},
	"border-start":               {"border-left", "border-right"},
	"border-end":                 {"border-right", "border-left"},
	"border-start-width":         {"border-left-width", "border-right-width"},
	"border-end-width":           {"border-right-width", "border-left-width"},
	"border-start-color":         {"border-left-color", "border-right-color"},
	"border-end-color":           {"border-right-color", "border-left-color"},
	"border-start-style":         {"border-left-style", "border-right-style"},
	"border-end-style":           {"border-right-style", "border-left-style"},
	"border-top-start-radius":    {"border-top-left-radius", "border-top-right-radius"},
	"border-top-end-radius":      {"border-top-right-radius", "border-top-left-radius"},
	"border-bottom-start-radius": {"border-bottom-left-radius", "border-bottom-right-radius"},
	"border-bottom-end-radius":   {"border-bottom-right-radius", "border-bottom-left-radius"},
	"scroll-margin-start":        {"scroll-margin-left", "scroll-margin-right"},
	"scroll-margin-end":          {"scroll-margin-right", "scroll-margin-left"},
	"scroll-padding-start":       {"scroll-padding-left", "scroll-padding-right"},
	"scroll-padding-end":         {"scroll-padding-right", "scroll-padding-left"},
}

// sideKeywords flip for properties that take a physical side as value
var sideKeywords = map[string][2]string{
	"start":        {"left", "right"},
	"inline-start": {"left", "right"},
	"end":          {"right", "left"},
	"inline-end":   {"right", "left"},
}

var sideProperties = map[string]bool{
	"float": true,
	"clear": true,
}

// cursors swap horizontally in RTL
var cursors = map[string]string{
	"e-resize":    "w-resize",
	"w-resize":    "e-resize",
	"ne-resize":   "nw-resize",
	"nw-resize":   "ne-resize",
	"se-resize":   "sw-resize",
	"sw-resize":   "se-resize",
	"nesw-resize": "nwse-resize",
	"nwse-resize": "nesw-resize",
}

// Transform returns the LTR declaration for d and the RTL override, which
// is nil when both directions render the same
func Transform(d normalize.Declaration, opts Options) (normalize.Declaration, *normalize.Declaration) {
	if strings.HasPrefix(d.Property, "--") {
		return d, nil
	}

	ltr, rtl := d, d

	if props, ok := physical[d.Property]; ok {
		ltr.Property, rtl.Property = props[0], props[1]
	}

	switch {
	case sideProperties[d.Property]:
		if sides, ok := sideKeywords[d.Value]; ok {
			ltr.Value, rtl.Value = sides[0], sides[1]
		}
	case d.Property == "cursor":
		if flipped, ok := cursors[d.Value]; ok {
			rtl.Value = flipped
		}
	case d.Property == "background-position":
		ltr.Value, rtl.Value = flipWords(d.Value)
	case opts.LegacyValueFlipping && (d.Property == "box-shadow" || d.Property == "text-shadow"):
		if mirrored, ok := mirrorShadows(d.Value); ok {
			rtl.Value = mirrored
		}
	}

	if rtl == ltr {
		return ltr, nil
	}
	return ltr, &rtl
}

// flipWords rewrites start/end words of a position list into left/right
func flipWords(value string) (string, string) {
	words := strings.Fields(value)
	ltr := make([]string, len(words))
	rtl := make([]string, len(words))
	for i, w := range words {
		ltr[i], rtl[i] = w, w
		if sides, ok := sideKeywords[w]; ok {
			ltr[i], rtl[i] = sides[0], sides[1]
		}
	}
	return strings.Join(ltr, " "), strings.Join(rtl, " ")
}

// mirrorShadows negates the horizontal offset of every shadow. Values that
// are not plain shadow lists, such as var() references, are left alone.
func mirrorShadows(value string) (string, bool) {
	list, err := values.ParseShadowList(value)
	if err != nil {
		return "", false
	}
	return list.Mirrored().String(), true
}
