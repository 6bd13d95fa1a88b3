package shorthands

import (
	"github.com/yacobolo/atomcss/internal/styletree"
)

// applicationOrder keeps a shorthand and resets every longhand it covers
type applicationOrder struct{}

func (applicationOrder) Name() Name { return ApplicationOrder }

func (applicationOrder) Expand(property string, value *styletree.Node) ([]Expansion, error) {
	property = Alias(property)
	out := []Expansion{{Property: property, Value: nullable(value)}}
	for _, longhand := range longhands[property] {
		out = append(out, Expansion{Property: longhand})
	}
	return out, nil
}

// Longhands returns the properties reset by the shorthand property
func Longhands(property string) []string {
	return longhands[property]
}

var (
	physicalSides = []string{"top", "right", "bottom", "left"}
	borderSides   = []string{
		"top", "right", "bottom", "left",
		"inline-start", "inline-end", "block-start", "block-end",
	}
	borderFacets = []string{"width", "style", "color"}
)

// longhands lists, per shorthand, the properties it overrides
var longhands = buildLonghands()

func buildLonghands() map[string][]string {
	m := map[string][]string{
		"gap":             {"row-gap", "column-gap"},
		"overflow":        {"overflow-x", "overflow-y"},
		"flex":            {"flex-grow", "flex-shrink", "flex-basis"},
		"flex-flow":       {"flex-direction", "flex-wrap"},
		"place-content":   {"align-content", "justify-content"},
		"place-items":     {"align-items", "justify-items"},
		"place-self":      {"align-self", "justify-self"},
		"outline":         {"outline-color", "outline-style", "outline-width"},
		"columns":         {"column-width", "column-count"},
		"column-rule":     {"column-rule-width", "column-rule-style", "column-rule-color"},
		"list-style":      {"list-style-type", "list-style-position", "list-style-image"},
		"text-decoration": {"text-decoration-line", "text-decoration-style", "text-decoration-color", "text-decoration-thickness"},
		"grid-area":       {"grid-row-start", "grid-column-start", "grid-row-end", "grid-column-end"},
		"grid-row":        {"grid-row-start", "grid-row-end"},
		"grid-column":     {"grid-column-start", "grid-column-end"},
		"font": {
			"font-family", "font-size", "font-style", "font-variant",
			"font-weight", "font-stretch", "line-height",
		},
		"background": {
			"background-color", "background-image", "background-position",
			"background-position-x", "background-position-y", "background-size",
			"background-repeat", "background-attachment", "background-clip",
			"background-origin",
		},
		"transition": {
			"transition-property", "transition-duration",
			"transition-timing-function", "transition-delay", "transition-behavior",
		},
		"animation": {
			"animation-name", "animation-duration", "animation-timing-function",
			"animation-delay", "animation-iteration-count", "animation-direction",
			"animation-fill-mode", "animation-play-state",
		},
		"border-radius": {
			"border-top-left-radius", "border-top-right-radius",
			"border-bottom-right-radius", "border-bottom-left-radius",
			"border-start-start-radius", "border-start-end-radius",
			"border-end-end-radius", "border-end-start-radius",
		},
	}

	for _, box := range []string{"margin", "padding", "scroll-margin", "scroll-padding"} {
		all := make([]string, 0, 10)
		for _, side := range physicalSides {
			all = append(all, box+"-"+side)
		}
		for _, axis := range []string{"inline", "block"} {
			start, end := box+"-"+axis+"-start", box+"-"+axis+"-end"
			all = append(all, box+"-"+axis, start, end)
		}
		m[box] = all
		m[box+"-inline"] = []string{box + "-inline-start", box + "-inline-end", box + "-left", box + "-right"}
		m[box+"-block"] = []string{box + "-block-start", box + "-block-end", box + "-top", box + "-bottom"}
	}

	m["inset"] = []string{
		"top", "right", "bottom", "left",
		"inset-inline", "inset-inline-start", "inset-inline-end",
		"inset-block", "inset-block-start", "inset-block-end",
	}
	m["inset-inline"] = []string{"inset-inline-start", "inset-inline-end", "left", "right"}
	m["inset-block"] = []string{"inset-block-start", "inset-block-end", "top", "bottom"}

	var border []string
	for _, facet := range borderFacets {
		var sides []string
		for _, side := range borderSides {
			sides = append(sides, "border-"+side+"-"+facet)
		}
		sides = append(sides, "border-inline-"+facet, "border-block-"+facet)
		m["border-"+facet] = sides
		border = append(border, "border-"+facet)
	}
	for _, side := range borderSides {
		var facets []string
		for _, facet := range borderFacets {
			facets = append(facets, "border-"+side+"-"+facet)
		}
		m["border-"+side] = facets
		border = append(border, "border-"+side)
		border = append(border, facets...)
	}
	for _, axis := range []string{"inline", "block"} {
		m["border-"+axis] = []string{
			"border-" + axis + "-start", "border-" + axis + "-end",
			"border-" + axis + "-width", "border-" + axis + "-style", "border-" + axis + "-color",
		}
		border = append(border, "border-"+axis)
	}
	m["border"] = border

	return m
}
