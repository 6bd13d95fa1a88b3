package shorthands

import "strings"

// Property priorities. Rules are emitted in ascending priority so broader
// shorthands always come before the longhands that refine them.
const (
	PriorityCustomProperty        = 1
	PriorityShorthandOfShorthands = 1000
	PriorityShorthandOfLonghands  = 2000
	PriorityLogicalLonghand       = 3000
	PriorityPhysicalLonghand      = 4000
)

var shorthandsOfShorthands = map[string]bool{
	"all":            true,
	"border":         true,
	"border-block":   true,
	"border-color":   true,
	"border-inline":  true,
	"border-style":   true,
	"border-width":   true,
	"inset":          true,
	"margin":         true,
	"padding":        true,
	"scroll-margin":  true,
	"scroll-padding": true,
	"grid":           true,
	"grid-template":  true,
	"mask":           true,
}

// physicalLonghands covers the physical side longhands and the physical
// sizing properties
var physicalLonghands = buildPhysical()

func buildPhysical() map[string]bool {
	m := map[string]bool{
		"width": true, "height": true,
		"min-width": true, "max-width": true,
		"min-height": true, "max-height": true,
		"overflow-x": true, "overflow-y": true,
		"overscroll-behavior-x": true, "overscroll-behavior-y": true,
		"background-position-x": true, "background-position-y": true,
	}
	for _, side := range physicalSides {
		m[side] = true
		for _, box := range []string{"margin", "padding", "scroll-margin", "scroll-padding"} {
			m[box+"-"+side] = true
		}
		for _, facet := range borderFacets {
			m["border-"+side+"-"+facet] = true
		}
	}
	for _, v := range []string{"top", "bottom"} {
		for _, h := range []string{"left", "right"} {
			m["border-"+v+"-"+h+"-radius"] = true
		}
	}
	return m
}

// Priority returns the ordering weight of a dashed property
func Priority(property string) float64 {
	switch {
	case strings.HasPrefix(property, "--"):
		return PriorityCustomProperty
	case shorthandsOfShorthands[property]:
		return PriorityShorthandOfShorthands
	case physicalLonghands[property]:
		return PriorityPhysicalLonghand
	case longhands[property] != nil:
		return PriorityShorthandOfLonghands
	}
	return PriorityLogicalLonghand
}
