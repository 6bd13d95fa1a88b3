// Package shorthands implements the style-resolution strategies that decide
// how shorthand and aliased properties become the properties that are
// actually compiled to atomic classes.
//
// Three strategies exist:
//
//   - application-order keeps shorthands and resets the longhands they cover,
//     so the last applied style wins regardless of specificity
//   - property-specificity keeps shorthands as written and relies on rule
//     priorities to order them before their longhands
//   - legacy-expand-shorthands splits shorthands into direction-aware
//     longhands (top, end, bottom, start)
package shorthands

import (
	"fmt"

	"github.com/yacobolo/atomcss/internal/styletree"
)

// Name identifies a strategy
type Name string

// Strategy names
const (
	ApplicationOrder       Name = "application-order"
	PropertySpecificity    Name = "property-specificity"
	LegacyExpandShorthands Name = "legacy-expand-shorthands"
)

// Expansion is one resulting property. A nil Value resets the property.
type Expansion struct {
	Property string
	Value    *styletree.Node
}

// Strategy expands one dashed property assignment. value is a string,
// number, param, array or null node.
type Strategy interface {
	Name() Name
	Expand(property string, value *styletree.Node) ([]Expansion, error)
}

// New returns the strategy registered under name. The empty name selects
// application-order.
func New(name Name) (Strategy, error) {
	switch name {
	case "", ApplicationOrder:
		return applicationOrder{}, nil
	case PropertySpecificity:
		return propertySpecificity{}, nil
	case LegacyExpandShorthands:
		return legacyExpand{}, nil
	}
	return nil, fmt.Errorf("unknown style resolution %q", name)
}

// Names lists the available strategies
func Names() []Name {
	return []Name{ApplicationOrder, PropertySpecificity, LegacyExpandShorthands}
}

// aliases maps non-standard and legacy property names to their standard
// logical equivalent
var aliases = map[string]string{
	"margin-horizontal":          "margin-inline",
	"margin-vertical":            "margin-block",
	"margin-start":               "margin-inline-start",
	"margin-end":                 "margin-inline-end",
	"padding-horizontal":         "padding-inline",
	"padding-vertical":           "padding-block",
	"padding-start":              "padding-inline-start",
	"padding-end":                "padding-inline-end",
	"border-horizontal":          "border-inline",
	"border-vertical":            "border-block",
	"border-start":               "border-inline-start",
	"border-end":                 "border-inline-end",
	"border-start-width":         "border-inline-start-width",
	"border-end-width":           "border-inline-end-width",
	"border-start-color":         "border-inline-start-color",
	"border-end-color":           "border-inline-end-color",
	"border-start-style":         "border-inline-start-style",
	"border-end-style":           "border-inline-end-style",
	"border-top-start-radius":    "border-start-start-radius",
	"border-top-end-radius":      "border-start-end-radius",
	"border-bottom-start-radius": "border-end-start-radius",
	"border-bottom-end-radius":   "border-end-end-radius",
	"start":                      "inset-inline-start",
	"end":                        "inset-inline-end",
	"grid-gap":                   "gap",
	"grid-row-gap":               "row-gap",
	"grid-column-gap":            "column-gap",
}

// Alias returns the standard name for property
func Alias(property string) string {
	if to, ok := aliases[property]; ok {
		return to
	}
	return property
}

// propertySpecificity only resolves aliases
type propertySpecificity struct{}

func (propertySpecificity) Name() Name { return PropertySpecificity }

func (propertySpecificity) Expand(property string, value *styletree.Node) ([]Expansion, error) {
	return []Expansion{{Property: Alias(property), Value: nullable(value)}}, nil
}

// nullable maps explicit nulls to a nil Value
func nullable(n *styletree.Node) *styletree.Node {
	if n.IsNull() {
		return nil
	}
	return n
}
