package compiler

import (
	"slices"

	"github.com/elliotchance/orderedmap/v3"

	"github.com/yacobolo/atomcss/internal/diag"
	"github.com/yacobolo/atomcss/internal/normalize"
	"github.com/yacobolo/atomcss/internal/styletree"
)

// PreRule is one declaration after shorthand expansion, before hashing
type PreRule struct {
	Key      string // Namespace object key
	Property string // Dashed property
	Value    *styletree.Node
	Path     []Condition
	Loc      diag.Location
}

// Flatten walks a namespace style and groups its declarations by namespace
// object key. A key that is written twice keeps its first position and its
// last value.
//
// Two nesting styles are accepted. Conditional values put conditions
// inside a property:
//
//	color: {default: red, ':hover': blue}
//
// and produce the key "color". Nested condition objects put properties
// inside a condition:
//
//	':hover': {color: blue}
//
// and produce the key ":hover_color".
func (c *Compiler) Flatten(style *styletree.Node) (*orderedmap.OrderedMap[string, []PreRule], error) {
	out := orderedmap.NewOrderedMap[string, []PreRule]()
	if err := c.flattenObject(out, style, nil, ""); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Compiler) flattenObject(out *orderedmap.OrderedMap[string, []PreRule], obj *styletree.Node, path []Condition, prefix string) error {
	for _, e := range obj.Entries {
		if IsConditionKey(e.Key) {
			cond, err := ParseCondition(e.Key, e.Loc)
			if err != nil {
				return err
			}
			if err := checkNesting(path, cond, e.Loc); err != nil {
				return err
			}
			if e.Value == nil || e.Value.Kind != styletree.Object {
				return diag.New(diag.IllegalPropValue, e.Loc, e.Key+" must contain an object of styles")
			}
			if err := c.flattenObject(out, e.Value, appendPath(path, cond), prefix+cond.Key+"_"); err != nil {
				return err
			}
			continue
		}

		property := normalize.Dashify(e.Key)
		leaves, err := collectLeaves(e.Value, path, e.Loc)
		if err != nil {
			return err
		}

		group := orderedmap.NewOrderedMap[string, []PreRule]()
		for _, l := range leaves {
			exps, err := c.strategy.Expand(property, l.value)
			if err != nil {
				return diag.Wrap(diag.IllegalPropValue, e.Loc, e.Key, err)
			}
			for _, x := range exps {
				key := prefix + x.Property
				rules, _ := group.Get(key)
				group.Set(key, append(rules, PreRule{
					Key:      key,
					Property: x.Property,
					Value:    x.Value,
					Path:     l.path,
					Loc:      e.Loc,
				}))
			}
		}
		for el := group.Front(); el != nil; el = el.Next() {
			out.Set(el.Key, el.Value)
		}
	}
	return nil
}

// checkNesting applies the rules for nested condition objects: pseudo-classes
// may hold pseudo-elements, pseudo-elements may hold pseudo-classes and
// at-rules may hold anything
func checkNesting(path []Condition, next Condition, loc diag.Location) error {
	if len(path) == 0 {
		return nil
	}
	last := path[len(path)-1]
	switch last.Kind {
	case PseudoClass:
		if next.Kind != PseudoElement {
			return diag.New(diag.IllegalNestedPseudo, loc, last.Key+" > "+next.Key)
		}
	case PseudoElement:
		if next.Kind != PseudoClass {
			return diag.New(diag.IllegalNestedPseudo, loc, last.Key+" > "+next.Key)
		}
	}
	return nil
}

type leaf struct {
	path  []Condition
	value *styletree.Node
}

// collectLeaves resolves a conditional value into its terminal values, in
// source order
func collectLeaves(v *styletree.Node, path []Condition, loc diag.Location) ([]leaf, error) {
	if v == nil {
		return []leaf{{path: path, value: styletree.NewNull()}}, nil
	}

	switch v.Kind {
	case styletree.Object:
		var out []leaf
		for _, e := range v.Entries {
			next := path
			if e.Key != "default" {
				if !IsConditionKey(e.Key) {
					return nil, diag.New(diag.InvalidPseudoOrAtRule, e.Loc, e.Key)
				}
				cond, err := ParseCondition(e.Key, e.Loc)
				if err != nil {
					return nil, err
				}
				if cond.Kind == PseudoElement && hasKind(path, PseudoElement) {
					return nil, diag.New(diag.IllegalNestedPseudo, e.Loc, e.Key)
				}
				next = appendPath(path, cond)
			}
			leaves, err := collectLeaves(e.Value, next, e.Loc)
			if err != nil {
				return nil, err
			}
			out = append(out, leaves...)
		}
		return out, nil

	case styletree.Array:
		for _, item := range v.Items {
			if item == nil || (item.Kind != styletree.String && item.Kind != styletree.Number && item.Kind != styletree.Param) {
				return nil, diag.New(diag.IllegalPropArrayValue, locOr(item, loc), "")
			}
		}
	}

	return []leaf{{path: path, value: v}}, nil
}

func hasKind(path []Condition, kind ConditionKind) bool {
	for _, c := range path {
		if c.Kind == kind {
			return true
		}
	}
	return false
}

// appendPath copies path so sibling branches never share a backing array
func appendPath(path []Condition, c Condition) []Condition {
	return append(slices.Clone(path), c)
}

func locOr(n *styletree.Node, fallback diag.Location) diag.Location {
	if n == nil || n.Loc.IsZero() {
		return fallback
	}
	return n.Loc
}
