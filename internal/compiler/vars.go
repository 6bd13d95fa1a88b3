package compiler

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/elliotchance/orderedmap/v3"
	"go.uber.org/zap"

	"github.com/yacobolo/atomcss/internal/diag"
	"github.com/yacobolo/atomcss/internal/normalize"
	"github.com/yacobolo/atomcss/internal/styletree"
	"github.com/yacobolo/atomcss/internal/values"
)

// Priorities of variable rules
const (
	priorityVars  = 0
	priorityTheme = 0.5
)

// VarGroup is a compiled group of custom properties
type VarGroup struct {
	Name      string
	ClassName string                                 // Identifies the group, themes override it
	Vars      *orderedmap.OrderedMap[string, string] // Key to custom property name
	Loc       diag.Location
}

// Ref returns var(--name) for key
func (g *VarGroup) Ref(key string) (string, bool) {
	name, ok := g.Vars.Get(key)
	if !ok {
		return "", false
	}
	return "var(" + name + ")", true
}

// MarshalJSON writes {key: "var(--name)", ..., "__themeName__": class}
func (g *VarGroup) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for el := g.Vars.Front(); el != nil; el = el.Next() {
		if err := writeMember(&b, el.Key, "var("+el.Value+")"); err != nil {
			return nil, err
		}
		b.WriteByte(',')
	}
	if err := writeMember(&b, "__themeName__", g.ClassName); err != nil {
		return nil, err
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// Theme is a compiled override of a variable group
type Theme struct {
	Name      string
	ClassName string
	Group     *VarGroup
	Loc       diag.Location
}

// Object returns the theme as a namespace object keyed by its group, so a
// later theme of the same group replaces an earlier one in merges
func (t *Theme) Object() *NamespaceObject {
	classes := orderedmap.NewOrderedMap[string, *string]()
	cls := t.ClassName
	classes.Set(t.Group.ClassName, &cls)
	return &NamespaceObject{Name: t.Name, Classes: classes, Loc: t.Loc}
}

// varValue is one value of a variable under an at-rule path
type varValue struct {
	path  []Condition
	value string
}

// DefineVars compiles a variable group into :root custom properties
func (c *Compiler) DefineVars(group styletree.VarGroup) (*VarGroup, error) {
	if group.Values == nil || group.Values.Kind != styletree.Object {
		return nil, diag.New(diag.IllegalNamespaceValue, group.Loc, group.Name)
	}

	g := &VarGroup{
		Name:      group.Name,
		ClassName: c.opts.ClassNamePrefix + Hash(c.opts.FileName+"//"+group.Name),
		Vars:      orderedmap.NewOrderedMap[string, string](),
		Loc:       group.Loc,
	}

	blocks := orderedmap.NewOrderedMap[string, *varBlock]()
	for _, e := range group.Values.Entries {
		if strings.HasPrefix(e.Key, "--") {
			return nil, diag.New(diag.InvalidCustomPropertyKey, e.Loc, e.Key)
		}
		name := "--" + c.opts.ClassNamePrefix + Hash(c.opts.FileName+"//"+group.Name+"."+e.Key)
		g.Vars.Set(e.Key, name)

		vals, err := c.varValues(e.Value, nil, e.Loc)
		if err != nil {
			return nil, err
		}
		addToBlocks(blocks, name, vals)
	}

	if err := c.emitVarBlocks(blocks, g.ClassName, []string{":root"}, priorityVars, group.Loc); err != nil {
		return nil, err
	}

	c.varGroups[group.Name] = g
	c.log.Debug("variables defined", zap.String("group", group.Name), zap.Int("vars", g.Vars.Len()))
	return g, nil
}

// CreateTheme compiles an override of a defined variable group. Keys are
// sorted first, so their order never changes the theme class.
func (c *Compiler) CreateTheme(theme styletree.Theme) (*Theme, error) {
	g, ok := c.varGroups[theme.Vars]
	if !ok {
		return nil, diag.New(diag.UnknownNamespace, theme.Loc, theme.Vars)
	}
	if theme.Values == nil || theme.Values.Kind != styletree.Object {
		return nil, diag.New(diag.IllegalNamespaceValue, theme.Loc, theme.Name)
	}

	entries := make([]styletree.Entry, len(theme.Values.Entries))
	copy(entries, theme.Values.Entries)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

	var (
		hashInput strings.Builder
		blocks    = orderedmap.NewOrderedMap[string, *varBlock]()
	)
	hashInput.WriteString(g.ClassName)

	for _, e := range entries {
		name, ok := g.Vars.Get(e.Key)
		if !ok {
			return nil, diag.New(diag.UnknownVars, e.Loc, theme.Vars+"."+e.Key)
		}
		vals, err := c.varValues(e.Value, nil, e.Loc)
		if err != nil {
			return nil, err
		}
		hashInput.WriteString(e.Key)
		hashInput.WriteByte(':')
		for _, v := range vals {
			hashInput.WriteString(modifierString(v.path))
			hashInput.WriteByte('=')
			hashInput.WriteString(v.value)
			hashInput.WriteByte(';')
		}
		addToBlocks(blocks, name, vals)
	}

	cls := c.opts.ClassNamePrefix + Hash(hashInput.String())
	if err := c.emitVarBlocks(blocks, cls, []string{"." + cls, "." + cls + ":root"}, priorityTheme, theme.Loc); err != nil {
		return nil, err
	}

	c.log.Debug("theme created", zap.String("theme", theme.Name), zap.String("class", cls))
	return &Theme{Name: theme.Name, ClassName: cls, Group: g, Loc: theme.Loc}, nil
}

// varValues resolves a variable value, which may be a conditional object
// of "default" and at-rule keys
func (c *Compiler) varValues(v *styletree.Node, path []Condition, loc diag.Location) ([]varValue, error) {
	if v == nil || v.Kind == styletree.Null {
		return nil, nil
	}
	loc = locOr(v, loc)

	switch v.Kind {
	case styletree.Number:
		return []varValue{{path: path, value: values.FormatNumber(v.Num)}}, nil
	case styletree.String:
		s, err := c.resolveRefs(strings.TrimSpace(v.Str), loc)
		if err != nil {
			return nil, err
		}
		return []varValue{{path: path, value: s}}, nil
	case styletree.Object:
		var out []varValue
		for _, e := range v.Entries {
			next := path
			if e.Key != "default" {
				cond, err := ParseCondition(e.Key, e.Loc)
				if err != nil {
					return nil, err
				}
				if cond.Kind != AtRule {
					return nil, diag.New(diag.InvalidPseudoOrAtRule, e.Loc, e.Key)
				}
				next = appendPath(path, cond)
			}
			vals, err := c.varValues(e.Value, next, e.Loc)
			if err != nil {
				return nil, err
			}
			out = append(out, vals...)
		}
		return out, nil
	case styletree.Array:
		return nil, diag.New(diag.IllegalPropArrayValue, loc, "variables take a single value")
	}
	return nil, diag.New(diag.NonStaticValue, loc, v.Kind.String())
}

// varBlock collects the declarations of one at-rule path
type varBlock struct {
	path  []Condition
	decls []normalize.Declaration
}

func addToBlocks(blocks *orderedmap.OrderedMap[string, *varBlock], name string, vals []varValue) {
	for _, v := range vals {
		key := modifierString(v.path)
		blk, ok := blocks.Get(key)
		if !ok {
			blk = &varBlock{path: v.path}
			blocks.Set(key, blk)
		}
		blk.decls = append(blk.decls, normalize.Declaration{Property: name, Value: v.value})
	}
}

// emitVarBlocks registers one rule per at-rule path. Wrapped blocks sort
// after the unwrapped one by a tenth of their at-rule priority.
func (c *Compiler) emitVarBlocks(blocks *orderedmap.OrderedMap[string, *varBlock], class string, sels []string, base float64, loc diag.Location) error {
	for el := blocks.Front(); el != nil; el = el.Next() {
		blk := el.Value
		priority := base
		for _, cond := range blk.path {
			priority += 0.1 * cond.Priority()
		}
		r := Rule{
			ClassName: class,
			Priority:  priority,
			AtRules:   atRules(blk.path),
			Selectors: sels,
			LTRDecls:  joinDecls(blk.decls, true),
			Loc:       loc,
		}
		if _, err := c.registry.Add(r); err != nil {
			return err
		}
	}
	return nil
}

// writeMember writes "key":"value" with JSON escaping
func writeMember(b *bytes.Buffer, key, value string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	b.Write(k)
	b.WriteByte(':')
	b.Write(v)
	return nil
}
