// Package merge resolves call-site merges of compiled namespaces. For every
// key, the last namespace in the list that defines it wins, including an
// explicit null which removes the key.
package merge

import (
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v3"
	"go.uber.org/zap"

	"github.com/yacobolo/atomcss/internal/compiler"
	"github.com/yacobolo/atomcss/internal/diag"
	"github.com/yacobolo/atomcss/internal/normalize"
	"github.com/yacobolo/atomcss/internal/styletree"
)

// Options controls the shape of merge output
type Options struct {
	Dev                   bool
	Debug                 bool
	GenConditionalClasses bool
	SkipConditional       bool
	Logger                *zap.Logger
}

// OptionsFrom copies the merge settings of compiler options
func OptionsFrom(o compiler.Options) Options {
	return Options{
		Dev:                   o.Dev,
		Debug:                 o.Debug,
		GenConditionalClasses: o.GenConditionalClasses,
		SkipConditional:       o.SkipConditional,
		Logger:                o.Logger,
	}
}

// Resolver finds compiled namespaces by name
type Resolver interface {
	Lookup(name string) (*compiler.NamespaceObject, bool)
}

// Props are the attributes produced by a merge
type Props struct {
	ClassName    string
	Style        *orderedmap.OrderedMap[string, string] // Inline custom properties, nil when none
	DataStyleSrc string
}

// Output is the result of one merge site. Exactly one of Props, Table or
// Deferred is set.
type Output struct {
	Name string

	Props *Props

	// Conditions are the runtime conditions in order of first appearance.
	// Table[mask] holds the props for the assignment where condition i is
	// true when bit i of mask is set.
	Conditions []string
	Table      []Props

	Deferred *Deferred
}

// Merge resolves one merge site
func Merge(site styletree.MergeSite, r Resolver, opts Options) (*Output, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("merge")

	args := make([]arg, 0, len(site.Args))
	for _, a := range site.Args {
		resolved, err := resolveArg(a, r)
		if err != nil {
			return nil, err
		}
		args = append(args, resolved)
	}

	var conds []string
	seen := map[string]bool{}
	for _, a := range args {
		if a.cond == nil || seen[a.cond.name] {
			continue
		}
		if a.cond.static != nil && !opts.GenConditionalClasses {
			continue
		}
		seen[a.cond.name] = true
		conds = append(conds, a.cond.name)
	}

	out := &Output{Name: site.Name}

	switch {
	case len(conds) == 0:
		p := evaluate(args, func(string) bool { return false }, opts)
		out.Props = &p

	case opts.SkipConditional:
		out.Deferred = &Deferred{args: args, opts: opts, Conditions: conds}

	default:
		out.Conditions = conds
		out.Table = make([]Props, 1<<len(conds))
		for mask := range out.Table {
			env := map[string]bool{}
			for i, name := range conds {
				env[name] = mask&(1<<i) != 0
			}
			out.Table[mask] = evaluate(args, func(name string) bool { return env[name] }, opts)
		}
	}

	log.Debug("merge resolved",
		zap.String("site", site.Name),
		zap.Int("args", len(args)),
		zap.Strings("conditions", conds))
	return out, nil
}

// condition is a parsed merge condition: a name, "!name", or a literal
// true/false
type condition struct {
	name   string
	negate bool
	static *bool
}

func parseCondition(s string) *condition {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	c := &condition{}
	for strings.HasPrefix(s, "!") {
		c.negate = !c.negate
		s = strings.TrimSpace(s[1:])
	}
	c.name = s
	switch s {
	case "true":
		v := true
		c.static = &v
	case "false":
		v := false
		c.static = &v
	}
	return c
}

func (c *condition) holds(truth func(string) bool) bool {
	var v bool
	if c.static != nil {
		v = *c.static
	} else {
		v = truth(c.name)
	}
	if c.negate {
		return !v
	}
	return v
}

// arg is a merge argument with its namespaces resolved
type arg struct {
	cond      *condition
	then, els *compiler.NamespaceObject
	values    []*styletree.Node
	loc       diag.Location
}

func resolveArg(a styletree.MergeArg, r Resolver) (arg, error) {
	out := arg{cond: parseCondition(a.Cond), values: a.Args, loc: a.Loc}

	var err error
	if out.then, err = lookup(a.Then, a, r); err != nil {
		return arg{}, err
	}
	if out.els, err = lookup(a.Else, a, r); err != nil {
		return arg{}, err
	}
	return out, nil
}

func lookup(name string, a styletree.MergeArg, r Resolver) (*compiler.NamespaceObject, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "null" || name == "undefined" || name == "false" {
		return nil, nil
	}
	obj, ok := r.Lookup(name)
	if !ok {
		return nil, diag.New(diag.UnknownNamespace, a.Loc, name)
	}
	switch {
	case obj.Dynamic() && len(a.Args) != len(obj.Params):
		return nil, diag.New(diag.IllegalArgumentLength, a.Loc,
			fmt.Sprintf("%s takes %d arguments, got %d", name, len(obj.Params), len(a.Args)))
	case !obj.Dynamic() && len(a.Args) > 0:
		return nil, diag.New(diag.IllegalArgumentLength, a.Loc, name+" takes no arguments")
	}
	for _, v := range a.Args {
		if v != nil && v.Kind != styletree.String && v.Kind != styletree.Number && v.Kind != styletree.Null {
			return nil, diag.New(diag.NonStaticValue, a.Loc, name)
		}
	}
	return obj, nil
}

// evaluate merges args for one assignment of the conditions
func evaluate(args []arg, truth func(string) bool, opts Options) Props {
	acc := orderedmap.NewOrderedMap[string, *string]()
	var (
		dev     []string
		sources []string
		style   *orderedmap.OrderedMap[string, string]
	)

	for _, a := range args {
		obj := a.then
		if a.cond != nil && !a.cond.holds(truth) {
			obj = a.els
		}
		if obj == nil {
			continue
		}

		for el := obj.Classes.Front(); el != nil; el = el.Next() {
			acc.Set(el.Key, el.Value)
		}
		if opts.Dev && obj.DevClass != "" && !contains(dev, obj.DevClass) {
			dev = append(dev, obj.DevClass)
		}
		if opts.Debug && !obj.Loc.IsZero() {
			sources = append(sources, obj.Loc.String())
		}
		if obj.Dynamic() {
			if style == nil {
				style = orderedmap.NewOrderedMap[string, string]()
			}
			bindInline(style, obj, a.values)
		}
	}

	classes := append([]string(nil), dev...)
	for el := acc.Front(); el != nil; el = el.Next() {
		if el.Value != nil && *el.Value != "" {
			classes = append(classes, *el.Value)
		}
	}

	return Props{
		ClassName:    strings.Join(classes, " "),
		Style:        style,
		DataStyleSrc: strings.Join(sources, "; "),
	}
}

// bindInline sets the custom properties of a dynamic namespace from the
// call arguments. Numbers get the default unit of the property they feed.
func bindInline(style *orderedmap.OrderedMap[string, string], obj *compiler.NamespaceObject, args []*styletree.Node) {
	index := make(map[string]int, len(obj.Params))
	for i, p := range obj.Params {
		index[p] = i
	}
	for _, v := range obj.Vars {
		i, ok := index[v.Param]
		if !ok || i >= len(args) || args[i].IsNull() {
			continue
		}
		val := args[i]
		switch val.Kind {
		case styletree.Number:
			style.Set(v.Name, normalize.Number(v.Property, val.Num))
		case styletree.String:
			style.Set(v.Name, val.Str)
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
