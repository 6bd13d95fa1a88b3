// Package compiler turns style definitions into atomic CSS rules and the
// namespace objects that map style keys to class names.
//
// A Compiler holds the state of one compilation run: its rule registry,
// the variable groups and keyframes defined so far. Runs never share state,
// so compiling the same input twice yields the same output.
package compiler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/elliotchance/orderedmap/v3"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/yacobolo/atomcss/internal/diag"
	"github.com/yacobolo/atomcss/internal/normalize"
	"github.com/yacobolo/atomcss/internal/rtl"
	"github.com/yacobolo/atomcss/internal/shorthands"
	"github.com/yacobolo/atomcss/internal/styletree"
)

// Compiler compiles the style definitions of one source
type Compiler struct {
	opts       Options
	log        *zap.Logger
	strategy   shorthands.Strategy
	registry   *Registry
	varGroups  map[string]*VarGroup
	animations map[string]string
}

// New creates a compiler for one run
func New(opts Options) (*Compiler, error) {
	strategy, err := shorthands.New(opts.StyleResolution)
	if err != nil {
		return nil, err
	}
	log := opts.logger().Named("compiler")
	return &Compiler{
		opts:       opts,
		log:        log,
		strategy:   strategy,
		registry:   NewRegistry(log),
		varGroups:  make(map[string]*VarGroup),
		animations: make(map[string]string),
	}, nil
}

// Registry returns the rules compiled so far
func (c *Compiler) Registry() *Registry {
	return c.registry
}

// NamespaceObject maps the keys of one namespace to space separated class
// names. A nil class marks an explicit reset.
type NamespaceObject struct {
	Name     string
	Classes  *orderedmap.OrderedMap[string, *string]
	Params   []string
	Vars     []DynamicVar
	DevClass string
	Loc      diag.Location
}

// DynamicVar binds a namespace parameter to the custom property that
// carries its value for one property
type DynamicVar struct {
	Param    string
	Property string
	Name     string
}

// Dynamic reports whether the namespace takes parameters
func (n *NamespaceObject) Dynamic() bool {
	return n.Params != nil
}

// Lookup returns the class for key. ok is false when the key is absent;
// a present key with a nil class is an explicit reset.
func (n *NamespaceObject) Lookup(key string) (*string, bool) {
	return n.Classes.Get(key)
}

// Create compiles one namespace and registers its rules
func (c *Compiler) Create(ns styletree.Namespace) (*NamespaceObject, error) {
	if ns.Style == nil || ns.Style.Kind != styletree.Object {
		return nil, diag.New(diag.IllegalNamespaceValue, ns.Loc, ns.Name)
	}

	groups, err := c.Flatten(ns.Style)
	if err != nil {
		return nil, err
	}

	obj := &NamespaceObject{
		Name:    ns.Name,
		Classes: orderedmap.NewOrderedMap[string, *string](),
		Params:  ns.Params,
		Loc:     ns.Loc,
	}
	if c.opts.Dev {
		obj.DevClass = devClass(c.opts.FileName, ns.Name)
	}

	scope := &paramScope{ns: ns, prefix: c.opts.ClassNamePrefix, file: c.opts.FileName, obj: obj}

	for el := groups.Front(); el != nil; el = el.Next() {
		var classes []string
		for _, pr := range el.Value {
			if pr.Value == nil {
				continue
			}
			rule, err := c.compileRule(pr, scope)
			if err != nil {
				return nil, err
			}
			if _, err := c.registry.Add(rule); err != nil {
				return nil, err
			}
			classes = append(classes, rule.ClassName)
		}
		if len(classes) == 0 {
			obj.Classes.Set(el.Key, nil)
			continue
		}
		joined := strings.Join(classes, " ")
		obj.Classes.Set(el.Key, &joined)
	}

	c.log.Debug("namespace compiled",
		zap.String("namespace", ns.Name),
		zap.Int("keys", obj.Classes.Len()),
		zap.Int("rules", c.registry.Len()))
	return obj, nil
}

// devClass is the readable class added in dev mode: <file-slug>__<namespace>
func devClass(file, namespace string) string {
	base := file
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	if s := slug.Make(base); s != "" {
		return s + "__" + namespace
	}
	return namespace
}

// compileRule hashes and renders one declaration
func (c *Compiler) compileRule(pr PreRule, scope *paramScope) (Rule, error) {
	vals, err := c.values(pr.Property, pr.Value, scope, pr.Loc)
	if err != nil {
		return Rule{}, err
	}

	class := c.opts.ClassNamePrefix + Hash("<>"+pr.Property+strings.Join(vals, ", ")+modifierString(pr.Path))
	if c.opts.Debug {
		class = strings.TrimLeft(pr.Property, "-") + "-" + class
	}

	ltrDecls, rtlDecls := c.declarations(pr.Property, vals)

	priority := shorthands.Priority(pr.Property)
	for _, cond := range pr.Path {
		priority += cond.Priority()
	}

	r := Rule{
		ClassName: class,
		Priority:  priority,
		AtRules:   atRules(pr.Path),
		Selectors: selectors(class, pr.Path),
		LTRDecls:  joinDecls(ltrDecls, false),
		Loc:       pr.Loc,
	}
	if rtlDecls != nil {
		r.RTLDecls = joinDecls(rtlDecls, false)
	}
	return r, nil
}

// declarations renders the fallback values of property in both directions.
// The RTL list is nil when no value changes with direction.
func (c *Compiler) declarations(property string, vals []string) ([]normalize.Declaration, []normalize.Declaration) {
	var (
		ltr, rtlOut []normalize.Declaration
		flipped     bool
	)
	for _, v := range vals {
		l, r := rtl.Transform(normalize.Declaration{Property: property, Value: v}, c.opts.rtl())
		ltr = append(ltr, c.prefixed(l)...)
		if r != nil {
			flipped = true
			rtlOut = append(rtlOut, c.prefixed(*r)...)
		} else {
			rtlOut = append(rtlOut, c.prefixed(l)...)
		}
	}
	if !flipped {
		return ltr, nil
	}
	return ltr, rtlOut
}

func (c *Compiler) prefixed(d normalize.Declaration) []normalize.Declaration {
	if !c.opts.VendorPrefixes {
		return []normalize.Declaration{d}
	}
	return append(normalize.Prefixed(d.Property, d.Value), d)
}

// values normalises a leaf value into its fallback list
func (c *Compiler) values(property string, v *styletree.Node, scope *paramScope, loc diag.Location) ([]string, error) {
	if v.Kind != styletree.Array {
		s, err := c.value(property, v, scope, loc)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
	out := make([]string, 0, len(v.Items))
	for _, item := range v.Items {
		s, err := c.value(property, item, scope, loc)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (c *Compiler) value(property string, v *styletree.Node, scope *paramScope, loc diag.Location) (string, error) {
	loc = locOr(v, loc)

	switch v.Kind {
	case styletree.Number:
		return normalize.Number(property, v.Num), nil

	case styletree.String:
		s, err := c.resolveRefs(v.Str, loc)
		if err != nil {
			return "", err
		}
		if property == "content" {
			s = normalize.Content(s)
		}
		out, err := normalize.Value(property, s)
		if err != nil {
			return "", relocate(err, loc)
		}
		return out, nil

	case styletree.Param:
		if scope == nil {
			return "", diag.New(diag.NonStaticValue, loc, v.Str)
		}
		return scope.bind(v.Str, property, loc)
	}

	return "", diag.New(diag.IllegalPropValue, loc, v.Kind.String())
}

// refRe matches $group.key variable references and $name keyframes
// references inside values
var refRe = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)(?:\.([A-Za-z_][A-Za-z0-9_]*))?`)

func (c *Compiler) resolveRefs(s string, loc diag.Location) (string, error) {
	if !strings.Contains(s, "$") {
		return s, nil
	}
	var firstErr error
	out := refRe.ReplaceAllStringFunc(s, func(m string) string {
		parts := refRe.FindStringSubmatch(m)
		if parts[2] == "" {
			name, ok := c.animations[parts[1]]
			if !ok {
				if firstErr == nil {
					firstErr = diag.New(diag.UnknownNamespace, loc, m)
				}
				return m
			}
			return name
		}
		group, ok := c.varGroups[parts[1]]
		if !ok {
			if firstErr == nil {
				firstErr = diag.New(diag.UnknownNamespace, loc, m)
			}
			return m
		}
		ref, ok := group.Ref(parts[2])
		if !ok {
			if firstErr == nil {
				firstErr = diag.New(diag.UnknownVars, loc, m)
			}
			return m
		}
		return ref
	})
	return out, firstErr
}

// relocate attaches loc to a diag error that has no position
func relocate(err error, loc diag.Location) error {
	de, ok := err.(*diag.Error)
	if !ok || !de.Loc.IsZero() {
		return err
	}
	cp := *de
	cp.Loc = loc
	return &cp
}

// paramScope binds the parameters of a dynamic namespace to custom
// properties
type paramScope struct {
	ns     styletree.Namespace
	prefix string
	file   string
	obj    *NamespaceObject
}

func (s *paramScope) bind(param, property string, loc diag.Location) (string, error) {
	known := false
	for _, p := range s.ns.Params {
		if p == param {
			known = true
			break
		}
	}
	if !known {
		return "", diag.New(diag.NonStaticValue, loc, fmt.Sprintf("%s is not a parameter of %s", param, s.ns.Name))
	}

	name := "--" + s.prefix + Hash(s.file+"//"+s.ns.Name+"."+param+"."+property)
	for _, v := range s.obj.Vars {
		if v.Name == name {
			return "var(" + name + ")", nil
		}
	}
	s.obj.Vars = append(s.obj.Vars, DynamicVar{Param: param, Property: property, Name: name})
	return "var(" + name + ")", nil
}
