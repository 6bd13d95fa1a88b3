package compiler

import (
	"bytes"
	"encoding/json"

	"github.com/elliotchance/orderedmap/v3"
	"go.uber.org/zap"

	"github.com/yacobolo/atomcss/internal/diag"
	"github.com/yacobolo/atomcss/internal/styletree"
)

// Result is the output of compiling one document
type Result struct {
	File       string
	Namespaces *orderedmap.OrderedMap[string, *NamespaceObject]
	VarGroups  []*VarGroup
	Themes     []*Theme
	Animations *orderedmap.OrderedMap[string, string] // Keyframes name to generated name
	Rules      []Rule
	Injections []string // Dev mode runtime injection calls, one per rule
	Hits       int      // Declarations that reused an existing rule
}

// Lookup finds a namespace or theme by name
func (r *Result) Lookup(name string) (*NamespaceObject, bool) {
	if obj, ok := r.Namespaces.Get(name); ok {
		return obj, true
	}
	for _, t := range r.Themes {
		if t.Name == name {
			return t.Object(), true
		}
	}
	return nil, false
}

// Compile compiles every definition of doc. Variables and keyframes are
// compiled first so namespaces can reference them. Any error aborts the
// whole document.
func Compile(doc *styletree.Document, opts Options) (*Result, error) {
	if opts.FileName == "" {
		opts.FileName = doc.File
	}
	c, err := New(opts)
	if err != nil {
		return nil, err
	}

	res := &Result{
		File:       doc.File,
		Namespaces: orderedmap.NewOrderedMap[string, *NamespaceObject](),
		Animations: orderedmap.NewOrderedMap[string, string](),
	}

	for _, g := range doc.VarGroups {
		vg, err := c.DefineVars(g)
		if err != nil {
			return nil, err
		}
		res.VarGroups = append(res.VarGroups, vg)
	}

	for _, kf := range doc.Keyframes {
		name, err := c.Keyframes(kf)
		if err != nil {
			return nil, err
		}
		res.Animations.Set(kf.Name, name)
	}

	for _, ns := range doc.Namespaces {
		if _, dup := res.Namespaces.Get(ns.Name); dup {
			return nil, diag.New(diag.IllegalNamespaceName, ns.Loc, "duplicate namespace "+ns.Name)
		}
		obj, err := c.Create(ns)
		if err != nil {
			return nil, err
		}
		res.Namespaces.Set(ns.Name, obj)
	}

	for _, t := range doc.Themes {
		theme, err := c.CreateTheme(t)
		if err != nil {
			return nil, err
		}
		res.Themes = append(res.Themes, theme)
	}

	res.Rules = c.registry.Rules()
	res.Hits = c.registry.Hits()
	if opts.Dev {
		for _, r := range res.Rules {
			res.Injections = append(res.Injections, r.InjectCall())
		}
	}

	c.log.Debug("document compiled",
		zap.String("file", doc.File),
		zap.Int("namespaces", res.Namespaces.Len()),
		zap.Int("rules", len(res.Rules)),
		zap.Int("hits", res.Hits))
	return res, nil
}

// MarshalJSON writes the namespace as an ordered object of class names
func (n *NamespaceObject) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	first := true
	for el := n.Classes.Front(); el != nil; el = el.Next() {
		if !first {
			b.WriteByte(',')
		}
		first = false
		k, err := json.Marshal(el.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(el.Value)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
