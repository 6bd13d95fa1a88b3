package styletree

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yacobolo/atomcss/internal/diag"
)

// Custom YAML tags
const (
	tagParam          = "!param"
	tagFirstThatWorks = "!firstThatWorks"
)

var (
	identRe     = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	namespaceRe = regexp.MustCompile(`^([A-Za-z_$][A-Za-z0-9_$]*)\s*\(([^()]*)\)$`)
	ternaryRe   = regexp.MustCompile(`^(.+?)\s*\?\s*(.+?)\s*:\s*(.+)$`)
	andRe       = regexp.MustCompile(`^(.+?)\s*&&\s*(.+)$`)
	callRe      = regexp.MustCompile(`^([A-Za-z_$][A-Za-z0-9_$]*)\((.*)\)$`)
)

// LoadFile reads and parses a style-definition file
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a YAML or JSON style-definition document. Sections:
// create, defineVars, createTheme, keyframes and merge.
func Parse(data []byte, file string) (*Document, error) {
	doc := &Document{File: file}

	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return doc, nil
	}

	l := &loader{file: file}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, diag.New(diag.IllegalArgumentLength, l.loc(top), "document must be a mapping of sections")
	}

	err := l.eachPair(top, func(key string, k, v *yaml.Node) error {
		switch key {
		case "create":
			return l.namespaces(doc, v)
		case "defineVars":
			return l.varGroups(doc, v)
		case "createTheme":
			return l.themes(doc, v)
		case "keyframes":
			return l.keyframes(doc, v)
		case "merge":
			return l.merges(doc, v)
		}
		return diag.New(diag.UnknownNamespace, l.loc(k), fmt.Sprintf("unknown section %q", key))
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

type loader struct {
	file string
}

func (l *loader) loc(n *yaml.Node) diag.Location {
	return diag.Location{File: l.file, Line: n.Line, Column: n.Column}
}

// eachPair iterates a mapping in order. Merge keys are rejected.
func (l *loader) eachPair(m *yaml.Node, fn func(key string, k, v *yaml.Node) error) error {
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		if k.Tag == "!!merge" || k.Value == "<<" {
			return diag.New(diag.NoObjectSpreads, l.loc(k), "<<")
		}
		if k.Kind != yaml.ScalarNode {
			return diag.New(diag.NonStaticValue, l.loc(k), "object keys must be scalars")
		}
		if err := fn(k.Value, k, v); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) mapping(n *yaml.Node, key diag.MessageKey, what string) error {
	if n.Kind == yaml.AliasNode {
		return diag.New(diag.NonStaticValue, l.loc(n), "alias *"+n.Value)
	}
	if n.Kind != yaml.MappingNode {
		return diag.New(key, l.loc(n), what)
	}
	return nil
}

func (l *loader) namespaces(doc *Document, v *yaml.Node) error {
	if err := l.mapping(v, diag.IllegalArgumentLength, "create expects a mapping of namespaces"); err != nil {
		return err
	}
	return l.eachPair(v, func(key string, k, val *yaml.Node) error {
		name, params, err := parseNamespaceKey(key)
		if err != nil {
			return diag.New(diag.IllegalNamespaceName, l.loc(k), key)
		}
		if err := l.mapping(val, diag.IllegalNamespaceValue, name); err != nil {
			return err
		}
		style, err := l.node(val)
		if err != nil {
			return err
		}
		doc.Namespaces = append(doc.Namespaces, Namespace{Name: name, Params: params, Style: style, Loc: l.loc(k)})
		return nil
	})
}

// parseNamespaceKey splits "name" or "name(a, b)"
func parseNamespaceKey(key string) (string, []string, error) {
	if identRe.MatchString(key) {
		return key, nil, nil
	}
	m := namespaceRe.FindStringSubmatch(key)
	if m == nil {
		return "", nil, fmt.Errorf("invalid namespace %q", key)
	}
	params := []string{}
	if strings.TrimSpace(m[2]) != "" {
		for _, p := range strings.Split(m[2], ",") {
			p = strings.TrimSpace(p)
			if !identRe.MatchString(p) {
				return "", nil, fmt.Errorf("invalid parameter %q", p)
			}
			params = append(params, p)
		}
	}
	return m[1], params, nil
}

func (l *loader) varGroups(doc *Document, v *yaml.Node) error {
	if err := l.mapping(v, diag.IllegalArgumentLength, "defineVars expects a mapping of groups"); err != nil {
		return err
	}
	return l.eachPair(v, func(key string, k, val *yaml.Node) error {
		if err := l.mapping(val, diag.IllegalNamespaceValue, key); err != nil {
			return err
		}
		values, err := l.node(val)
		if err != nil {
			return err
		}
		doc.VarGroups = append(doc.VarGroups, VarGroup{Name: key, Values: values, Loc: l.loc(k)})
		return nil
	})
}

func (l *loader) themes(doc *Document, v *yaml.Node) error {
	if err := l.mapping(v, diag.IllegalArgumentLength, "createTheme expects a mapping of themes"); err != nil {
		return err
	}
	return l.eachPair(v, func(key string, k, val *yaml.Node) error {
		if err := l.mapping(val, diag.IllegalArgumentLength, key); err != nil {
			return err
		}
		theme := Theme{Name: key, Loc: l.loc(k)}
		err := l.eachPair(val, func(field string, fk, fv *yaml.Node) error {
			switch field {
			case "vars":
				if fv.Kind != yaml.ScalarNode {
					return diag.New(diag.IllegalArgumentLength, l.loc(fv), "vars must name a variable group")
				}
				theme.Vars = fv.Value
			case "values":
				if err := l.mapping(fv, diag.IllegalNamespaceValue, key); err != nil {
					return err
				}
				values, err := l.node(fv)
				if err != nil {
					return err
				}
				theme.Values = values
			default:
				return diag.New(diag.IllegalArgumentLength, l.loc(fk), field)
			}
			return nil
		})
		if err != nil {
			return err
		}
		if theme.Vars == "" || theme.Values == nil {
			return diag.New(diag.IllegalArgumentLength, l.loc(k), "createTheme needs vars and values")
		}
		doc.Themes = append(doc.Themes, theme)
		return nil
	})
}

func (l *loader) keyframes(doc *Document, v *yaml.Node) error {
	if err := l.mapping(v, diag.IllegalArgumentLength, "keyframes expects a mapping of animations"); err != nil {
		return err
	}
	return l.eachPair(v, func(key string, k, val *yaml.Node) error {
		if err := l.mapping(val, diag.IllegalNamespaceValue, key); err != nil {
			return err
		}
		frames, err := l.node(val)
		if err != nil {
			return err
		}
		doc.Keyframes = append(doc.Keyframes, Keyframes{Name: key, Frames: frames, Loc: l.loc(k)})
		return nil
	})
}

func (l *loader) merges(doc *Document, v *yaml.Node) error {
	if err := l.mapping(v, diag.IllegalArgumentLength, "merge expects a mapping of call sites"); err != nil {
		return err
	}
	return l.eachPair(v, func(key string, k, val *yaml.Node) error {
		if val.Kind != yaml.SequenceNode {
			return diag.New(diag.IllegalArgumentLength, l.loc(val), key)
		}
		site := MergeSite{Name: key, Loc: l.loc(k)}
		for _, item := range val.Content {
			arg, err := l.mergeArg(item)
			if err != nil {
				return err
			}
			site.Args = append(site.Args, arg)
		}
		doc.Merges = append(doc.Merges, site)
		return nil
	})
}

// mergeArg accepts "ref", "cond && ref", "cond ? a : b", "ref(arg, ...)"
// or a mapping {use, if, else, args}
func (l *loader) mergeArg(n *yaml.Node) (MergeArg, error) {
	arg := MergeArg{Loc: l.loc(n)}

	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			arg.Then = "null"
			return arg, nil
		}
		s := strings.TrimSpace(n.Value)
		if m := ternaryRe.FindStringSubmatch(s); m != nil {
			arg.Cond, arg.Then, arg.Else = m[1], m[2], m[3]
		} else if m := andRe.FindStringSubmatch(s); m != nil {
			arg.Cond, arg.Then = m[1], m[2]
		} else {
			arg.Then = s
		}
		if m := callRe.FindStringSubmatch(arg.Then); m != nil {
			arg.Then = m[1]
			for _, raw := range splitArgs(m[2]) {
				arg.Args = append(arg.Args, scalarArg(raw))
			}
		}
		return arg, nil

	case yaml.MappingNode:
		err := l.eachPair(n, func(field string, fk, fv *yaml.Node) error {
			switch field {
			case "use":
				arg.Then = fv.Value
			case "if":
				arg.Cond = fv.Value
			case "else":
				arg.Else = fv.Value
			case "args":
				if fv.Kind != yaml.SequenceNode {
					return diag.New(diag.IllegalArgumentLength, l.loc(fv), "args must be a list")
				}
				for _, a := range fv.Content {
					node, err := l.node(a)
					if err != nil {
						return err
					}
					arg.Args = append(arg.Args, node)
				}
			default:
				return diag.New(diag.IllegalArgumentLength, l.loc(fk), field)
			}
			return nil
		})
		return arg, err
	}

	return arg, diag.New(diag.NonStaticValue, l.loc(n), "merge argument")
}

func splitArgs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// scalarArg turns an inline call argument into a node: quoted strings stay
// strings, numbers become numbers
func scalarArg(raw string) *Node {
	if len(raw) >= 2 && (raw[0] == '\'' || raw[0] == '"') && raw[len(raw)-1] == raw[0] {
		return NewString(raw[1 : len(raw)-1])
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return NewNumber(f)
	}
	return NewString(raw)
}

// node converts a YAML value into a style Node
func (l *loader) node(n *yaml.Node) (*Node, error) {
	loc := l.loc(n)

	switch n.Kind {
	case yaml.AliasNode:
		return nil, diag.New(diag.NonStaticValue, loc, "alias *"+n.Value)

	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return &Node{Kind: Null, Loc: loc}, nil
		case "!!str":
			return &Node{Kind: String, Str: n.Value, Loc: loc}, nil
		case "!!int", "!!float":
			var f float64
			if err := n.Decode(&f); err != nil {
				return nil, diag.Wrap(diag.IllegalPropValue, loc, n.Value, err)
			}
			return &Node{Kind: Number, Num: f, Loc: loc}, nil
		case tagParam:
			if !identRe.MatchString(n.Value) {
				return nil, diag.New(diag.NonStaticValue, loc, "!param "+n.Value)
			}
			return &Node{Kind: Param, Str: n.Value, Loc: loc}, nil
		case "!!bool":
			return nil, diag.New(diag.IllegalPropValue, loc, n.Value)
		}
		return nil, diag.New(diag.NonStaticValue, loc, n.Tag+" "+n.Value)

	case yaml.SequenceNode:
		if n.Tag != "!!seq" && n.Tag != tagFirstThatWorks {
			return nil, diag.New(diag.NonStaticValue, loc, n.Tag)
		}
		items := make([]*Node, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := l.node(c)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		out := NewArray(items...)
		if n.Tag == tagFirstThatWorks {
			out = FirstThatWorks(items...)
		}
		out.Loc = loc
		return out, nil

	case yaml.MappingNode:
		if n.Tag != "!!map" {
			return nil, diag.New(diag.NonStaticValue, loc, n.Tag)
		}
		obj := &Node{Kind: Object, Loc: loc}
		err := l.eachPair(n, func(key string, k, v *yaml.Node) error {
			child, err := l.node(v)
			if err != nil {
				return err
			}
			obj.set(Entry{Key: key, Value: child, Loc: l.loc(k)})
			return nil
		})
		if err != nil {
			return nil, err
		}
		return obj, nil
	}

	return nil, diag.New(diag.NonStaticValue, loc, "unsupported value")
}
