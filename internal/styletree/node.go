// Package styletree is the input model of the compiler: an ordered tree of
// style values plus the document that groups namespaces, variable groups,
// themes, keyframes and merge call sites. Documents are loaded from YAML (and
// therefore JSON) with key order and source positions preserved.
package styletree

import (
	"github.com/yacobolo/atomcss/internal/diag"
)

// Kind is the type of a Node
type Kind int

// Node kinds
const (
	Null Kind = iota
	String
	Number
	Array
	Object
	Param // Reference to a parameter of a dynamic namespace
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case String:
		return "string"
	case Number:
		return "number"
	case Array:
		return "array"
	case Object:
		return "object"
	case Param:
		return "param"
	}
	return "unknown"
}

// Node is one value of a style tree
type Node struct {
	Kind    Kind
	Str     string  // String value or parameter name
	Num     float64 // Number value
	Items   []*Node // Array items
	Entries []Entry // Object entries in source order
	Loc     diag.Location
}

// Entry is one key of an object
type Entry struct {
	Key   string
	Value *Node
	Loc   diag.Location
}

// Get returns the value stored under key
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.Kind != Object {
		return nil, false
	}
	for _, e := range n.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Keys returns the object keys in source order
func (n *Node) Keys() []string {
	if n == nil || n.Kind != Object {
		return nil
	}
	keys := make([]string, len(n.Entries))
	for i, e := range n.Entries {
		keys[i] = e.Key
	}
	return keys
}

// IsNull reports whether n is nil or an explicit null
func (n *Node) IsNull() bool {
	return n == nil || n.Kind == Null
}

// set stores value under key. A repeated key replaces the earlier value but
// keeps its position, like a repeated key in an object literal.
func (n *Node) set(e Entry) {
	for i := range n.Entries {
		if n.Entries[i].Key == e.Key {
			n.Entries[i].Value = e.Value
			return
		}
	}
	n.Entries = append(n.Entries, e)
}

// NewString builds a string node
func NewString(s string) *Node {
	return &Node{Kind: String, Str: s}
}

// NewNumber builds a number node
func NewNumber(f float64) *Node {
	return &Node{Kind: Number, Num: f}
}

// NewNull builds an explicit null
func NewNull() *Node {
	return &Node{Kind: Null}
}

// NewParam builds a reference to a dynamic namespace parameter
func NewParam(name string) *Node {
	return &Node{Kind: Param, Str: name}
}

// NewArray builds an array node
func NewArray(items ...*Node) *Node {
	return &Node{Kind: Array, Items: items}
}

// FirstThatWorks builds a fallback list from most to least preferred. The
// result lists the values least preferred first, so the browser keeps the
// last one it understands.
func FirstThatWorks(items ...*Node) *Node {
	reversed := make([]*Node, len(items))
	for i, it := range items {
		reversed[len(items)-1-i] = it
	}
	return NewArray(reversed...)
}

// KV is a key/value pair for NewObject
type KV struct {
	Key   string
	Value *Node
}

// NewObject builds an object node from pairs in order
func NewObject(pairs ...KV) *Node {
	n := &Node{Kind: Object}
	for _, p := range pairs {
		n.set(Entry{Key: p.Key, Value: p.Value})
	}
	return n
}

// Str is shorthand for NewString, used heavily in tests and fixtures
func Str(s string) *Node { return NewString(s) }

// Num is shorthand for NewNumber
func Num(f float64) *Node { return NewNumber(f) }

// Obj is shorthand for NewObject with alternating keys and values
func Obj(kv ...any) *Node {
	n := &Node{Kind: Object}
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		var v *Node
		switch t := kv[i+1].(type) {
		case *Node:
			v = t
		case string:
			v = NewString(t)
		case int:
			v = NewNumber(float64(t))
		case float64:
			v = NewNumber(t)
		case nil:
			v = NewNull()
		}
		n.set(Entry{Key: key, Value: v})
	}
	return n
}
