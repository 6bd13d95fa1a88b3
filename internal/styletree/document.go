package styletree

import (
	"github.com/yacobolo/atomcss/internal/diag"
)

// Document is one style-definition source file
type Document struct {
	File       string
	Namespaces []Namespace
	VarGroups  []VarGroup
	Themes     []Theme
	Keyframes  []Keyframes
	Merges     []MergeSite
}

// Namespace is one member of a style definition, e.g. "button" in
// create: {button: {...}}
type Namespace struct {
	Name   string
	Params []string // Parameters of a dynamic namespace, nil when static
	Style  *Node
	Loc    diag.Location
}

// Dynamic reports whether the namespace takes parameters
func (n Namespace) Dynamic() bool {
	return n.Params != nil
}

// VarGroup is a named group of custom properties
type VarGroup struct {
	Name   string
	Values *Node
	Loc    diag.Location
}

// Theme overrides the values of a variable group
type Theme struct {
	Name   string
	Vars   string // Name of the overridden VarGroup
	Values *Node
	Loc    diag.Location
}

// Keyframes is a named animation
type Keyframes struct {
	Name   string
	Frames *Node
	Loc    diag.Location
}

// MergeSite is one call-site merge of namespace references
type MergeSite struct {
	Name string
	Args []MergeArg
	Loc  diag.Location
}

// MergeArg is one argument of a merge. Cond is empty for an unconditional
// reference. Then and Else name namespaces; "null" or "" contributes
// nothing. Args lists the values passed to a dynamic namespace.
type MergeArg struct {
	Cond string
	Then string
	Else string
	Args []*Node
	Loc  diag.Location
}
