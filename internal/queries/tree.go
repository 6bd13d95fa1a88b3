package queries

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Tree renders a media query as an indented tree for debugging
func Tree(q MediaQuery) string {
	root := treeprint.NewWithRoot("@media")
	q.Rule.Accept(&treeBuilder{node: root})
	return root.String()
}

// SupportsTree renders a supports query as an indented tree for debugging
func SupportsTree(q SupportsQuery) string {
	root := treeprint.NewWithRoot("@supports")
	q.Rule.Accept(&supportsTreeBuilder{node: root})
	return root.String()
}

type treeBuilder struct {
	node treeprint.Tree
}

func (b *treeBuilder) VisitKeyword(r MediaKeyword) {
	label := "keyword " + r.Key
	switch {
	case r.Not:
		label += " (not)"
	case r.Only:
		label += " (only)"
	}
	b.node.AddNode(label)
}

func (b *treeBuilder) VisitWordRule(r WordRule) {
	b.node.AddNode("word " + r.KeyValue)
}

func (b *treeBuilder) VisitPair(r Pair) {
	b.node.AddNode(fmt.Sprintf("pair %s: %s", r.Key, r.Value))
}

func (b *treeBuilder) VisitNot(r NotRule) {
	r.Rule.Accept(&treeBuilder{node: b.node.AddBranch("not")})
}

func (b *treeBuilder) VisitAnd(r AndRules) {
	branch := &treeBuilder{node: b.node.AddBranch("and")}
	for _, child := range r.Rules {
		child.Accept(branch)
	}
}

func (b *treeBuilder) VisitOr(r OrRules) {
	branch := &treeBuilder{node: b.node.AddBranch("or")}
	for _, child := range r.Rules {
		child.Accept(branch)
	}
}

type supportsTreeBuilder struct {
	node treeprint.Tree
}

func (b *supportsTreeBuilder) VisitDeclaration(r SupportsDeclaration) {
	b.node.AddNode(fmt.Sprintf("declaration %s: %s", r.Property, r.Value))
}

func (b *supportsTreeBuilder) VisitSelector(r SupportsSelector) {
	b.node.AddNode("selector " + r.Selector)
}

func (b *supportsTreeBuilder) VisitSupportsNot(r SupportsNot) {
	r.Rule.Accept(&supportsTreeBuilder{node: b.node.AddBranch("not")})
}

func (b *supportsTreeBuilder) VisitSupportsAnd(r SupportsAnd) {
	branch := &supportsTreeBuilder{node: b.node.AddBranch("and")}
	for _, child := range r.Rules {
		child.Accept(branch)
	}
}

func (b *supportsTreeBuilder) VisitSupportsOr(r SupportsOr) {
	branch := &supportsTreeBuilder{node: b.node.AddBranch("or")}
	for _, child := range r.Rules {
		child.Accept(branch)
	}
}
