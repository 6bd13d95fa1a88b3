// Package queries parses and prints @media and @supports conditions.
//
// Media conditions form a closed set of node types (MediaKeyword, WordRule,
// Pair, NotRule, AndRules, OrRules). Code that needs to handle every node
// implements Visitor, so adding a node type breaks the build instead of
// silently falling through a switch.
package queries

import (
	"strings"

	"github.com/yacobolo/atomcss/internal/values"
)

// MediaRule is a node of a media condition
type MediaRule interface {
	String() string
	Accept(v Visitor)
	isMediaRule()
}

// Visitor receives exactly one call per Accept
type Visitor interface {
	VisitKeyword(MediaKeyword)
	VisitWordRule(WordRule)
	VisitPair(Pair)
	VisitNot(NotRule)
	VisitAnd(AndRules)
	VisitOr(OrRules)
}

// MediaKeyword is a media type: all, screen or print, optionally negated
// ("not print") or restricted ("only screen")
type MediaKeyword struct {
	Key  string
	Not  bool
	Only bool
}

// WordRule is a boolean feature test such as (color)
type WordRule struct {
	KeyValue string
}

// Pair is a feature test such as (min-width: 400px). Value is a
// values.Length, values.Number, values.Fraction, values.Resolution or
// values.Ident.
type Pair struct {
	Key   string
	Value values.Value
}

// NotRule negates a condition: (not (min-width: 400px))
type NotRule struct {
	Rule MediaRule
}

// AndRules is a conjunction. Build it with NewAnd.
type AndRules struct {
	Rules []MediaRule
}

// OrRules is a disjunction. At the top level of a query it prints as a comma
// separated list. Build it with NewOr.
type OrRules struct {
	Rules []MediaRule
}

func (MediaKeyword) isMediaRule() {}
func (WordRule) isMediaRule()     {}
func (Pair) isMediaRule()         {}
func (NotRule) isMediaRule()      {}
func (AndRules) isMediaRule()     {}
func (OrRules) isMediaRule()      {}

func (r MediaKeyword) Accept(v Visitor) { v.VisitKeyword(r) }
func (r WordRule) Accept(v Visitor)     { v.VisitWordRule(r) }
func (r Pair) Accept(v Visitor)         { v.VisitPair(r) }
func (r NotRule) Accept(v Visitor)      { v.VisitNot(r) }
func (r AndRules) Accept(v Visitor)     { v.VisitAnd(r) }
func (r OrRules) Accept(v Visitor)      { v.VisitOr(r) }

// NewAnd combines rules with "and". A single rule is returned as is and
// nested conjunctions are flattened.
func NewAnd(rules ...MediaRule) MediaRule {
	var flat []MediaRule
	for _, r := range rules {
		if and, ok := r.(AndRules); ok {
			flat = append(flat, and.Rules...)
			continue
		}
		flat = append(flat, r)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return AndRules{Rules: flat}
}

// NewOr combines rules with "or". A single rule is returned as is and nested
// disjunctions are flattened.
func NewOr(rules ...MediaRule) MediaRule {
	var flat []MediaRule
	for _, r := range rules {
		if or, ok := r.(OrRules); ok {
			flat = append(flat, or.Rules...)
			continue
		}
		flat = append(flat, r)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return OrRules{Rules: flat}
}

// MediaQuery is a complete @media prelude
type MediaQuery struct {
	Rule MediaRule
}

// String prints "@media " followed by the condition. The zero value
// prints as "".
func (q MediaQuery) String() string {
	if q.Rule == nil {
		return ""
	}
	return "@media " + PrintTopLevel(q.Rule)
}

// PrintTopLevel prints a condition as the outermost expression of a query,
// where a disjunction is written as a comma separated list
func PrintTopLevel(r MediaRule) string {
	p := &printer{top: true}
	r.Accept(p)
	return p.b.String()
}

func (r MediaKeyword) String() string { return render(r) }
func (r WordRule) String() string     { return render(r) }
func (r Pair) String() string         { return render(r) }
func (r NotRule) String() string      { return render(r) }
func (r AndRules) String() string     { return render(r) }
func (r OrRules) String() string      { return render(r) }

func render(r MediaRule) string {
	p := &printer{}
	r.Accept(p)
	return p.b.String()
}

// printer serialises a media condition
type printer struct {
	b   strings.Builder
	top bool
}

func (p *printer) VisitKeyword(r MediaKeyword) {
	switch {
	case r.Not:
		p.b.WriteString("not ")
	case r.Only:
		p.b.WriteString("only ")
	}
	p.b.WriteString(r.Key)
}

func (p *printer) VisitWordRule(r WordRule) {
	p.b.WriteString("(" + r.KeyValue + ")")
}

func (p *printer) VisitPair(r Pair) {
	p.b.WriteString("(" + r.Key + ": " + r.Value.String() + ")")
}

func (p *printer) VisitNot(r NotRule) {
	inner := render(r.Rule)
	if isCompound(r.Rule) {
		inner = "(" + inner + ")"
	}
	p.b.WriteString("(not " + inner + ")")
}

func (p *printer) VisitAnd(r AndRules) {
	parts := make([]string, len(r.Rules))
	for i, child := range r.Rules {
		s := render(child)
		if _, ok := child.(OrRules); ok {
			s = "(" + s + ")"
		}
		parts[i] = s
	}
	p.b.WriteString(strings.Join(parts, " and "))
}

func (p *printer) VisitOr(r OrRules) {
	if len(r.Rules) == 0 {
		p.b.WriteString("not all")
		return
	}

	parts := make([]string, len(r.Rules))
	for i, child := range r.Rules {
		s := render(child)
		if !p.top && isCompound(child) {
			s = "(" + s + ")"
		}
		parts[i] = s
	}

	if p.top {
		p.b.WriteString(strings.Join(parts, ", "))
		return
	}
	p.b.WriteString(strings.Join(parts, " or "))
}

func isCompound(r MediaRule) bool {
	switch r.(type) {
	case AndRules, OrRules:
		return true
	}
	return false
}
