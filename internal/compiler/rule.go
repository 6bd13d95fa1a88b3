package compiler

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yacobolo/atomcss/internal/diag"
	"github.com/yacobolo/atomcss/internal/normalize"
	"github.com/yacobolo/atomcss/internal/values"
)

// Rule is one compiled CSS rule. A rule keeps its parts so stylesheets can
// scope it for a text direction.
type Rule struct {
	ClassName string
	Priority  float64

	AtRules   []string // Outermost first
	Selectors []string // Empty for rules that are complete at-rules, like @keyframes
	LTRDecls  string
	RTLDecls  string // Empty when the rule reads the same in both directions

	Loc diag.Location
}

// LTR returns the left-to-right CSS text
func (r Rule) LTR() string {
	return r.render("", r.LTRDecls)
}

// RTL returns the right-to-left override, or "" when there is none
func (r Rule) RTL() string {
	if r.RTLDecls == "" {
		return ""
	}
	return r.render("", r.RTLDecls)
}

// Scoped renders decls with every selector prefixed by scope
func (r Rule) Scoped(scope, decls string) string {
	return r.render(scope, decls)
}

func (r Rule) render(scope, decls string) string {
	var b strings.Builder
	for _, at := range r.AtRules {
		b.WriteString(at)
		b.WriteByte('{')
	}
	if len(r.Selectors) == 0 {
		b.WriteString(decls)
	} else {
		for i, sel := range r.Selectors {
			if i > 0 {
				b.WriteString(", ")
			}
			if scope != "" {
				b.WriteString(scope)
				b.WriteByte(' ')
			}
			b.WriteString(sel)
		}
		b.WriteByte('{')
		b.WriteString(decls)
		b.WriteByte('}')
	}
	for range r.AtRules {
		b.WriteByte('}')
	}
	return b.String()
}

// InjectCall is the runtime injection statement recorded in dev mode
func (r Rule) InjectCall() string {
	if rtl := r.RTL(); rtl != "" {
		return fmt.Sprintf("inject(%q, %s, %q)", r.LTR(), values.FormatNumber(r.Priority), rtl)
	}
	return fmt.Sprintf("inject(%q, %s)", r.LTR(), values.FormatNumber(r.Priority))
}

// MarshalJSON writes the metadata triple [className, {ltr, rtl}, priority]
func (r Rule) MarshalJSON() ([]byte, error) {
	var rtl *string
	if s := r.RTL(); s != "" {
		rtl = &s
	}
	css := struct {
		LTR string  `json:"ltr"`
		RTL *string `json:"rtl"`
	}{LTR: r.LTR(), RTL: rtl}
	return json.Marshal([]any{r.ClassName, css, r.Priority})
}

// joinDecls writes declarations as "a:b;c:d"
func joinDecls(decls []normalize.Declaration, trailing bool) string {
	var b strings.Builder
	for i, d := range decls {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(d.Property)
		b.WriteByte(':')
		b.WriteString(d.Value)
	}
	if trailing && len(decls) > 0 {
		b.WriteByte(';')
	}
	return b.String()
}

// selectors builds the selector list for class under path. The class is
// repeated once per at-rule so wrapped rules win over unwrapped ones.
func selectors(class string, path []Condition) []string {
	atRules := 0
	for _, c := range path {
		if c.Kind == AtRule {
			atRules++
		}
	}
	base := strings.Repeat("."+class, atRules+1)

	out := []string{base}
	for _, c := range path {
		if c.Kind == AtRule {
			continue
		}
		variants, ok := pseudoElementVariants[c.Key]
		if !ok {
			variants = []string{c.Key}
		}
		next := make([]string, 0, len(out)*len(variants))
		for _, sel := range out {
			for _, v := range variants {
				next = append(next, sel+v)
			}
		}
		out = next
	}
	return out
}

// atRules returns the at-rule keys of path in order
func atRules(path []Condition) []string {
	var out []string
	for _, c := range path {
		if c.Kind == AtRule {
			out = append(out, c.Key)
		}
	}
	return out
}
