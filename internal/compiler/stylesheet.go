package compiler

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Direction scopes for rules with an RTL override
const (
	ScopeLTR = "html:not([dir='rtl'])"
	ScopeRTL = "html[dir='rtl']"
)

// Stylesheet renders rules ordered by ascending priority. Rules of equal
// priority keep their registration order. A rule with an RTL override is
// written twice, scoped to each direction. With layers, rules are grouped
// into one @layer per thousand of priority.
func Stylesheet(rules []Rule, useLayers bool) string {
	sorted := slices.Clone(rules)
	slices.SortStableFunc(sorted, func(a, b Rule) int {
		switch {
		case a.Priority < b.Priority:
			return -1
		case a.Priority > b.Priority:
			return 1
		}
		return 0
	})

	if !useLayers {
		var lines []string
		for _, r := range sorted {
			lines = append(lines, renderDirectional(r)...)
		}
		return joinLines(lines)
	}

	var (
		names  []string
		layers = map[string][]string{}
	)
	for _, r := range sorted {
		name := layerName(r.Priority)
		if _, ok := layers[name]; !ok {
			names = append(names, name)
		}
		layers[name] = append(layers[name], renderDirectional(r)...)
	}

	if len(names) == 0 {
		return ""
	}
	lines := []string{"@layer " + strings.Join(names, ", ") + ";"}
	for _, name := range names {
		lines = append(lines, "@layer "+name+"{")
		lines = append(lines, layers[name]...)
		lines = append(lines, "}")
	}
	return joinLines(lines)
}

func layerName(priority float64) string {
	return fmt.Sprintf("priority%d", int(math.Floor(priority/1000))+1)
}

func renderDirectional(r Rule) []string {
	// Complete at-rules such as @keyframes cannot be scoped by direction
	if r.RTLDecls == "" || len(r.Selectors) == 0 {
		return []string{r.LTR()}
	}
	return []string{
		r.Scoped(ScopeLTR, r.LTRDecls),
		r.Scoped(ScopeRTL, r.RTLDecls),
	}
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
