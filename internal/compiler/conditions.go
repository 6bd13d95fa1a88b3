package compiler

import (
	"regexp"
	"strings"

	"github.com/yacobolo/atomcss/internal/diag"
	"github.com/yacobolo/atomcss/internal/queries"
)

// ConditionKind classifies a condition key
type ConditionKind int

// Condition kinds
const (
	PseudoClass ConditionKind = iota
	PseudoElement
	AtRule
)

// Condition is one wrapper of a declaration: ":hover", "::before" or an
// at-rule such as "@media (min-width: 400px)"
type Condition struct {
	Kind ConditionKind
	Key  string
}

// Priority returns the ordering weight the condition adds to a rule
func (c Condition) Priority() float64 {
	switch c.Kind {
	case PseudoElement:
		return 5000
	case AtRule:
		switch {
		case strings.HasPrefix(c.Key, "@supports"):
			return 30
		case strings.HasPrefix(c.Key, "@media"):
			return 200
		case strings.HasPrefix(c.Key, "@container"):
			return 300
		}
		return 0
	}
	name := c.Key
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = name[:i]
	}
	if p, ok := pseudoClassPriorities[name]; ok {
		return p
	}
	return 40
}

var pseudoClassPriorities = map[string]float64{
	":first-child":        52,
	":first-of-type":      52,
	":last-child":         54,
	":last-of-type":       54,
	":only-child":         56,
	":only-of-type":       56,
	":nth-child":          60,
	":nth-last-child":     61,
	":nth-of-type":        62,
	":nth-last-of-type":   63,
	":empty":              70,
	":link":               80,
	":any-link":           80,
	":local-link":         80,
	":target-within":      80,
	":target":             82,
	":visited":            85,
	":enabled":            91,
	":disabled":           92,
	":required":           93,
	":optional":           94,
	":read-only":          95,
	":read-write":         96,
	":placeholder-shown":  97,
	":in-range":           98,
	":out-of-range":       99,
	":default":            100,
	":checked":            101,
	":indeterminate":      101,
	":blank":              102,
	":valid":              103,
	":invalid":            104,
	":user-invalid":       105,
	":autofill":           110,
	":picture-in-picture": 120,
	":modal":              121,
	":fullscreen":         122,
	":paused":             123,
	":playing":            124,
	":current":            125,
	":past":               126,
	":future":             127,
	":hover":              130,
	":focus-within":       140,
	":focus":              150,
	":focus-visible":      160,
	":active":             170,
}

var (
	pseudoClassRe   = regexp.MustCompile(`^:[A-Za-z][A-Za-z0-9-]*(\(.+\))?$`)
	pseudoElementRe = regexp.MustCompile(`^::[A-Za-z][A-Za-z0-9-]*(\(.+\))?$`)
)

// IsConditionKey reports whether key opens a condition
func IsConditionKey(key string) bool {
	return strings.HasPrefix(key, ":") || strings.HasPrefix(key, "@")
}

// ParseCondition validates a condition key and returns it in canonical
// form. Media and supports queries are reparsed and printed again.
func ParseCondition(key string, loc diag.Location) (Condition, error) {
	key = strings.TrimSpace(key)

	switch {
	case strings.HasPrefix(key, "::"):
		if !pseudoElementRe.MatchString(key) {
			return Condition{}, diag.New(diag.InvalidPseudo, loc, key)
		}
		return Condition{Kind: PseudoElement, Key: key}, nil

	case strings.HasPrefix(key, ":"):
		if !pseudoClassRe.MatchString(key) {
			return Condition{}, diag.New(diag.InvalidPseudo, loc, key)
		}
		return Condition{Kind: PseudoClass, Key: key}, nil

	case strings.HasPrefix(key, "@media"):
		q, err := queries.ParseMediaQueryRecursive(key)
		if err != nil {
			return Condition{}, diag.Wrap(diag.InvalidMediaQuery, loc, key, err)
		}
		return Condition{Kind: AtRule, Key: q.String()}, nil

	case strings.HasPrefix(key, "@supports"):
		q, err := queries.ParseSupportsQuery(key)
		if err != nil {
			return Condition{}, diag.Wrap(diag.InvalidSupportsQuery, loc, key, err)
		}
		return Condition{Kind: AtRule, Key: q.String()}, nil

	case strings.HasPrefix(key, "@container"):
		if strings.TrimSpace(strings.TrimPrefix(key, "@container")) == "" {
			return Condition{}, diag.New(diag.InvalidPseudoOrAtRule, loc, key)
		}
		return Condition{Kind: AtRule, Key: strings.Join(strings.Fields(key), " ")}, nil
	}

	return Condition{}, diag.New(diag.InvalidPseudoOrAtRule, loc, key)
}

// pseudoElementVariants expands pseudo-elements that need one selector per
// engine
var pseudoElementVariants = map[string][]string{
	"::thumb": {"::-webkit-slider-thumb", "::-moz-range-thumb", "::-ms-thumb"},
}

// modifierString is the part of a class hash contributed by the condition
// path, in source order
func modifierString(path []Condition) string {
	if len(path) == 0 {
		return "null"
	}
	var b strings.Builder
	for _, c := range path {
		b.WriteString(c.Key)
	}
	return b.String()
}
