package compiler

import (
	"strings"

	"go.uber.org/zap"

	"github.com/yacobolo/atomcss/internal/diag"
)

// Registry deduplicates the rules of one compilation run. Identical
// declarations collapse into one rule; a class name that would stand for two
// different rules is an error.
type Registry struct {
	log   *zap.Logger
	rules []Rule
	index map[string]int
	hits  int
}

// NewRegistry creates an empty registry
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{log: log, index: make(map[string]int)}
}

func ruleKey(r Rule) string {
	return r.ClassName + "\x00" + strings.Join(r.AtRules, "\x00")
}

// Check reports the DUPLICATE_CLASS_NAME error Add would return for r
// without registering it
func (reg *Registry) Check(r Rule) error {
	i, ok := reg.index[ruleKey(r)]
	if !ok {
		return nil
	}
	prev := reg.rules[i]
	if prev.LTR() != r.LTR() || prev.RTL() != r.RTL() {
		return diag.New(diag.DuplicateClassName, r.Loc, r.ClassName+": "+prev.LTR()+" vs "+r.LTR())
	}
	return nil
}

// Add registers r. It reports whether r was new.
func (reg *Registry) Add(r Rule) (bool, error) {
	key := ruleKey(r)
	if _, ok := reg.index[key]; ok {
		if err := reg.Check(r); err != nil {
			return false, err
		}
		reg.hits++
		reg.log.Debug("registry hit", zap.String("class", r.ClassName))
		return false, nil
	}
	reg.index[key] = len(reg.rules)
	reg.rules = append(reg.rules, r)
	return true, nil
}

// Rules returns the registered rules in registration order
func (reg *Registry) Rules() []Rule {
	out := make([]Rule, len(reg.rules))
	copy(out, reg.rules)
	return out
}

// Len is the number of distinct rules
func (reg *Registry) Len() int {
	return len(reg.rules)
}

// Hits counts registrations that matched an existing rule
func (reg *Registry) Hits() int {
	return reg.hits
}
