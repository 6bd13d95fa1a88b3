package compiler

import (
	"strings"

	"go.uber.org/zap"

	"github.com/yacobolo/atomcss/internal/diag"
	"github.com/yacobolo/atomcss/internal/normalize"
	"github.com/yacobolo/atomcss/internal/styletree"
)

const priorityKeyframes = 1

// Keyframes compiles an animation and returns its generated name. The
// name can be used in later values as $<name>.
func (c *Compiler) Keyframes(kf styletree.Keyframes) (string, error) {
	if kf.Frames == nil || kf.Frames.Kind != styletree.Object {
		return "", diag.New(diag.IllegalNamespaceValue, kf.Loc, kf.Name)
	}

	var ltr, rtl strings.Builder
	flipped := false

	for _, frame := range kf.Frames.Entries {
		if frame.Value == nil || frame.Value.Kind != styletree.Object {
			return "", diag.New(diag.IllegalPropValue, frame.Loc, frame.Key+" must contain an object of styles")
		}

		var ltrDecls, rtlDecls []normalize.Declaration
		for _, e := range frame.Value.Entries {
			if IsConditionKey(e.Key) {
				return "", diag.New(diag.InvalidPseudoOrAtRule, e.Loc, e.Key)
			}
			if e.Value != nil && e.Value.Kind == styletree.Object {
				return "", diag.New(diag.IllegalPropValue, e.Loc, e.Key)
			}
			exps, err := c.strategy.Expand(normalize.Dashify(e.Key), e.Value)
			if err != nil {
				return "", diag.Wrap(diag.IllegalPropValue, e.Loc, e.Key, err)
			}
			for _, x := range exps {
				if x.Value == nil {
					continue
				}
				vals, err := c.values(x.Property, x.Value, nil, e.Loc)
				if err != nil {
					return "", err
				}
				l, r := c.declarations(x.Property, vals)
				ltrDecls = append(ltrDecls, l...)
				if r != nil {
					flipped = true
					rtlDecls = append(rtlDecls, r...)
				} else {
					rtlDecls = append(rtlDecls, l...)
				}
			}
		}

		key := strings.TrimSpace(frame.Key)
		ltr.WriteString(key + "{" + joinDecls(ltrDecls, true) + "}")
		rtl.WriteString(key + "{" + joinDecls(rtlDecls, true) + "}")
	}

	name := c.opts.ClassNamePrefix + Hash("<>"+ltr.String()) + "-B"
	r := Rule{
		ClassName: name,
		Priority:  priorityKeyframes,
		LTRDecls:  "@keyframes " + name + "{" + ltr.String() + "}",
		Loc:       kf.Loc,
	}
	if flipped {
		r.RTLDecls = "@keyframes " + name + "{" + rtl.String() + "}"
	}
	if _, err := c.registry.Add(r); err != nil {
		return "", err
	}

	c.animations[kf.Name] = name
	c.log.Debug("keyframes compiled", zap.String("keyframes", kf.Name), zap.String("name", name))
	return name, nil
}
