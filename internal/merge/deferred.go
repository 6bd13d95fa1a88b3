package merge

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Deferred is a conditional merge left for the runtime. It keeps the
// resolved arguments and evaluates them once the conditions are known.
type Deferred struct {
	Conditions []string

	args []arg
	opts Options
}

// Evaluate merges for the given condition values. Missing conditions are
// false.
func (d *Deferred) Evaluate(env map[string]bool) Props {
	return evaluate(d.args, func(name string) bool { return env[name] }, d.opts)
}

// deferredArg is the serialised form of one deferred argument
type deferredArg struct {
	If   string `json:"if,omitempty"`
	Then string `json:"then,omitempty"`
	Else string `json:"else,omitempty"`
}

// MarshalJSON writes the arguments so a runtime can repeat the merge
func (d *Deferred) MarshalJSON() ([]byte, error) {
	list := make([]deferredArg, 0, len(d.args))
	for _, a := range d.args {
		da := deferredArg{}
		if a.cond != nil {
			da.If = a.cond.name
			if a.cond.negate {
				da.If = "!" + da.If
			}
		}
		if a.then != nil {
			da.Then = a.then.Name
		}
		if a.els != nil {
			da.Else = a.els.Name
		}
		list = append(list, da)
	}
	return json.Marshal(struct {
		Conditions []string      `json:"conditions"`
		Args       []deferredArg `json:"args"`
	}{d.Conditions, list})
}

// MarshalJSON writes {"className": ..., "style": {...}, "data-style-src": ...}
func (p Props) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(`{"className":`)
	cls, err := json.Marshal(p.ClassName)
	if err != nil {
		return nil, err
	}
	b.Write(cls)

	if p.Style != nil && p.Style.Len() > 0 {
		b.WriteString(`,"style":{`)
		first := true
		for el := p.Style.Front(); el != nil; el = el.Next() {
			if !first {
				b.WriteByte(',')
			}
			first = false
			k, _ := json.Marshal(el.Key)
			v, _ := json.Marshal(el.Value)
			b.Write(k)
			b.WriteByte(':')
			b.Write(v)
		}
		b.WriteByte('}')
	}

	if p.DataStyleSrc != "" {
		src, err := json.Marshal(p.DataStyleSrc)
		if err != nil {
			return nil, err
		}
		b.WriteString(`,"data-style-src":`)
		b.Write(src)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// MarshalJSON writes the props, the lookup table keyed by mask, or the
// deferred arguments
func (o *Output) MarshalJSON() ([]byte, error) {
	switch {
	case o.Props != nil:
		return json.Marshal(o.Props)
	case o.Deferred != nil:
		return json.Marshal(struct {
			Deferred *Deferred `json:"deferred"`
		}{o.Deferred})
	}

	var b bytes.Buffer
	conds, err := json.Marshal(o.Conditions)
	if err != nil {
		return nil, err
	}
	b.WriteString(`{"conditions":`)
	b.Write(conds)
	b.WriteString(`,"table":{`)
	for mask, p := range o.Table {
		if mask > 0 {
			b.WriteByte(',')
		}
		b.WriteString(`"` + strconv.Itoa(mask) + `":`)
		data, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		b.Write(data)
	}
	b.WriteString("}}")
	return b.Bytes(), nil
}
