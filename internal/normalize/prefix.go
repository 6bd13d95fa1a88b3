package normalize

// Declaration is a single property: value pair
type Declaration struct {
	Property string
	Value    string
}

// prefixedProperties still need a -webkit- copy in current engines
var prefixedProperties = map[string]string{
	"appearance":           "-webkit-appearance",
	"backdrop-filter":      "-webkit-backdrop-filter",
	"box-decoration-break": "-webkit-box-decoration-break",
	"initial-letter":       "-webkit-initial-letter",
	"mask-image":           "-webkit-mask-image",
	"text-size-adjust":     "-webkit-text-size-adjust",
	"user-select":          "-webkit-user-select",
}

// prefixedValues need a prefixed value for the same property
var prefixedValues = map[string]map[string]string{
	"position": {"sticky": "-webkit-sticky"},
}

// Prefixed returns the vendor-prefixed declarations to emit before
// property: value. Most properties need none.
func Prefixed(property, value string) []Declaration {
	var out []Declaration
	if p, ok := prefixedProperties[property]; ok {
		out = append(out, Declaration{Property: p, Value: value})
	}
	if vals, ok := prefixedValues[property]; ok {
		if v, ok := vals[value]; ok {
			out = append(out, Declaration{Property: property, Value: v})
		}
	}
	return out
}
