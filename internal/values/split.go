package values

import (
	"strings"

	"github.com/yacobolo/atomcss/internal/tokens"
)

// SplitComponents splits s at top-level whitespace, keeping function
// arguments and parenthesised groups intact: "1px calc(2px + 3px)" yields
// ["1px", "calc(2px + 3px)"]
func SplitComponents(s string) ([]string, error) {
	return splitTopLevel(s, func(t tokens.Token) bool { return t.Kind == tokens.Whitespace })
}

// SplitCommas splits s at top-level commas and trims each part
func SplitCommas(s string) ([]string, error) {
	return splitTopLevel(s, func(t tokens.Token) bool { return t.Kind == tokens.Comma })
}

func splitTopLevel(s string, isSep func(tokens.Token) bool) ([]string, error) {
	toks, err := tokens.Tokenize(s)
	if err != nil {
		return nil, err
	}

	var (
		parts []string
		cur   strings.Builder
		depth int
	)
	flush := func() {
		if part := strings.TrimSpace(cur.String()); part != "" {
			parts = append(parts, part)
		}
		cur.Reset()
	}

	for _, t := range toks {
		switch t.Kind {
		case tokens.Function, tokens.LeftParen, tokens.LeftBracket:
			depth++
		case tokens.RightParen, tokens.RightBracket:
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && isSep(t) {
			flush()
			continue
		}
		cur.WriteString(t.Raw)
	}
	flush()

	return parts, nil
}
