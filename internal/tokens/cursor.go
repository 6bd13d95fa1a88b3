package tokens

// Cursor is an immutable position in a token slice. Advancing returns a new
// cursor, so a parser can keep an earlier cursor around to backtrack.
type Cursor struct {
	toks   []Token
	pos    int
	srcLen int
}

// NewCursor creates a cursor at the first token. srcLen is the length of the
// source string and is reported as the offset once the tokens run out.
func NewCursor(toks []Token, srcLen int) Cursor {
	return Cursor{toks: toks, srcLen: srcLen}
}

// Stream tokenizes s and returns a cursor at its first token
func Stream(s string) (Cursor, error) {
	toks, err := Tokenize(s)
	if err != nil {
		return Cursor{}, err
	}
	return NewCursor(toks, len(s)), nil
}

// Peek returns the current token without consuming it
func (c Cursor) Peek() (Token, bool) {
	if c.pos >= len(c.toks) {
		return Token{}, false
	}
	return c.toks[c.pos], true
}

// Advance returns a cursor positioned after the current token
func (c Cursor) Advance() Cursor {
	if c.pos < len(c.toks) {
		c.pos++
	}
	return c
}

// AtEnd reports whether all tokens have been consumed
func (c Cursor) AtEnd() bool {
	return c.pos >= len(c.toks)
}

// Index is the number of tokens consumed so far
func (c Cursor) Index() int {
	return c.pos
}

// Offset is the source byte offset of the current token
func (c Cursor) Offset() int {
	if c.pos >= len(c.toks) {
		return c.srcLen
	}
	return c.toks[c.pos].Offset
}

// End is the source byte offset just past the current token
func (c Cursor) End() int {
	if c.pos >= len(c.toks) {
		return c.srcLen
	}
	t := c.toks[c.pos]
	return t.Offset + len(t.Raw)
}

// SkipWhitespace advances past any whitespace tokens
func (c Cursor) SkipWhitespace() Cursor {
	for c.pos < len(c.toks) && c.toks[c.pos].Kind == Whitespace {
		c.pos++
	}
	return c
}

// Remaining returns the unconsumed tokens
func (c Cursor) Remaining() []Token {
	if c.pos >= len(c.toks) {
		return nil
	}
	return c.toks[c.pos:]
}
