package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"sqwipt/internal/source"
)

// Cursor is a byte position inside one file.
type Cursor struct {
	File *source.File
	Off  uint32
	// Limit is the exclusive upper bound for Off.
	Limit uint32
}

// NewCursor creates a cursor at the start of f.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, Limit: limit}
}

// EOF reports whether every byte has been consumed.
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek returns the current byte, or 0 at the end.
func (c *Cursor) Peek() byte {
	return c.PeekAt(0)
}

// PeekAt returns the byte n positions ahead, or 0 past the end.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// Bump consumes one byte and returns it.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// Skip advances by n bytes, stopping at Limit.
func (c *Cursor) Skip(n uint32) {
	c.Off = min(c.Off+n, c.Limit)
}

// RunLen counts how many bytes from the current position satisfy pred.
// The cursor does not move.
func (c *Cursor) RunLen(pred func(byte) bool) uint32 {
	var n uint32
	for c.Off+n < c.Limit && pred(c.File.Content[c.Off+n]) {
		n++
	}
	return n
}

// SkipWhile consumes bytes while pred holds.
func (c *Cursor) SkipWhile(pred func(byte) bool) {
	c.Skip(c.RunLen(pred))
}

// HasPrefix reports whether the unread input starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	n := uint32(len(s)) // #nosec G115 -- lexeme tables are short
	if c.Off+n > c.Limit {
		return false
	}
	return string(c.File.Content[c.Off:c.Off+n]) == s
}

// Mark is a saved offset used to build spans of scanned lexemes.
type Mark uint32

func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom returns the span between m and the current position.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

// Here returns the empty span at the current position.
func (c *Cursor) Here() source.Span {
	return source.Span{File: c.File.ID, Start: c.Off, End: c.Off}
}

// Reset moves the cursor back to m.
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}
