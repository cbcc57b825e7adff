package lexer

import (
	"sqwipt/internal/source"
	"sqwipt/internal/token"
)

// Lexer scans one file into tokens on demand, keeping a single token of
// lookahead. Indentation changes after a line break become Begin and End
// tokens; every Begin is matched by exactly one End before Eof.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   token.Token
	// indents holds active indentation widths, strictly increasing.
	indents []uint32
	// dedent is the width of a line whose dedent has not been fully
	// resolved yet; valid while dedenting is set.
	dedent    uint32
	dedenting bool
}

// New creates a lexer over file and scans the first token.
func New(file *source.File, opts Options) *Lexer {
	lx := &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
	lx.look = lx.scan()
	return lx
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File { return lx.file }

// Peek returns the lookahead token without consuming it.
func (lx *Lexer) Peek() token.Token {
	return lx.look
}

// Span returns the lookahead's span.
func (lx *Lexer) Span() source.Span {
	return lx.look.Span
}

// Advance consumes the lookahead and returns its span.
// At Eof it keeps returning the Eof span.
func (lx *Lexer) Advance() source.Span {
	sp := lx.look.Span
	lx.look = lx.scan()
	return sp
}

// Next consumes the lookahead and returns it.
func (lx *Lexer) Next() token.Token {
	tok := lx.look
	lx.look = lx.scan()
	return tok
}

// Tokens drains the lexer, returning every remaining token up to and
// including Eof.
func (lx *Lexer) Tokens() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.Eof {
			return out
		}
	}
}

// Depth returns the number of open indentation levels.
func (lx *Lexer) Depth() int {
	return len(lx.indents)
}

// Indents returns a copy of the active indentation widths, outermost first.
func (lx *Lexer) Indents() []uint32 {
	return append([]uint32(nil), lx.indents...)
}

func (lx *Lexer) scan() token.Token {
	if lx.dedenting {
		if tok, ok := lx.resolveIndent(lx.dedent); ok {
			return tok
		}
	}

	lx.cursor.SkipWhile(isSpace)

	if lx.cursor.EOF() {
		if n := len(lx.indents); n > 0 {
			lx.indents = lx.indents[:n-1]
			return lx.layout(token.End, lx.cursor.Here())
		}
		return lx.layout(token.Eof, lx.cursor.Here())
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == '\n':
		return lx.scanNewline()
	case isDec(ch):
		return lx.scanNumber()
	case isLetter(ch):
		return lx.scanIdentOrKeyword()
	case ch == '"' || ch == '\'':
		return lx.scanString()
	default:
		return lx.scanPunct()
	}
}

// scanNewline consumes a line break and measures the next line's indentation.
// Blank lines and trailing whitespace yield a plain Newline.
func (lx *Lexer) scanNewline() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	nl := lx.cursor.SpanFrom(start)

	width := lx.cursor.RunLen(isSpace)
	switch next := lx.cursor.PeekAt(width); {
	case lx.cursor.Off+width >= lx.cursor.Limit:
		lx.cursor.Skip(width)
		return lx.layout(token.Newline, nl)
	case next == '\n':
		return lx.layout(token.Newline, nl)
	}

	lx.cursor.Skip(width)
	if tok, ok := lx.resolveIndent(width); ok {
		return tok
	}
	return lx.layout(token.Newline, nl)
}

// resolveIndent compares width with the innermost level. It returns Begin on
// an increase and one End per call on a decrease; ok is false once width
// matches the current level.
func (lx *Lexer) resolveIndent(width uint32) (token.Token, bool) {
	lx.dedenting = false
	top := lx.top()
	switch {
	case width > top:
		lx.indents = append(lx.indents, width)
		return lx.layout(token.Begin, lx.cursor.Here()), true
	case width < top:
		lx.indents = lx.indents[:len(lx.indents)-1]
		if width != lx.top() {
			lx.dedent, lx.dedenting = width, true
		}
		return lx.layout(token.End, lx.cursor.Here()), true
	default:
		return token.Token{}, false
	}
}

func (lx *Lexer) top() uint32 {
	if n := len(lx.indents); n > 0 {
		return lx.indents[n-1]
	}
	return 0
}

func (lx *Lexer) layout(kind token.Kind, sp source.Span) token.Token {
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) emit(kind token.Kind, m Mark) token.Token {
	sp := lx.cursor.SpanFrom(m)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
