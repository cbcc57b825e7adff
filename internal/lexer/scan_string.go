package lexer

import (
	"sqwipt/internal/diag"
	"sqwipt/internal/token"
)

// scanString scans a '...' or "..." literal. It ends at the first matching
// quote not preceded by a backslash; escapes are not decoded. Literals may
// span lines. Without a closing quote the token runs to the end of input.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	prev := quote

	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == quote && prev != '\\' {
			return lx.emit(token.Str, start)
		}
		prev = b
	}

	tok := lx.emit(token.UnterminatedString, start)
	lx.Error(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}
