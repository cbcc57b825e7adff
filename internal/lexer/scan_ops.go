package lexer

import (
	"fmt"
	"unicode/utf8"

	"sqwipt/internal/diag"
	"sqwipt/internal/token"
)

// scanPunct takes the first entry of token.Puncts that prefixes the input,
// which is the longest match because the table is ordered longest first.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	for _, p := range token.Puncts {
		if lx.cursor.HasPrefix(p) {
			lx.cursor.Skip(uint32(len(p))) // #nosec G115 -- at most 3 bytes
			return lx.emit(token.Punct, start)
		}
	}

	// Unknown input: take one whole UTF-8 sequence so spans stay on rune boundaries.
	r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
	lx.cursor.Skip(uint32(size)) // #nosec G115 -- 1..4
	tok := lx.emit(token.UnknownToken, start)
	lx.Error(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unknown character %q", r))
	return tok
}
