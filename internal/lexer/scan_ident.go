package lexer

import (
	"sqwipt/internal/token"
)

// scanIdentOrKeyword scans [A-Za-z][A-Za-z0-9_]* and classifies reserved words.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.SkipWhile(isIdentContinue)

	tok := lx.emit(token.Ident, start)
	if token.IsKeywordText(tok.Text) {
		tok.Kind = token.Keyword
	}
	return tok
}
