package lexer

import (
	"sqwipt/internal/token"
)

// scanNumber handles 42, 0x2a, 1.5, 1., 1e9 and 1.5E-3.
// An exponent is taken only when a digit follows it (after an optional sign),
// so "1else" lexes as 1 followed by an identifier.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.HasPrefix("0x") || lx.cursor.HasPrefix("0X") {
		lx.cursor.Skip(2)
		lx.cursor.SkipWhile(isHex)
		return lx.emit(token.Hex, start)
	}

	kind := token.Int
	lx.cursor.SkipWhile(isDec)

	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		lx.cursor.SkipWhile(isDec)
		kind = token.Float
	}

	if e := lx.cursor.Peek(); e == 'e' || e == 'E' {
		digitAt := uint32(1)
		if s := lx.cursor.PeekAt(1); s == '+' || s == '-' {
			digitAt = 2
		}
		if isDec(lx.cursor.PeekAt(digitAt)) {
			lx.cursor.Skip(digitAt)
			lx.cursor.SkipWhile(isDec)
			kind = token.Float
		}
	}

	return lx.emit(kind, start)
}
