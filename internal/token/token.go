package token

import (
	"sqwipt/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Int, Float, Hex, Str:
		return true
	default:
		return false
	}
}

// IsPunct reports whether the token is the punctuation mark p.
func (t Token) IsPunct(p string) bool {
	return t.Kind == Punct && t.Text == p
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind == Keyword }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsStructural reports whether the token delimits lines or blocks.
func (t Token) IsStructural() bool {
	switch t.Kind {
	case Newline, End, Eof:
		return true
	default:
		return false
	}
}
