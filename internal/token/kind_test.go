package token_test

import (
	"testing"

	"sqwipt/internal/source"
	"sqwipt/internal/token"
)

func tok(k token.Kind, text string) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}, Text: text}
}

func TestIsLiteral(t *testing.T) {
	for _, k := range []token.Kind{token.Int, token.Float, token.Hex, token.Str} {
		if !tok(k, "").IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.Keyword, token.Punct, token.UnterminatedString} {
		if tok(k, "").IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsPunct(t *testing.T) {
	plus := tok(token.Punct, "+")
	if !plus.IsPunct("+") {
		t.Fatal("+ should match itself")
	}
	if plus.IsPunct("+=") {
		t.Fatal("+ must not match +=")
	}
	if tok(token.Ident, "+").IsPunct("+") {
		t.Fatal("non-punct kind must not match")
	}
}

func TestLayoutAndStructural(t *testing.T) {
	for _, k := range []token.Kind{token.Newline, token.Begin, token.End, token.Eof} {
		if !k.IsLayout() {
			t.Fatalf("%v should be layout", k)
		}
	}
	if tok(token.Begin, "").IsStructural() {
		t.Fatal("Begin opens a block and is not a terminator")
	}
	for _, k := range []token.Kind{token.Newline, token.End, token.Eof} {
		if !tok(k, "").IsStructural() {
			t.Fatalf("%v should be structural", k)
		}
	}
}

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.Punct:              "Punct",
		token.Hex:                "Hex",
		token.Begin:              "Begin",
		token.UnterminatedString: "UnterminatedString",
		token.Kind(200):          "Kind(?)",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
