package parser

import (
	"testing"

	"sqwipt/internal/diag"
	"sqwipt/internal/token"
)

func TestParseExprTrees(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"int", "1", "(int 1)"},
		{"float", "1.0", "(float 1.0)"},
		{"float exponent", "1.0e10", "(float 1.0e10)"},
		{"hex", "0x1F", "(hex 0x1F)"},
		{"string", `"1"`, `(str "1")`},
		{"single quoted", `'a b'`, `(str 'a b')`},
		{"ident", "a", "(ident a)"},
		{"not", "!1", "(unary ! (int 1))"},
		{"plus", "+1", "(unary + (int 1))"},
		{"minus", "-1", "(unary - (int 1))"},
		{"unary binds one atom", "-1 * 2", "(binary * (unary - (int 1)) (int 2))"},
		{"unary member", "-a.b", "(unary - (dot (ident a) (ident b)))"},
		{"paren", "(1)", "(paren (int 1))"},
		{"one tuple", "(1,)", "(tuple (int 1) ,)"},
		{"pair", "(1, 2)", "(tuple (int 1) (int 2))"},
		{"unit", "()", "(tuple)"},
		{"array", "[1, 2]", "(array (int 1) (int 2))"},
		{"empty array", "[]", "(array)"},
		{"mul binds tighter", "1 + 2 * 3", "(binary + (int 1) (binary * (int 2) (int 3)))"},
		{"mul first", "1 * 2 + 3", "(binary + (binary * (int 1) (int 2)) (int 3))"},
		{"left assoc", "1 + 2 + 3", "(binary + (binary + (int 1) (int 2)) (int 3))"},
		{"minus shares mul level", "1 - 2 * 3", "(binary * (binary - (int 1) (int 2)) (int 3))"},
		{"modulo", "7 % 4 + 1", "(binary + (binary % (int 7) (int 4)) (int 1))"},
		{"power left assoc", "2 ** 3 ** 2", "(binary ** (binary ** (int 2) (int 3)) (int 2))"},
		{"power over mul", "2 * 3 ** 2", "(binary * (int 2) (binary ** (int 3) (int 2)))"},
		{"index", "1[2]", "(index (int 1) (int 2))"},
		{"index full expr", "a[1 + 2]", "(index (ident a) (binary + (int 1) (int 2)))"},
		{"call", "1(2)", "(call (int 1) (int 2))"},
		{"call chain", "1(2)(3)", "(call (call (int 1) (int 2)) (int 3))"},
		{"index then call", "1[2](3)", "(call (index (int 1) (int 2)) (int 3))"},
		{"paren call", "(1)(2)", "(call (paren (int 1)) (int 2))"},
		{"call no args", "f()", "(call (ident f))"},
		{"call single arg stays list", "f((1))", "(call (ident f) (paren (int 1)))"},
		{"call trailing comma", "f(1,)", "(call (ident f) (int 1) ,)"},
		{"dot", "a.b", "(dot (ident a) (ident b))"},
		{"dot takes atom", "a.b + 1", "(binary + (dot (ident a) (ident b)) (int 1))"},
		{"dot member call", "a.b(1)", "(dot (ident a) (call (ident b) (int 1)))"},
		{"dot chain", "a.b.c", "(dot (ident a) (dot (ident b) (ident c)))"},
		{"closure", "|x| x + 1", "(closure (x) (binary + (ident x) (int 1)))"},
		{"closure default", "|x, y = 2| x", "(closure (x (= y (int 2))) (ident x))"},
		{"closure no params", "|| 1", "(closure () (int 1))"},
		{"closure trailing comma", "|x,| x", "(closure (x ,) (ident x))"},
		{"block", "\n  1", "(block (int 1))"},
		{"block two lines", "\n  1\n  2", "(block (int 1) (int 2))"},
		{"block nested paren", "\n  1\n  (\n    2\n  )", "(block (int 1) (paren (block (int 2))))"},
		{"block semicolons", "\n  1; 2;", "(block (int 1) (int 2))"},
		{"block blank line", "\n  1\n\n  2", "(block (int 1) (int 2))"},
		{"closure block body", "|x|\n  x", "(closure (x) (block (ident x)))"},
		{"tuple of blocks", "(\n  1\n,\n  2\n)", "(tuple (block (int 1)) (block (int 2)))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, id := parseExprOK(t, tt.input)
			if got := f.sexpr(id); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
			if f.bag.Len() != 0 {
				t.Errorf("unexpected diagnostics: %s", diagnosticsSummary(f.bag))
			}
			expectLookahead(t, f, token.Eof, "")
		})
	}
}

func TestParseExprStopsAtFirstNonOperator(t *testing.T) {
	f, id := parseExprOK(t, "1 2")
	if got := f.sexpr(id); got != "(int 1)" {
		t.Fatalf("got %s", got)
	}
	expectLookahead(t, f, token.Int, "2")

	f, id = parseExprOK(t, "a + b)")
	if got := f.sexpr(id); got != "(binary + (ident a) (ident b))" {
		t.Fatalf("got %s", got)
	}
	expectLookahead(t, f, token.Punct, ")")
}

func TestParseExprCannotStart(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
		text  string
	}{
		{"$", token.UnknownToken, "$"},
		{")", token.Punct, ")"},
		{"if x", token.Keyword, "if"},
		{"* 2", token.Punct, "*"},
		{"", token.Eof, ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f := newFixture(t, tt.input)
			if _, ok := ParseExpr(f.lx, f.builder, f.opts); ok {
				t.Fatal("expected cannot-start result")
			}
			expectLookahead(t, f, tt.kind, tt.text)
			if f.builder.Exprs.Len() != 0 {
				t.Errorf("no nodes expected, got %d", f.builder.Exprs.Len())
			}
			for _, d := range f.bag.Items() {
				if d.Code != diag.LexUnknownChar {
					t.Errorf("parser must stay silent, got %s", diagnosticsSummary(f.bag))
				}
			}
		})
	}
}

func TestBinarySpans(t *testing.T) {
	f, id := parseExprOK(t, "ab + cd * 2")
	expr := f.builder.Exprs.Get(id)
	if got := f.file.Text(expr.Span); got != "ab + cd * 2" {
		t.Fatalf("binary span text = %q", got)
	}
	data, _ := f.builder.Exprs.Binary(id)
	if got := f.file.Text(data.OpSpan); got != "+" {
		t.Errorf("op span = %q", got)
	}
	right := f.builder.Exprs.Get(data.Right)
	if got := f.file.Text(right.Span); got != "cd * 2" {
		t.Errorf("right span = %q", got)
	}
}

func TestBlockSpanCoversContent(t *testing.T) {
	f, id := parseExprOK(t, "\n  a\n  b + 1")
	block := f.builder.Exprs.Get(id)
	if got := f.file.Text(block.Span); got != "a\n  b + 1" {
		t.Fatalf("block span text = %q", got)
	}
	data, ok := f.builder.Exprs.Block(id)
	if !ok || len(data.Items) != 2 {
		t.Fatalf("block data = %+v", data)
	}
}

func TestListSeparatorsRecorded(t *testing.T) {
	f, id := parseExprOK(t, "(a, b,)")
	data, ok := f.builder.Exprs.List(id)
	if !ok {
		t.Fatal("expected tuple payload")
	}
	if len(data.Elems) != 2 {
		t.Fatalf("elems = %d", len(data.Elems))
	}
	for i, el := range data.Elems {
		if !el.HasSep || f.file.Text(el.Sep) != "," {
			t.Errorf("elem %d separator = %+v", i, el)
		}
	}
	if f.file.Text(data.Open) != "(" || f.file.Text(data.Close) != ")" {
		t.Errorf("delimiters = %q %q", f.file.Text(data.Open), f.file.Text(data.Close))
	}
}
