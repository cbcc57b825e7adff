package diagfmt_test

import (
	"testing"

	"sqwipt/internal/diagfmt"
)

func TestFormatFileSExpr(t *testing.T) {
	p := parseSource(t, "a.sqw", "f(1, |x, y = 2| x ** y,)\n[a.b, (c,)]\n-d[0]")
	got := diagfmt.FormatFileSExpr(p.builder, p.fileID, p.file)
	want := "(call (ident f) (int 1) (closure (x (= y (int 2))) (binary ** (ident x) (ident y))) ,)\n" +
		"(array (dot (ident a) (ident b)) (tuple (ident c) ,))\n" +
		"(unary - (index (ident d) (int 0)))"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatExprSExprWithoutFile(t *testing.T) {
	p := parseSource(t, "a.sqw", "ab")
	id := p.builder.Files.Get(p.fileID).Exprs[0]
	if got := diagfmt.FormatExprSExpr(p.builder, id, nil); got != "(ident @0-2)" {
		t.Errorf("got %s", got)
	}
}
