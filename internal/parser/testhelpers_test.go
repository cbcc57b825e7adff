package parser

import (
	"fmt"
	"strings"
	"testing"

	"sqwipt/internal/ast"
	"sqwipt/internal/diag"
	"sqwipt/internal/diagfmt"
	"sqwipt/internal/lexer"
	"sqwipt/internal/source"
	"sqwipt/internal/token"
)

// fixture wires one source string to a lexer, a builder and a shared bag.
type fixture struct {
	file    *source.File
	lx      *lexer.Lexer
	builder *ast.Builder
	bag     *diag.Bag
	opts    Options
}

func newFixture(t *testing.T, src string) *fixture {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sqw", []byte(src))
	bag := diag.NewBag(100)
	reporter := diag.BagReporter{Bag: bag}
	return &fixture{
		file:    fs.Get(id),
		lx:      lexer.New(fs.Get(id), lexer.Options{Reporter: reporter}),
		builder: ast.NewBuilder(ast.Hints{}),
		bag:     bag,
		opts:    Options{Reporter: reporter, MaxDepth: DefaultMaxDepth},
	}
}

func (f *fixture) sexpr(id ast.ExprID) string {
	return diagfmt.FormatExprSExpr(f.builder, id, f.file)
}

func (f *fixture) programme(fileID ast.FileID) string {
	file := f.builder.Files.Get(fileID)
	parts := make([]string, 0, len(file.Exprs))
	for _, id := range file.Exprs {
		parts = append(parts, f.sexpr(id))
	}
	return strings.Join(parts, " ")
}

func (f *fixture) codes() string {
	items := f.bag.Items()
	ids := make([]string, 0, len(items))
	for _, d := range items {
		ids = append(ids, d.Code.ID())
	}
	return strings.Join(ids, ",")
}

func diagnosticsSummary(bag *diag.Bag) string {
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseExprOK(t *testing.T, src string) (*fixture, ast.ExprID) {
	t.Helper()
	f := newFixture(t, src)
	id, ok := ParseExpr(f.lx, f.builder, f.opts)
	if !ok {
		t.Fatalf("ParseExpr(%q) could not start; lookahead %v", src, f.lx.Peek())
	}
	return f, id
}

func expectLookahead(t *testing.T, f *fixture, kind token.Kind, text string) {
	t.Helper()
	tok := f.lx.Peek()
	if tok.Kind != kind || tok.Text != text {
		t.Fatalf("lookahead = %v %q, want %v %q", tok.Kind, tok.Text, kind, text)
	}
}
