package diagfmt_test

import (
	"testing"

	"sqwipt/internal/ast"
	"sqwipt/internal/diag"
	"sqwipt/internal/lexer"
	"sqwipt/internal/parser"
	"sqwipt/internal/source"
)

type parsed struct {
	fs      *source.FileSet
	file    *source.File
	builder *ast.Builder
	fileID  ast.FileID
	bag     *diag.Bag
}

func parseSource(t *testing.T, path, src string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, []byte(src))
	bag := diag.NewBag(50)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseProgramme(lx, b, parser.Options{Reporter: rep, MaxDepth: parser.DefaultMaxDepth})
	return parsed{fs: fs, file: fs.Get(id), builder: b, fileID: res.File, bag: bag}
}
