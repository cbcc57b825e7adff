package driver

import (
	"context"
	"fmt"

	"sqwipt/internal/ast"
	"sqwipt/internal/diag"
	"sqwipt/internal/lexer"
	"sqwipt/internal/observ"
	"sqwipt/internal/parser"
	"sqwipt/internal/source"
	"sqwipt/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
	Timing  *observ.Report
}

// Programme returns the parsed file node.
func (r *ParseResult) Programme() *ast.File {
	if r == nil || r.Builder == nil {
		return nil
	}
	return r.Builder.Files.Get(r.FileID)
}

// Parse loads path and parses it as a programme.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", trace.ParentSpan(ctx))
	defer span.End("")

	timer := newPhaseTimer(opts.Timings)
	loadLap := timer.begin("load")
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	timer.end(loadLap, "")
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return parseLoaded(ctx, fs, fileID, opts, timer, span.ID())
}

// ParseSource parses in-memory text registered under name.
func ParseSource(ctx context.Context, name string, src []byte, opts Options) (*ParseResult, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", trace.ParentSpan(ctx))
	defer span.End("")

	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, src)
	return parseLoaded(ctx, fs, fileID, opts, newPhaseTimer(opts.Timings), span.ID())
}

func parseLoaded(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options, timer phaseTimer, parent uint64) (*ParseResult, error) {
	file := fs.Get(fileID)
	parseLap := timer.begin("parse")
	builder, astFile, bag, err := parseFile(ctx, file, opts, parent)
	if err != nil {
		return nil, err
	}
	timer.end(parseLap, fmt.Sprintf("exprs=%d bad=%d", len(builder.Files.Get(astFile).Exprs), countBad(builder, astFile)))

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		FileID:  astFile,
		Bag:     bag,
		Timing:  timer.finish("parse", file.Path, bag),
	}, nil
}

// parseFile runs lexer and parser over one loaded file with a fresh builder.
// The returned bag is sorted.
func parseFile(ctx context.Context, file *source.File, opts Options, parent uint64) (*ast.Builder, ast.FileID, *diag.Bag, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, file.Path, parent)

	bag := diag.NewBag(opts.MaxDiagnostics)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	popts, err := opts.parserOptions(rep, tracer, span.ID())
	if err != nil {
		span.End("error")
		return nil, 0, nil, err
	}

	lx := lexer.New(file, lexer.Options{Reporter: rep})
	builder := ast.NewBuilder(ast.Hints{})
	res := parser.ParseProgramme(lx, builder, popts)
	bag.Sort()

	node := builder.Files.Get(res.File)
	span.WithExtra("exprs", fmt.Sprint(len(node.Exprs))).
		WithExtra("bad", fmt.Sprint(countBad(builder, res.File))).
		WithExtra("diags", fmt.Sprint(bag.Len())).
		End(node.Status.String())
	return builder, res.File, bag, nil
}

// countBad returns the number of Bad nodes in a parsed file.
func countBad(b *ast.Builder, fileID ast.FileID) int {
	file := b.Files.Get(fileID)
	if file == nil {
		return 0
	}
	n := 0
	for _, id := range file.Exprs {
		n += b.Exprs.CountBad(id)
	}
	return n
}
