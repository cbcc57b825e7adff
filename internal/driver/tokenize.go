package driver

import (
	"context"
	"fmt"

	"sqwipt/internal/diag"
	"sqwipt/internal/lexer"
	"sqwipt/internal/observ"
	"sqwipt/internal/source"
	"sqwipt/internal/token"
	"sqwipt/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
	Timing  *observ.Report
}

// Tokenize loads path and scans it to Eof.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "tokenize", trace.ParentSpan(ctx))
	defer span.End("")

	timer := newPhaseTimer(opts.Timings)
	loadLap := timer.begin("load")
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	timer.end(loadLap, "")
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	file := fs.Get(fileID)

	lexLap := timer.begin("lex")
	tokens, bag := tokenizeFile(ctx, file, opts, span.ID())
	timer.end(lexLap, fmt.Sprintf("tokens=%d", len(tokens)))

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
		Timing:  timer.finish("tokenize", file.Path, bag),
	}, nil
}

func tokenizeFile(ctx context.Context, file *source.File, opts Options, parent uint64) ([]token.Token, *diag.Bag) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, file.Path, parent)
	bag := diag.NewBag(opts.MaxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	tokens := lx.Tokens()
	bag.Sort()
	span.WithExtra("tokens", fmt.Sprint(len(tokens))).End("")
	return tokens, bag
}
