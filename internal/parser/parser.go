package parser

import (
	"fmt"

	"sqwipt/internal/ast"
	"sqwipt/internal/diag"
	"sqwipt/internal/lexer"
	"sqwipt/internal/source"
	"sqwipt/internal/token"
	"sqwipt/internal/trace"
)

// DefaultMaxDepth is the atom nesting limit used by the driver.
const DefaultMaxDepth = 256

type Options struct {
	// Trace receives node events at trace.LevelDebug. Nil disables them.
	Trace       trace.Tracer
	TraceParent uint64

	MaxErrors     uint
	CurrentErrors uint
	// MaxDepth bounds atom nesting; 0 disables the check.
	MaxDepth uint
	// Reporter receives syntax diagnostics. When nil they go through the
	// lexer's reporter instead.
	Reporter diag.Reporter
}

// Enough reports whether the error limit has been reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser holds the state of one parse over a single lexer.
type Parser struct {
	lx     *lexer.Lexer
	arenas *ast.Builder
	opts   Options

	lastSpan source.Span // last consumed non-layout token
	prevKind token.Kind  // kind of the last consumed token, Eof before any
	prevDot  bool        // the last consumed token was a member "."
	depth    uint
	tooDeep  bool        // SYN2010 already reported
	lastErr  source.Span // primary span of the latest error
}

func newParser(lx *lexer.Lexer, arenas *ast.Builder, opts Options) *Parser {
	return &Parser{
		lx:       lx,
		arenas:   arenas,
		opts:     opts,
		lastSpan: startOf(lx),
		prevKind: token.Eof,
	}
}

// ParseExpr parses one expression at the lexer position. It returns false
// without consuming anything when the lookahead cannot start an expression.
// A returned expression may contain Bad nodes.
func ParseExpr(lx *lexer.Lexer, arenas *ast.Builder, opts Options) (ast.ExprID, bool) {
	p := newParser(lx, arenas, opts)
	if !p.canStart() {
		return ast.NoExprID, false
	}
	return p.parseExpr(), true
}

// ParseProgramme parses the whole input into a new ast.File. Empty input is a
// good programme without expressions. If the first token cannot start an
// expression the file is marked bad and that token is left unconsumed.
func ParseProgramme(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	p := newParser(lx, arenas, opts)
	start := startOf(lx)
	file := arenas.NewFile(start)
	res := Result{File: file, Bag: bagOf(opts.Reporter)}

	p.skipSeparators(false)
	if !p.at(token.Eof) && !p.canStart() {
		tok := p.peek()
		p.errorf(diag.SynExpectProgramme, tok.Span, "expected an expression at the start of input, found %s", describe(tok))
		arenas.Files.Get(file).Status = ast.FileBad
		return res
	}

	for _, item := range p.parseItems(false) {
		arenas.PushExpr(file, item)
	}
	arenas.Files.Get(file).Span = p.spanFrom(start)
	return res
}

// startOf is the empty span at the lexer's lookahead.
func startOf(lx *lexer.Lexer) source.Span {
	sp := lx.Span()
	sp.End = sp.Start
	return sp
}

func bagOf(r diag.Reporter) *diag.Bag {
	switch br := r.(type) {
	case diag.BagReporter:
		return br.Bag
	case *diag.BagReporter:
		if br != nil {
			return br.Bag
		}
	}
	return nil
}

// traceNode emits a node-scope point event for block and closure entry.
func (p *Parser) traceNode(name string) {
	t := p.opts.Trace
	if t == nil || !t.Level().ShouldEmit(trace.ScopeNode) {
		return
	}
	sp := p.lastSpan
	trace.Point(t, trace.ScopeNode, name, fmt.Sprintf("depth=%d at=%d", p.depth, sp.Start), p.opts.TraceParent)
}
