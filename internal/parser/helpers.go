package parser

import (
	"fmt"

	"sqwipt/internal/ast"
	"sqwipt/internal/diag"
	"sqwipt/internal/source"
	"sqwipt/internal/token"
)

func (p *Parser) peek() token.Token {
	return p.lx.Peek()
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atPunct(text string) bool {
	return p.lx.Peek().IsPunct(text)
}

// advance consumes the lookahead. Layout tokens do not move lastSpan, so node
// spans end at the last real token.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	p.prevKind = tok.Kind
	p.prevDot = tok.IsPunct(".")
	if !tok.Kind.IsLayout() {
		p.lastSpan = tok.Span
	}
	return tok
}

// here is the empty span at the start of the lookahead.
func (p *Parser) here() source.Span {
	sp := p.lx.Span()
	sp.End = sp.Start
	return sp
}

// gap is where an empty Bad goes: right after the last consumed token, so
// it stays inside the node being built.
func (p *Parser) gap() source.Span {
	if p.prevKind == token.Eof {
		return p.here()
	}
	return p.lastSpan.Tail()
}

// spanFrom covers start through the last consumed token.
func (p *Parser) spanFrom(start source.Span) source.Span {
	sp := source.Span{File: start.File, Start: start.Start, End: p.lastSpan.End}
	if sp.End < sp.Start {
		sp.End = sp.Start
	}
	return sp
}

// diagSpan points at the lookahead, or just past the last token when the
// lookahead is a synthetic End or Eof.
func (p *Parser) diagSpan() source.Span {
	tok := p.peek()
	if (tok.Kind == token.End || tok.Kind == token.Eof) && p.prevKind != token.Eof {
		return p.lastSpan.Tail()
	}
	return tok.Span
}

func (p *Parser) spanOf(id ast.ExprID) source.Span {
	return p.arenas.Exprs.Get(id).Span
}

func (p *Parser) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	p.report(code, sp, fmt.Sprintf(format, args...)).Emit()
}

// report starts an error diagnostic. Every error is counted; once MaxErrors
// is reached the builder is nil and emits nothing.
func (p *Parser) report(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	enough := p.opts.Enough()
	p.opts.CurrentErrors++
	p.lastErr = sp
	if enough {
		return nil
	}
	return diag.ReportError(p.reporter(), code, sp, msg)
}

// reporter falls back to the lexer's reporter when the parser has none.
func (p *Parser) reporter() diag.Reporter {
	if p.opts.Reporter != nil {
		return p.opts.Reporter
	}
	return diag.ReporterFunc(func(code diag.Code, _ diag.Severity, sp source.Span, msg string, _ []diag.Note, _ []diag.Fix) {
		p.lx.Error(code, sp, msg)
	})
}

// describe names a token for "found ..." messages.
func describe(tok token.Token) string {
	switch tok.Kind {
	case token.Newline:
		return "newline"
	case token.Begin:
		return "indented block"
	case token.End:
		return "end of block"
	case token.Eof:
		return "end of input"
	case token.Punct:
		return fmt.Sprintf("'%s'", tok.Text)
	case token.Keyword:
		return fmt.Sprintf("keyword '%s'", tok.Text)
	case token.Ident:
		return fmt.Sprintf("identifier '%s'", tok.Text)
	case token.Str, token.UnterminatedString:
		return "string literal"
	case token.UnknownToken:
		return fmt.Sprintf("%q", tok.Text)
	default:
		return fmt.Sprintf("%s '%s'", tok.Kind, tok.Text)
	}
}

// isCloser reports tokens that terminate an enclosing construct.
func isCloser(tok token.Token) bool {
	if tok.Kind != token.Punct {
		return false
	}
	switch tok.Text {
	case ")", "]", ",", ";":
		return true
	}
	return false
}
