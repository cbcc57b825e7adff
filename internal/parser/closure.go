package parser

import (
	"sqwipt/internal/ast"
	"sqwipt/internal/diag"
)

// parseClosure parses |params| body. The body is a full expression.
func (p *Parser) parseClosure() ast.ExprID {
	open := p.advance().Span
	p.traceNode("closure")

	var params []ast.FormalArgElem
	for !p.atPunct("|") && !p.peek().Kind.IsLayout() {
		elem := ast.FormalArgElem{Arg: p.parseFormal()}
		if p.atPunct(",") {
			elem.Sep = p.advance().Span
			elem.HasSep = true
			params = append(params, elem)
			continue
		}
		params = append(params, elem)
		break
	}
	if !p.atPunct("|") {
		p.reportUnclosed(open, "|", diag.SynUnclosedClosure)
		if p.syncTo("|") && p.canStart() {
			// the body still belongs to the closure
			p.parseExpr()
		}
		return p.arenas.Exprs.NewBad(p.spanFrom(open))
	}
	closeSp := p.advance().Span

	if !p.canStart() {
		p.errorf(diag.SynExpectClosureBody, p.diagSpan(), "expected closure body, found %s", describe(p.peek()))
		return p.arenas.Exprs.NewBad(p.spanFrom(open))
	}
	body := p.parseExpr()
	return p.arenas.Exprs.NewClosure(p.spanFrom(open), open, params, closeSp, body)
}

func (p *Parser) parseFormal() ast.FormalArg {
	tok := p.peek()
	switch {
	case tok.IsIdent():
		p.advance()
		if !p.atPunct("=") {
			return ast.FormalArg{Kind: ast.FormalName, Span: tok.Span, Name: tok.Span}
		}
		eq := p.advance().Span
		var def ast.ExprID
		if p.canStart() {
			def = p.parseExpr()
		} else {
			p.errorf(diag.SynExpectExpression, p.diagSpan(), "expected default value, found %s", describe(p.peek()))
			def = p.arenas.Exprs.NewBad(p.gap())
		}
		return ast.FormalArg{
			Kind:    ast.FormalNameWithDefault,
			Span:    p.spanFrom(tok.Span),
			Name:    tok.Span,
			Eq:      eq,
			Default: def,
		}
	case tok.IsPunct(","):
		p.errorf(diag.SynBadClosureParam, tok.Span, "expected parameter name before ','")
		return ast.FormalArg{Kind: ast.FormalBad, Span: p.gap()}
	default:
		if !tok.Kind.IsError() {
			p.errorf(diag.SynBadClosureParam, tok.Span, "expected parameter name, found %s", describe(tok))
		}
		p.skipOne()
		return ast.FormalArg{Kind: ast.FormalBad, Span: p.spanFrom(tok.Span)}
	}
}
