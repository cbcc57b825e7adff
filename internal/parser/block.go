package parser

import (
	"sqwipt/internal/ast"
	"sqwipt/internal/diag"
	"sqwipt/internal/token"
)

func (p *Parser) parseBlock() ast.ExprID {
	begin := p.advance().Span
	p.traceNode("block")

	items := p.parseItems(true)
	if !p.at(token.End) {
		p.errorf(diag.SynUnclosedBlock, p.diagSpan(), "expected end of indented block, found %s", describe(p.peek()))
		return p.arenas.Exprs.NewBad(p.spanFrom(begin))
	}
	end := p.advance().Span
	return p.arenas.Exprs.NewBlock(p.spanFrom(begin), begin, items, end)
}

// parseItems parses separated expressions until End (inside a block) or Eof.
func (p *Parser) parseItems(inBlock bool) []ast.ExprID {
	var items []ast.ExprID
	for {
		p.skipSeparators(!inBlock)
		if p.at(token.Eof) || (inBlock && p.at(token.End)) {
			return items
		}
		items = append(items, p.parseItem())

		tok := p.peek()
		switch {
		case tok.Kind == token.Newline || tok.IsPunct(";"):
			p.advance()
		case tok.Kind == token.End || tok.Kind == token.Eof:
		case p.prevKind == token.End:
			// the item closed a nested block; its dedent separates
		case !tok.Span.Empty() && tok.Span == p.lastErr:
			// the item already failed on this token
			items = append(items, p.skipBad())
		default:
			p.errorf(diag.SynExpectSeparator, p.diagSpan(), "expected newline or ';' before %s", describe(tok))
			items = append(items, p.skipBad())
		}
	}
}

func (p *Parser) parseItem() ast.ExprID {
	if p.canStart() {
		return p.parseExpr()
	}
	tok := p.peek()
	if !tok.Kind.IsError() {
		p.errorf(diag.SynUnexpectedToken, tok.Span, "unexpected %s, expected expression", describe(tok))
	}
	return p.skipBad()
}

// skipSeparators drops empty items. At top level a stray End is dropped too.
func (p *Parser) skipSeparators(strayEnd bool) {
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.Newline || tok.IsPunct(";"):
			p.advance()
		case strayEnd && tok.Kind == token.End:
			p.advance()
		default:
			return
		}
	}
}
