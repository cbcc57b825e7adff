package parser

import (
	"fmt"

	"sqwipt/internal/ast"
	"sqwipt/internal/diag"
	"sqwipt/internal/source"
	"sqwipt/internal/token"
)

// parseList parses comma-separated expressions up to closer. ok is false when
// the closer is missing; nothing past the last element is consumed then.
func (p *Parser) parseList(closer string) (elems []ast.ExprListElem, closeSp source.Span, ok bool) {
	for !p.atPunct(closer) && !p.peek().IsStructural() {
		elem := ast.ExprListElem{Value: p.parseListElem()}
		if p.atPunct(",") {
			elem.Sep = p.advance().Span
			elem.HasSep = true
			elems = append(elems, elem)
			continue
		}
		elems = append(elems, elem)
		break
	}
	if !p.atPunct(closer) {
		return elems, source.Span{}, false
	}
	return elems, p.advance().Span, true
}

func (p *Parser) parseListElem() ast.ExprID {
	if p.canStart() {
		return p.parseExpr()
	}
	tok := p.peek()
	if tok.IsPunct(",") {
		// the comma itself becomes the separator of this empty element
		p.errorf(diag.SynExpectExpression, tok.Span, "expected expression before ','")
		return p.arenas.Exprs.NewBad(p.gap())
	}
	if !tok.Kind.IsError() {
		p.errorf(diag.SynUnexpectedToken, tok.Span, "unexpected %s in list", describe(tok))
	}
	return p.skipBad()
}

func (p *Parser) parseParenOrTuple() ast.ExprID {
	open := p.advance().Span
	elems, closeSp, ok := p.parseList(")")
	if !ok {
		return p.unclosed(open, open, "(", diag.SynUnclosedParen, true)
	}
	span := open.Cover(closeSp)
	if len(elems) == 1 && !elems[0].HasSep {
		return p.arenas.Exprs.NewParen(span, open, elems[0].Value, closeSp)
	}
	return p.arenas.Exprs.NewTuple(span, open, elems, closeSp)
}

func (p *Parser) parseArray() ast.ExprID {
	open := p.advance().Span
	elems, closeSp, ok := p.parseList("]")
	if !ok {
		return p.unclosed(open, open, "[", diag.SynUnclosedBracket, true)
	}
	return p.arenas.Exprs.NewArray(open.Cover(closeSp), open, elems, closeSp)
}

var closerOf = map[string]string{"(": ")", "[": "]", "|": "|"}

// unclosed reports a missing closer once, skips to the matching closer on the
// current line and turns the construct starting at start into Bad.
func (p *Parser) unclosed(start, open source.Span, opener string, code diag.Code, report bool) ast.ExprID {
	if report {
		p.reportUnclosed(open, opener, code)
	}
	p.syncTo(closerOf[opener])
	return p.arenas.Exprs.NewBad(p.spanFrom(start))
}

func (p *Parser) reportUnclosed(open source.Span, opener string, code diag.Code) {
	closer := closerOf[opener]
	msg := fmt.Sprintf("expected '%s' to close '%s', found %s", closer, opener, describe(p.peek()))
	b := p.report(code, p.diagSpan(), msg).WithNote(open, fmt.Sprintf("'%s' opened here", opener))
	p.insertCloser(b, closer).Emit()
}

// insertCloser suggests closer right after the last token when the line
// ends without it. Junk before the line end gets no suggestion, since the
// closer may follow it.
func (p *Parser) insertCloser(b *diag.ReportBuilder, closer string) *diag.ReportBuilder {
	if !p.peek().IsStructural() || p.prevKind == token.Eof {
		return b
	}
	return b.WithFix(fmt.Sprintf("insert '%s'", closer), diag.FixEdit{Span: p.lastSpan.Tail(), NewText: closer})
}

// syncTo consumes groups until closer, which is consumed too, or until a
// structural token, which is not. It reports whether closer was found.
func (p *Parser) syncTo(closer string) bool {
	for {
		tok := p.peek()
		if tok.IsPunct(closer) {
			p.advance()
			return true
		}
		if tok.IsStructural() {
			return false
		}
		p.skipOne()
	}
}
