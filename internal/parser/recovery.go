package parser

import (
	"sqwipt/internal/ast"
	"sqwipt/internal/diag"
	"sqwipt/internal/token"
)

// skipBad consumes one token, or one balanced group, and returns a Bad node
// over it. At End or Eof it consumes nothing and returns an empty Bad.
func (p *Parser) skipBad() ast.ExprID {
	tok := p.peek()
	if tok.Kind == token.End || tok.Kind == token.Eof {
		return p.arenas.Exprs.NewBad(p.gap())
	}
	start := tok.Span
	p.skipOne()
	return p.arenas.Exprs.NewBad(p.spanFrom(start))
}

const groupBlock = "end"

// groupCloser returns what closes the group tok opens, or "".
func groupCloser(tok token.Token) string {
	switch {
	case tok.Kind == token.Begin:
		return groupBlock
	case tok.IsPunct("("):
		return ")"
	case tok.IsPunct("["):
		return "]"
	}
	return ""
}

// skipOne consumes the lookahead. When it opens a group the whole group is
// consumed, keeping Begin/End pairs together; an End or Newline that belongs
// to an enclosing block stops the skip unconsumed.
func (p *Parser) skipOne() {
	first := p.peek()
	if first.Kind == token.End || first.Kind == token.Eof {
		return
	}
	p.advance()
	want := groupCloser(first)
	if want == "" {
		return
	}

	stack := []string{want}
	for len(stack) > 0 {
		tok := p.peek()
		switch {
		case tok.Kind == token.Eof:
			return
		case tok.Kind == token.End:
			i := lastBlock(stack)
			if i < 0 {
				return
			}
			stack = stack[:i]
			p.advance()
		case tok.Kind == token.Newline:
			i := lastBlock(stack)
			if i < 0 {
				return
			}
			// unclosed brackets inside the block end with the line
			stack = stack[:i+1]
			p.advance()
		default:
			if c := groupCloser(tok); c != "" {
				stack = append(stack, c)
			} else if tok.IsPunct(")") || tok.IsPunct("]") {
				if stack[len(stack)-1] == tok.Text {
					stack = stack[:len(stack)-1]
				}
			}
			p.advance()
		}
	}
}

func lastBlock(stack []string) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == groupBlock {
			return i
		}
	}
	return -1
}

// nestingTooDeep replaces an over-deep atom by Bad. The first occurrence in a
// parse is reported; the rest of the group up to a closer or the end of the
// line is skipped without recursion.
func (p *Parser) nestingTooDeep() ast.ExprID {
	tok := p.peek()
	if !p.tooDeep {
		p.tooDeep = true
		if p.prevDot {
			p.errorf(diag.SynNestingTooDeep, tok.Span, "member chain longer than %d levels", p.opts.MaxDepth)
		} else {
			p.errorf(diag.SynNestingTooDeep, tok.Span, "expression nested deeper than %d levels", p.opts.MaxDepth)
		}
	}
	if tok.IsStructural() || isCloser(tok) {
		return p.arenas.Exprs.NewBad(p.gap())
	}
	start := tok.Span
	for {
		tok := p.peek()
		if tok.IsStructural() || isCloser(tok) {
			break
		}
		p.skipOne()
	}
	return p.arenas.Exprs.NewBad(p.spanFrom(start))
}
