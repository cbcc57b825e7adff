package parser

import (
	"sqwipt/internal/ast"
	"sqwipt/internal/diag"
	"sqwipt/internal/token"
)

// canStart reports whether the lookahead begins an expression.
func (p *Parser) canStart() bool {
	tok := p.peek()
	switch tok.Kind {
	case token.Begin, token.Int, token.Float, token.Hex, token.Ident, token.Str:
		return true
	case token.Punct:
		switch tok.Text {
		case "+", "-", "!", "|", "(", "[":
			return true
		}
	}
	return false
}

func (p *Parser) parseExpr() ast.ExprID {
	return p.parseBinaryExpr(0)
}

// parseBinaryExpr is precedence climbing: operators below minPrec are left
// for the caller, and the right operand climbs from prec+1.
func (p *Parser) parseBinaryExpr(minPrec int) ast.ExprID {
	left := p.parseAtom()
	for !p.closedByDedent() {
		op, prec, ok := binaryOp(p.peek())
		if !ok || prec < minPrec {
			return left
		}
		opSpan := p.advance().Span
		right := p.parseBinaryExpr(prec + 1)
		span := p.spanOf(left).Cover(p.spanOf(right)).Cover(opSpan)
		left = p.arenas.Exprs.NewBinary(span, op, opSpan, left, right)
	}
	return left
}

// parseAtom parses a primary and its postfix chain.
func (p *Parser) parseAtom() ast.ExprID {
	if p.opts.MaxDepth > 0 && p.depth >= p.opts.MaxDepth {
		return p.nestingTooDeep()
	}
	p.depth++
	defer func() { p.depth-- }()

	return p.parsePostfix(p.parsePrimary())
}

func (p *Parser) parsePrimary() ast.ExprID {
	tok := p.peek()
	switch tok.Kind {
	case token.Begin:
		return p.parseBlock()
	case token.Ident:
		return p.parseLeaf(ast.ExprIdent)
	case token.Int:
		return p.parseLeaf(ast.ExprInt)
	case token.Float:
		return p.parseLeaf(ast.ExprFloat)
	case token.Hex:
		return p.parseLeaf(ast.ExprHex)
	case token.Str:
		return p.parseLeaf(ast.ExprStr)
	case token.Punct:
		switch tok.Text {
		case "|":
			return p.parseClosure()
		case "(":
			return p.parseParenOrTuple()
		case "[":
			return p.parseArray()
		case "!", "+", "-":
			return p.parseUnary()
		}
	}
	return p.unexpectedPrimary()
}

func (p *Parser) parseLeaf(kind ast.ExprKind) ast.ExprID {
	tok := p.advance()
	return p.arenas.Exprs.NewLeaf(kind, tok.Span)
}

// parseUnary takes a single atom as operand, so -a.b negates the member access
// and -a*b multiplies the negation.
func (p *Parser) parseUnary() ast.ExprID {
	tok := p.advance()
	op, _ := unaryOp(tok)
	operand := p.parseAtom()
	return p.arenas.Exprs.NewUnary(p.spanFrom(tok.Span), op, tok.Span, operand)
}

// unexpectedPrimary handles a lookahead no primary rule accepts. Structural
// tokens and closers belong to the enclosing construct and stay put.
func (p *Parser) unexpectedPrimary() ast.ExprID {
	tok := p.peek()
	switch {
	case tok.IsStructural() || isCloser(tok):
		p.errorf(diag.SynExpectExpression, p.diagSpan(), "expected expression, found %s", describe(tok))
		return p.arenas.Exprs.NewBad(p.gap())
	case tok.Kind.IsError():
		// already reported by the lexer
		return p.skipBad()
	default:
		p.errorf(diag.SynExpectExpression, tok.Span, "expected expression, found %s", describe(tok))
		return p.skipBad()
	}
}

func (p *Parser) parsePostfix(expr ast.ExprID) ast.ExprID {
	for !p.closedByDedent() {
		tok := p.peek()
		if tok.Kind != token.Punct {
			return expr
		}
		switch tok.Text {
		case "[":
			expr = p.parseIndex(expr)
		case "(":
			expr = p.parseCall(expr)
		case ".":
			expr = p.parseDot(expr)
		default:
			return expr
		}
	}
	return expr
}

// closedByDedent reports whether the last token consumed was a block End.
// The dedent ends the line, so operators after it start a new item.
func (p *Parser) closedByDedent() bool {
	return p.prevKind == token.End
}

func (p *Parser) parseIndex(target ast.ExprID) ast.ExprID {
	start := p.spanOf(target)
	open := p.advance().Span

	var index ast.ExprID
	reported := false
	if p.canStart() {
		index = p.parseExpr()
	} else {
		p.errorf(diag.SynExpectExpression, p.diagSpan(), "expected index expression, found %s", describe(p.peek()))
		index = p.arenas.Exprs.NewBad(p.gap())
		reported = true
	}
	if !p.atPunct("]") {
		return p.unclosed(start, open, "[", diag.SynUnclosedBracket, !reported)
	}
	closeSp := p.advance().Span
	return p.arenas.Exprs.NewIndex(start.Cover(closeSp), target, open, index, closeSp)
}

func (p *Parser) parseCall(target ast.ExprID) ast.ExprID {
	start := p.spanOf(target)
	open := p.advance().Span
	args, closeSp, ok := p.parseList(")")
	if !ok {
		return p.unclosed(start, open, "(", diag.SynUnclosedParen, true)
	}
	return p.arenas.Exprs.NewCall(start.Cover(closeSp), target, open, args, closeSp)
}

// parseDot takes one atom on the right, so a.b(1) is a.(b(1)).
func (p *Parser) parseDot(target ast.ExprID) ast.ExprID {
	start := p.spanOf(target)
	dot := p.advance().Span
	member := p.parseAtom()
	return p.arenas.Exprs.NewDot(p.spanFrom(start), target, dot, member)
}
