package ast

import (
	"sqwipt/internal/source"
)

// Exprs manages allocation of expressions and their payloads.
type Exprs struct {
	Arena    *Arena[Expr]
	Lists    *Arena[ExprListData]
	Calls    *Arena[ExprCallData]
	Binaries *Arena[ExprBinaryData]
	Unaries  *Arena[ExprUnaryData]
	Parens   *Arena[ExprParenData]
	Indices  *Arena[ExprIndexData]
	Dots     *Arena[ExprDotData]
	Closures *Arena[ExprClosureData]
	Blocks   *Arena[ExprBlockData]
}

// NewExprs creates the expression arenas; payload arenas get a quarter of capHint.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/4 + 1
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Lists:    NewArena[ExprListData](small),
		Calls:    NewArena[ExprCallData](small),
		Binaries: NewArena[ExprBinaryData](small),
		Unaries:  NewArena[ExprUnaryData](small),
		Parens:   NewArena[ExprParenData](small),
		Indices:  NewArena[ExprIndexData](small),
		Dots:     NewArena[ExprDotData](small),
		Closures: NewArena[ExprClosureData](small),
		Blocks:   NewArena[ExprBlockData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID, or nil for NoExprID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// Len returns the number of allocated expressions.
func (e *Exprs) Len() uint32 {
	return e.Arena.Len()
}

// NewLeaf creates an identifier or literal node. It panics on composite kinds.
func (e *Exprs) NewLeaf(kind ExprKind, span source.Span) ExprID {
	if !kind.IsLeaf() {
		panic("ast: NewLeaf called with composite kind " + kind.String())
	}
	return e.new(kind, span, NoPayloadID)
}

// NewBad creates a placeholder for input that failed to parse.
func (e *Exprs) NewBad(span source.Span) ExprID {
	return e.new(ExprBad, span, NoPayloadID)
}

func (e *Exprs) NewArray(span, open source.Span, elems []ExprListElem, closeSp source.Span) ExprID {
	payload := e.Lists.Allocate(ExprListData{Open: open, Elems: elems, Close: closeSp})
	return e.new(ExprArray, span, PayloadID(payload))
}

func (e *Exprs) NewTuple(span, open source.Span, elems []ExprListElem, closeSp source.Span) ExprID {
	payload := e.Lists.Allocate(ExprListData{Open: open, Elems: elems, Close: closeSp})
	return e.new(ExprTuple, span, PayloadID(payload))
}

// List returns the payload of an array or tuple.
func (e *Exprs) List(id ExprID) (*ExprListData, bool) {
	expr := e.Get(id)
	if expr == nil || (expr.Kind != ExprArray && expr.Kind != ExprTuple) {
		return nil, false
	}
	return e.Lists.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewCall(span source.Span, target ExprID, open source.Span, args []ExprListElem, closeSp source.Span) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Target: target, Open: open, Args: args, Close: closeSp})
	return e.new(ExprCall, span, PayloadID(payload))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, opSpan source.Span, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, OpSpan: opSpan, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, opSpan source.Span, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, OpSpan: opSpan, Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewParen(span, open source.Span, inner ExprID, closeSp source.Span) ExprID {
	payload := e.Parens.Allocate(ExprParenData{Open: open, Inner: inner, Close: closeSp})
	return e.new(ExprParen, span, PayloadID(payload))
}

func (e *Exprs) Paren(id ExprID) (*ExprParenData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprParen {
		return nil, false
	}
	return e.Parens.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewIndex(span source.Span, target ExprID, open source.Span, index ExprID, closeSp source.Span) ExprID {
	payload := e.Indices.Allocate(ExprIndexData{Target: target, Open: open, Index: index, Close: closeSp})
	return e.new(ExprIndex, span, PayloadID(payload))
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIndex {
		return nil, false
	}
	return e.Indices.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewDot(span source.Span, target ExprID, dot source.Span, member ExprID) ExprID {
	payload := e.Dots.Allocate(ExprDotData{Target: target, Dot: dot, Member: member})
	return e.new(ExprDot, span, PayloadID(payload))
}

func (e *Exprs) Dot(id ExprID) (*ExprDotData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprDot {
		return nil, false
	}
	return e.Dots.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewClosure(span, open source.Span, params []FormalArgElem, closeSp source.Span, body ExprID) ExprID {
	payload := e.Closures.Allocate(ExprClosureData{Open: open, Params: params, Close: closeSp, Body: body})
	return e.new(ExprClosure, span, PayloadID(payload))
}

func (e *Exprs) Closure(id ExprID) (*ExprClosureData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprClosure {
		return nil, false
	}
	return e.Closures.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewBlock(span, begin source.Span, items []ExprID, end source.Span) ExprID {
	payload := e.Blocks.Allocate(ExprBlockData{Begin: begin, Items: items, End: end})
	return e.new(ExprBlock, span, PayloadID(payload))
}

func (e *Exprs) Block(id ExprID) (*ExprBlockData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBlock {
		return nil, false
	}
	return e.Blocks.Get(uint32(expr.Payload)), true
}
