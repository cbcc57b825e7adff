package ast

import (
	"sqwipt/internal/source"
)

// ExprKind enumerates the closed set of expression forms.
type ExprKind uint8

const (
	// ExprIdent is a name; the span is the text.
	ExprIdent ExprKind = iota
	// ExprInt is a decimal integer literal.
	ExprInt
	// ExprFloat is a decimal literal with a fraction or exponent.
	ExprFloat
	// ExprHex is a 0x literal.
	ExprHex
	// ExprStr is a quoted literal, quotes included.
	ExprStr
	// ExprArray is [a, b, ...].
	ExprArray
	// ExprTuple is (), (a,) or (a, b, ...).
	ExprTuple
	// ExprCall is target(args).
	ExprCall
	ExprBinary
	ExprUnary
	// ExprParen is a single parenthesised expression without a separator.
	ExprParen
	// ExprIndex is target[index].
	ExprIndex
	// ExprDot is target.member.
	ExprDot
	// ExprClosure is |params| body.
	ExprClosure
	// ExprBlock is an indented run of items.
	ExprBlock
	// ExprBad marks input that failed to parse.
	ExprBad
)

var exprKindNames = [...]string{
	ExprIdent:   "ident",
	ExprInt:     "int",
	ExprFloat:   "float",
	ExprHex:     "hex",
	ExprStr:     "str",
	ExprArray:   "array",
	ExprTuple:   "tuple",
	ExprCall:    "call",
	ExprBinary:  "binary",
	ExprUnary:   "unary",
	ExprParen:   "paren",
	ExprIndex:   "index",
	ExprDot:     "dot",
	ExprClosure: "closure",
	ExprBlock:   "block",
	ExprBad:     "bad",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "expr?"
}

// IsLeaf reports whether the kind carries no payload.
func (k ExprKind) IsLeaf() bool {
	switch k {
	case ExprIdent, ExprInt, ExprFloat, ExprHex, ExprStr, ExprBad:
		return true
	default:
		return false
	}
}

// Expr is an arena node; composite kinds keep their parts in a per-kind arena
// addressed by Payload.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprBinaryOp enumerates binary operators.
type ExprBinaryOp uint8

const (
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod
	// ExprBinaryPow is "**".
	ExprBinaryPow
)

var binaryOpText = [...]string{
	ExprBinaryAdd: "+",
	ExprBinarySub: "-",
	ExprBinaryMul: "*",
	ExprBinaryDiv: "/",
	ExprBinaryMod: "%",
	ExprBinaryPow: "**",
}

func (op ExprBinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// ExprUnaryOp enumerates prefix operators.
type ExprUnaryOp uint8

const (
	ExprUnaryNot ExprUnaryOp = iota
	ExprUnaryPlus
	ExprUnaryMinus
)

func (op ExprUnaryOp) String() string {
	switch op {
	case ExprUnaryNot:
		return "!"
	case ExprUnaryPlus:
		return "+"
	case ExprUnaryMinus:
		return "-"
	}
	return "?"
}

// ExprListElem is one element of a comma list with its optional trailing comma.
type ExprListElem struct {
	Value  ExprID
	Sep    source.Span
	HasSep bool
}

// ExprListData backs arrays and tuples.
type ExprListData struct {
	Open  source.Span
	Elems []ExprListElem
	Close source.Span
}

type ExprCallData struct {
	Target ExprID
	Open   source.Span
	Args   []ExprListElem
	Close  source.Span
}

type ExprBinaryData struct {
	Op     ExprBinaryOp
	OpSpan source.Span
	Left   ExprID
	Right  ExprID
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	OpSpan  source.Span
	Operand ExprID
}

type ExprParenData struct {
	Open  source.Span
	Inner ExprID
	Close source.Span
}

type ExprIndexData struct {
	Target ExprID
	Open   source.Span
	Index  ExprID
	Close  source.Span
}

// ExprDotData is member access; Member is a single atom with its own postfix chain.
type ExprDotData struct {
	Target ExprID
	Dot    source.Span
	Member ExprID
}

// FormalArgKind distinguishes closure parameter shapes.
type FormalArgKind uint8

const (
	// FormalName is a bare name.
	FormalName FormalArgKind = iota
	// FormalNameWithDefault is "name = expr".
	FormalNameWithDefault
	// FormalBad is a malformed parameter.
	FormalBad
)

// FormalArg is one closure parameter. Span covers the whole parameter;
// Eq and Default are set only for FormalNameWithDefault.
type FormalArg struct {
	Kind    FormalArgKind
	Span    source.Span
	Name    source.Span
	Eq      source.Span
	Default ExprID
}

type FormalArgElem struct {
	Arg    FormalArg
	Sep    source.Span
	HasSep bool
}

type ExprClosureData struct {
	Open   source.Span
	Params []FormalArgElem
	Close  source.Span
	Body   ExprID
}

// ExprBlockData is one indentation level. Begin and End are the (empty)
// spans of the layout tokens that delimit it.
type ExprBlockData struct {
	Begin source.Span
	Items []ExprID
	End   source.Span
}
