package diagfmt

import (
	"strings"

	"sqwipt/internal/ast"
	"sqwipt/internal/source"
)

// FormatExprSExpr renders an expression on one line:
//
//	(binary + (int 1) (binary * (int 2) (int 3)))
//
// A trailing separator in a list is written as a final ",". Leaf text comes
// from file; with a nil file leaves show their byte range.
func FormatExprSExpr(b *ast.Builder, id ast.ExprID, file *source.File) string {
	var sb strings.Builder
	writeSExpr(&sb, b, id, file)
	return sb.String()
}

// FormatFileSExpr renders every top-level expression of a programme, one per line.
func FormatFileSExpr(b *ast.Builder, fileID ast.FileID, file *source.File) string {
	f := b.Files.Get(fileID)
	if f == nil {
		return ""
	}
	lines := make([]string, 0, len(f.Exprs))
	for _, id := range f.Exprs {
		lines = append(lines, FormatExprSExpr(b, id, file))
	}
	return strings.Join(lines, "\n")
}

func writeSExpr(sb *strings.Builder, b *ast.Builder, id ast.ExprID, file *source.File) {
	expr := b.Exprs.Get(id)
	if expr == nil {
		sb.WriteString("<none>")
		return
	}
	open := func(head string) {
		sb.WriteByte('(')
		sb.WriteString(head)
	}
	child := func(c ast.ExprID) {
		sb.WriteByte(' ')
		writeSExpr(sb, b, c, file)
	}
	list := func(elems []ast.ExprListElem) {
		for _, el := range elems {
			child(el.Value)
		}
		if n := len(elems); n > 0 && elems[n-1].HasSep {
			sb.WriteString(" ,")
		}
	}

	switch expr.Kind {
	case ast.ExprIdent, ast.ExprInt, ast.ExprFloat, ast.ExprHex, ast.ExprStr:
		open(expr.Kind.String())
		sb.WriteByte(' ')
		sb.WriteString(leafText(file, expr.Span))
	case ast.ExprBad:
		open("bad")
	case ast.ExprArray, ast.ExprTuple:
		data, _ := b.Exprs.List(id)
		open(expr.Kind.String())
		list(data.Elems)
	case ast.ExprCall:
		data, _ := b.Exprs.Call(id)
		open("call")
		child(data.Target)
		list(data.Args)
	case ast.ExprBinary:
		data, _ := b.Exprs.Binary(id)
		open("binary " + data.Op.String())
		child(data.Left)
		child(data.Right)
	case ast.ExprUnary:
		data, _ := b.Exprs.Unary(id)
		open("unary " + data.Op.String())
		child(data.Operand)
	case ast.ExprParen:
		data, _ := b.Exprs.Paren(id)
		open("paren")
		child(data.Inner)
	case ast.ExprIndex:
		data, _ := b.Exprs.Index(id)
		open("index")
		child(data.Target)
		child(data.Index)
	case ast.ExprDot:
		data, _ := b.Exprs.Dot(id)
		open("dot")
		child(data.Target)
		child(data.Member)
	case ast.ExprClosure:
		data, _ := b.Exprs.Closure(id)
		open("closure (")
		for i, p := range data.Params {
			if i > 0 {
				sb.WriteByte(' ')
			}
			writeFormal(sb, b, p.Arg, file)
		}
		if n := len(data.Params); n > 0 && data.Params[n-1].HasSep {
			sb.WriteString(" ,")
		}
		sb.WriteByte(')')
		child(data.Body)
	case ast.ExprBlock:
		data, _ := b.Exprs.Block(id)
		open("block")
		for _, item := range data.Items {
			child(item)
		}
	default:
		open(expr.Kind.String())
	}
	sb.WriteByte(')')
}

func writeFormal(sb *strings.Builder, b *ast.Builder, arg ast.FormalArg, file *source.File) {
	switch arg.Kind {
	case ast.FormalName:
		sb.WriteString(leafText(file, arg.Name))
	case ast.FormalNameWithDefault:
		sb.WriteString("(= ")
		sb.WriteString(leafText(file, arg.Name))
		sb.WriteByte(' ')
		writeSExpr(sb, b, arg.Default, file)
		sb.WriteByte(')')
	default:
		sb.WriteString("bad")
	}
}
