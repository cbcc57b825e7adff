package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sqwipt/internal/ast"
	"sqwipt/internal/source"
)

// ASTNodeOutput is the JSON shape of one node.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
}

// exprNode builds the shared description of an expression used by the
// pretty, tree and JSON printers.
func exprNode(b *ast.Builder, id ast.ExprID, file *source.File) ASTNodeOutput {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return ASTNodeOutput{Type: "Expr", Kind: "<none>"}
	}
	node := ASTNodeOutput{Type: "Expr", Kind: expr.Kind.String(), Span: expr.Span}
	add := func(ids ...ast.ExprID) {
		for _, c := range ids {
			node.Children = append(node.Children, exprNode(b, c, file))
		}
	}
	addList := func(elems []ast.ExprListElem) {
		for _, el := range elems {
			add(el.Value)
		}
		if n := len(elems); n > 0 && elems[n-1].HasSep {
			node.Fields = map[string]any{"trailing_sep": true}
		}
	}

	switch expr.Kind {
	case ast.ExprIdent, ast.ExprInt, ast.ExprFloat, ast.ExprHex, ast.ExprStr:
		node.Text = leafText(file, expr.Span)
	case ast.ExprArray, ast.ExprTuple:
		data, _ := b.Exprs.List(id)
		addList(data.Elems)
	case ast.ExprCall:
		data, _ := b.Exprs.Call(id)
		add(data.Target)
		addList(data.Args)
	case ast.ExprBinary:
		data, _ := b.Exprs.Binary(id)
		node.Text = data.Op.String()
		add(data.Left, data.Right)
	case ast.ExprUnary:
		data, _ := b.Exprs.Unary(id)
		node.Text = data.Op.String()
		add(data.Operand)
	case ast.ExprParen:
		data, _ := b.Exprs.Paren(id)
		add(data.Inner)
	case ast.ExprIndex:
		data, _ := b.Exprs.Index(id)
		add(data.Target, data.Index)
	case ast.ExprDot:
		data, _ := b.Exprs.Dot(id)
		add(data.Target, data.Member)
	case ast.ExprClosure:
		data, _ := b.Exprs.Closure(id)
		for _, p := range data.Params {
			param := ASTNodeOutput{Type: "Param", Span: p.Arg.Span}
			switch p.Arg.Kind {
			case ast.FormalName:
				param.Kind = "name"
				param.Text = leafText(file, p.Arg.Name)
			case ast.FormalNameWithDefault:
				param.Kind = "default"
				param.Text = leafText(file, p.Arg.Name)
				param.Children = []ASTNodeOutput{exprNode(b, p.Arg.Default, file)}
			default:
				param.Kind = "bad"
			}
			node.Children = append(node.Children, param)
		}
		add(data.Body)
	case ast.ExprBlock:
		data, _ := b.Exprs.Block(id)
		add(data.Items...)
	}
	return node
}

func fileNode(b *ast.Builder, fileID ast.FileID, file *source.File) (ASTNodeOutput, error) {
	f := b.Files.Get(fileID)
	if f == nil {
		return ASTNodeOutput{}, fmt.Errorf("file %d not found", fileID)
	}
	node := ASTNodeOutput{
		Type:   "File",
		Kind:   f.Status.String(),
		Span:   f.Span,
		Fields: map[string]any{"exprs": len(f.Exprs)},
	}
	for _, id := range f.Exprs {
		node.Children = append(node.Children, exprNode(b, id, file))
	}
	return node, nil
}

// label is the one-line description used by the text printers.
func (n ASTNodeOutput) label(fs *source.FileSet) string {
	var sb strings.Builder
	switch n.Type {
	case "File":
		sb.WriteString("File")
		if fs != nil && int(n.Span.File) < fs.Len() {
			sb.WriteByte(' ')
			sb.WriteString(displayPath(fs.Get(n.Span.File), fs, PathModeAuto))
		}
		fmt.Fprintf(&sb, " [%s]", n.Kind)
	case "Param":
		sb.WriteString("Param ")
		if n.Text != "" {
			sb.WriteString(n.Text)
		} else {
			sb.WriteString("<bad>")
		}
	default:
		sb.WriteString(titleCase(n.Kind))
		if n.Text != "" {
			sb.WriteByte(' ')
			sb.WriteString(n.Text)
		}
	}
	if n.Fields["trailing_sep"] == true {
		sb.WriteString(" ,")
	}
	fmt.Fprintf(&sb, " (span: %s)", formatSpan(n.Span, fs))
	return sb.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FormatASTPretty prints the programme as an indented outline.
func FormatASTPretty(w io.Writer, b *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	root, err := fileNode(b, fileID, sourceFile(b, fileID, fs))
	if err != nil {
		return err
	}
	var sb strings.Builder
	sb.WriteString(root.label(fs))
	sb.WriteByte('\n')
	writeOutline(&sb, root.Children, "", fs)
	_, err = io.WriteString(w, sb.String())
	return err
}

func writeOutline(sb *strings.Builder, nodes []ASTNodeOutput, prefix string, fs *source.FileSet) {
	for i, n := range nodes {
		branch, next := "├─ ", "│  "
		if i == len(nodes)-1 {
			branch, next = "└─ ", "   "
		}
		sb.WriteString(prefix)
		sb.WriteString(branch)
		sb.WriteString(n.label(fs))
		sb.WriteByte('\n')
		writeOutline(sb, n.Children, prefix+next, fs)
	}
}

// FormatASTJSON writes the programme as indented JSON.
func FormatASTJSON(w io.Writer, b *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	root, err := fileNode(b, fileID, sourceFile(b, fileID, fs))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(root)
}

// BuildASTJSON returns the JSON shape of a programme for callers that
// aggregate several files into one document.
func BuildASTJSON(b *ast.Builder, fileID ast.FileID, fs *source.FileSet) (ASTNodeOutput, error) {
	return fileNode(b, fileID, sourceFile(b, fileID, fs))
}

func sourceFile(b *ast.Builder, fileID ast.FileID, fs *source.FileSet) *source.File {
	f := b.Files.Get(fileID)
	if f == nil || fs == nil || int(f.Span.File) >= fs.Len() {
		return nil
	}
	return fs.Get(f.Span.File)
}
