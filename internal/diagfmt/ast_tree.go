package diagfmt

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"sqwipt/internal/ast"
	"sqwipt/internal/source"
)

// treeBlock is a rendered subtree: its lines, display width and the column
// of its root label's centre.
type treeBlock struct {
	lines []string
	width int
	root  int
}

const treeGap = 3

// FormatASTTree draws the programme top-down:
//
//	  Binary +
//	  /   |   \
//	Int 1   Int 2
//
// Span suffixes are omitted to keep the drawing narrow.
func FormatASTTree(w io.Writer, b *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	root, err := fileNode(b, fileID, sourceFile(b, fileID, fs))
	if err != nil {
		return err
	}
	block := renderTree(root)
	var sb strings.Builder
	for _, line := range block.lines {
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteByte('\n')
	}
	_, err = io.WriteString(w, sb.String())
	return err
}

func treeLabel(n ASTNodeOutput) string {
	switch n.Type {
	case "File":
		return "File [" + n.Kind + "]"
	case "Param":
		if n.Text == "" {
			return "Param <bad>"
		}
		return "Param " + n.Text
	}
	if n.Text != "" {
		return titleCase(n.Kind) + " " + n.Text
	}
	return titleCase(n.Kind)
}

func pad(s string, width int) string {
	if d := width - runewidth.StringWidth(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}

func renderTree(n ASTNodeOutput) treeBlock {
	label := treeLabel(n)
	labelWidth := runewidth.StringWidth(label)
	if len(n.Children) == 0 {
		return treeBlock{lines: []string{label}, width: labelWidth, root: labelWidth / 2}
	}

	kids := make([]treeBlock, len(n.Children))
	height := 0
	for i, c := range n.Children {
		kids[i] = renderTree(c)
		height = max(height, len(kids[i].lines))
	}

	// lay children side by side and find their root columns
	roots := make([]int, len(kids))
	childWidth := 0
	for i, k := range kids {
		if i > 0 {
			childWidth += treeGap
		}
		roots[i] = childWidth + k.root
		childWidth += k.width
	}

	// centre the parent label over the children, shifting whichever side is narrower
	centre := (roots[0] + roots[len(roots)-1]) / 2
	labelStart := centre - labelWidth/2
	childShift := 0
	if labelStart < 0 {
		childShift = -labelStart
		labelStart = 0
		centre += childShift
		for i := range roots {
			roots[i] += childShift
		}
	}
	width := max(childShift+childWidth, labelStart+labelWidth)

	lines := make([]string, 0, height+2)
	lines = append(lines, pad(strings.Repeat(" ", labelStart)+label, width))

	connector := []byte(strings.Repeat(" ", width))
	for _, r := range roots {
		switch {
		case r < centre:
			connector[r] = '/'
		case r > centre:
			connector[r] = '\\'
		default:
			connector[r] = '|'
		}
	}
	if len(roots) > 1 && connector[centre] == ' ' {
		connector[centre] = '|'
	}
	lines = append(lines, string(connector))

	for row := range height {
		var sb strings.Builder
		sb.WriteString(strings.Repeat(" ", childShift))
		for i, k := range kids {
			if i > 0 {
				sb.WriteString(strings.Repeat(" ", treeGap))
			}
			line := ""
			if row < len(k.lines) {
				line = k.lines[row]
			}
			sb.WriteString(pad(line, k.width))
		}
		lines = append(lines, pad(sb.String(), width))
	}
	return treeBlock{lines: lines, width: width, root: centre}
}
