package ast

import (
	"sqwipt/internal/source"
)

type Hints struct{ Files, Exprs uint }

// Builder owns every arena produced while parsing one or more files.
type Builder struct {
	Files *Files
	Exprs *Exprs
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Files: NewFiles(hints.Files),
		Exprs: NewExprs(hints.Exprs),
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

// PushExpr appends a top-level expression to file.
func (b *Builder) PushExpr(file FileID, expr ExprID) {
	f := b.Files.Get(file)
	f.Exprs = append(f.Exprs, expr)
}
