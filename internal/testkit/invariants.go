// Package testkit checks structural invariants of lexer and parser output.
// It is shared by unit tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"sqwipt/internal/ast"
	"sqwipt/internal/source"
	"sqwipt/internal/token"
)

// CheckSpanInvariants runs the span invariants on a parsed file:
// 1) file.Span lies within the file content and names the right file
// 2) every expression span lies within the content
// 3) every child span is contained in its parent's span
// 4) siblings and top-level expressions start in source order
// 5) top-level expressions lie within file.Span
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	// 1) file span sanity
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	if f.Span.End < f.Span.Start || f.Span.End > lenContent {
		return fmt.Errorf("file span %v outside content of %d bytes", f.Span, lenContent)
	}
	if len(f.Exprs) > 0 && f.Status == ast.FileBad {
		return fmt.Errorf("bad programme holds %d expressions", len(f.Exprs))
	}

	var prev source.Span
	for i, id := range f.Exprs {
		expr := b.Exprs.Get(id)
		if expr == nil {
			return fmt.Errorf("nil expression for id=%d", id)
		}
		if !f.Span.Contains(expr.Span) {
			return fmt.Errorf("top-level %s %v is outside file span %v", expr.Kind, expr.Span, f.Span)
		}
		if i > 0 && expr.Span.Start < prev.Start {
			return fmt.Errorf("top-level %s %v starts before its predecessor %v", expr.Kind, expr.Span, prev)
		}
		prev = expr.Span
		if err := checkTree(b.Exprs, id, sf.ID, lenContent); err != nil {
			return err
		}
	}
	return nil
}

func checkTree(exprs *ast.Exprs, root ast.ExprID, file source.FileID, lenContent uint32) error {
	var failure error
	exprs.Inspect(root, func(id ast.ExprID, expr *ast.Expr) bool {
		sp := expr.Span
		if sp.File != file {
			failure = fmt.Errorf("%s span file mismatch: got=%d want=%d", expr.Kind, sp.File, file)
			return false
		}
		if sp.End < sp.Start || sp.End > lenContent {
			failure = fmt.Errorf("%s span %v outside content of %d bytes", expr.Kind, sp, lenContent)
			return false
		}
		var last source.Span
		for i, child := range exprs.Children(id) {
			csp := exprs.Get(child).Span
			if !sp.Contains(csp) {
				failure = fmt.Errorf("%s span %v does not contain child %s %v", expr.Kind, sp, exprs.Get(child).Kind, csp)
				return false
			}
			if i > 0 && csp.Start < last.Start {
				failure = fmt.Errorf("%s children out of order: %v before %v", expr.Kind, last, csp)
				return false
			}
			last = csp
		}
		return failure == nil
	})
	return failure
}

// CheckTokenStream checks a complete token stream as returned by
// lexer.Tokens:
// 1) it ends with exactly one Eof
// 2) Begin and End balance and never go negative
// 3) Begin, End and Eof are empty; every other token covers at least one byte
// 4) spans lie within the content and start in non-decreasing order
func CheckTokenStream(tokens []token.Token, sf *source.File) error {
	if len(tokens) == 0 {
		return fmt.Errorf("empty token stream")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	depth := 0
	var prevStart uint32
	for i, tok := range tokens {
		sp := tok.Span
		if sp.End < sp.Start || sp.End > lenContent {
			return fmt.Errorf("token %d %s span %v outside content", i, tok.Kind, sp)
		}
		if sp.Start < prevStart {
			return fmt.Errorf("token %d %s at %d starts before previous token at %d", i, tok.Kind, sp.Start, prevStart)
		}
		prevStart = sp.Start

		switch tok.Kind {
		case token.Begin:
			depth++
		case token.End:
			depth--
			if depth < 0 {
				return fmt.Errorf("token %d: End without Begin", i)
			}
		}
		switch tok.Kind {
		case token.Begin, token.End, token.Eof:
			if !sp.Empty() {
				return fmt.Errorf("token %d %s has non-empty span %v", i, tok.Kind, sp)
			}
		default:
			if sp.Empty() {
				return fmt.Errorf("token %d %s has empty span", i, tok.Kind)
			}
		}
		if tok.Kind == token.Eof && i != len(tokens)-1 {
			return fmt.Errorf("Eof at %d is not the last token", i)
		}
	}
	if last := tokens[len(tokens)-1]; last.Kind != token.Eof {
		return fmt.Errorf("stream ends with %s, not Eof", last.Kind)
	}
	if depth != 0 {
		return fmt.Errorf("%d Begin tokens left open at Eof", depth)
	}
	return nil
}
