package diagfmt

import (
	"fmt"

	"sqwipt/internal/source"
)

// formatSpan renders "line:col-line:col", or "span(start-end)" without a FileSet.
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil && int(span.File) < fs.Len() {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

func displayPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", fs.BaseDir())
	}
}

// leafText is the source text of a leaf, or its span when the file is unknown.
func leafText(file *source.File, sp source.Span) string {
	if file == nil || file.ID != sp.File {
		return fmt.Sprintf("@%d-%d", sp.Start, sp.End)
	}
	return file.Text(sp)
}
