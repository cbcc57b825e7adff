package diag

import (
	"fmt"
	"sort"
	"strings"

	"sqwipt/internal/source"
)

type shortLine struct {
	label  string
	code   string
	path   string
	line   uint32
	column uint32
	msg    string
}

// FormatShort renders one line per diagnostic:
//
//	error SYN2003 main.sqw:3:5 message
//
// Lines are sorted by path, position, label and code. Notes become "note"
// lines when includeNotes is set.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	lines := make([]shortLine, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		if l, ok := resolveShort(fs, d.Primary); ok {
			l.label, l.code, l.msg = d.Severity.Label(), d.Code.ID(), flatten(d.Message)
			lines = append(lines, l)
		}
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if l, ok := resolveShort(fs, n.Span); ok {
				l.label, l.code, l.msg = "note", d.Code.ID(), flatten(n.Msg)
				lines = append(lines, l)
			}
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		switch {
		case a.path != b.path:
			return a.path < b.path
		case a.line != b.line:
			return a.line < b.line
		case a.column != b.column:
			return a.column < b.column
		case a.label != b.label:
			return a.label < b.label
		default:
			return a.code < b.code
		}
	})

	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s %s %s:%d:%d %s", l.label, l.code, l.path, l.line, l.column, l.msg)
	}
	return sb.String()
}

func resolveShort(fs *source.FileSet, sp source.Span) (shortLine, bool) {
	if int(sp.File) >= fs.Len() {
		return shortLine{}, false
	}
	file := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	path := file.Path
	if file.Flags&source.FileVirtual == 0 {
		path = file.FormatPath("relative", fs.BaseDir())
	}
	return shortLine{path: strings.TrimPrefix(path, "./"), line: start.Line, column: start.Col}, true
}

func flatten(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
