package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sqwipt/internal/diag"
	"sqwipt/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		note:   mk(color.FgGreen),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes each diagnostic of bag as
//
//	path:line:col: ERROR SYN2003: message
//	   3 | (1, 2
//	     |       ^
//
// followed by notes and fixes when enabled. The bag is expected to be sorted.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	pal := newPalette(opts.Color)
	var sb strings.Builder
	for i, d := range bag.Items() {
		if i > 0 {
			sb.WriteByte('\n')
		}
		writeDiagnostic(&sb, d, fs, opts, pal)
	}
	_, _ = io.WriteString(w, sb.String()) //nolint:errcheck
}

func writeDiagnostic(sb *strings.Builder, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	known := fs != nil && int(d.Primary.File) < fs.Len()
	if known {
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(sb, "%s:%d:%d: ", displayPath(f, fs, opts.PathMode), start.Line, start.Col)
	}
	fmt.Fprintf(sb, "%s %s: %s\n",
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.code.Sprint(d.Code.ID()),
		d.Message,
	)
	// informational entries without a location (timings) get no snippet
	if known && (d.Severity != diag.SevInfo || !d.Primary.Empty()) {
		writeSnippet(sb, fs, d.Primary, opts.Context, pal)
	}
	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(sb, "  %s %s", pal.note.Sprint("note:"), n.Msg)
			if fs != nil && int(n.Span.File) < fs.Len() {
				start, _ := fs.Resolve(n.Span)
				fmt.Fprintf(sb, " (%d:%d)", start.Line, start.Col)
			}
			sb.WriteByte('\n')
		}
	}
	if opts.ShowFixes {
		for _, fix := range d.Fixes {
			fmt.Fprintf(sb, "  %s %s\n", pal.note.Sprint("fix:"), fix.Title)
			for _, e := range fix.Edits {
				fmt.Fprintf(sb, "    replace %s with %q\n", formatSpan(e.Span, fs), e.NewText)
			}
		}
	}
}

// writeSnippet prints the primary line with context and a caret underline.
// Columns are display widths, so wide runes keep the caret aligned.
func writeSnippet(sb *strings.Builder, fs *source.FileSet, sp source.Span, context int8, pal palette) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	first := start.Line
	if c := uint32(max(context, 0)); first > c {
		first -= c
	} else {
		first = 1
	}
	last := start.Line + uint32(max(context, 0))
	numWidth := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		if int(ln) > len(f.LineIdx)+1 {
			break
		}
		text := f.GetLine(ln)
		gutter := pal.gutter.Sprintf("%*d |", numWidth, ln)
		fmt.Fprintf(sb, " %s %s\n", gutter, text)
		if ln != start.Line {
			continue
		}
		lead := clampPrefix(text, start.Col-1)
		width := 1
		if end.Line == start.Line && end.Col > start.Col {
			under := clampPrefix(text, end.Col-1)
			if w := runewidth.StringWidth(under) - runewidth.StringWidth(lead); w > 1 {
				width = w
			}
		}
		marker := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(sb, " %s %s%s\n",
			pal.gutter.Sprint(strings.Repeat(" ", numWidth)+" |"),
			strings.Repeat(" ", runewidth.StringWidth(lead)),
			pal.caret.Sprint(marker),
		)
	}
}

func clampPrefix(s string, n uint32) string {
	if int(n) > len(s) {
		return s
	}
	return s[:n]
}
