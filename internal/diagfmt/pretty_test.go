package diagfmt_test

import (
	"strings"
	"testing"

	"sqwipt/internal/diag"
	"sqwipt/internal/diagfmt"
	"sqwipt/internal/source"
)

func singleDiag(t *testing.T, src string, d diag.Diagnostic) (*source.FileSet, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("prog.sqw", []byte(src))
	d.Primary.File = id
	for i := range d.Notes {
		d.Notes[i].Span.File = id
	}
	for i := range d.Fixes {
		for j := range d.Fixes[i].Edits {
			d.Fixes[i].Edits[j].Span.File = id
		}
	}
	bag := diag.NewBag(10)
	bag.Add(d)
	return fs, bag
}

func TestPrettyCaretUnderPrimary(t *testing.T) {
	fs, bag := singleDiag(t, "a + 1\nb * 2\n", diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynUnexpectedToken,
		Message:  "unexpected `*`",
		Primary:  source.Span{Start: 8, End: 9},
	})
	var sb strings.Builder
	diagfmt.Pretty(&sb, bag, fs, diagfmt.PrettyOpts{})
	want := "prog.sqw:2:3: ERROR SYN2001: unexpected `*`\n" +
		" 2 | b * 2\n" +
		"   |   ^\n"
	if sb.String() != want {
		t.Fatalf("pretty output:\n%s\nwant:\n%s", sb.String(), want)
	}
}

func TestPrettyWideRunes(t *testing.T) {
	src := "\"日本\" + x\n"
	tests := []struct {
		name  string
		span  source.Span
		caret string
	}{
		{"after wide text", source.Span{Start: 11, End: 12}, "   | " + strings.Repeat(" ", 9) + "^"},
		{"over wide text", source.Span{Start: 0, End: 8}, "   | ^~~~~~"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, bag := singleDiag(t, src, diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.SynUnexpectedToken,
				Message:  "m",
				Primary:  tt.span,
			})
			var sb strings.Builder
			diagfmt.Pretty(&sb, bag, fs, diagfmt.PrettyOpts{})
			lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
			if len(lines) != 3 {
				t.Fatalf("expected 3 lines, got %q", sb.String())
			}
			if lines[2] != tt.caret {
				t.Fatalf("caret line %q, want %q", lines[2], tt.caret)
			}
		})
	}
}

func TestPrettyColor(t *testing.T) {
	d := diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.LexUnknownChar,
		Message:  "unknown character",
		Primary:  source.Span{Start: 0, End: 1},
	}
	fs, bag := singleDiag(t, "$\n", d)

	var plain strings.Builder
	diagfmt.Pretty(&plain, bag, fs, diagfmt.PrettyOpts{Color: false})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("escape codes with color disabled: %q", plain.String())
	}

	var colored strings.Builder
	diagfmt.Pretty(&colored, bag, fs, diagfmt.PrettyOpts{Color: true})
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("no escape codes with color enabled: %q", colored.String())
	}
}

func TestPrettyContextLines(t *testing.T) {
	fs, bag := singleDiag(t, "a\nb\nc\nd\n", diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.SynUnexpectedToken,
		Message:  "m",
		Primary:  source.Span{Start: 4, End: 5},
	})
	var sb strings.Builder
	diagfmt.Pretty(&sb, bag, fs, diagfmt.PrettyOpts{Context: 1})
	out := sb.String()
	for _, want := range []string{"WARNING SYN2001", " 2 | b\n", " 3 | c\n", " 4 | d\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, " 1 | a") {
		t.Fatalf("context too wide:\n%s", out)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs, bag := singleDiag(t, "(1, 2\n", diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynUnclosedParen,
		Message:  "expected `)`",
		Primary:  source.Span{Start: 5, End: 5},
		Notes:    []diag.Note{{Span: source.Span{Start: 0, End: 1}, Msg: "opened here"}},
		Fixes: []diag.Fix{{
			Title: "insert `)`",
			Edits: []diag.FixEdit{{Span: source.Span{Start: 5, End: 5}, NewText: ")"}},
		}},
	})

	var bare strings.Builder
	diagfmt.Pretty(&bare, bag, fs, diagfmt.PrettyOpts{})
	if strings.Contains(bare.String(), "note:") || strings.Contains(bare.String(), "fix:") {
		t.Fatalf("notes or fixes shown without opting in:\n%s", bare.String())
	}

	var full strings.Builder
	diagfmt.Pretty(&full, bag, fs, diagfmt.PrettyOpts{ShowNotes: true, ShowFixes: true})
	out := full.String()
	for _, want := range []string{
		"  note: opened here (1:1)\n",
		"  fix: insert `)`\n",
		"    replace 1:6-1:6 with \")\"\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestPrettyWithoutFileSet(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.IOLoadFileError, Message: "cannot read"})
	var sb strings.Builder
	diagfmt.Pretty(&sb, bag, nil, diagfmt.PrettyOpts{})
	if got := sb.String(); got != "ERROR IO4001: cannot read\n" {
		t.Fatalf("got %q", got)
	}

	sb.Reset()
	diagfmt.Pretty(&sb, nil, nil, diagfmt.PrettyOpts{})
	if sb.Len() != 0 {
		t.Fatalf("nil bag wrote %q", sb.String())
	}
}

func TestPrettyParsedProgramme(t *testing.T) {
	p := parseSource(t, "prog.sqw", "(1, 2\n")
	if !p.bag.HasErrors() {
		t.Fatalf("expected errors for unclosed paren")
	}
	var sb strings.Builder
	diagfmt.Pretty(&sb, p.bag, p.fs, diagfmt.PrettyOpts{})
	if !strings.Contains(sb.String(), "SYN2003") || !strings.HasPrefix(sb.String(), "prog.sqw:1:") {
		t.Fatalf("unexpected output:\n%s", sb.String())
	}
}
