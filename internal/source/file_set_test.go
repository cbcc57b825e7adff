package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.sqw", []byte("a + b"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}
	id2 := fs.Add("main.sqw", []byte("a * b"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latestID, exists := fs.GetLatest("main.sqw")
	if !exists {
		t.Fatal("Expected file to exist after Add")
	}
	if latestID != id2 {
		t.Errorf("Expected latest ID to be %d, got %d", id2, latestID)
	}

	if got := string(fs.Get(id1).Content); got != "a + b" {
		t.Errorf("Expected first version to be kept, got %q", got)
	}
	if f, ok := fs.GetByPath("./main.sqw"); !ok || f.ID != id2 {
		t.Errorf("Expected GetByPath to find latest version through a dotted path")
	}
	if fs.Len() != 2 {
		t.Errorf("Expected 2 versions, got %d", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("a.sqw", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.sqw", []byte("f\n  x\n  y"))

	tests := []struct {
		name       string
		span       Span
		start, end LineCol
	}{
		{"first byte", Span{File: id, Start: 0, End: 1}, LineCol{1, 1}, LineCol{1, 2}},
		{"newline belongs to its line", Span{File: id, Start: 1, End: 2}, LineCol{1, 2}, LineCol{2, 1}},
		{"indented ident", Span{File: id, Start: 4, End: 5}, LineCol{2, 3}, LineCol{2, 4}},
		{"last line", Span{File: id, Start: 8, End: 9}, LineCol{3, 3}, LineCol{3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := fs.Resolve(tt.span)
			if start != tt.start || end != tt.end {
				t.Errorf("Resolve(%v) = %+v..%+v, want %+v..%+v", tt.span, start, end, tt.start, tt.end)
			}
		})
	}
}

func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("u.sqw", []byte("α\n"))

	start, end := fs.Resolve(Span{File: id, Start: 0, End: 1})
	if start != (LineCol{Line: 1, Col: 1}) {
		t.Errorf("Expected start 1:1, got %+v", start)
	}
	if end != (LineCol{Line: 1, Col: 2}) {
		t.Errorf("Expected byte column 2, got %+v", end)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("l.sqw", []byte("one\ntwo\n\nfour")))

	cases := map[uint32]string{0: "", 1: "one", 2: "two", 3: "", 4: "four", 5: ""}
	for line, want := range cases {
		if got := file.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
}

func TestFileText(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.sqw", []byte("abc def"))
	file := fs.Get(id)

	if got := file.Text(Span{File: id, Start: 4, End: 7}); got != "def" {
		t.Errorf("Expected \"def\", got %q", got)
	}
	if got := file.Text(Span{File: id, Start: 5, End: 100}); got != "ef" {
		t.Errorf("Expected clamped text \"ef\", got %q", got)
	}
	if got := file.Text(Span{File: id, Start: 7, End: 7}); got != "" {
		t.Errorf("Expected empty text at end, got %q", got)
	}
}

func TestEdgeCases(t *testing.T) {
	fs := NewFileSet()

	if f := fs.Get(fs.AddVirtual("empty.sqw", []byte{})); len(f.LineIdx) != 0 {
		t.Errorf("Expected empty LineIdx for empty file, got %v", f.LineIdx)
	}
	if f := fs.Get(fs.AddVirtual("flat.sqw", []byte("hello"))); len(f.LineIdx) != 0 {
		t.Errorf("Expected empty LineIdx without newlines, got %v", f.LineIdx)
	}
	if f := fs.Get(fs.AddVirtual("nl.sqw", []byte("\n"))); len(f.LineIdx) != 1 || f.LineIdx[0] != 0 {
		t.Errorf("Expected LineIdx [0], got %v", f.LineIdx)
	}
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.sqw")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		flag    FileFlags
	}{
		{"plain", "a\nb\n", "a\nb\n", 0},
		{"bom", "\xEF\xBB\xBFa\nb\n", "a\nb\n", FileHadBOM},
		{"crlf", "a\r\nb\r\n", "a\nb\n", FileNormalizedCRLF},
		{"nfc", "e\u0301", "\u00e9", FileNormalizedNFC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := NewFileSet()
			id, err := fs.Load(writeTemp(t, tt.content))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			file := fs.Get(id)
			if string(file.Content) != tt.want {
				t.Errorf("Expected content %q, got %q", tt.want, string(file.Content))
			}
			if tt.flag != 0 && file.Flags&tt.flag == 0 {
				t.Errorf("Expected flag %b to be set, got %b", tt.flag, file.Flags)
			}
			if tt.flag == 0 && file.Flags != 0 {
				t.Errorf("Expected no flags, got %b", file.Flags)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.sqw")); err == nil {
		t.Fatal("Expected error for missing file")
	}
	if fs.Len() != 0 {
		t.Errorf("Expected no file to be added, got %d", fs.Len())
	}
}

func TestFormatPath(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "pkg", "main.sqw")
	file := &File{Path: normalizePath(path)}

	if got := file.FormatPath("basename", ""); got != "main.sqw" {
		t.Errorf("basename: got %q", got)
	}
	if got := file.FormatPath("relative", base); got != "pkg/main.sqw" {
		t.Errorf("relative: got %q", got)
	}
	if got := file.FormatPath("absolute", ""); got != normalizePath(path) {
		t.Errorf("absolute: got %q", got)
	}
	if got := file.FormatPath("unknown", ""); got != file.Path {
		t.Errorf("default: got %q", got)
	}
}
