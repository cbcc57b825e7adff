package driver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sqwipt/internal/ast"
	"sqwipt/internal/diag"
	"sqwipt/internal/driver"
	"sqwipt/internal/trace"
)

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestParseSource(t *testing.T) {
	res, err := driver.ParseSource(context.Background(), "mem.sqw", []byte("a + 1\nb\n"), driver.DefaultOptions())
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	prog := res.Programme()
	if prog == nil || prog.Status != ast.FileGood || len(prog.Exprs) != 2 {
		t.Fatalf("unexpected programme %+v", prog)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	if res.Timing != nil {
		t.Fatal("timing recorded without Timings")
	}
}

func TestParseFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.sqw")
	if err := os.WriteFile(path, []byte("(1, 2\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	res, err := driver.Parse(context.Background(), path, driver.DefaultOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !hasCode(res.Bag, diag.SynUnclosedParen) {
		t.Fatalf("expected SYN2003, got %v", res.Bag.Items())
	}
	if res.File.Path != filepath.ToSlash(path) {
		t.Fatalf("file path %q", res.File.Path)
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := driver.Parse(context.Background(), filepath.Join(t.TempDir(), "nope.sqw"), driver.DefaultOptions())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestParseHonoursMaxDepth(t *testing.T) {
	opts := driver.DefaultOptions()
	opts.MaxDepth = 2
	res, err := driver.ParseSource(context.Background(), "deep.sqw", []byte("((((1))))"), opts)
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	if !hasCode(res.Bag, diag.SynNestingTooDeep) {
		t.Fatalf("expected SYN2010, got %v", res.Bag.Items())
	}
}

func TestParseRejectsNegativeLimit(t *testing.T) {
	opts := driver.DefaultOptions()
	opts.MaxDiagnostics = -1
	if _, err := driver.ParseSource(context.Background(), "x.sqw", []byte("x"), opts); err == nil {
		t.Fatal("expected an error for a negative diagnostics limit")
	}
}

func TestParseTimings(t *testing.T) {
	opts := driver.DefaultOptions()
	opts.Timings = true
	res, err := driver.ParseSource(context.Background(), "t.sqw", []byte("1 + 2"), opts)
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	if res.Timing == nil || len(res.Timing.Phases) != 1 || res.Timing.Phases[0].Name != "parse" {
		t.Fatalf("unexpected timing %+v", res.Timing)
	}
	if !hasCode(res.Bag, diag.ObsTimings) {
		t.Fatal("timings diagnostic missing")
	}
}

func TestParseTimingNoteCountsBadNodes(t *testing.T) {
	tests := []struct {
		src  string
		note string
	}{
		{"1 + 2", "exprs=1 bad=0"},
		{"f(1, ;, 2)\n[3\nx", "exprs=3 bad=2"},
	}
	for _, tt := range tests {
		opts := driver.DefaultOptions()
		opts.Timings = true
		res, err := driver.ParseSource(context.Background(), "t.sqw", []byte(tt.src), opts)
		if err != nil {
			t.Fatalf("ParseSource(%q): %v", tt.src, err)
		}
		if got := res.Timing.Phases[0].Note; got != tt.note {
			t.Errorf("%q: note = %q, want %q", tt.src, got, tt.note)
		}
	}
}

func TestParseEmitsTraceSpans(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, err := driver.ParseSource(ctx, "traced.sqw", []byte("a"), driver.DefaultOptions()); err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	seen := map[string]bool{}
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanEnd {
			seen[ev.Name] = true
		}
	}
	if !seen["parse"] || !seen["traced.sqw"] {
		t.Fatalf("missing spans, saw %v", seen)
	}
}

func TestTokenize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tok.sqw")
	if err := os.WriteFile(path, []byte("a $ b"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	res, err := driver.Tokenize(context.Background(), path, driver.DefaultOptions())
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if n := len(res.Tokens); n != 4 || res.Tokens[n-1].Kind.String() != "Eof" {
		t.Fatalf("unexpected tokens %v", res.Tokens)
	}
	if !hasCode(res.Bag, diag.LexUnknownChar) {
		t.Fatalf("expected LEX1001, got %v", res.Bag.Items())
	}
}
