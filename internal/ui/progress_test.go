package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"sqwipt/internal/driver"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.sqw", 20, "short.sqw"},
		{"a/very/long/path/main.sqw", 10, "a/very/..."},
		{"abcdef", 3, "abc"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
	if got := truncate("日本語のファイル.sqw", 9); runewidth.StringWidth(got) > 9 {
		t.Errorf("wide truncation too wide: %q", got)
	}
}

func newModel(files ...string) *progressModel {
	return NewProgressModel("parse", files, make(chan driver.Event)).(*progressModel)
}

func TestApplyTracksFiles(t *testing.T) {
	m := newModel("a.sqw", "b.sqw")

	m.apply(driver.Event{File: "a.sqw", Stage: driver.StageParse, Status: driver.StatusWorking})
	if label, _ := rowLabel(m.rows[0]); label != "parsing" {
		t.Fatalf("label = %q", label)
	}
	if got := m.fraction(); got != 0.25 {
		t.Fatalf("fraction = %v, want 0.25", got)
	}

	m.apply(driver.Event{File: "a.sqw", Stage: driver.StageParse, Status: driver.StatusDone})
	m.apply(driver.Event{File: "b.sqw", Stage: driver.StageLoad, Status: driver.StatusError})
	m.apply(driver.Event{File: "c.sqw", Stage: driver.StageParse, Status: driver.StatusDone})
	if got := m.fraction(); got != 1 {
		t.Fatalf("fraction = %v, want 1", got)
	}
	if finished, failed := m.counts(); finished != 2 || failed != 1 {
		t.Fatalf("counts = %d, %d", finished, failed)
	}

	view := stripANSI(m.View())
	for _, want := range []string{"parse", "2/2, 1 with errors", "done", "error", "a.sqw", "b.sqw"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestVisibleRowsKeepsActiveFiles(t *testing.T) {
	files := make([]string, 20)
	for i := range files {
		files[i] = fmt.Sprintf("f%02d.sqw", i)
	}
	m := newModel(files...)
	m.apply(driver.Event{File: "f03.sqw", Status: driver.StatusError})
	m.apply(driver.Event{File: "f17.sqw", Stage: driver.StageParse, Status: driver.StatusWorking})

	rows, hidden := m.visibleRows()
	if len(rows) != maxRows || hidden != 20-maxRows {
		t.Fatalf("rows=%d hidden=%d", len(rows), hidden)
	}
	seen := map[string]bool{}
	for i, r := range rows {
		seen[r.path] = true
		if i > 0 && rows[i-1].path > r.path {
			t.Fatalf("rows out of order: %s before %s", rows[i-1].path, r.path)
		}
	}
	if !seen["f03.sqw"] || !seen["f17.sqw"] {
		t.Fatalf("active files hidden: %v", seen)
	}
	if !strings.Contains(stripANSI(m.View()), "... 8 more") {
		t.Fatalf("missing overflow line:\n%s", m.View())
	}
}

func TestClosedChannelFinishes(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	m := NewProgressModel("parse", []string{"a.sqw"}, events).(*progressModel)
	msg := m.next()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("expected doneMsg, got %T", msg)
	}
	m.Update(msg)
	if !m.done || !strings.HasPrefix(stripANSI(m.View()), "done: parse") {
		t.Fatalf("view after close:\n%s", m.View())
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEscape = false
		case !inEscape:
			b.WriteRune(r)
		}
	}
	return b.String()
}
