package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"PHASE", LevelPhase, false},
		{" debug ", LevelDebug, false},
		{"detail", LevelDetail, false},
		{"loud", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseLevel(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestShouldEmit(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeFile) {
		t.Error("phase must not emit file events")
	}
	if !LevelDetail.ShouldEmit(ScopeFile) || LevelDetail.ShouldEmit(ScopeNode) {
		t.Error("detail must emit file events and skip node events")
	}
	if !LevelDebug.ShouldEmit(ScopeNode) {
		t.Error("debug must emit node events")
	}
	if LevelError.ShouldEmit(ScopeDriver) || LevelOff.ShouldEmit(ScopeDriver) {
		t.Error("error and off levels stream nothing")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	span := Begin(tr, ScopePass, "parse", 0)
	Begin(tr, ScopeFile, "file:a.sqw", span.ID()).End("")
	span.WithExtra("files", "1").End("ok")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "> parse") {
		t.Errorf("begin line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "< parse (ok) {files=1}") {
		t.Errorf("end line = %q", lines[1])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeNode, "block", "depth=1", 7)

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if got["kind"] != "point" || got["scope"] != "node" || got["name"] != "block" {
		t.Errorf("unexpected event %v", got)
	}
	if got["parent_id"] != float64(7) {
		t.Errorf("parent_id = %v", got["parent_id"])
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeNode, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot len = %d", len(snap))
	}
	var names []string
	for i, ev := range snap {
		names = append(names, ev.Name)
		if i > 0 && ev.Seq <= snap[i-1].Seq {
			t.Errorf("sequence not increasing at %d", i)
		}
	}
	if strings.Join(names, "") != "cde" {
		t.Errorf("snapshot order = %v", names)
	}

	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatAuto); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Errorf("dump:\n%s", buf.String())
	}
}

func TestRingAtErrorLevelKeepsPhases(t *testing.T) {
	r := NewRingTracer(8, LevelError)
	r.Emit(&Event{Kind: KindPoint, Scope: ScopePass, Name: "parse"})
	r.Emit(&Event{Kind: KindPoint, Scope: ScopeNode, Name: "block"})
	if snap := r.Snapshot(); len(snap) != 1 || snap[0].Name != "parse" {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestNewModes(t *testing.T) {
	tr, err := New(Config{Level: LevelOff, Mode: ModeStream})
	if err != nil || tr.Enabled() {
		t.Fatalf("off level: %v %v", tr, err)
	}

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	m, ok := tr.(*MultiTracer)
	if !ok || m.Ring() == nil {
		t.Fatalf("both mode returned %T", tr)
	}
	Begin(tr, ScopeDriver, "run", 0).End("")
	if len(m.Ring().Snapshot()) != 2 || buf.Len() == 0 {
		t.Errorf("events not fanned out: ring=%d stream=%q", len(m.Ring().Snapshot()), buf.String())
	}
	if err := tr.Close(); err != nil {
		t.Errorf("close: %v", err)
	}

	if _, err := New(Config{Level: LevelPhase, Mode: StorageMode(9)}); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestFormatFor(t *testing.T) {
	if formatFor(FormatAuto, "t.ndjson") != FormatNDJSON {
		t.Error("ndjson suffix")
	}
	if formatFor(FormatAuto, "-") != FormatText {
		t.Error("stderr defaults to text")
	}
	if formatFor(FormatNDJSON, "t.txt") != FormatNDJSON {
		t.Error("explicit format wins")
	}
}

func TestDisabledSpanIsSafe(t *testing.T) {
	s := Begin(Nop, ScopeDriver, "x", 0)
	if s.WithExtra("k", "v").End("") != 0 || s.ID() != 0 {
		t.Error("nop span must be inert")
	}
	var nilSpan *Span
	if nilSpan.End("") != 0 {
		t.Error("nil span End")
	}
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != Nop {
		t.Error("empty context must yield Nop")
	}
	r := NewRingTracer(4, LevelDebug)
	ctx = WithParent(WithTracer(ctx, r), 42)
	if FromContext(ctx) != Tracer(r) {
		t.Error("tracer lost")
	}
	if ParentSpan(ctx) != 42 || ParentSpan(context.Background()) != 0 {
		t.Error("parent span")
	}
}

func TestHeartbeat(t *testing.T) {
	r := NewRingTracer(64, LevelPhase)
	h := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	if len(r.Snapshot()) == 0 {
		t.Fatal("no heartbeat recorded")
	}
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Error("heartbeat on disabled tracer")
	}
}
