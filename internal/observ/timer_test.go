package observ

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTimerReport(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	timer := newTimerWithClock(clock.now)

	load := timer.Start("load")
	clock.advance(2 * time.Millisecond)
	load.Stop("")

	parse := timer.Start("parse")
	clock.advance(1500 * time.Microsecond)
	parse.Stop("exprs=3")
	clock.advance(time.Second)
	parse.Stop("late")

	timer.Start("never")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %+v", report.Phases)
	}
	if report.TotalMS != 3.5 {
		t.Fatalf("total = %v, want 3.5", report.TotalMS)
	}
	if p := report.Phases[1]; p.Name != "parse" || p.DurationMS != 1.5 || p.Note != "exprs=3" {
		t.Fatalf("parse phase = %+v", p)
	}
	for _, p := range report.Phases {
		if p.Name == "never" {
			t.Fatal("unstopped lap must not be reported")
		}
	}
	if got := report.String(); got != "load=2.00ms parse=1.50ms total=3.50ms" {
		t.Fatalf("String() = %q", got)
	}
}

func TestNilLapStop(t *testing.T) {
	var lap *Lap
	lap.Stop("ignored")
	if r := NewTimer().Report(); len(r.Phases) != 0 || r.TotalMS != 0 {
		t.Fatalf("empty report = %+v", r)
	}
}
