// Package observ measures how long the front-end phases take.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Timer collects laps in the order they were started. It is not safe for
// concurrent use; the driver keeps one per file.
type Timer struct {
	now  func() time.Time
	laps []*Lap
}

// Lap is one measured phase. A nil Lap ignores Stop.
type Lap struct {
	name    string
	started time.Time
	elapsed time.Duration
	note    string
	done    bool
	timer   *Timer
}

func NewTimer() *Timer {
	return newTimerWithClock(time.Now)
}

func newTimerWithClock(now func() time.Time) *Timer {
	return &Timer{now: now, laps: make([]*Lap, 0, 4)}
}

// Start opens a lap named name.
func (t *Timer) Start(name string) *Lap {
	lap := &Lap{name: name, started: t.now(), timer: t}
	t.laps = append(t.laps, lap)
	return lap
}

// Stop closes the lap and attaches note. Only the first call counts.
func (l *Lap) Stop(note string) {
	if l == nil || l.done {
		return
	}
	l.elapsed = l.timer.now().Sub(l.started)
	l.note = note
	l.done = true
}

// PhaseReport is the serialisable form of a finished phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report lists the stopped laps with their sum in milliseconds.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report skips laps that were never stopped.
func (t *Timer) Report() Report {
	var (
		report Report
		total  time.Duration
	)
	for _, lap := range t.laps {
		if !lap.done {
			continue
		}
		total += lap.elapsed
		report.Phases = append(report.Phases, PhaseReport{
			Name:       lap.name,
			DurationMS: millis(lap.elapsed),
			Note:       lap.note,
		})
	}
	report.TotalMS = millis(total)
	return report
}

func (r Report) String() string {
	var sb strings.Builder
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "%s=%.2fms ", p.Name, p.DurationMS)
	}
	fmt.Fprintf(&sb, "total=%.2fms", r.TotalMS)
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
