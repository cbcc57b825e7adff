package driver

import (
	"encoding/json"
	"fmt"

	"sqwipt/internal/diag"
	"sqwipt/internal/observ"
	"sqwipt/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// phaseTimer is a nil-safe wrapper so callers need no enabled checks.
type phaseTimer struct {
	t *observ.Timer
}

func newPhaseTimer(enabled bool) phaseTimer {
	if !enabled {
		return phaseTimer{}
	}
	return phaseTimer{t: observ.NewTimer()}
}

func (p phaseTimer) begin(name string) *observ.Lap {
	if p.t == nil {
		return nil
	}
	return p.t.Start(name)
}

func (p phaseTimer) end(lap *observ.Lap, note string) {
	lap.Stop(note)
}

// finish appends the timing diagnostic to bag and returns the report.
func (p phaseTimer) finish(kind, path string, bag *diag.Bag) *observ.Report {
	if p.t == nil {
		return nil
	}
	report := p.t.Report()
	appendTimingDiagnostic(bag, timingPayload{
		Kind:    kind,
		Path:    path,
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
	})
	return &report
}

func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "pipeline"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s, %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  msg,
		Primary:  source.Span{},
		Notes: []diag.Note{
			{Span: source.Span{}, Msg: string(data)},
		},
	}

	if bag.Add(entry) {
		return
	}
	// a full bag still gets its timings
	overflow := diag.NewBag(1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
