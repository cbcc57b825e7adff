package diag

import "sqwipt/internal/source"

type dedupKey struct {
	code   Code
	sev    Severity
	span   source.Span
	msg    string
	opened source.Span // first note, zero without notes
}

// DedupReporter drops diagnostics that repeat code, severity, primary span,
// message and first note of an earlier one. Unclosed groups ending on the
// same line differ only in where they were opened.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r == nil {
		return
	}
	key := dedupKey{code: code, sev: sev, span: primary, msg: msg}
	if len(notes) > 0 {
		key.opened = notes[0].Span
	}
	if _, dup := r.seen[key]; dup {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes, fixes)
	}
}
