package diag

import "sqwipt/internal/source"

// Reporter is the minimal contract lexer and parser use to emit diagnostics.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix)
}

// BagReporter stores every diagnostic into Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Primary: primary, Notes: notes, Fixes: fixes,
	})
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix)

func (f ReporterFunc) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	f(code, sev, primary, msg, notes, fixes)
}

// Emit sends an already built diagnostic through r.
func Emit(r Reporter, d Diagnostic) {
	if r == nil {
		return
	}
	r.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, d.Fixes)
}
