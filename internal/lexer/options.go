package lexer

import (
	"sqwipt/internal/diag"
	"sqwipt/internal/source"
)

type Options struct {
	// Reporter receives lexical diagnostics. It may be nil; scanning continues either way.
	Reporter diag.Reporter
}

// Error sends a diagnostic through the configured reporter. It never changes
// the scan position.
func (lx *Lexer) Error(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, nil)
	}
}
