package driver

import (
	"fmt"

	"fortio.org/safecast"

	"sqwipt/internal/diag"
	"sqwipt/internal/parser"
	"sqwipt/internal/trace"
)

// Options configures tokenizing, parsing and diagnosing runs.
type Options struct {
	// MaxDiagnostics caps each file's bag and the parser's error reporting.
	MaxDiagnostics int
	// MaxDepth bounds parser nesting; 0 disables the limit.
	MaxDepth uint
	// Jobs is the worker count for directory runs; <= 0 uses GOMAXPROCS.
	Jobs int
	// Cache stores per-file summaries for Diagnose. Nil disables caching.
	Cache *DiskCache
	// Progress receives per-file events during directory runs.
	Progress ProgressSink
	// Timings records phase durations and appends an OBS6001 diagnostic.
	Timings bool
}

// DefaultOptions returns the limits used when neither flags nor sqwipt.toml set them.
func DefaultOptions() Options {
	return Options{
		MaxDiagnostics: 100,
		MaxDepth:       parser.DefaultMaxDepth,
	}
}

func (o Options) parserOptions(rep diag.Reporter, t trace.Tracer, parent uint64) (parser.Options, error) {
	maxErrors, err := safecast.Conv[uint](o.MaxDiagnostics)
	if err != nil {
		return parser.Options{}, fmt.Errorf("max diagnostics %d: %w", o.MaxDiagnostics, err)
	}
	return parser.Options{
		Reporter:    rep,
		MaxErrors:   maxErrors,
		MaxDepth:    o.MaxDepth,
		Trace:       t,
		TraceParent: parent,
	}, nil
}
