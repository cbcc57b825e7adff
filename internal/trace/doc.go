// Package trace records coarse timing events for the sqwipt toolchain.
//
// A Tracer receives events from the driver (one span per command), from
// each pass (tokenize, parse) and from each file. At the debug level the
// parser also emits node events when it enters blocks and closures, which
// is usually enough to see where a pathological input stalls.
//
//	tr, _ := trace.New(trace.Config{Level: trace.LevelPhase, Mode: trace.ModeStream})
//	ctx = trace.WithTracer(ctx, tr)
//
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
//
// Events go either straight to a writer (StreamTracer), into a bounded
// in-memory buffer that can be dumped after a failure (RingTracer), or both.
package trace
