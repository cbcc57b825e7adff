package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sqwipt/internal/trace"
)

var (
	activeTracer trace.Tracer = trace.Nop
	traceCleanup              = func() {}
	commandSpan  *trace.Span
)

func beginCommand(cmd *cobra.Command, _ []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	traceCleanup = cleanup
	if err := setupProfiling(cmd); err != nil {
		return err
	}
	commandSpan = trace.Begin(activeTracer, trace.ScopeDriver, cmd.CommandPath(), 0)
	cmd.SetContext(trace.WithParent(cmd.Context(), commandSpan.ID()))
	return nil
}

func endCommand(*cobra.Command, []string) {
	if commandSpan != nil {
		commandSpan.End("")
		commandSpan = nil
	}
	stopProfiling()
	traceCleanup()
	traceCleanup = func() {}
}

// setupTracing reads the trace flags, attaches a tracer to the command
// context and returns the function that flushes and closes it.
func setupTracing(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()

	traceOutput, err := flags.GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeatInterval, err := flags.GetDuration("trace-heartbeat")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// --trace alone means "phase" level streamed to the given output.
	if level == trace.LevelOff {
		if traceOutput == "" {
			activeTracer = trace.Nop
			cmd.SetContext(trace.WithTracer(ctx, trace.Nop))
			return func() {}, nil
		}
		level = trace.LevelPhase
		if !flags.Changed("trace-mode") {
			modeStr = "stream"
		}
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: traceOutput,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	activeTracer = tracer
	cmd.SetContext(trace.WithTracer(ctx, tracer))

	var heartbeat *trace.Heartbeat
	if heartbeatInterval > 0 {
		heartbeat = trace.StartHeartbeat(tracer, heartbeatInterval)
	}

	return func() {
		if heartbeat != nil {
			heartbeat.Stop()
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
		activeTracer = trace.Nop
	}, nil
}

// dumpTraceOnPanic writes the ring buffer to stderr before re-panicking.
// It must be deferred directly.
func dumpTraceOnPanic() {
	r := recover()
	if r == nil {
		return
	}
	if ring := ringOf(activeTracer); ring != nil {
		fmt.Fprintf(os.Stderr, "panic: %v\nlast trace events:\n", r)
		if err := ring.Dump(os.Stderr, trace.FormatText); err != nil {
			fmt.Fprintf(os.Stderr, "trace: dump error: %v\n", err)
		}
	}
	panic(r)
}

func ringOf(t trace.Tracer) *trace.RingTracer {
	switch v := t.(type) {
	case *trace.RingTracer:
		return v
	case *trace.MultiTracer:
		return v.Ring()
	default:
		return nil
	}
}

func errInvalidFlag(name, value, expected string) error {
	return fmt.Errorf("invalid --%s value %q (expected %s)", name, value, expected)
}
