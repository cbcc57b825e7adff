package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sqwipt/internal/parser"
	"sqwipt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "sqwipt",
	Short: "Lexer and parser toolchain for the sqwipt expression language",
	Long: `sqwipt tokenizes and parses sqwipt programmes, reports syntax
diagnostics and prints the resulting trees`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: beginCommand,
	PersistentPostRun: endCommand,
}

// main registers subcommands and global flags, then runs the root command.
// Any returned error exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	registerGlobalFlags(rootCmd)

	err := rootCmd.Execute()
	// PersistentPostRun is skipped when RunE fails.
	endCommand(nil, nil)
	if err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// registerGlobalFlags installs the persistent flags every subcommand reads.
func registerGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to keep per file")
	flags.Uint("max-depth", parser.DefaultMaxDepth, "maximum expression nesting depth")
	flags.String("config", "", "path to sqwipt.toml (default: search upwards from the working directory)")

	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "ring", "trace storage (stream|ring|both)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	flags.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")

	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")
}

// errDiagnostics marks a run that completed but reported errors. The
// diagnostics are already printed, so main only sets the exit status.
var errDiagnostics = errors.New("diagnostics contain errors")

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color against the stream diagnostics go to.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch value {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(f), nil
	default:
		return false, errInvalidFlag("color", value, "auto|on|off")
	}
}
