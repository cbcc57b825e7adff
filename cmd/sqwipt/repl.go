package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"sqwipt/internal/diag"
	"sqwipt/internal/diagfmt"
	"sqwipt/internal/driver"
	"sqwipt/internal/version"
)

const (
	replPrompt       = "sqw> "
	replContinuation = "...  "
	replHistoryFile  = ".sqwipt_history"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Parse sqwipt input interactively",
	Long: `Repl reads sqwipt input line by line and prints each programme as
s-expressions together with its diagnostics. Input continues while the entry
could still become valid (an open bracket or closure, a trailing operator) or
the last line is indented; an empty line ends a block. Type :quit
to leave`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func runRepl(cmd *cobra.Command, _ []string) error {
	defer dumpTraceOnPanic()

	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}
	pretty, err := prettyOptions(cmd)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "sqwipt %s, :quit to exit\n", version.Colored(version.Version, pretty.Color))

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, replHistoryFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f) //nolint:errcheck
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f) //nolint:errcheck
				_ = f.Close()
			}
		}()
	}

	session := &replSession{opts: opts, pretty: pretty, out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
	for {
		src, ok := readEntry(ln)
		if !ok {
			fmt.Fprintln(session.out)
			return nil
		}
		trimmed := strings.TrimSpace(src)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, ":"):
			if session.command(trimmed) {
				return nil
			}
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if err := session.eval(cmd, src); err != nil {
			fmt.Fprintln(session.errOut, err)
		}
	}
}

// readEntry collects lines until inputComplete accepts them. An empty
// line always submits what was gathered so far.
func readEntry(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := replPrompt
		if b.Len() > 0 {
			prompt = replContinuation
		}
		line, err := ln.Prompt(prompt)
		if err != nil {
			// EOF and Ctrl+C end the session like any other prompt error
			return "", false
		}
		if b.Len() > 0 {
			if strings.TrimSpace(line) == "" {
				return b.String(), true
			}
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if inputComplete(b.String()) {
			return b.String(), true
		}
	}
}

// pendingAtEnd lists the errors that more input could still resolve when
// they are reported at the very end of the entry.
var pendingAtEnd = map[diag.Code]bool{
	diag.SynExpectExpression:  true,
	diag.SynUnclosedParen:     true,
	diag.SynUnclosedBracket:   true,
	diag.SynUnclosedClosure:   true,
	diag.SynUnclosedBlock:     true,
	diag.SynExpectClosureBody: true,
}

// inputComplete parses src on trial. The entry continues while the last
// line is indented, a string is left open, or every error sits at the end
// of the input (a dangling operator, an open bracket, a closure without
// its body).
func inputComplete(src string) bool {
	if strings.TrimSpace(src) == "" {
		return true
	}
	lines := strings.Split(src, "\n")
	if strings.HasPrefix(lines[len(lines)-1], " ") {
		return false
	}

	result, err := driver.ParseSource(context.Background(), "<repl>", []byte(src), driver.DefaultOptions())
	if err != nil || !result.Bag.HasErrors() {
		return true
	}
	end, err := safecast.Conv[uint32](len(strings.TrimRight(string(result.File.Content), " \n")))
	if err != nil {
		return true
	}
	for _, d := range result.Bag.Items() {
		if d.Severity < diag.SevError {
			continue
		}
		if d.Code == diag.LexUnterminatedString {
			return false
		}
		if !pendingAtEnd[d.Code] || d.Primary.Start < end {
			return true
		}
	}
	return false
}

type replSession struct {
	opts   driver.Options
	pretty diagfmt.PrettyOpts
	out    io.Writer
	errOut io.Writer
	count  int
}

// command handles a colon command and reports whether the REPL should exit.
func (s *replSession) command(input string) bool {
	switch strings.ToLower(input) {
	case ":quit", ":q", ":exit":
		return true
	case ":help":
		fmt.Fprintln(s.out, ":quit  leave the repl")
	default:
		fmt.Fprintf(s.out, "unknown command %s, type :help\n", input)
	}
	return false
}

func (s *replSession) eval(cmd *cobra.Command, src string) error {
	s.count++
	name := fmt.Sprintf("<repl:%d>", s.count)
	result, err := driver.ParseSource(cmd.Context(), name, []byte(src), s.opts)
	if err != nil {
		return err
	}
	if text := diagfmt.FormatFileSExpr(result.Builder, result.FileID, result.File); text != "" {
		fmt.Fprintln(s.out, text)
	}
	if result.Bag.Len() > 0 {
		diagfmt.Pretty(s.errOut, result.Bag, result.FileSet, s.pretty)
	}
	return nil
}
