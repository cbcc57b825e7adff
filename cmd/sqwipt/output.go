package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sqwipt/internal/diag"
	"sqwipt/internal/diagfmt"
	"sqwipt/internal/observ"
	"sqwipt/internal/source"
)

func prettyOptions(cmd *cobra.Command) (diagfmt.PrettyOpts, error) {
	colored, err := useColor(cmd, os.Stderr)
	if err != nil {
		return diagfmt.PrettyOpts{}, err
	}
	return diagfmt.PrettyOpts{
		Color:     colored,
		Context:   1,
		ShowNotes: true,
		ShowFixes: true,
	}, nil
}

// printBag writes non-empty bags to stderr in the pretty format.
func printBag(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	opts, err := prettyOptions(cmd)
	if err != nil {
		return err
	}
	diagfmt.Pretty(os.Stderr, bag, fs, opts)
	return nil
}

func displayPath(fs *source.FileSet, id source.FileID, fallback string) string {
	if fs == nil || int(id) >= fs.Len() {
		return fallback
	}
	return fs.Get(id).FormatPath("auto", fs.BaseDir())
}

func writeHeader(w io.Writer, path string, first bool) error {
	if !first {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "== %s ==\n", path)
	return err
}

// printPhaseTimings writes one line per phase followed by the total.
func printPhaseTimings(out io.Writer, report *observ.Report) error {
	if out == nil || report == nil {
		return nil
	}
	for _, phase := range report.Phases {
		line := fmt.Sprintf("%-8s %8.2f ms", phase.Name, phase.DurationMS)
		if phase.Note != "" {
			line += "  " + phase.Note
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(out, "%-8s %8.2f ms\n", "total", report.TotalMS)
	return err
}
