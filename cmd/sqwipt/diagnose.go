package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sqwipt/internal/diag"
	"sqwipt/internal/diagfmt"
	"sqwipt/internal/driver"
	"sqwipt/internal/source"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.sqw|directory>",
	Short: "Report syntax diagnostics for a sqwipt file or directory",
	Long: `Diag parses a sqwipt source file, or every *.sqw file in a directory, and
reports lexical and syntax diagnostics. The exit status is 1 when any error
is reported`,
	Args: cobra.ExactArgs(1),
	RunE: runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	diagCmd.Flags().Bool("with-notes", false, "include notes in json and short output")
	diagCmd.Flags().Bool("suggest", false, "include fix suggestions in json output")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in json output")
	diagCmd.Flags().Bool("disk-cache", false, "reuse results for unchanged files from the disk cache")
	diagCmd.Flags().String("ui", "off", "progress UI for directories (auto|on|off)")
}

// runDiagnose checks the path, prints the diagnostics in the selected
// format and returns errDiagnostics when any of them is an error.
func runDiagnose(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	path := args[0]
	flags := cmd.Flags()

	format, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "short":
	default:
		return errInvalidFlag("format", format, "pretty|json|short")
	}
	withNotes, err := flags.GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	suggest, err := flags.GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	fullPath, err := flags.GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	diskCache, err := flags.GetBool("disk-cache")
	if err != nil {
		return fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}
	if diskCache && opts.Cache == nil {
		if opts.Cache, err = driver.OpenDiskCache("sqwipt"); err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
	}

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	var (
		fs      *source.FileSet
		results []driver.DiagnoseResult
	)
	if st.IsDir() && shouldUseTUI(mode) && format == "pretty" && !quiet {
		fs, results, err = runDiagnoseWithUI(cmd, path, opts)
	} else {
		fs, results, err = driver.Diagnose(cmd.Context(), path, opts)
	}
	if err != nil {
		return fmt.Errorf("diagnose failed: %w", err)
	}

	combined := diag.NewBag(opts.MaxDiagnostics)
	cached := 0
	for _, r := range results {
		combined.Merge(r.Bag)
		if r.Cached {
			cached++
		}
	}

	switch format {
	case "pretty":
		if err := printBag(cmd, combined, fs); err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintln(os.Stderr, summaryLine(len(results), combined, cached))
		}
	case "short":
		if text := diag.FormatShort(combined.Items(), fs, withNotes); text != "" {
			fmt.Fprintln(os.Stdout, text)
		}
	case "json":
		pathMode := diagfmt.PathModeAuto
		if fullPath {
			pathMode = diagfmt.PathModeAbsolute
		}
		err := diagfmt.JSON(os.Stdout, combined, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
			IncludeFixes:     suggest,
		})
		if err != nil {
			return err
		}
	}

	if combined.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func summaryLine(files int, bag *diag.Bag, cached int) string {
	noun := "files"
	if files == 1 {
		noun = "file"
	}
	line := fmt.Sprintf("checked %d %s: %d errors", files, noun, bag.CountErrors())
	if cached > 0 {
		line += fmt.Sprintf(" (%d cached)", cached)
	}
	return line
}
