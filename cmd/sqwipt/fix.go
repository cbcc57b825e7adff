package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sqwipt/internal/diag"
	"sqwipt/internal/driver"
	"sqwipt/internal/fix"
	"sqwipt/internal/source"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.sqw|directory>",
	Short: "Apply suggested fixes to a source file or directory",
	Long: `Fix parses the input, collects the fixes attached to its diagnostics
and applies them. By default only the first fix is applied`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply every non-conflicting fix")
	fixCmd.Flags().String("id", "", "apply the fix with this identifier")
	fixCmd.Flags().Bool("dry-run", false, "print the fixed sources instead of writing them")
	fixCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

func runFix(cmd *cobra.Command, args []string) error {
	path := args[0]

	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	if all && targetID != "" {
		return fmt.Errorf("--id cannot be combined with --all")
	}

	applyOpts := fix.ApplyOptions{Mode: fix.ApplyModeOnce, TargetID: targetID, DryRun: dryRun}
	switch {
	case targetID != "":
		applyOpts.Mode = fix.ApplyModeID
	case all:
		applyOpts.Mode = fix.ApplyModeAll
	}

	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}

	var (
		fs    *source.FileSet
		diags []diag.Diagnostic
	)
	if st.IsDir() {
		var results []driver.ParseDirResult
		fs, results, err = driver.ParseDir(cmd.Context(), path, opts)
		if err != nil {
			return fmt.Errorf("fix: %w", err)
		}
		for _, r := range results {
			if r.Bag != nil {
				diags = append(diags, r.Bag.Items()...)
			}
		}
	} else {
		result, err := driver.Parse(cmd.Context(), path, opts)
		if err != nil {
			return fmt.Errorf("fix: %w", err)
		}
		fs = result.FileSet
		diags = result.Bag.Items()
	}

	res, applyErr := fix.Apply(fs, diags, applyOpts)
	return reportFixes(os.Stdout, res, applyErr, dryRun)
}

// reportFixes prints what Apply did. ErrNoFixes is not a failure.
func reportFixes(w io.Writer, res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}
	for _, item := range res.Applied {
		location := item.Path
		if location == "" {
			location = "(unknown location)"
		}
		if _, err := fmt.Fprintf(w, "applied %s [%s] in %s\n", item.Title, item.ID, location); err != nil {
			return err
		}
	}
	for _, skip := range res.Skipped {
		id := skip.ID
		if id == "" {
			id = "(unnamed)"
		}
		if _, err := fmt.Fprintf(w, "skipped [%s]: %s\n", id, skip.Reason); err != nil {
			return err
		}
	}
	for i, change := range res.FileChanges {
		if !dryRun {
			if _, err := fmt.Fprintf(w, "updated %s (%d edits)\n", change.Path, change.EditCount); err != nil {
				return err
			}
			continue
		}
		if err := writeHeader(w, change.Path, i == 0); err != nil {
			return err
		}
		if _, err := w.Write(change.Content); err != nil {
			return err
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			_, err := fmt.Fprintln(w, "no applicable fixes")
			return err
		}
		return applyErr
	}
	return nil
}
