package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sqwipt/internal/diagfmt"
	"sqwipt/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.sqw|directory>",
	Short: "Tokenize a sqwipt source file or directory",
	Long: `Tokenize prints the token stream of a sqwipt source file, including the
Begin and End tokens produced by indentation`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	path := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return errInvalidFlag("format", format, "pretty|json")
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	if !st.IsDir() {
		result, err := driver.Tokenize(cmd.Context(), path, opts)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
		if err := printBag(cmd, result.Bag, result.FileSet); err != nil {
			return err
		}
		if opts.Timings {
			if err := printPhaseTimings(os.Stderr, result.Timing); err != nil {
				return err
			}
		}
		if format == "json" {
			return diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
		}
		return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	}

	fs, results, err := driver.TokenizeDir(cmd.Context(), path, opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	for _, r := range results {
		if err := printBag(cmd, r.Bag, fs); err != nil {
			return err
		}
	}
	for i, r := range results {
		if !quiet {
			if err := writeHeader(os.Stdout, displayPath(fs, r.FileID, r.Path), i == 0); err != nil {
				return err
			}
		}
		if r.Tokens == nil {
			continue
		}
		if format == "json" {
			err = diagfmt.FormatTokensJSON(os.Stdout, r.Tokens)
		} else {
			err = diagfmt.FormatTokensPretty(os.Stdout, r.Tokens, fs)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
