package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sqwipt/internal/ast"
	"sqwipt/internal/diagfmt"
	"sqwipt/internal/driver"
	"sqwipt/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.sqw|directory>",
	Short: "Parse a sqwipt source file or directory and print the tree",
	Long: `Parse builds the syntax tree of a sqwipt source file, or of every *.sqw
file in a directory, and prints it. Syntax errors go to stderr; the tree is
printed even when it contains Bad nodes`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|tree|json|sexpr)")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	parseCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
}

func runParse(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	path := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "tree", "json", "sexpr":
	default:
		return errInvalidFlag("format", format, "pretty|tree|json|sexpr")
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
		result, err := driver.Parse(cmd.Context(), path, opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		if err := printBag(cmd, result.Bag, result.FileSet); err != nil {
			return err
		}
		if opts.Timings {
			if err := printPhaseTimings(os.Stderr, result.Timing); err != nil {
				return err
			}
		}
		if err := writeTree(os.Stdout, format, result.Builder, result.FileID, result.FileSet); err != nil {
			return err
		}
		if result.Bag.HasErrors() {
			return errDiagnostics
		}
		return nil
	}

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	var (
		fs      *source.FileSet
		results []driver.ParseDirResult
	)
	if shouldUseTUI(mode) && !quiet {
		fs, results, err = runParseDirWithUI(cmd, path, opts)
	} else {
		fs, results, err = driver.ParseDir(cmd.Context(), path, opts)
	}
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	for _, r := range results {
		if err := printBag(cmd, r.Bag, fs); err != nil {
			return err
		}
	}

	if format == "json" {
		output := make(map[string]*diagfmt.ASTNodeOutput, len(results))
		for _, r := range results {
			name := displayPath(fs, r.FileID, r.Path)
			if r.Builder == nil {
				output[name] = nil
				continue
			}
			node, err := diagfmt.BuildASTJSON(r.Builder, r.ASTFile, fs)
			if err != nil {
				return err
			}
			output[name] = &node
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(output); err != nil {
			return err
		}
		return dirStatus(results)
	}

	for i, r := range results {
		if !quiet {
			if err := writeHeader(os.Stdout, displayPath(fs, r.FileID, r.Path), i == 0); err != nil {
				return err
			}
		}
		if r.Builder == nil {
			continue
		}
		if err := writeTree(os.Stdout, format, r.Builder, r.ASTFile, fs); err != nil {
			return err
		}
	}
	return dirStatus(results)
}

// dirStatus is errDiagnostics when any file of a directory run has errors.
func dirStatus(results []driver.ParseDirResult) error {
	for _, r := range results {
		if r.Bag != nil && r.Bag.HasErrors() {
			return errDiagnostics
		}
	}
	return nil
}

func writeTree(w io.Writer, format string, b *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	switch format {
	case "pretty":
		return diagfmt.FormatASTPretty(w, b, fileID, fs)
	case "tree":
		return diagfmt.FormatASTTree(w, b, fileID, fs)
	case "json":
		return diagfmt.FormatASTJSON(w, b, fileID, fs)
	case "sexpr":
		var file *source.File
		if f := b.Files.Get(fileID); f != nil {
			file = fs.Get(f.Span.File)
		}
		text := diagfmt.FormatFileSExpr(b, fileID, file)
		if text == "" {
			return nil
		}
		_, err := fmt.Fprintln(w, text)
		return err
	default:
		return errInvalidFlag("format", format, "pretty|tree|json|sexpr")
	}
}
