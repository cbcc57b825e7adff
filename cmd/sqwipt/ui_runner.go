package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"sqwipt/internal/driver"
	"sqwipt/internal/source"
	"sqwipt/internal/ui"
)

type dirOutcome[R any] struct {
	fs      *source.FileSet
	results []R
	err     error
}

// runWithUI runs work in the background while a progress view consumes its
// events. The view exits once work closes the event channel.
func runWithUI[R any](ctx context.Context, title string, files []string, opts driver.Options,
	work func(context.Context, driver.Options) (*source.FileSet, []R, error),
) (*source.FileSet, []R, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome[R], 1)

	go func() {
		runOpts := opts
		runOpts.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := work(ctx, runOpts)
		outcomeCh <- dirOutcome[R]{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// the view may quit early; keep the producer from blocking
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}

func runParseDirWithUI(cmd *cobra.Command, dir string, opts driver.Options) (*source.FileSet, []driver.ParseDirResult, error) {
	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	return runWithUI(cmd.Context(), "parse "+dir, files, opts,
		func(ctx context.Context, o driver.Options) (*source.FileSet, []driver.ParseDirResult, error) {
			return driver.ParseDir(ctx, dir, o)
		})
}

func runDiagnoseWithUI(cmd *cobra.Command, path string, opts driver.Options) (*source.FileSet, []driver.DiagnoseResult, error) {
	files, err := driver.ListSourceFiles(path)
	if err != nil {
		return nil, nil, err
	}
	return runWithUI(cmd.Context(), "diag "+path, files, opts,
		func(ctx context.Context, o driver.Options) (*source.FileSet, []driver.DiagnoseResult, error) {
			return driver.Diagnose(ctx, path, o)
		})
}
