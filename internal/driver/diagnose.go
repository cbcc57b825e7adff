package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sqwipt/internal/ast"
	"sqwipt/internal/diag"
	"sqwipt/internal/source"
	"sqwipt/internal/trace"
)

// DiagnoseResult is the outcome of checking one file. Trees are not kept;
// Cached reports that the diagnostics came from the disk cache.
type DiagnoseResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	Exprs  int
	Status ast.FileStatus
	Cached bool
}

// Diagnose parses path, a file or a directory of *.sqw files, and collects
// diagnostics per file. With opts.Cache set, files whose content and options
// are unchanged are answered from the cache without parsing.
func Diagnose(ctx context.Context, path string, opts Options) (*source.FileSet, []DiagnoseResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	files := []string{path}
	baseDir := filepath.Dir(path)
	if info.IsDir() {
		baseDir = path
		if files, err = ListSourceFiles(path); err != nil {
			return nil, nil, err
		}
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(baseDir), nil, nil
	}

	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "diagnose", trace.ParentSpan(ctx))
	defer span.End("")

	set := loadFiles(baseDir, files)
	results := make([]DiagnoseResult, len(files))
	queueAll(opts.Progress, files, StageParse)

	err = forEachFile(ctx, files, opts, func(ctx context.Context, i int) error {
		path, id := files[i], set.ids[i]
		if loadErr := set.errs[i]; loadErr != nil {
			results[i] = DiagnoseResult{
				Path:   path,
				FileID: id,
				Bag:    loadErrorBag(id, loadErr, opts.MaxDiagnostics),
				Status: ast.FileBad,
			}
			notify(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
			return nil
		}
		started := time.Now()
		notify(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})
		res, derr := diagnoseFile(ctx, set.fileSet.Get(id), opts, span.ID())
		if derr != nil {
			notify(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusError, Err: derr})
			return derr
		}
		res.Path = path
		results[i] = res
		notify(opts.Progress, finishEvent(path, StageParse, res.Bag, started))
		return nil
	})
	return set.fileSet, results, err
}

func diagnoseFile(ctx context.Context, file *source.File, opts Options, parent uint64) (DiagnoseResult, error) {
	tracer := trace.FromContext(ctx)
	timer := newPhaseTimer(opts.Timings)
	key := CacheKey(Digest(file.Hash), opts)

	if opts.Cache != nil {
		lap := timer.begin("cache_get")
		var summary Summary
		hit, err := opts.Cache.Get(key, &summary)
		timer.end(lap, "")
		if err != nil {
			// a corrupt entry is rebuilt below
			trace.Point(tracer, trace.ScopeFile, "cache_get_failed", err.Error(), parent)
		}
		if hit && err == nil {
			trace.Point(tracer, trace.ScopeFile, "cache_hit", file.Path, parent)
			bag := summary.restore(file.ID, opts.MaxDiagnostics)
			timer.finish("diagnose", file.Path, bag)
			status := ast.FileGood
			if summary.Bad {
				status = ast.FileBad
			}
			return DiagnoseResult{FileID: file.ID, Bag: bag, Exprs: summary.Exprs, Status: status, Cached: true}, nil
		}
	}

	lap := timer.begin("parse")
	builder, astFile, bag, err := parseFile(ctx, file, opts, parent)
	if err != nil {
		return DiagnoseResult{}, err
	}
	node := builder.Files.Get(astFile)
	timer.end(lap, fmt.Sprintf("exprs=%d", len(node.Exprs)))

	if opts.Cache != nil {
		lap = timer.begin("cache_put")
		if perr := opts.Cache.Put(key, summarize(file.Path, node, bag)); perr != nil {
			trace.Point(tracer, trace.ScopeFile, "cache_put_failed", perr.Error(), parent)
		}
		timer.end(lap, "")
	}
	timer.finish("diagnose", file.Path, bag)
	return DiagnoseResult{FileID: file.ID, Bag: bag, Exprs: len(node.Exprs), Status: node.Status}, nil
}
