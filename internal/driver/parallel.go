package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"sqwipt/internal/ast"
	"sqwipt/internal/diag"
	"sqwipt/internal/source"
	"sqwipt/internal/token"
	"sqwipt/internal/trace"
)

// SourceExt is the extension of sqwipt source files.
const SourceExt = ".sqw"

type TokenizeDirResult struct {
	Path   string
	FileID source.FileID
	Tokens []token.Token
	Bag    *diag.Bag
}

type ParseDirResult struct {
	Path    string
	FileID  source.FileID
	Builder *ast.Builder // nil when the file failed to load
	ASTFile ast.FileID
	Bag     *diag.Bag
}

// ListSourceFiles returns every *.sqw file under dir in sorted order.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// loadedSet is a FileSet preloaded from a file list. Files that failed to
// load are registered as empty virtual entries so their IO4001 diagnostics
// still carry the path.
type loadedSet struct {
	fileSet *source.FileSet
	ids     []source.FileID
	errs    []error
}

func loadFiles(baseDir string, files []string) *loadedSet {
	set := &loadedSet{
		fileSet: source.NewFileSetWithBase(baseDir),
		ids:     make([]source.FileID, len(files)),
		errs:    make([]error, len(files)),
	}
	for i, path := range files {
		id, err := set.fileSet.Load(path)
		if err != nil {
			set.errs[i] = err
			id = set.fileSet.AddVirtual(path, nil)
		}
		set.ids[i] = id
	}
	return set
}

// loadErrorBag reports err as IO4001 against the placeholder file.
func loadErrorBag(id source.FileID, err error, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  "failed to load file: " + err.Error(),
		Primary:  source.Span{File: id},
	})
	return bag
}

// forEachFile runs fn for every index with at most opts.Jobs workers.
// Results go into caller-owned slices; each index is written by one worker.
func forEachFile(ctx context.Context, files []string, opts Options, fn func(ctx context.Context, i int) error) error {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return fn(gctx, i)
		})
	}
	return g.Wait()
}

// finishEvent reports a file as done, or as error when bag holds errors.
func finishEvent(path string, stage Stage, bag *diag.Bag, started time.Time) Event {
	status := StatusDone
	if bag.HasErrors() {
		status = StatusError
	}
	return Event{File: path, Stage: stage, Status: status, Elapsed: time.Since(started)}
}

func queueAll(sink ProgressSink, files []string, stage Stage) {
	for _, path := range files {
		notify(sink, Event{File: path, Stage: stage, Status: StatusQueued})
	}
}

// TokenizeDir scans every *.sqw file under dir in parallel.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []TokenizeDirResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "tokenize_dir", trace.ParentSpan(ctx))
	defer span.End("")

	set := loadFiles(dir, files)
	results := make([]TokenizeDirResult, len(files))
	queueAll(opts.Progress, files, StageLex)

	err = forEachFile(ctx, files, opts, func(ctx context.Context, i int) error {
		path, id := files[i], set.ids[i]
		if loadErr := set.errs[i]; loadErr != nil {
			results[i] = TokenizeDirResult{Path: path, FileID: id, Bag: loadErrorBag(id, loadErr, opts.MaxDiagnostics)}
			notify(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
			return nil
		}
		started := time.Now()
		notify(opts.Progress, Event{File: path, Stage: StageLex, Status: StatusWorking})
		tokens, bag := tokenizeFile(ctx, set.fileSet.Get(id), opts, span.ID())
		results[i] = TokenizeDirResult{Path: path, FileID: id, Tokens: tokens, Bag: bag}
		notify(opts.Progress, finishEvent(path, StageLex, bag, started))
		return nil
	})
	return set.fileSet, results, err
}

// ParseDir parses every *.sqw file under dir in parallel. Results follow the
// sorted path order regardless of completion order. Each file gets its own
// builder and bag.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []ParseDirResult, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return source.NewFileSetWithBase(dir), nil, nil
	}

	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse_dir", trace.ParentSpan(ctx))
	defer span.End("")

	set := loadFiles(dir, files)
	results := make([]ParseDirResult, len(files))
	queueAll(opts.Progress, files, StageParse)

	err = forEachFile(ctx, files, opts, func(ctx context.Context, i int) error {
		path, id := files[i], set.ids[i]
		if loadErr := set.errs[i]; loadErr != nil {
			results[i] = ParseDirResult{Path: path, FileID: id, Bag: loadErrorBag(id, loadErr, opts.MaxDiagnostics)}
			notify(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
			return nil
		}
		started := time.Now()
		notify(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})
		timer := newPhaseTimer(opts.Timings)
		parseLap := timer.begin("parse")
		builder, astFile, bag, perr := parseFile(ctx, set.fileSet.Get(id), opts, span.ID())
		if perr != nil {
			notify(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusError, Err: perr})
			return perr
		}
		timer.end(parseLap, "")
		timer.finish("parse", path, bag)
		results[i] = ParseDirResult{Path: path, FileID: id, Builder: builder, ASTFile: astFile, Bag: bag}
		notify(opts.Progress, finishEvent(path, StageParse, bag, started))
		return nil
	})
	return set.fileSet, results, err
}
