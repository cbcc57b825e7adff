// Package fix applies the edits attached to diagnostics back to source files.
package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"sqwipt/internal/diag"
	"sqwipt/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines which fixes are selected.
type ApplyMode uint8

const (
	ApplyModeOnce ApplyMode = iota // first fix in source order
	ApplyModeAll
	ApplyModeID
)

// ApplyOptions configures fix selection. With DryRun set the new contents
// are returned in FileChange but nothing is written.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	DryRun   bool
}

// AppliedFix records a fix whose edits were accepted.
type AppliedFix struct {
	ID        string
	Title     string
	Code      diag.Code
	Message   string
	Path      string
	EditCount int
}

// SkippedFix records a fix that was not applied and why.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange is the new content of one modified file.
type FileChange struct {
	Path      string
	EditCount int
	Content   []byte
}

type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	id    string
	order int
}

// ID names the idx-th fix of d as path:line:col/CODE, with a #idx suffix
// for every fix after the first.
func ID(fs *source.FileSet, d diag.Diagnostic, idx int) string {
	loc := fmt.Sprintf("%d", d.Primary.Start)
	if fs != nil && int(d.Primary.File) < fs.Len() {
		start, _ := fs.Resolve(d.Primary)
		loc = fmt.Sprintf("%s:%d:%d", fs.Get(d.Primary.File).FormatPath("relative", fs.BaseDir()), start.Line, start.Col)
	}
	id := loc + "/" + d.Code.ID()
	if idx > 0 {
		id = fmt.Sprintf("%s#%d", id, idx)
	}
	return id
}

// Apply selects fixes from diagnostics according to opts and writes the
// edited files. Edits of one fix are applied together or not at all. Files
// are written in the normalised form held by the FileSet.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{}
	if fs == nil {
		return result, errors.New("fix: FileSet is nil")
	}

	candidates, skips := gatherCandidates(fs, diagnostics)
	result.Skipped = append(result.Skipped, skips...)
	sortCandidates(candidates)

	selected, skips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, skips...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	applied, skips, accepted := acceptCandidates(fs, selected)
	result.Applied = applied
	result.Skipped = append(result.Skipped, skips...)
	if len(applied) == 0 {
		return result, ErrNoFixes
	}

	changes, err := rewriteFiles(fs, accepted, opts.DryRun)
	result.FileChanges = changes
	return result, err
}

func gatherCandidates(fs *source.FileSet, diagnostics []diag.Diagnostic) ([]candidate, []SkippedFix) {
	var (
		cands []candidate
		skips []SkippedFix
	)
	seen := make(map[string]bool)
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			id := ID(fs, d, idx)
			switch {
			case len(f.Edits) == 0:
				skips = append(skips, SkippedFix{ID: id, Title: f.Title, Reason: "fix has no edits"})
			case seen[id]:
				skips = append(skips, SkippedFix{ID: id, Title: f.Title, Reason: "duplicate fix id"})
			default:
				seen[id] = true
				cands = append(cands, candidate{diag: d, fix: f, id: id, order: len(cands)})
			}
		}
	}
	return cands, skips
}

// sortCandidates orders by file, span and then discovery order. Fixes
// sharing a span are ordered innermost first, so the closer of the construct
// opened last is inserted first.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].diag.Primary, candidates[j].diag.Primary
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		oa, okA := openedAt(candidates[i].diag)
		ob, okB := openedAt(candidates[j].diag)
		if okA && okB && oa != ob {
			return oa > ob
		}
		return candidates[i].order < candidates[j].order
	})
}

// openedAt returns where the construct a diagnostic complains about was
// opened, taken from its first note in the primary file.
func openedAt(d diag.Diagnostic) (uint32, bool) {
	if len(d.Notes) == 0 || d.Notes[0].Span.File != d.Primary.File {
		return 0, false
	}
	return d.Notes[0].Span.Start, true
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeAll:
		return candidates, nil
	case ApplyModeID:
		for _, c := range candidates {
			if c.id == opts.TargetID {
				return []candidate{c}, nil
			}
		}
		return nil, []SkippedFix{{ID: opts.TargetID, Reason: "fix id not found"}}
	default:
		if len(candidates) == 0 {
			return nil, nil
		}
		return candidates[:1], nil
	}
}

// acceptCandidates drops fixes that touch virtual files, fall outside their
// file or overlap an edit accepted earlier. The rest are grouped per file.
func acceptCandidates(fs *source.FileSet, selected []candidate) ([]AppliedFix, []SkippedFix, map[source.FileID][]diag.FixEdit) {
	var (
		applied []AppliedFix
		skipped []SkippedFix
	)
	accepted := make(map[source.FileID][]diag.FixEdit)

	for _, c := range selected {
		reason := ""
		for _, e := range c.fix.Edits {
			if int(e.Span.File) >= fs.Len() {
				reason = "edit targets an unknown file"
				break
			}
			file := fs.Get(e.Span.File)
			if file.Flags&source.FileVirtual != 0 {
				reason = "target file is virtual"
				break
			}
			if e.Span.End < e.Span.Start || int(e.Span.End) > len(file.Content) {
				reason = "edit span out of range"
				break
			}
			if conflicts(accepted[e.Span.File], e) {
				reason = fmt.Sprintf("conflicts with an earlier fix in %s", file.FormatPath("auto", fs.BaseDir()))
				break
			}
		}
		if reason != "" {
			skipped = append(skipped, SkippedFix{ID: c.id, Title: c.fix.Title, Reason: reason})
			continue
		}
		for _, e := range c.fix.Edits {
			accepted[e.Span.File] = append(accepted[e.Span.File], e)
		}
		path := ""
		if int(c.diag.Primary.File) < fs.Len() {
			path = fs.Get(c.diag.Primary.File).FormatPath("auto", fs.BaseDir())
		}
		applied = append(applied, AppliedFix{
			ID:        c.id,
			Title:     c.fix.Title,
			Code:      c.diag.Code,
			Message:   c.diag.Message,
			Path:      path,
			EditCount: len(c.fix.Edits),
		})
	}
	return applied, skipped, accepted
}

func conflicts(existing []diag.FixEdit, e diag.FixEdit) bool {
	for _, prev := range existing {
		if spansConflict(prev.Span, e.Span) {
			return true
		}
	}
	return false
}

// spansConflict treats spans as half-open. Two insertions never conflict;
// an insertion conflicts with a range strictly containing its position.
func spansConflict(a, b source.Span) bool {
	switch {
	case a.Empty() && b.Empty():
		return false
	case a.Empty():
		return b.Start < a.Start && a.Start < b.End
	case b.Empty():
		return a.Start < b.Start && b.Start < a.End
	default:
		return a.Start < b.End && b.Start < a.End
	}
}

// rewriteFiles splices the accepted edits into each file. All spans refer to
// the original content, so edits are applied back to front.
func rewriteFiles(fs *source.FileSet, accepted map[source.FileID][]diag.FixEdit, dryRun bool) ([]FileChange, error) {
	ids := make([]source.FileID, 0, len(accepted))
	for id := range accepted {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	changes := make([]FileChange, 0, len(ids))
	for _, id := range ids {
		file := fs.Get(id)
		edits := accepted[id]
		order := make([]int, len(edits))
		for i := range order {
			order[i] = i
		}
		// later starts first; at one position replacements go before
		// insertions, and later-accepted insertions before earlier ones
		sort.SliceStable(order, func(i, j int) bool {
			a, b := edits[order[i]], edits[order[j]]
			if a.Span.Start != b.Span.Start {
				return a.Span.Start > b.Span.Start
			}
			if a.Span.Empty() != b.Span.Empty() {
				return !a.Span.Empty()
			}
			return order[i] > order[j]
		})

		content := append([]byte(nil), file.Content...)
		for _, idx := range order {
			e := edits[idx]
			tail := append([]byte(e.NewText), content[e.Span.End:]...)
			content = append(content[:e.Span.Start], tail...)
		}

		changes = append(changes, FileChange{
			Path:      file.FormatPath("relative", fs.BaseDir()),
			EditCount: len(edits),
			Content:   content,
		})
		if dryRun {
			continue
		}
		mode := os.FileMode(0o644)
		if info, err := os.Stat(file.Path); err == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(file.Path, content, mode); err != nil {
			return changes, fmt.Errorf("write %s: %w", file.Path, err)
		}
	}
	return changes, nil
}
