package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"sqwipt/internal/ast"
	"sqwipt/internal/diag"
	"sqwipt/internal/source"
)

// Current schema version - increment when Summary changes shape.
const diskCacheSchemaVersion uint16 = 1

// DiskCache keeps parse summaries on disk, keyed by CacheKey.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedNote is a diagnostic note without its file.
type CachedNote struct {
	Msg   string
	Start uint32
	End   uint32
}

// CachedDiagnostic stores byte offsets only; the file is supplied on restore.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []CachedNote
}

// Summary is everything the cache remembers about one parsed file.
// Syntax trees are never stored.
type Summary struct {
	Schema      uint16
	Path        string
	Exprs       int
	Bad         bool
	Diagnostics []CachedDiagnostic
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/app (or ~/.cache/app).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir, creating it when missing.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "files", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a summary. The write goes to a temp file that is
// renamed over the destination, so readers never see a partial entry.
func (c *DiskCache) Put(key Digest, s *Summary) error {
	if c == nil || s == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(s); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("encode summary: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Get reads the summary stored under key. Entries written by another schema
// version are reported as misses.
func (c *DiskCache) Get(key Digest, out *Summary) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	decErr := msgpack.NewDecoder(f).Decode(out)
	closeErr := f.Close()
	if decErr != nil {
		return false, fmt.Errorf("decode summary: %w", decErr)
	}
	if closeErr != nil {
		return false, closeErr
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll removes every entry. The directory is renamed first so concurrent
// readers see either the old tree or nothing.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func summarize(path string, f *ast.File, bag *diag.Bag) *Summary {
	s := &Summary{
		Schema: diskCacheSchemaVersion,
		Path:   path,
		Bad:    f == nil || f.Status == ast.FileBad,
	}
	if f != nil {
		s.Exprs = len(f.Exprs)
	}
	for _, d := range bag.Items() {
		if d.Code == diag.ObsTimings {
			continue
		}
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Msg: n.Msg, Start: n.Span.Start, End: n.Span.End})
		}
		s.Diagnostics = append(s.Diagnostics, cd)
	}
	return s
}

// restore rebuilds a bag for file from the cached diagnostics.
func (s *Summary) restore(file source.FileID, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	for _, cd := range s.Diagnostics {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  source.Span{File: file, Start: cd.Start, End: cd.End},
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{
				Span: source.Span{File: file, Start: n.Start, End: n.End},
				Msg:  n.Msg,
			})
		}
		if !bag.Add(d) {
			break
		}
	}
	return bag
}
