package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"sqwipt/internal/driver"
)

const manifestName = "sqwipt.toml"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
	meta   toml.MetaData
}

type projectConfig struct {
	Project projectSection `toml:"project"`
	Parse   parseSection   `toml:"parse"`
	Cache   cacheSection   `toml:"cache"`
}

type projectSection struct {
	Name string `toml:"name"`
}

type parseSection struct {
	MaxDepth       int `toml:"max_depth"`
	MaxDiagnostics int `toml:"max_diagnostics"`
	Jobs           int `toml:"jobs"`
}

type cacheSection struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadProjectManifest reads an explicit manifest path, or searches upwards
// from startDir when path is empty. A missing manifest is not an error
// unless it was named explicitly.
func loadProjectManifest(path, startDir string) (*projectManifest, error) {
	if path == "" {
		found, ok, err := findManifest(startDir)
		if err != nil || !ok {
			return nil, err
		}
		path = found
	}
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("parse", "max_depth") && cfg.Parse.MaxDepth <= 0 {
		return nil, fmt.Errorf("%s: [parse].max_depth must be positive", path)
	}
	if meta.IsDefined("parse", "max_diagnostics") && cfg.Parse.MaxDiagnostics < 0 {
		return nil, fmt.Errorf("%s: [parse].max_diagnostics must not be negative", path)
	}
	return &projectManifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
		meta:   meta,
	}, nil
}

// apply copies manifest settings into opts. Flags are applied afterwards and win.
func (m *projectManifest) apply(opts *driver.Options) error {
	if m == nil {
		return nil
	}
	if m.meta.IsDefined("parse", "max_depth") {
		opts.MaxDepth = uint(m.Config.Parse.MaxDepth)
	}
	if m.meta.IsDefined("parse", "max_diagnostics") {
		opts.MaxDiagnostics = m.Config.Parse.MaxDiagnostics
	}
	if m.meta.IsDefined("parse", "jobs") {
		opts.Jobs = m.Config.Parse.Jobs
	}
	if m.Config.Cache.Enabled {
		dir := m.Config.Cache.Dir
		var (
			cache *driver.DiskCache
			err   error
		)
		if dir == "" {
			cache, err = driver.OpenDiskCache("sqwipt")
		} else {
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(m.Root, dir)
			}
			cache, err = driver.OpenDiskCacheAt(dir)
		}
		if err != nil {
			return fmt.Errorf("%s: open cache: %w", m.Path, err)
		}
		opts.Cache = cache
	}
	return nil
}

// resolveOptions builds driver options from defaults, the project manifest
// and finally the command-line flags that were set explicitly.
func resolveOptions(cmd *cobra.Command) (driver.Options, error) {
	opts := driver.DefaultOptions()
	root := cmd.Root().PersistentFlags()

	configPath, err := root.GetString("config")
	if err != nil {
		return opts, fmt.Errorf("failed to get config flag: %w", err)
	}
	manifest, err := loadProjectManifest(configPath, ".")
	if err != nil {
		return opts, err
	}
	if err := manifest.apply(&opts); err != nil {
		return opts, err
	}

	if root.Changed("max-diagnostics") {
		if opts.MaxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
			return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if root.Changed("max-depth") {
		if opts.MaxDepth, err = root.GetUint("max-depth"); err != nil {
			return opts, fmt.Errorf("failed to get max-depth flag: %w", err)
		}
	}
	if opts.Timings, err = root.GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if f := cmd.Flags().Lookup("jobs"); f != nil && f.Changed {
		if opts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return opts, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	return opts, nil
}
