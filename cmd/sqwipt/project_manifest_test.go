package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"sqwipt/internal/driver"
	"sqwipt/internal/parser"
)

func writeManifest(t *testing.T, dir, data string) string {
	t.Helper()
	path := filepath.Join(dir, manifestName)
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write %s: %v", manifestName, err)
	}
	return path
}

// newTestCommand mirrors the root command's flags on a fresh command tree.
func newTestCommand() *cobra.Command {
	root := &cobra.Command{Use: "sqwipt"}
	registerGlobalFlags(root)
	child := &cobra.Command{Use: "diag", RunE: func(*cobra.Command, []string) error { return nil }}
	child.Flags().Int("jobs", 0, "")
	root.AddCommand(child)
	return child
}

func TestLoadProjectManifestApply(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, `# demo
[project]
name = "demo"

[parse]
max_depth = 12
max_diagnostics = 5
jobs = 3

[cache]
enabled = true
dir = "cache"
`)
	manifest, err := loadProjectManifest(path, "")
	if err != nil {
		t.Fatalf("loadProjectManifest: %v", err)
	}
	if manifest.Config.Project.Name != "demo" {
		t.Fatalf("name = %q, want demo", manifest.Config.Project.Name)
	}

	opts := driver.DefaultOptions()
	if err := manifest.apply(&opts); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if opts.MaxDepth != 12 || opts.MaxDiagnostics != 5 || opts.Jobs != 3 {
		t.Fatalf("options = depth %d, diags %d, jobs %d", opts.MaxDepth, opts.MaxDiagnostics, opts.Jobs)
	}
	if opts.Cache == nil || opts.Cache.Dir() != filepath.Join(root, "cache") {
		t.Fatalf("cache dir = %q, want %q", opts.Cache.Dir(), filepath.Join(root, "cache"))
	}
}

func TestLoadProjectManifestKeepsDefaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[project]\nname = \"bare\"\n")
	manifest, err := loadProjectManifest(path, "")
	if err != nil {
		t.Fatalf("loadProjectManifest: %v", err)
	}
	opts := driver.DefaultOptions()
	if err := manifest.apply(&opts); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if opts != driver.DefaultOptions() {
		t.Fatalf("options changed without settings: %+v", opts)
	}
}

func TestLoadProjectManifestErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
		want string
	}{
		{"syntax", "[parse\n", "failed to parse TOML"},
		{"unknown key", "[parse]\nmax_width = 3\n", "unknown keys: parse.max_width"},
		{"zero depth", "[parse]\nmax_depth = 0\n", "max_depth must be positive"},
		{"negative diagnostics", "[parse]\nmax_diagnostics = -1\n", "must not be negative"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tc.data)
			_, err := loadProjectManifest(path, "")
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want substring %q", err, tc.want)
			}
		})
	}
}

func TestFindManifestSearchesUpwards(t *testing.T) {
	root := t.TempDir()
	want := writeManifest(t, root, "[project]\nname = \"up\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok, err := findManifest(nested)
	if err != nil || !ok {
		t.Fatalf("findManifest: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("found %q, want %q", got, want)
	}

	manifest, err := loadProjectManifest("", nested)
	if err != nil {
		t.Fatalf("loadProjectManifest: %v", err)
	}
	if manifest == nil || manifest.Root != root {
		t.Fatalf("manifest root mismatch: %+v", manifest)
	}
}

func TestResolveOptionsFlagsOverrideManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[parse]\nmax_depth = 12\nmax_diagnostics = 5\njobs = 3\n")

	cmd := newTestCommand()
	root := cmd.Root()
	for flag, value := range map[string]string{"config": path, "max-depth": "40", "timings": "true"} {
		if err := root.PersistentFlags().Set(flag, value); err != nil {
			t.Fatalf("set %s: %v", flag, err)
		}
	}
	if err := cmd.Flags().Set("jobs", "7"); err != nil {
		t.Fatal(err)
	}

	opts, err := resolveOptions(cmd)
	if err != nil {
		t.Fatalf("resolveOptions: %v", err)
	}
	if opts.MaxDepth != 40 {
		t.Fatalf("MaxDepth = %d, want flag value 40", opts.MaxDepth)
	}
	if opts.MaxDiagnostics != 5 {
		t.Fatalf("MaxDiagnostics = %d, want manifest value 5", opts.MaxDiagnostics)
	}
	if opts.Jobs != 7 {
		t.Fatalf("Jobs = %d, want flag value 7", opts.Jobs)
	}
	if !opts.Timings {
		t.Fatal("Timings should follow the flag")
	}
}

func TestResolveOptionsWithoutManifest(t *testing.T) {
	t.Chdir(t.TempDir())
	opts, err := resolveOptions(newTestCommand())
	if err != nil {
		t.Fatalf("resolveOptions: %v", err)
	}
	if opts.MaxDepth != parser.DefaultMaxDepth || opts.MaxDiagnostics != 100 {
		t.Fatalf("defaults not applied: %+v", opts)
	}
}
