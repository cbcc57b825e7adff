package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB
)

// builtinSeeds cover indentation and recovery paths that testdata may miss.
var builtinSeeds = []string{
	"",
	"a + b * c ** d",
	"f(x, y)[0].z(1)",
	"|x, y = 1| x + y",
	"\n  1\n  2\n3",
	"a\n    b\n  c",
	"(\n  1\n)",
	"[1, 2,]",
	"((((((((((1))))))))))",
	"(1, 2\n3",
	"a[",
	"|x",
	"\"unterminated\n  x",
	"$ 1 $",
	"1 2 3",
	"a.\n  b\n-1",
	"0x 1e 1.e5 0xZZ",
	";;\n;\n",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".sqw" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
