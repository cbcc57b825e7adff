package driver_test

import (
	"testing"

	"sqwipt/internal/driver"
)

func digest(b byte) driver.Digest {
	var d driver.Digest
	for i := range d {
		d[i] = b
	}
	return d
}

func TestCacheKeyDeterministic(t *testing.T) {
	opts := driver.DefaultOptions()
	if driver.CacheKey(digest('a'), opts) != driver.CacheKey(digest('a'), opts) {
		t.Fatal("same content and options must give the same key")
	}
	if driver.CacheKey(digest('a'), opts) == driver.CacheKey(digest('b'), opts) {
		t.Fatal("different content must give different keys")
	}
}

func TestCacheKeyTracksParseOptions(t *testing.T) {
	base := driver.DefaultOptions()
	key := driver.CacheKey(digest('a'), base)

	deeper := base
	deeper.MaxDepth = 8
	if driver.CacheKey(digest('a'), deeper) == key {
		t.Fatal("MaxDepth changes parse output and must change the key")
	}

	fewer := base
	fewer.MaxDiagnostics = 3
	if driver.CacheKey(digest('a'), fewer) == key {
		t.Fatal("MaxDiagnostics must change the key")
	}

	parallel := base
	parallel.Jobs = 16
	parallel.Timings = true
	if driver.CacheKey(digest('a'), parallel) != key {
		t.Fatal("jobs and timings must not affect the key")
	}
}
