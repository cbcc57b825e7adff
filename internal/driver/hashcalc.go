package driver

import (
	"crypto/sha256"
	"encoding/binary"
)

// Digest is a SHA-256 value.
type Digest [32]byte

// combineDigest: H(content || part1 || part2 ...).
func combineDigest(content Digest, parts ...[]byte) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// CacheKey derives the summary cache key for a file's content hash.
// Only options that change parse output take part, plus the schema version.
func CacheKey(content Digest, opts Options) Digest {
	var buf [18]byte
	binary.LittleEndian.PutUint16(buf[0:], diskCacheSchemaVersion)
	binary.LittleEndian.PutUint64(buf[2:], uint64(opts.MaxDepth))
	binary.LittleEndian.PutUint64(buf[10:], uint64(max(opts.MaxDiagnostics, 0))) // #nosec G115 -- clamped above
	return combineDigest(content, buf[:])
}
