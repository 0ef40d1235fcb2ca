package champ

import (
	"encoding/binary"
	"hash/maphash"

	"github.com/minio/blake2b-simd"
	sha256simd "github.com/minio/sha256-simd"
)

// Hasher produces a deterministic 64-bit hash for a value of type T. A map's
// hasher must be deterministic for the lifetime of the map: two calls with
// equal values must return equal hashes, or the canonical-form and AdHash
// invariants break silently.
type Hasher[T any] interface {
	Hash(v T) uint64
}

// HasherFunc adapts a plain function to the Hasher interface.
type HasherFunc[T any] func(T) uint64

// Hash implements Hasher.
func (f HasherFunc[T]) Hash(v T) uint64 { return f(v) }

// defaultHasher is the hasher used when a map is constructed without an
// explicit one. It is built on hash/maphash.Comparable, which is seeded
// once per process start and handles any comparable type without the
// caller needing to supply byte-encoding logic.
type defaultHasher[T comparable] struct {
	seed maphash.Seed
}

// defaultSeed is the process-wide seed shared by every defaultHasher, so two
// maps built with default hashers hash equal keys and values identically and
// their AdHash digests are comparable.
var defaultSeed = maphash.MakeSeed()

// newDefaultHasher returns a defaultHasher using the process-wide seed.
func newDefaultHasher[T comparable]() *defaultHasher[T] {
	return &defaultHasher[T]{seed: defaultSeed}
}

func (h *defaultHasher[T]) Hash(v T) uint64 {
	return maphash.Comparable(h.seed, v)
}

// bytesLike is the constraint satisfied by keys/values the byte-oriented
// third-party hashers below can digest directly.
type bytesLike interface {
	~string | ~[]byte
}

// SHA256Hasher hashes its input with github.com/minio/sha256-simd (a
// hardware-accelerated drop-in for crypto/sha256) and folds the 256-bit
// digest down to 64 bits by XORing its four 64-bit words. It demonstrates
// that a map's hasher is a pluggable seam, not a hard-coded algorithm.
type SHA256Hasher[T bytesLike] struct{}

// Hash implements Hasher.
func (SHA256Hasher[T]) Hash(v T) uint64 {
	sum := sha256simd.Sum256([]byte(v))
	return foldDigest(sum[:])
}

// Blake2bHasher hashes its input with github.com/minio/blake2b-simd and
// folds the resulting digest the same way SHA256Hasher does.
type Blake2bHasher[T bytesLike] struct{}

// Hash implements Hasher.
func (Blake2bHasher[T]) Hash(v T) uint64 {
	sum := blake2b.Sum256([]byte(v))
	return foldDigest(sum[:])
}

// foldDigest XORs successive 8-byte words of a wide digest down to a single
// uint64; both SIMD hashers above share it.
func foldDigest(digest []byte) uint64 {
	var out uint64
	for len(digest) >= 8 {
		out ^= binary.LittleEndian.Uint64(digest)
		digest = digest[8:]
	}
	if len(digest) > 0 {
		var tail [8]byte
		copy(tail[:], digest)
		out ^= binary.LittleEndian.Uint64(tail[:])
	}
	return out
}
