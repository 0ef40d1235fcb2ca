package champ

import "math/bits"

// nBits is the number of hash bits consumed per trie level (32-way
// branching).
const nBits = 5

// tableCapacity is the number of logical positions in an interior node's
// bitmaps (1<<nBits).
const tableCapacity = 1 << nBits

// maxDepth is the deepest level reachable before a 64-bit hash is fully
// consumed: ceil(64/5) == 13.
const maxDepth = 13

// positionAt extracts the 5-bit position at level from a 64-bit hash.
func positionAt(hash uint64, level uint) uint {
	return uint((hash >> (nBits * level)) & (tableCapacity - 1))
}

// bitOf returns the single-bit mask for a position.
func bitOf(pos uint) uint32 {
	return 1 << pos
}

// denseIndex returns the number of set bits in m strictly below pos's bit,
// i.e. the dense-array index a position maps to.
func denseIndex(m uint32, pos uint) int {
	return bits.OnesCount32(m & (bitOf(pos) - 1))
}

// popcount32 is the population count of a full bitmap, used to size the
// dense arrays.
func popcount32(m uint32) int {
	return bits.OnesCount32(m)
}
