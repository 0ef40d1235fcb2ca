package champ

import "github.com/YuriyKrasilnikov/champ-trie/arena"

// entry is one inline (key, value) pair together with its precomputed key
// hash, so a level never has to re-hash a key it has already seen.
type entry[K comparable, V comparable] struct {
	hash      uint64 // precomputed hash of key
	valueHash uint64 // precomputed hash of value, for AdHash maintenance
	key       K
	value     V
}

// node is the closed tagged union the arena stores: either an interior
// (bitmap-compressed) node or a collision node. Exactly one of the two
// variants is meaningful at a time, discriminated by kind.
type node[K comparable, V comparable] struct {
	kind nodeKind

	// interior fields.
	dataMap  uint32
	nodeMap  uint32
	entries  []entry[K, V]          // dense, ascending position order
	children []arena.Handle         // dense, ascending position order

	// collision fields.
	collisionHash uint64
	collisionEnts []entry[K, V]

	adhash uint64 // AdHash of this node's entire subtree
}

type nodeKind uint8

const (
	kindInterior nodeKind = iota
	kindCollision
)

// newEmptyInterior returns an interior node with no entries and no
// children. New does not call it: a fresh Map has no root node at all
// (hasRoot is false) until its first Insert.
func newEmptyInterior[K comparable, V comparable]() node[K, V] {
	return node[K, V]{kind: kindInterior}
}

// dataLen is the number of inline entries.
func (n *node[K, V]) dataLen() int {
	if n.kind == kindCollision {
		return len(n.collisionEnts)
	}
	return len(n.entries)
}

// childrenLen is the number of child subtrees (always 0 for collision
// nodes).
func (n *node[K, V]) childrenLen() int {
	if n.kind == kindCollision {
		return 0
	}
	return len(n.children)
}

// isEmptyInterior reports whether n is an interior node with no entries and
// no children, the only shape a non-root node is forbidden from having.
func (n *node[K, V]) isEmptyInterior() bool {
	return n.kind == kindInterior && n.dataMap == 0 && n.nodeMap == 0
}

// shouldInline reports whether n (found as a child after some edit beneath
// it) has shrunk to the single shape a canonical trie never leaves standing
// as a subtree: exactly one inline entry and no children. A collision node
// is never inlined directly: it always carries two or more entries, or it
// would have already collapsed to a plain entry during remove.
func (n *node[K, V]) shouldInline() bool {
	if n.kind == kindCollision {
		return false
	}
	return n.dataMap != 0 && n.dataMap&(n.dataMap-1) == 0 && n.nodeMap == 0
}

// cloneEntries returns a copy of n.entries with cap matching len, so later
// in-place append calls on the copy never alias the original's backing
// array.
func cloneEntries[K comparable, V comparable](src []entry[K, V]) []entry[K, V] {
	out := make([]entry[K, V], len(src))
	copy(out, src)
	return out
}

func cloneHandles(src []arena.Handle) []arena.Handle {
	out := make([]arena.Handle, len(src))
	copy(out, src)
	return out
}

// withEntryInserted returns a fresh entries slice with e inserted at dense
// index at.
func withEntryInserted[K comparable, V comparable](src []entry[K, V], at int, e entry[K, V]) []entry[K, V] {
	out := make([]entry[K, V], 0, len(src)+1)
	out = append(out, src[:at]...)
	out = append(out, e)
	out = append(out, src[at:]...)
	return out
}

// withEntryReplaced returns a fresh entries slice with the entry at dense
// index at replaced by e.
func withEntryReplaced[K comparable, V comparable](src []entry[K, V], at int, e entry[K, V]) []entry[K, V] {
	out := cloneEntries(src)
	out[at] = e
	return out
}

// withEntryRemoved returns a fresh entries slice with the dense index at
// dropped.
func withEntryRemoved[K comparable, V comparable](src []entry[K, V], at int) []entry[K, V] {
	out := make([]entry[K, V], 0, len(src)-1)
	out = append(out, src[:at]...)
	out = append(out, src[at+1:]...)
	return out
}

// withChildInserted returns a fresh children slice with h inserted at dense
// index at.
func withChildInserted(src []arena.Handle, at int, h arena.Handle) []arena.Handle {
	out := make([]arena.Handle, 0, len(src)+1)
	out = append(out, src[:at]...)
	out = append(out, h)
	out = append(out, src[at:]...)
	return out
}

// withChildReplaced returns a fresh children slice with the dense index at
// replaced by h.
func withChildReplaced(src []arena.Handle, at int, h arena.Handle) []arena.Handle {
	out := cloneHandles(src)
	out[at] = h
	return out
}

// withChildRemoved returns a fresh children slice with the dense index at
// dropped.
func withChildRemoved(src []arena.Handle, at int) []arena.Handle {
	out := make([]arena.Handle, 0, len(src)-1)
	out = append(out, src[:at]...)
	out = append(out, src[at+1:]...)
	return out
}
