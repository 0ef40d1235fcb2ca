package champ

import "github.com/YuriyKrasilnikov/champ-trie/arena"

// Iter is a snapshot, depth-first, non-restartable traversal over a Map's
// entries as of the moment it was created via Map.Iter. At every interior
// node it yields the inline entries in ascending position order, then
// descends into the children in ascending position order (a canonical
// order, though not a single interleaved walk by bit index); within a
// collision node it yields stored order (observable but not part of the
// canonical-form contract). Mutating the Map after creating an Iter
// does not corrupt it: the snapshot's root and every node it reaches stay
// untouched by later copy-on-write edits. A Rollback past the checkpoint
// the snapshot's root belongs to invalidates it; calling Next after such a
// rollback is undefined.
type Iter[K comparable, V comparable] struct {
	store nodeStore[K, V]
	stack []frameIter[K, V]
}

// frameIter tracks the walk's position within one node: either the next
// dense-entries index to yield, or, once entries are exhausted, the next
// child to descend into.
type frameIter[K comparable, V comparable] struct {
	n        node[K, V]
	entryIdx int
	childIdx int
}

func newIter[K comparable, V comparable](store nodeStore[K, V], root arena.Handle, has bool) *Iter[K, V] {
	it := &Iter[K, V]{store: store}
	if has {
		it.push(store.Get(root))
	}
	return it
}

func (it *Iter[K, V]) push(n node[K, V]) {
	it.stack = append(it.stack, frameIter[K, V]{n: n})
}

// Next advances the iterator and returns the next (key, value) pair in the
// order described on Iter, or ok == false once the snapshot is exhausted.
func (it *Iter[K, V]) Next() (key K, value V, ok bool) {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]

		if top.n.kind == kindCollision {
			if top.entryIdx < len(top.n.collisionEnts) {
				e := top.n.collisionEnts[top.entryIdx]
				top.entryIdx++
				return e.key, e.value, true
			}
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}

		if top.entryIdx < len(top.n.entries) {
			e := top.n.entries[top.entryIdx]
			top.entryIdx++
			return e.key, e.value, true
		}

		if top.childIdx < len(top.n.children) {
			child := it.store.Get(top.n.children[top.childIdx])
			top.childIdx++
			it.push(child)
			continue
		}

		it.stack = it.stack[:len(it.stack)-1]
	}

	var zeroK K
	var zeroV V
	return zeroK, zeroV, false
}
