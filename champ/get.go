package champ

import "github.com/YuriyKrasilnikov/champ-trie/arena"

// getRecursive walks the subtree rooted at h looking for a key with the
// given hash, starting at level. Expressed recursively since depth is
// bounded by maxDepth and collision nodes terminate the walk early.
func getRecursive[K comparable, V comparable](store nodeStore[K, V], h arena.Handle, hash uint64, key K, level uint) (V, bool) {
	n := store.Get(h)

	if n.kind == kindCollision {
		if n.collisionHash != hash {
			var zero V
			return zero, false
		}
		for _, e := range n.collisionEnts {
			if e.key == key {
				return e.value, true
			}
		}
		var zero V
		return zero, false
	}

	pos := positionAt(hash, level)
	bit := bitOf(pos)

	if n.dataMap&bit != 0 {
		idx := denseIndex(n.dataMap, pos)
		e := n.entries[idx]
		if e.key == key {
			return e.value, true
		}
		var zero V
		return zero, false
	}

	if n.nodeMap&bit != 0 {
		idx := denseIndex(n.nodeMap, pos)
		return getRecursive(store, n.children[idx], hash, key, level+1)
	}

	var zero V
	return zero, false
}
