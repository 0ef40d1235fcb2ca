package champ

import "github.com/YuriyKrasilnikov/champ-trie/arena"

// removeOutcome is returned up the recursion by removeRecursive. found is
// false when the key was absent, in which case handle/adhashDelta/empty are
// meaningless and the caller must not allocate anything.
type removeOutcome struct {
	found       bool
	empty       bool // true: subtree became empty (only legal to bubble up to the root)
	handle      arena.Handle
	adhashDelta uint64
}

// removeRecursive performs a copy-on-write delete of key (with precomputed
// hash) from the subtree rooted at h, restoring canonical shallowness by
// inlining any child that shrinks to a single entry.
func removeRecursive[K comparable, V comparable](store nodeStore[K, V], h arena.Handle, hash uint64, key K, level uint) (removeOutcome, V) {
	n := store.Get(h)

	if n.kind == kindCollision {
		return removeFromCollision(store, n, hash, key)
	}
	return removeFromInterior(store, n, hash, key, level)
}

func removeFromInterior[K comparable, V comparable](store nodeStore[K, V], n node[K, V], hash uint64, key K, level uint) (removeOutcome, V) {
	pos := positionAt(hash, level)
	bit := bitOf(pos)

	switch {
	case n.dataMap&bit != 0:
		idx := denseIndex(n.dataMap, pos)
		existing := n.entries[idx]
		if existing.key != key {
			var zero V
			return removeOutcome{found: false}, zero
		}

		removedContrib := entryAdHash(existing.hash, existing.valueHash)
		newDataMap := n.dataMap &^ bit

		if newDataMap == 0 && n.nodeMap == 0 {
			return removeOutcome{found: true, empty: true, adhashDelta: removedContrib}, existing.value
		}

		newNode := n
		newNode.dataMap = newDataMap
		newNode.entries = withEntryRemoved(n.entries, idx)
		newNode.adhash = n.adhash ^ removedContrib

		return removeOutcome{
			found:       true,
			handle:      store.Alloc(newNode),
			adhashDelta: removedContrib,
		}, existing.value

	case n.nodeMap&bit != 0:
		idx := denseIndex(n.nodeMap, pos)
		childOutcome, removedValue := removeRecursive(store, n.children[idx], hash, key, level+1)
		if !childOutcome.found {
			var zero V
			return removeOutcome{found: false}, zero
		}

		if childOutcome.empty {
			newNodeMap := n.nodeMap &^ bit
			if n.dataMap == 0 && newNodeMap == 0 {
				return removeOutcome{found: true, empty: true, adhashDelta: childOutcome.adhashDelta}, removedValue
			}
			newNode := n
			newNode.nodeMap = newNodeMap
			newNode.children = withChildRemoved(n.children, idx)
			newNode.adhash = n.adhash ^ childOutcome.adhashDelta
			return removeOutcome{
				found:       true,
				handle:      store.Alloc(newNode),
				adhashDelta: childOutcome.adhashDelta,
			}, removedValue
		}

		child := store.Get(childOutcome.handle)
		if child.shouldInline() {
			inlined := child.entries[0]
			newDataMap := n.dataMap | bit
			newNodeMap := n.nodeMap &^ bit
			dataAt := denseIndex(newDataMap, pos)

			newNode := n
			newNode.dataMap = newDataMap
			newNode.nodeMap = newNodeMap
			newNode.entries = withEntryInserted(n.entries, dataAt, inlined)
			newNode.children = withChildRemoved(n.children, idx)
			newNode.adhash = n.adhash ^ childOutcome.adhashDelta

			return removeOutcome{
				found:       true,
				handle:      store.Alloc(newNode),
				adhashDelta: childOutcome.adhashDelta,
			}, removedValue
		}

		newNode := n
		newNode.children = withChildReplaced(n.children, idx, childOutcome.handle)
		newNode.adhash = n.adhash ^ childOutcome.adhashDelta

		return removeOutcome{
			found:       true,
			handle:      store.Alloc(newNode),
			adhashDelta: childOutcome.adhashDelta,
		}, removedValue

	default:
		var zero V
		return removeOutcome{found: false}, zero
	}
}

func removeFromCollision[K comparable, V comparable](store nodeStore[K, V], n node[K, V], hash uint64, key K) (removeOutcome, V) {
	if n.collisionHash != hash {
		var zero V
		return removeOutcome{found: false}, zero
	}

	for i, e := range n.collisionEnts {
		if e.key != key {
			continue
		}
		removedContrib := entryAdHash(e.hash, e.valueHash)

		if len(n.collisionEnts) == 2 {
			// Down to one entry: a collision node never stands alone with a
			// single pair, so promote it to a plain interior node holding
			// that entry inline at level 0 of its own subtree.
			other := n.collisionEnts[1-i]
			remainingContrib := entryAdHash(other.hash, other.valueHash)
			pos := positionAt(other.hash, 0)
			newNode := node[K, V]{
				kind:    kindInterior,
				dataMap: bitOf(pos),
				entries: []entry[K, V]{other},
				adhash:  remainingContrib,
			}
			return removeOutcome{
				found:       true,
				handle:      store.Alloc(newNode),
				adhashDelta: removedContrib,
			}, e.value
		}

		newNode := n
		newNode.collisionEnts = withEntryRemoved(n.collisionEnts, i)
		newNode.adhash = n.adhash ^ removedContrib

		return removeOutcome{
			found:       true,
			handle:      store.Alloc(newNode),
			adhashDelta: removedContrib,
		}, e.value
	}

	var zero V
	return removeOutcome{found: false}, zero
}
