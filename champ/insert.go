package champ

import "github.com/YuriyKrasilnikov/champ-trie/arena"

// insertOutcome is returned up the recursion by insertRecursive.
type insertOutcome[V comparable] struct {
	handle      arena.Handle
	adhashDelta uint64
	inserted    bool // true: new key; false: existing key's value replaced
	priorValue  V    // meaningful only when inserted == false
}

// insertRecursive performs a copy-on-write insert of e into the subtree
// rooted at h, and returns the handle of its COW-copied replacement plus
// the AdHash delta the caller must fold into its own contribution.
func insertRecursive[K comparable, V comparable](store nodeStore[K, V], h arena.Handle, e entry[K, V], level uint) insertOutcome[V] {
	n := store.Get(h)

	if n.kind == kindCollision {
		return insertIntoCollision(store, n, e)
	}
	return insertIntoInterior(store, n, e, level)
}

func insertIntoInterior[K comparable, V comparable](store nodeStore[K, V], n node[K, V], e entry[K, V], level uint) insertOutcome[V] {
	pos := positionAt(e.hash, level)
	bit := bitOf(pos)

	switch {
	case n.dataMap&bit != 0:
		idx := denseIndex(n.dataMap, pos)
		existing := n.entries[idx]

		if existing.key == e.key {
			oldContrib := entryAdHash(existing.hash, existing.valueHash)
			newContrib := entryAdHash(e.hash, e.valueHash)
			delta := newContrib ^ oldContrib
			newNode := n
			newNode.entries = withEntryReplaced(n.entries, idx, e)
			newNode.adhash = n.adhash ^ delta
			return insertOutcome[V]{
				handle:      store.Alloc(newNode),
				adhashDelta: delta,
				inserted:    false,
				priorValue:  existing.value,
			}
		}

		// Different key landed at the same position: push both one level
		// deeper and replace the inline slot with a child pointer.
		// The existing entry's contribution is already in n.adhash; only the
		// new entry's contribution is added to this subtree and to the map.
		childHandle := createSubtree(store, existing, e, level+1)
		contrib := entryAdHash(e.hash, e.valueHash)

		newDataMap := n.dataMap &^ bit
		newNodeMap := n.nodeMap | bit
		childPos := denseIndex(newNodeMap, pos)

		newNode := n
		newNode.dataMap = newDataMap
		newNode.nodeMap = newNodeMap
		newNode.entries = withEntryRemoved(n.entries, idx)
		newNode.children = withChildInserted(n.children, childPos, childHandle)
		newNode.adhash = n.adhash ^ contrib

		return insertOutcome[V]{
			handle:      store.Alloc(newNode),
			adhashDelta: contrib,
			inserted:    true,
		}

	case n.nodeMap&bit != 0:
		idx := denseIndex(n.nodeMap, pos)
		outcome := insertRecursive(store, n.children[idx], e, level+1)

		newNode := n
		newNode.children = withChildReplaced(n.children, idx, outcome.handle)
		newNode.adhash = n.adhash ^ outcome.adhashDelta

		return insertOutcome[V]{
			handle:      store.Alloc(newNode),
			adhashDelta: outcome.adhashDelta,
			inserted:    outcome.inserted,
			priorValue:  outcome.priorValue,
		}

	default:
		newDataMap := n.dataMap | bit
		idx := denseIndex(newDataMap, pos)
		contrib := entryAdHash(e.hash, e.valueHash)

		newNode := n
		newNode.dataMap = newDataMap
		newNode.entries = withEntryInserted(n.entries, idx, e)
		newNode.adhash = n.adhash ^ contrib

		return insertOutcome[V]{
			handle:      store.Alloc(newNode),
			adhashDelta: contrib,
			inserted:    true,
		}
	}
}

func insertIntoCollision[K comparable, V comparable](store nodeStore[K, V], n node[K, V], e entry[K, V]) insertOutcome[V] {
	for i, existing := range n.collisionEnts {
		if existing.key == e.key {
			oldContrib := entryAdHash(existing.hash, existing.valueHash)
			newContrib := entryAdHash(e.hash, e.valueHash)
			delta := newContrib ^ oldContrib

			newNode := n
			newNode.collisionEnts = withEntryReplaced(n.collisionEnts, i, e)
			newNode.adhash = n.adhash ^ delta

			return insertOutcome[V]{
				handle:      store.Alloc(newNode),
				adhashDelta: delta,
				inserted:    false,
				priorValue:  existing.value,
			}
		}
	}

	contrib := entryAdHash(e.hash, e.valueHash)
	newNode := n
	newNode.collisionEnts = append(cloneEntries(n.collisionEnts), e)
	newNode.adhash = n.adhash ^ contrib

	return insertOutcome[V]{
		handle:      store.Alloc(newNode),
		adhashDelta: contrib,
		inserted:    true,
	}
}

// createSubtree builds the smallest subtree holding both e1 and e2, which
// collided at the level their caller was examining. It descends one level
// at a time while their hash fragments keep matching, emitting a collision
// node only once every bit of a 64-bit hash has been consumed.
func createSubtree[K comparable, V comparable](store nodeStore[K, V], e1, e2 entry[K, V], level uint) arena.Handle {
	if level >= maxDepth {
		c1 := entryAdHash(e1.hash, e1.valueHash)
		c2 := entryAdHash(e2.hash, e2.valueHash)
		return store.Alloc(node[K, V]{
			kind:          kindCollision,
			collisionHash: e1.hash,
			collisionEnts: []entry[K, V]{e1, e2},
			adhash:        c1 ^ c2,
		})
	}

	f1 := positionAt(e1.hash, level)
	f2 := positionAt(e2.hash, level)

	if f1 == f2 {
		child := createSubtree(store, e1, e2, level+1)
		childAdHash := store.Get(child).adhash
		return store.Alloc(node[K, V]{
			kind:     kindInterior,
			nodeMap:  bitOf(f1),
			children: []arena.Handle{child},
			adhash:   childAdHash,
		})
	}

	c1 := entryAdHash(e1.hash, e1.valueHash)
	c2 := entryAdHash(e2.hash, e2.valueHash)
	ordered := []entry[K, V]{e1, e2}
	if f1 > f2 {
		ordered[0], ordered[1] = e2, e1
	}
	return store.Alloc(node[K, V]{
		kind:    kindInterior,
		dataMap: bitOf(f1) | bitOf(f2),
		entries: ordered,
		adhash:  c1 ^ c2,
	})
}
