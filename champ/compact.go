package champ

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/YuriyKrasilnikov/champ-trie/arena"
)

// defaultCompactCacheSize bounds the ARC cache Compact uses to recognize
// structurally identical subtrees during a rebuild. Sized generously
// relative to typical map sizes; Compact still works correctly, just with
// fewer dedup hits, if a rebuild has more distinct subtrees than this.
const defaultCompactCacheSize = 4096

// Compact rebuilds the Map's arena from scratch by walking the live trie
// depth-first and reallocating every reachable node into a fresh arena,
// dropping everything the old arena held that the current root no longer
// reaches (dead COW copies from superseded roots are not otherwise
// reclaimed; Rollback only frees what was allocated after its checkpoint).
// Structurally identical subtrees collapse to one allocation: two
// subtrees are considered identical when their AdHash and shape signature
// match, the same O(1)-subject-to-collision-probability test the Map uses
// for whole-map equality.
//
// Compact invalidates every outstanding Iter and Checkpoint token; it must
// not be called while either is in use.
func (m *Map[K, V]) Compact() {
	cache, err := lru.NewARC(defaultCompactCacheSize)
	if err != nil {
		panic(fmt.Sprintf("champ: failed to allocate compaction cache: %v", err))
	}

	fresh := newBackingStore[K, V](m.synchronized)
	if !m.hasRoot {
		m.store = fresh
		m.checkpoints = checkpointStack[K, V]{}
		return
	}

	newRoot := compactRecursive(m.store, fresh, cache, m.root)

	m.store = fresh
	m.root = newRoot
	m.checkpoints = checkpointStack[K, V]{}
}

// compactSignature identifies a subtree for dedup purposes: its AdHash
// combined with the shape of its top node (kind plus bitmaps or collision
// length), so two subtrees with the same digest but different top-node
// shapes never collapse into one even under an AdHash collision. Shape
// below the top node is not part of the signature.
type compactSignature struct {
	adhash uint64
	kind   nodeKind
	shape  uint64
}

func signatureOf[K comparable, V comparable](n node[K, V]) compactSignature {
	if n.kind == kindCollision {
		return compactSignature{adhash: n.adhash, kind: kindCollision, shape: uint64(len(n.collisionEnts))}
	}
	return compactSignature{adhash: n.adhash, kind: kindInterior, shape: uint64(n.dataMap)<<32 | uint64(n.nodeMap)}
}

func compactRecursive[K comparable, V comparable](old, fresh nodeStore[K, V], cache *lru.ARCCache, h arena.Handle) arena.Handle {
	n := old.Get(h)
	sig := signatureOf(n)

	if cached, ok := cache.Get(sig); ok {
		return cached.(arena.Handle)
	}

	var rebuilt node[K, V]
	if n.kind == kindCollision {
		rebuilt = node[K, V]{
			kind:          kindCollision,
			collisionHash: n.collisionHash,
			collisionEnts: cloneEntries(n.collisionEnts),
			adhash:        n.adhash,
		}
	} else {
		newChildren := make([]arena.Handle, len(n.children))
		for i, c := range n.children {
			newChildren[i] = compactRecursive(old, fresh, cache, c)
		}
		rebuilt = node[K, V]{
			kind:     kindInterior,
			dataMap:  n.dataMap,
			nodeMap:  n.nodeMap,
			entries:  cloneEntries(n.entries),
			children: newChildren,
			adhash:   n.adhash,
		}
	}

	newHandle := fresh.Alloc(rebuilt)
	cache.Add(sig, newHandle)
	return newHandle
}
