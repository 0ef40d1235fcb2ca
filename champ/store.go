package champ

import "github.com/YuriyKrasilnikov/champ-trie/arena"

// nodeStore is the minimal surface Map needs from its backing arena. Both
// *arena.Arena[node[K,V]] (single-threaded) and *arena.SyncArena[node[K,V]]
// (synchronized) already satisfy it without any adapter, since the two
// arena variants share an identical method set by construction.
type nodeStore[K comparable, V comparable] interface {
	Alloc(node[K, V]) arena.Handle
	Get(arena.Handle) node[K, V]
	Len() int
	Checkpoint() arena.Checkpoint
	Rollback(arena.Checkpoint)
}
