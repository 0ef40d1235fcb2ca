// Package arena implements the typed bump allocator that backs the champ
// trie's node graph. The engine only needs allocate-one, read-by-handle,
// take-snapshot, and rollback-to-snapshot, so that is all this package
// provides, sketched rather than gold-plated.
//
// Arena is the single-threaded variant. SyncArena (sync_arena.go) is its
// synchronized policy variant: identical contract, safe for concurrent
// readers while writes are externally serialized.
package arena

import "fmt"

// Handle is a stable, opaque reference into an Arena. The zero Handle never
// refers to a live allocation; Arena.Alloc never returns it.
type Handle uint32

// Valid reports whether h could refer to a live allocation. It does not
// check that h was issued by any particular Arena.
func (h Handle) Valid() bool { return h != 0 }

// Checkpoint is an O(1) cursor into an arena's allocation history, taken by
// Arena.Checkpoint/SyncArena.Checkpoint and consumed by Rollback.
type Checkpoint struct {
	mark uint32
}

// Arena is a single-threaded, append-only bump allocator over slots of type
// T. Allocation never moves existing slots, so Handles remain valid for the
// Arena's lifetime (until a Rollback invalidates everything past its mark).
type Arena[T any] struct {
	slots []T
}

// New creates an empty Arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Alloc stores v and returns a Handle that resolves to it until a Rollback
// past this allocation. It is the only way new slots are created.
func (a *Arena[T]) Alloc(v T) Handle {
	a.slots = append(a.slots, v)
	return Handle(len(a.slots))
}

// Get returns the value at h. It panics if h is invalid or was never
// allocated (or has since been rolled back); this is a fatal invariant
// violation, never a recoverable condition.
func (a *Arena[T]) Get(h Handle) T {
	if h == 0 || int(h) > len(a.slots) {
		panic(fmt.Sprintf("arena: invalid handle %d (len=%d)", h, len(a.slots)))
	}
	return a.slots[h-1]
}

// Len returns the number of slots ever allocated and still live, including
// dead COW copies; it reflects true memory footprint, not reachable
// entries.
func (a *Arena[T]) Len() int { return len(a.slots) }

// Checkpoint captures the current allocation cursor in O(1).
func (a *Arena[T]) Checkpoint() Checkpoint {
	return Checkpoint{mark: uint32(len(a.slots))}
}

// Rollback truncates the arena back to cp, reclaiming every slot allocated
// since in O(k). Handles issued after cp must not be used again; the caller
// (champ.Map) is responsible for not letting any escape.
func (a *Arena[T]) Rollback(cp Checkpoint) {
	if int(cp.mark) > len(a.slots) {
		panic(fmt.Sprintf("arena: rollback to a checkpoint (%d) beyond the current cursor (%d)", cp.mark, len(a.slots)))
	}
	var zero T
	for i := int(cp.mark); i < len(a.slots); i++ {
		a.slots[i] = zero // drop references so the GC can reclaim dead subtrees
	}
	a.slots = a.slots[:cp.mark]
}
