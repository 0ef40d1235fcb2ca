package arena

import (
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// segmentShift/segmentSize: slots are grouped into fixed, never-moved
// segments so concurrent Get calls can walk a segment pointer they already
// hold without racing a backing-array reallocation (the classic reason
// sync.Map-like structures use segmented storage instead of a single slice).
const (
	segmentShift = 10
	segmentSize  = 1 << segmentShift
)

// syncSlot holds one published value. The trailing pad prevents false
// sharing between adjacent slots when multiple goroutines read neighboring
// handles concurrently, the same technique llxisdsh/pb uses to size its
// map-bucket padding from golang.org/x/sys/cpu.
type syncSlot[T any] struct {
	val atomic.Pointer[T]
	_   cpu.CacheLinePad
}

type segment[T any] [segmentSize]syncSlot[T]

// SyncArena is the synchronized policy variant of Arena: reads are
// wait-free (pure atomic loads, no lock), while Alloc/Rollback are
// serialized by an internal mutex; Checkpoint is a single atomic load. Node initialization publishes all
// fields before the handle becomes observable (the slot's
// atomic.Pointer.Store happens-before the published length is visible to
// any reader that observes it, and Get checks the length before loading the
// slot).
type SyncArena[T any] struct {
	mu       sync.Mutex
	segments atomic.Pointer[[]*segment[T]]
	length   atomic.Uint32
}

// NewSync creates an empty SyncArena.
func NewSync[T any]() *SyncArena[T] {
	a := &SyncArena[T]{}
	segs := make([]*segment[T], 0)
	a.segments.Store(&segs)
	return a
}

func (a *SyncArena[T]) segmentFor(idx int) *segment[T] {
	segs := *a.segments.Load()
	return segs[idx>>segmentShift]
}

// Alloc stores v and returns its Handle. Each call holds the internal mutex,
// so concurrent Alloc calls do not corrupt the arena, but a sequence of
// allocations is not kept together: grouping the allocations of one edit is
// left to the caller's own single-writer discipline (§5).
func (a *SyncArena[T]) Alloc(v T) Handle {
	a.mu.Lock()
	defer a.mu.Unlock()

	idx := int(a.length.Load())
	segIdx := idx >> segmentShift
	segs := *a.segments.Load()
	if segIdx >= len(segs) {
		grown := make([]*segment[T], len(segs)+1)
		copy(grown, segs)
		grown[len(segs)] = new(segment[T])
		a.segments.Store(&grown)
		segs = grown
	}

	offset := idx & (segmentSize - 1)
	segs[segIdx][offset].val.Store(&v) // release: publish the value first
	a.length.Store(uint32(idx + 1))     // then publish that it is visible
	return Handle(idx + 1)
}

// Get returns the value at h. Wait-free: an atomic length check followed by
// an atomic pointer load, no locking. Panics on an invalid or not-yet
// (or no-longer) published handle.
func (a *SyncArena[T]) Get(h Handle) T {
	idx := int(h) - 1
	if h == 0 || uint32(idx) >= a.length.Load() {
		panic(fmt.Sprintf("arena: invalid handle %d (len=%d)", h, a.length.Load()))
	}
	seg := a.segmentFor(idx)
	p := seg[idx&(segmentSize-1)].val.Load()
	if p == nil {
		panic(fmt.Sprintf("arena: handle %d rolled back concurrently with a read", h))
	}
	return *p
}

// Len returns the number of slots ever allocated and still live.
func (a *SyncArena[T]) Len() int { return int(a.length.Load()) }

// Checkpoint captures the current allocation cursor in O(1).
func (a *SyncArena[T]) Checkpoint() Checkpoint {
	return Checkpoint{mark: a.length.Load()}
}

// Rollback truncates the arena back to cp in O(k). Must not race a
// concurrent Get of a handle past cp; iterators/borrows must not outlive a
// rollback that invalidates them.
func (a *SyncArena[T]) Rollback(cp Checkpoint) {
	a.mu.Lock()
	defer a.mu.Unlock()

	cur := a.length.Load()
	if cp.mark > cur {
		panic(fmt.Sprintf("arena: rollback to a checkpoint (%d) beyond the current cursor (%d)", cp.mark, cur))
	}
	for i := int(cp.mark); i < int(cur); i++ {
		a.segmentFor(i)[i&(segmentSize-1)].val.Store(nil)
	}
	a.length.Store(cp.mark)
}
