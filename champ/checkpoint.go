package champ

import "github.com/YuriyKrasilnikov/champ-trie/arena"

// Checkpoint is an opaque token returned by Map.Checkpoint and consumed by
// Map.Rollback or Map.Commit. It is only valid for the Map that issued it,
// and only while it remains the top of that Map's checkpoint stack or an
// ancestor of the top.
type Checkpoint struct {
	owner any // the issuing checkpointStack
	gen   uint64
	depth int
}

// savedState is what a checkpoint restores on rollback: the arena cursor
// plus the three pieces of shell state that change atomically with every
// commit (root, count, AdHash), tagged with the generation its Checkpoint
// token was issued with.
type savedState[K comparable, V comparable] struct {
	gen         uint64
	arenaCursor arena.Checkpoint
	hasRoot     bool
	root        arena.Handle
	count       int
	adhash      AdHash
}

// checkpointStack is the LIFO nesting structure backing Map's
// Checkpoint/Rollback/Commit. Every pushed frame is stamped with a fresh
// generation; a Checkpoint token embeds the generation its frame had at
// push time, so Rollback/Commit can tell a live token from a stale one
// (issued for a depth that has since been popped and reused by an
// unrelated later checkpoint) with a simple stamp comparison instead of
// tracking frame identity explicitly.
type checkpointStack[K comparable, V comparable] struct {
	frames []savedState[K, V]
	gen    uint64
}

func (s *checkpointStack[K, V]) push(state savedState[K, V]) Checkpoint {
	s.gen++
	state.gen = s.gen
	s.frames = append(s.frames, state)
	return Checkpoint{owner: s, gen: s.gen, depth: len(s.frames) - 1}
}

// resolve validates cp against the current stack and returns the frame it
// names plus its index. It panics on a stale or out-of-range token: a
// caller passing an unknown checkpoint token is a fatal logic error, never
// a recoverable one.
func (s *checkpointStack[K, V]) resolve(cp Checkpoint) (savedState[K, V], int) {
	if cp.owner != any(s) {
		Lgr.Printf("checkpoint token %+v was not issued by this map", cp)
		panic("champ: checkpoint token was not issued by this map")
	}
	if cp.depth < 0 || cp.depth >= len(s.frames) {
		Lgr.Printf("checkpoint token %+v does not refer to a live checkpoint (stack depth %d)", cp, len(s.frames))
		panic("champ: checkpoint token does not refer to a live checkpoint")
	}
	frame := s.frames[cp.depth]
	if frame.gen != cp.gen {
		Lgr.Printf("checkpoint token %+v is stale (frame at that depth is now generation %d)", cp, frame.gen)
		panic("champ: checkpoint token is stale")
	}
	return frame, cp.depth
}

// popTo discards every frame above and including depth, returning the
// popped-to frame's saved state.
func (s *checkpointStack[K, V]) popTo(depth int) savedState[K, V] {
	state := s.frames[depth]
	s.frames = s.frames[:depth]
	return state
}

// commitFrom discards every frame from depth upward without restoring
// anything; the speculative window they guarded is kept.
func (s *checkpointStack[K, V]) commitFrom(depth int) {
	s.frames = s.frames[:depth]
}
