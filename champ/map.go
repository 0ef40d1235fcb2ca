package champ

import (
	"fmt"
	"strings"

	"github.com/YuriyKrasilnikov/champ-trie/arena"
)

// Map is the public shell: it owns an arena of nodes, a handle to the
// current root, the live entry count, and the running AdHash digest. All
// mutation goes through Insert/Remove, which perform a full copy-on-write
// path rewrite and only then publish the new root/count/adhash together;
// an observer never sees one updated without the other two.
type Map[K comparable, V comparable] struct {
	store nodeStore[K, V]

	hasRoot bool
	root    arena.Handle

	count  int
	adhash AdHash

	keyHasher   Hasher[K]
	valueHasher Hasher[V]

	synchronized bool
	checkpoints  checkpointStack[K, V]
}

// Option configures a Map at construction time.
type Option[K comparable, V comparable] func(*mapConfig[K, V])

type mapConfig[K comparable, V comparable] struct {
	keyHasher    Hasher[K]
	valueHasher  Hasher[V]
	synchronized bool
}

// WithKeyHasher overrides the default key hasher.
func WithKeyHasher[K comparable, V comparable](h Hasher[K]) Option[K, V] {
	return func(c *mapConfig[K, V]) { c.keyHasher = h }
}

// WithValueHasher overrides the default value hasher.
func WithValueHasher[K comparable, V comparable](h Hasher[V]) Option[K, V] {
	return func(c *mapConfig[K, V]) { c.valueHasher = h }
}

// WithSynchronizedArena selects the synchronized arena backend: wait-free
// reads safe to share across goroutines, writes still require external
// serialization by the caller (a single Map value is not safe for
// concurrent Insert/Remove regardless of backend).
func WithSynchronizedArena[K comparable, V comparable]() Option[K, V] {
	return func(c *mapConfig[K, V]) { c.synchronized = true }
}

// New creates an empty Map.
func New[K comparable, V comparable](opts ...Option[K, V]) *Map[K, V] {
	cfg := mapConfig[K, V]{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.keyHasher == nil {
		cfg.keyHasher = newDefaultHasher[K]()
	}
	if cfg.valueHasher == nil {
		cfg.valueHasher = newDefaultHasher[V]()
	}

	return &Map[K, V]{
		store:        newBackingStore[K, V](cfg.synchronized),
		keyHasher:    cfg.keyHasher,
		valueHasher:  cfg.valueHasher,
		synchronized: cfg.synchronized,
	}
}

func newBackingStore[K comparable, V comparable](synchronized bool) nodeStore[K, V] {
	if synchronized {
		return arena.NewSync[node[K, V]]()
	}
	return arena.New[node[K, V]]()
}

// Get returns the value associated with key, if present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if !m.hasRoot {
		var zero V
		return zero, false
	}
	hash := m.keyHasher.Hash(key)
	return getRecursive[K, V](m.store, m.root, hash, key, 0)
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Insert associates value with key, returning the prior value if key was
// already present. Every affected node from the edit point to the root is
// freshly allocated; the old root remains fully live and reachable until
// Insert returns, so a capacity-exhaustion panic from the arena never
// leaves the Map in a partially mutated state.
func (m *Map[K, V]) Insert(key K, value V) (V, bool) {
	hash := m.keyHasher.Hash(key)
	valueHash := m.valueHasher.Hash(value)
	e := entry[K, V]{hash: hash, valueHash: valueHash, key: key, value: value}

	if !m.hasRoot {
		contrib := entryAdHash(e.hash, e.valueHash)
		newRoot := node[K, V]{kind: kindInterior, dataMap: bitOf(positionAt(e.hash, 0)), entries: []entry[K, V]{e}, adhash: contrib}
		m.root = m.store.Alloc(newRoot)
		m.hasRoot = true
		m.count = 1
		m.adhash = m.adhash.combine(contrib)
		var zero V
		return zero, false
	}

	outcome := insertRecursive[K, V](m.store, m.root, e, 0)
	m.root = outcome.handle
	m.adhash = m.adhash.combine(outcome.adhashDelta)

	if outcome.inserted {
		m.count++
		var zero V
		return zero, false
	}

	return outcome.priorValue, true
}

// Remove deletes key, returning its value if present.
func (m *Map[K, V]) Remove(key K) (V, bool) {
	if !m.hasRoot {
		var zero V
		return zero, false
	}
	hash := m.keyHasher.Hash(key)

	outcome, value := removeRecursive[K, V](m.store, m.root, hash, key, 0)
	if !outcome.found {
		var zero V
		return zero, false
	}

	m.adhash = m.adhash.combine(outcome.adhashDelta)
	m.count--

	if outcome.empty {
		m.hasRoot = false
		m.root = arena.Handle(0)
		return value, true
	}

	m.root = outcome.handle
	return value, true
}

// Len returns the number of live entries.
func (m *Map[K, V]) Len() int { return m.count }

// IsEmpty reports whether the Map has no entries.
func (m *Map[K, V]) IsEmpty() bool { return m.count == 0 }

// AdHash returns the Map's current structural digest.
func (m *Map[K, V]) AdHash() AdHash { return m.adhash }

// Equal reports whether m and other hold the same set of (key, value)
// pairs, decided in O(1) by comparing count and AdHash rather than walking
// either trie. Sound subject to the mixing function's collision
// probability (~2⁻⁶⁴); EqualExact performs the O(n) fallback walk for
// callers that need certainty.
func (m *Map[K, V]) Equal(other *Map[K, V]) bool {
	return m.count == other.count && m.adhash == other.adhash
}

// EqualExact walks both tries entry-by-entry and compares the full set,
// bypassing AdHash entirely. Provided for callers that cannot tolerate
// AdHash's residual collision probability.
func (m *Map[K, V]) EqualExact(other *Map[K, V]) bool {
	if m.count != other.count {
		return false
	}
	it := m.Iter()
	for {
		k, v, ok := it.Next()
		if !ok {
			break
		}
		ov, present := other.Get(k)
		if !present || ov != v {
			return false
		}
	}
	return true
}

// Iter returns a snapshot, depth-first iterator over m's current entries.
func (m *Map[K, V]) Iter() *Iter[K, V] {
	return newIter[K, V](m.store, m.root, m.hasRoot)
}

// Checkpoint captures the Map's current arena cursor, root, count, and
// AdHash, and returns an opaque token to later Rollback or Commit.
// Checkpoints nest: taking one while another is outstanding pushes a new
// LIFO frame.
func (m *Map[K, V]) Checkpoint() Checkpoint {
	return m.checkpoints.push(savedState[K, V]{
		arenaCursor: m.store.Checkpoint(),
		hasRoot:     m.hasRoot,
		root:        m.root,
		count:       m.count,
		adhash:      m.adhash,
	})
}

// Rollback restores the shell state saved at cp and truncates the arena
// past its cursor, reclaiming every node allocated since. Rolling back a
// non-top checkpoint discards every checkpoint above it too. Passing a
// token this Map did not issue, or one already consumed, is a fatal caller
// logic error and panics.
func (m *Map[K, V]) Rollback(cp Checkpoint) {
	state, depth := m.checkpoints.resolve(cp)
	m.checkpoints.popTo(depth)

	m.store.Rollback(state.arenaCursor)
	m.hasRoot = state.hasRoot
	m.root = state.root
	m.count = state.count
	m.adhash = state.adhash
}

// Commit discards cp (and every checkpoint nested above it) without
// restoring anything; the mutations made since remain live.
func (m *Map[K, V]) Commit(cp Checkpoint) {
	_, depth := m.checkpoints.resolve(cp)
	m.checkpoints.commitFrom(depth)
}

// Keys returns a snapshot slice of every key currently in the Map, in
// iteration order.
func (m *Map[K, V]) Keys() []K {
	out := make([]K, 0, m.count)
	it := m.Iter()
	for {
		k, _, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, k)
	}
	return out
}

// ToMap returns a snapshot plain Go map holding the same entries.
func (m *Map[K, V]) ToMap() map[K]V {
	out := make(map[K]V, m.count)
	it := m.Iter()
	for {
		k, v, ok := it.Next()
		if !ok {
			break
		}
		out[k] = v
	}
	return out
}

// String implements fmt.Stringer with a compact single-line summary.
func (m *Map[K, V]) String() string {
	return fmt.Sprintf("champ.Map{len=%d, adhash=%#016x}", m.count, uint64(m.adhash))
}

// GoString implements fmt.GoStringer, rendering the full entry set for
// debugging.
func (m *Map[K, V]) GoString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "champ.Map{len=%d, adhash=%#016x, entries: {", m.count, uint64(m.adhash))
	it := m.Iter()
	first := true
	for {
		k, v, ok := it.Next()
		if !ok {
			break
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v: %v", k, v)
	}
	b.WriteString("}}")
	return b.String()
}
