package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaAllocAndGet(t *testing.T) {
	a := New[int]()

	h1 := a.Alloc(10)
	h2 := a.Alloc(20)
	h3 := a.Alloc(30)

	assert.True(t, h1.Valid())
	assert.Equal(t, 10, a.Get(h1))
	assert.Equal(t, 20, a.Get(h2))
	assert.Equal(t, 30, a.Get(h3))
	assert.Equal(t, 3, a.Len())
}

func TestArenaHandlesNeverMove(t *testing.T) {
	a := New[string]()
	var handles []Handle
	for i := 0; i < 1000; i++ {
		handles = append(handles, a.Alloc(string(rune('a'+i%26))))
	}
	for i, h := range handles {
		assert.Equal(t, string(rune('a'+i%26)), a.Get(h))
	}
}

func TestArenaCheckpointRollback(t *testing.T) {
	a := New[int]()
	a.Alloc(1)
	a.Alloc(2)
	cp := a.Checkpoint()

	a.Alloc(3)
	a.Alloc(4)
	require.Equal(t, 4, a.Len())

	a.Rollback(cp)
	assert.Equal(t, 2, a.Len())
}

func TestArenaRollbackToEmpty(t *testing.T) {
	a := New[int]()
	cp := a.Checkpoint()
	a.Alloc(1)
	a.Alloc(2)
	a.Rollback(cp)
	assert.Equal(t, 0, a.Len())
}

func TestArenaGetInvalidHandlePanics(t *testing.T) {
	a := New[int]()
	a.Alloc(1)
	assert.Panics(t, func() { a.Get(Handle(0)) })
	assert.Panics(t, func() { a.Get(Handle(99)) })
}

func TestArenaRollbackBeyondCursorPanics(t *testing.T) {
	a := New[int]()
	cp := a.Checkpoint()
	a.Alloc(1)
	a.Rollback(cp)
	bogus := Checkpoint{mark: 3}
	a.Alloc(2)
	assert.Panics(t, func() { a.Rollback(bogus) })
}

func TestSyncArenaAllocAndGet(t *testing.T) {
	a := NewSync[int]()

	h1 := a.Alloc(100)
	h2 := a.Alloc(200)

	assert.Equal(t, 100, a.Get(h1))
	assert.Equal(t, 200, a.Get(h2))
	assert.Equal(t, 2, a.Len())
}

func TestSyncArenaSpansMultipleSegments(t *testing.T) {
	a := NewSync[int]()
	const n = segmentSize*2 + 17
	handles := make([]Handle, n)
	for i := 0; i < n; i++ {
		handles[i] = a.Alloc(i)
	}
	for i, h := range handles {
		assert.Equal(t, i, a.Get(h))
	}
	assert.Equal(t, n, a.Len())
}

func TestSyncArenaCheckpointRollback(t *testing.T) {
	a := NewSync[int]()
	a.Alloc(1)
	cp := a.Checkpoint()
	a.Alloc(2)
	a.Alloc(3)
	require.Equal(t, 3, a.Len())

	a.Rollback(cp)
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 1, a.Get(Handle(1)))
}

func TestSyncArenaGetInvalidHandlePanics(t *testing.T) {
	a := NewSync[int]()
	a.Alloc(1)
	assert.Panics(t, func() { a.Get(Handle(0)) })
	assert.Panics(t, func() { a.Get(Handle(42)) })
}
