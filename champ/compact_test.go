package champ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactPreservesEntriesAndDigest(t *testing.T) {
	m := New[int, int]()
	for i := 0; i < 300; i++ {
		m.Insert(i, i*2)
	}

	beforeHash := m.AdHash()
	beforeLen := m.Len()
	beforeMap := m.ToMap()

	m.Compact()

	assert.Equal(t, beforeHash, m.AdHash())
	assert.Equal(t, beforeLen, m.Len())
	assert.Equal(t, beforeMap, m.ToMap())

	for i := 0; i < 300; i++ {
		v, ok := m.Get(i)
		require.True(t, ok)
		assert.Equal(t, i*2, v)
	}
}

func TestCompactOnEmptyMap(t *testing.T) {
	m := New[string, int]()
	m.Compact()

	assert.True(t, m.IsEmpty())
	assert.Equal(t, AdHash(0), m.AdHash())
	_, ok := m.Get("anything")
	assert.False(t, ok)
}

func TestCompactThenContinueMutating(t *testing.T) {
	m := New[string, int]()
	m.Insert("a", 1)
	m.Insert("b", 2)
	m.Compact()

	m.Insert("c", 3)
	v, ok := m.Get("c")
	require.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 3, m.Len())

	m.Remove("a")
	_, ok = m.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 2, m.Len())
}

func TestCompactPreservesDuplicateValueDataset(t *testing.T) {
	// Every entry carries the same value; compaction must keep all 64 of
	// them. Whether any subtrees were shared is not observed here.
	m := New[int, int]()
	for i := 0; i < 64; i++ {
		m.Insert(i, 42)
	}
	before := m.ToMap()
	m.Compact()
	assert.Equal(t, before, m.ToMap())
}

func TestSignatureOfDistinguishesShapeUnderSameAdHash(t *testing.T) {
	collision := node[int, int]{kind: kindCollision, adhash: 7, collisionEnts: make([]entry[int, int], 2)}
	interior := node[int, int]{kind: kindInterior, adhash: 7, dataMap: 1, nodeMap: 0}

	sigC := signatureOf(collision)
	sigI := signatureOf(interior)

	assert.NotEqual(t, sigC, sigI)
}
