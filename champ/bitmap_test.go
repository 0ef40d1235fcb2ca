package champ

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionAt(t *testing.T) {
	var hash uint64 = 0b11111_00010_00001
	assert.Equal(t, uint(1), positionAt(hash, 0))
	assert.Equal(t, uint(2), positionAt(hash, 1))
	assert.Equal(t, uint(0x1F), positionAt(hash, 2))
}

func TestDenseIndex(t *testing.T) {
	// positions 0, 2, 5 occupied
	m := bitOf(0) | bitOf(2) | bitOf(5)
	assert.Equal(t, 0, denseIndex(m, 0))
	assert.Equal(t, 1, denseIndex(m, 2))
	assert.Equal(t, 2, denseIndex(m, 5))
}

func TestPopcount32(t *testing.T) {
	assert.Equal(t, 0, popcount32(0))
	assert.Equal(t, 32, popcount32(^uint32(0)))
	assert.Equal(t, 3, popcount32(bitOf(0)|bitOf(10)|bitOf(31)))
}

func TestMaxDepthCoversFullHash(t *testing.T) {
	// Levels [0, maxDepth) together consume maxDepth*nBits bits, which must
	// cover all 64; one level fewer must not.
	assert.GreaterOrEqual(t, maxDepth*nBits, 64)
	assert.Less(t, (maxDepth-1)*nBits, 64)
}
