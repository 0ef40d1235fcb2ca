package champ

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryAdHashDeterministic(t *testing.T) {
	a := entryAdHash(123, 456)
	b := entryAdHash(123, 456)
	assert.Equal(t, a, b)
}

func TestEntryAdHashSensitiveToBothArguments(t *testing.T) {
	base := entryAdHash(1, 1)
	assert.NotEqual(t, base, entryAdHash(2, 1))
	assert.NotEqual(t, base, entryAdHash(1, 2))
}

func TestAdHashCombineIsSelfInverse(t *testing.T) {
	var a AdHash
	contribution := entryAdHash(10, 20)
	a = a.combine(contribution)
	assert.NotEqual(t, AdHash(0), a)
	a = a.combine(contribution)
	assert.Equal(t, AdHash(0), a)
}

func TestAdHashCombineOrderIndependent(t *testing.T) {
	c1 := entryAdHash(1, 2)
	c2 := entryAdHash(3, 4)
	c3 := entryAdHash(5, 6)

	var a, b AdHash
	a = a.combine(c1).combine(c2).combine(c3)
	b = b.combine(c3).combine(c1).combine(c2)

	assert.Equal(t, a, b)
}

func TestEntryAdHashZeroHashDoesNotDegenerate(t *testing.T) {
	assert.NotEqual(t, uint64(0), entryAdHash(0, 1))
	assert.NotEqual(t, uint64(0), entryAdHash(1, 0))
}
