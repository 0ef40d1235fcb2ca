package champ

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultHasherDeterministicWithinInstance(t *testing.T) {
	h := newDefaultHasher[string]()
	assert.Equal(t, h.Hash("abc"), h.Hash("abc"))
	assert.NotEqual(t, h.Hash("abc"), h.Hash("abd"))
}

func TestDefaultHasherDistinguishesIntValues(t *testing.T) {
	hi := newDefaultHasher[int]()
	assert.NotEqual(t, hi.Hash(1), hi.Hash(2))
}

func TestHasherFuncAdapts(t *testing.T) {
	var h Hasher[string] = HasherFunc[string](func(s string) uint64 { return uint64(len(s)) })
	assert.Equal(t, uint64(3), h.Hash("abc"))
	assert.Equal(t, uint64(5), h.Hash("abcde"))
}

func TestSHA256HasherDeterministicAndDistinct(t *testing.T) {
	var h SHA256Hasher[string]
	a := h.Hash("hello")
	b := h.Hash("hello")
	c := h.Hash("world")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestBlake2bHasherDeterministicAndDistinct(t *testing.T) {
	var h Blake2bHasher[string]
	a := h.Hash("hello")
	b := h.Hash("hello")
	c := h.Hash("world")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestSHA256AndBlake2bDisagree(t *testing.T) {
	var sh SHA256Hasher[string]
	var bh Blake2bHasher[string]
	assert.NotEqual(t, sh.Hash("same input"), bh.Hash("same input"))
}

func TestByteSliceHashersMatchStringHashers(t *testing.T) {
	var shString SHA256Hasher[string]
	var shBytes SHA256Hasher[[]byte]
	assert.Equal(t, shString.Hash("payload"), shBytes.Hash([]byte("payload")))
}

func TestFoldDigestHandlesNonMultipleOfEightLength(t *testing.T) {
	// 5-byte tail, not a multiple of 8: must not panic and must be
	// deterministic.
	digest := []byte{1, 2, 3, 4, 5}
	a := foldDigest(digest)
	b := foldDigest(digest)
	assert.Equal(t, a, b)
}

func TestMapWithSHA256KeyHasher(t *testing.T) {
	m := New[string, int](WithKeyHasher[string, int](SHA256Hasher[string]{}))
	m.Insert("a", 1)
	m.Insert("b", 2)

	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	v, ok = m.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}
