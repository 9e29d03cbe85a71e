package idmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forestrie/go-kernelkit/alloc"
)

func TestAllocSequence(t *testing.T) {
	m := New[string](WithFirstFit())

	key, err := m.Alloc("a")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), key)
	assert.Equal(t, 0, m.nodes.InUse(), "key zero costs nothing")

	key, err = m.Alloc("b")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), key)

	key, err = m.Alloc("c")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), key)

	for want, k := range map[uint64]string{0: "a", 1: "b", 2: "c"} {
		v, ok := m.Get(want)
		require.True(t, ok)
		assert.Equal(t, k, v)
	}
}

func TestAllocReusesFreedKeys(t *testing.T) {
	m := New[int](WithFirstFit())
	for i := 0; i < 10; i++ {
		_, err := m.Alloc(i)
		require.NoError(t, err)
	}

	_, ok := m.Remove(4)
	require.True(t, ok)
	_, ok = m.Remove(7)
	require.True(t, ok)

	key, err := m.Alloc(40)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), key, "lowest freed key first")

	key, err = m.Alloc(70)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), key)

	key, err = m.Alloc(10)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), key, "fresh keys resume past the reused ones")
}

func TestAllocAcrossGrowth(t *testing.T) {
	m := New[uint64](WithFirstFit())
	// Filling two full levels forces growth at 1 and at 64.
	for i := uint64(0); i < 130; i++ {
		key, err := m.Alloc(i)
		require.NoError(t, err)
		require.Equal(t, i, key, "keys must come out dense and ascending")
	}
	assert.Equal(t, 2, m.Height())
	assert.Equal(t, 130, m.Len())
}

func TestAllocScalesToThousands(t *testing.T) {
	m := New[uint64](WithFirstFit())
	for i := uint64(0); i < 4096; i++ {
		key, err := m.Alloc(i)
		require.NoError(t, err)
		require.Equal(t, i, key)
	}
	require.Equal(t, 2, m.Height())

	// A single hole in the lowest leaf wins over the fresh key 4096.
	_, ok := m.Remove(1)
	require.True(t, ok)
	key, err := m.Alloc(9999)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), key)

	// With the tree saturated again the next key opens a third level.
	key, err = m.Alloc(4096)
	require.NoError(t, err)
	assert.Equal(t, uint64(4096), key)
	assert.Equal(t, 3, m.Height())
}

func TestAllocFillsGapsBetweenInserts(t *testing.T) {
	// Keyed inserts on a first fit map keep the saturation tracking
	// honest, so alloc lands in the hole between two full leaves.
	m := New[uint64](WithFirstFit())
	for key := uint64(0); key < 64; key++ {
		require.NoError(t, m.Insert(key, key))
	}
	for key := uint64(128); key < 192; key++ {
		require.NoError(t, m.Insert(key, key))
	}

	for want := uint64(64); want < 128; want++ {
		key, err := m.Alloc(want)
		require.NoError(t, err)
		require.Equal(t, want, key)
	}

	// The hole is gone, the next free key is past the second full leaf.
	key, err := m.Alloc(192)
	require.NoError(t, err)
	assert.Equal(t, uint64(192), key)
}

func TestAllocExhaustionLeavesMapIntact(t *testing.T) {
	m := New[int](WithFirstFit(), WithGate(alloc.FailAfter(0)))
	key, err := m.Alloc(1)
	require.NoError(t, err, "key zero needs no nodes")
	require.Equal(t, uint64(0), key)

	_, err = m.Alloc(2)
	require.ErrorIs(t, err, alloc.ErrExhausted)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 0, m.Height())

	v, ok := m.Get(0)
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestAllocSlot(t *testing.T) {
	m := New[string](WithFirstFit())
	key, s, err := m.AllocSlot("x")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), key)
	assert.Equal(t, "x", s.Value())

	key, s2, err := m.AllocSlot("y")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), key)
	assert.Equal(t, "y", s2.Value())
}

func TestAllocRequiresFirstFitMode(t *testing.T) {
	m := New[int]()
	assert.PanicsWithValue(t, "idmap: Alloc on a map built without WithFirstFit", func() {
		_, _ = m.Alloc(1)
	})
}
