package idmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemove(t *testing.T) {
	m := New[string]()
	require.NoError(t, m.Insert(10, "ten"))
	require.NoError(t, m.Insert(11, "eleven"))

	v, ok := m.Remove(10)
	require.True(t, ok)
	assert.Equal(t, "ten", v)
	assert.Equal(t, 1, m.Len())

	_, ok = m.Get(10)
	assert.False(t, ok)
	v, ok = m.Get(11)
	require.True(t, ok)
	assert.Equal(t, "eleven", v)
}

func TestRemoveMissing(t *testing.T) {
	m := New[int]()
	require.NoError(t, m.Insert(5, 50))

	tests := []struct {
		name string
		key  uint64
	}{
		{"same leaf", 6},
		{"beyond the span", 64},
		{"far beyond the span", 1 << 40},
		{"key zero unoccupied", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := m.Remove(tt.key)
			assert.False(t, ok)
			assert.Equal(t, 1, m.Len())
		})
	}
}

func TestRemoveKeyZeroAtHeightZero(t *testing.T) {
	m := New[string]()
	require.NoError(t, m.Insert(0, "only"))

	v, ok := m.Remove(0)
	require.True(t, ok)
	assert.Equal(t, "only", v)
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.Height())

	_, ok = m.Remove(0)
	assert.False(t, ok)
}

func TestRemoveCollapsesEmptyNodes(t *testing.T) {
	m := New[uint64]()
	for key := uint64(0); key < 128; key++ {
		require.NoError(t, m.Insert(key, key))
	}
	// Root, the wrapped first leaf, and the second leaf.
	require.Equal(t, 3, m.nodes.InUse())
	require.Equal(t, 2, m.Height())

	// Emptying the upper leaf frees exactly that leaf.
	for key := uint64(64); key < 128; key++ {
		_, ok := m.Remove(key)
		require.True(t, ok)
	}
	assert.Equal(t, 2, m.nodes.InUse())
	assert.Equal(t, 2, m.Height(), "height only resets when the map empties")

	// Emptying the rest cascades through the root node.
	for key := uint64(0); key < 64; key++ {
		_, ok := m.Remove(key)
		require.True(t, ok)
	}
	assert.Equal(t, 0, m.nodes.InUse())
	assert.Equal(t, 0, m.Height())
	assert.Equal(t, 0, m.Len())
}

func TestEmptiedMapIsReusable(t *testing.T) {
	m := New[int]()
	require.NoError(t, m.Insert(0, 1))
	require.NoError(t, m.Insert(4096, 2))
	require.Equal(t, 3, m.Height())

	_, ok := m.Remove(4096)
	require.True(t, ok)
	_, ok = m.Remove(0)
	require.True(t, ok)
	require.Equal(t, 0, m.Height())

	// Key zero goes back into the root cell, no nodes.
	require.NoError(t, m.Insert(0, 3))
	assert.Equal(t, 0, m.nodes.InUse())
	v, ok := m.Get(0)
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestRemoveDeepPath(t *testing.T) {
	m := New[string]()
	key := uint64(1) << 40
	require.NoError(t, m.Insert(key, "deep"))
	require.Equal(t, 7, m.Height())
	before := m.nodes.InUse()

	v, ok := m.Remove(key)
	require.True(t, ok)
	assert.Equal(t, "deep", v)
	assert.Equal(t, 0, m.Height())
	assert.Equal(t, 0, m.nodes.InUse())
	assert.Greater(t, before, 0)
}

func TestInterleavedInsertRemove(t *testing.T) {
	m := New[uint64]()
	for round := uint64(0); round < 10; round++ {
		base := round * 1000
		for i := uint64(0); i < 100; i++ {
			require.NoError(t, m.Insert(base+i, i))
		}
		for i := uint64(0); i < 100; i += 2 {
			_, ok := m.Remove(base + i)
			require.True(t, ok)
		}
	}
	assert.Equal(t, 500, m.Len())
	v, ok := m.Get(9001)
	require.True(t, ok)
	assert.Equal(t, uint64(1), v)
	_, ok = m.Get(9000)
	assert.False(t, ok)
}
