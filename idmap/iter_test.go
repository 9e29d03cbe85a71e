package idmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect[V any](t *testing.T, m *Map[V]) ([]uint64, []V) {
	t.Helper()
	var keys []uint64
	var vals []V
	for it := m.Iter(); it.Next(); {
		keys = append(keys, it.Key())
		vals = append(vals, it.Value())
	}
	return keys, vals
}

func TestIterAscending(t *testing.T) {
	tests := []struct {
		name string
		keys []uint64
	}{
		{"empty", nil},
		{"key zero only", []uint64{0}},
		{"single leaf", []uint64{3, 17, 63}},
		{"across leaves", []uint64{0, 63, 64, 127, 128}},
		{"sparse magnitudes", []uint64{1 << 40, 0, 4096, 64, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New[uint64]()
			for _, key := range tt.keys {
				require.NoError(t, m.Insert(key, key*2))
			}

			keys, vals := collect(t, m)
			require.Len(t, keys, len(tt.keys))
			for i := 1; i < len(keys); i++ {
				require.Less(t, keys[i-1], keys[i], "keys must ascend")
			}
			for i, key := range keys {
				assert.Equal(t, key*2, vals[i])
			}
		})
	}
}

func TestIterExhaustedStaysExhausted(t *testing.T) {
	m := New[int]()
	require.NoError(t, m.Insert(0, 1))

	it := m.Iter()
	require.True(t, it.Next())
	require.False(t, it.Next())
	require.False(t, it.Next())
}

func TestIterPanicsAfterMutation(t *testing.T) {
	m := New[int]()
	require.NoError(t, m.Insert(1, 10))
	require.NoError(t, m.Insert(2, 20))

	it := m.Iter()
	require.True(t, it.Next())
	require.NoError(t, m.Insert(3, 30))

	assert.PanicsWithValue(t, "idmap: iterator used after map mutation", func() {
		it.Next()
	})
}

func TestIterSwapDuringWalk(t *testing.T) {
	// Replacing values through the iterator's slot is the sanctioned way
	// to update entries mid walk, it must not disturb the iteration.
	m := New[int]()
	for _, key := range []uint64{2, 70, 4096} {
		require.NoError(t, m.Insert(key, 1))
	}

	seen := 0
	for it := m.Iter(); it.Next(); {
		old := it.Slot().Swap(-1)
		assert.Equal(t, 1, old)
		seen++
	}
	require.Equal(t, 3, seen)

	for _, key := range []uint64{2, 70, 4096} {
		v, ok := m.Get(key)
		require.True(t, ok)
		assert.Equal(t, -1, v)
	}
}

func TestDrain(t *testing.T) {
	m := New[uint64]()
	want := []uint64{0, 5, 64, 4095, 1 << 30}
	for _, key := range want {
		require.NoError(t, m.Insert(key, key+1))
	}
	before := m.nodes.InUse()
	require.Greater(t, before, 0)

	var keys []uint64
	m.Drain(func(key uint64, v uint64) {
		assert.Equal(t, key+1, v)
		keys = append(keys, key)
	})

	assert.Equal(t, want, keys, "drain visits in ascending key order")
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.Height())
	assert.Equal(t, 0, m.nodes.InUse(), "every node freed")

	for _, key := range want {
		_, ok := m.Get(key)
		assert.False(t, ok)
	}
}

func TestDrainNilCallbackClears(t *testing.T) {
	m := New[int]()
	for key := uint64(0); key < 200; key++ {
		require.NoError(t, m.Insert(key, 1))
	}
	m.Drain(nil)
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.nodes.InUse())
}

func TestDrainEmptyMap(t *testing.T) {
	m := New[int]()
	called := false
	m.Drain(func(uint64, int) { called = true })
	assert.False(t, called)
}

func TestDrainHeightZeroValue(t *testing.T) {
	m := New[string]()
	require.NoError(t, m.Insert(0, "only"))

	var got []string
	m.Drain(func(key uint64, v string) {
		assert.Equal(t, uint64(0), key)
		got = append(got, v)
	})
	assert.Equal(t, []string{"only"}, got)
	assert.Equal(t, 0, m.Len())
}
