package idmap

import "testing"

func BenchmarkInsertDense(b *testing.B) {
	m := New[int]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Insert(uint64(i), i)
	}
}

func BenchmarkGet(b *testing.B) {
	m := New[int]()
	const n = 1 << 16
	for i := uint64(0); i < n; i++ {
		_ = m.Insert(i, int(i))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Get(uint64(i) & (n - 1))
	}
}

func BenchmarkAlloc(b *testing.B) {
	m := New[int](WithFirstFit())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Alloc(i)
	}
}

func BenchmarkAllocRemoveChurn(b *testing.B) {
	m := New[int](WithFirstFit())
	for i := 0; i < 1024; i++ {
		_, _ = m.Alloc(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := uint64(i) & 1023
		_, _ = m.Remove(key)
		_, _ = m.Alloc(i)
	}
}
