package bitmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordsFor(t *testing.T) {
	type args struct {
		nbits uint
	}
	tests := []struct {
		name string
		args args
		want int
	}{
		{"0 -> 0", args{0}, 0},
		{"1 -> 1", args{1}, 1},
		{"63 -> 1", args{63}, 1},
		{"64 -> 1", args{64}, 1},
		{"65 -> 2", args{65}, 2},
		{"128 -> 2", args{128}, 2},
		{"129 -> 3", args{129}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordsFor(tt.args.nbits); got != tt.want {
				t.Errorf("WordsFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetClearTest(t *testing.T) {
	var span [3]uint64
	words := span[:]

	for _, i := range []uint{0, 1, 63, 64, 100, 191} {
		require.False(t, Test(words, i))
		Set(words, i)
		require.True(t, Test(words, i), "bit %d must read back set", i)
	}
	assert.Equal(t, uint(6), OnesCount(words))

	Clear(words, 64)
	assert.False(t, Test(words, 64))
	assert.True(t, Test(words, 63))
	assert.True(t, Test(words, 100))
	assert.Equal(t, uint(5), OnesCount(words))

	ClearAll(words)
	assert.True(t, None(words))
	assert.Equal(t, uint(0), OnesCount(words))
}

func TestFirstZero(t *testing.T) {
	tests := []struct {
		name   string
		set    []uint
		nbits  uint
		want   uint
		wantOK bool
	}{
		{"empty span yields 0", nil, 64, 0, true},
		{"bit 0 set yields 1", []uint{0}, 64, 1, true},
		{"low run set yields first gap", []uint{0, 1, 2, 3}, 64, 4, true},
		{"gap inside run", []uint{0, 1, 3, 4}, 64, 2, true},
		{"full word yields none", allBits(0, 64), 64, 0, false},
		{"zero crosses word boundary", allBits(0, 64), 128, 64, true},
		{"narrow width masks tail", allBits(0, 6), 6, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := make([]uint64, WordsFor(tt.nbits))
			for _, i := range tt.set {
				Set(words, i)
			}
			got, ok := FirstZero(words, tt.nbits)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("FirstZero() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFirstSet(t *testing.T) {
	tests := []struct {
		name   string
		set    []uint
		nbits  uint
		want   uint
		wantOK bool
	}{
		{"empty span yields none", nil, 128, 0, false},
		{"single low bit", []uint{5}, 64, 5, true},
		{"lowest of several", []uint{40, 9, 63}, 64, 9, true},
		{"set bit in second word", []uint{70}, 128, 70, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := make([]uint64, WordsFor(tt.nbits))
			for _, i := range tt.set {
				Set(words, i)
			}
			got, ok := FirstSet(words, tt.nbits)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("FirstSet() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNextSet(t *testing.T) {
	words := make([]uint64, 2)
	for _, i := range []uint{3, 64, 90} {
		Set(words, i)
	}

	tests := []struct {
		name   string
		from   uint
		want   uint
		wantOK bool
	}{
		{"from 0 finds 3", 0, 3, true},
		{"from 3 finds 3", 3, 3, true},
		{"from 4 skips to next word", 4, 64, true},
		{"from 65 finds 90", 65, 90, true},
		{"from 91 finds nothing", 91, 0, false},
		{"from width finds nothing", 128, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextSet(words, 128, tt.from)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("NextSet(%d) = (%v, %v), want (%v, %v)", tt.from, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFull(t *testing.T) {
	words := make([]uint64, 2)
	assert.False(t, Full(words, 128))

	for i := uint(0); i < 128; i++ {
		Set(words, i)
	}
	assert.True(t, Full(words, 128))

	Clear(words, 127)
	assert.False(t, Full(words, 128))
	assert.True(t, Full(words, 127))

	// A partial final word only counts the bits below nbits.
	narrow := make([]uint64, 1)
	for i := uint(0); i < 6; i++ {
		Set(narrow, i)
	}
	assert.True(t, Full(narrow, 6))
	assert.False(t, Full(narrow, 7))
}

func allBits(lo, hi uint) []uint {
	out := make([]uint, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, i)
	}
	return out
}
