// Package bitmap provides fixed-width bit vector primitives over caller-owned
// word spans.
//
// A vector of n bits is stored LSB0 in a []uint64 of WordsFor(n) words: bit i
// lives in words[i/WordBits] at position i%WordBits. The span is allocated and
// owned by the caller, typically as a fixed-size array field sliced at the
// call site, so none of these functions allocate.
//
// In the interest of efficiency the functions place a burden of knowledge on
// the caller: indexes are not range checked beyond the natural bounds of the
// span, and bits at positions >= nbits in the final word must be zero for the
// scanning predicates to be meaningful.
package bitmap

import "math/bits"

// WordBits is the width of a single span word.
const WordBits = 64

// WordsFor returns the number of words required to hold nbits bits.
func WordsFor(nbits uint) int {
	return int((nbits + WordBits - 1) / WordBits)
}

// Set sets bit i.
func Set(words []uint64, i uint) {
	words[i/WordBits] |= 1 << (i % WordBits)
}

// Clear clears bit i.
func Clear(words []uint64, i uint) {
	words[i/WordBits] &^= 1 << (i % WordBits)
}

// Test reports whether bit i is set.
func Test(words []uint64, i uint) bool {
	return words[i/WordBits]&(1<<(i%WordBits)) != 0
}

// ClearAll zeroes the span.
func ClearAll(words []uint64) {
	for i := range words {
		words[i] = 0
	}
}

// None reports whether no bit in the span is set.
func None(words []uint64) bool {
	var or uint64
	for _, w := range words {
		or |= w
	}
	return or == 0
}

// Full reports whether every bit below nbits is set.
func Full(words []uint64, nbits uint) bool {
	whole := nbits / WordBits
	for _, w := range words[:whole] {
		if w != ^uint64(0) {
			return false
		}
	}
	if rem := nbits % WordBits; rem != 0 {
		mask := uint64(1)<<rem - 1
		return words[whole]&mask == mask
	}
	return true
}

// OnesCount returns the number of set bits in the span.
func OnesCount(words []uint64) uint {
	var n int
	for _, w := range words {
		n += bits.OnesCount64(w)
	}
	return uint(n)
}

// FirstSet returns the lowest set bit below nbits.
func FirstSet(words []uint64, nbits uint) (uint, bool) {
	for wi, w := range words {
		if w == 0 {
			continue
		}
		i := uint(wi)*WordBits + uint(bits.TrailingZeros64(w))
		if i >= nbits {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// FirstZero returns the lowest clear bit below nbits.
func FirstZero(words []uint64, nbits uint) (uint, bool) {
	for wi, w := range words {
		if w == ^uint64(0) {
			continue
		}
		i := uint(wi)*WordBits + uint(bits.TrailingZeros64(^w))
		if i >= nbits {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// NextSet returns the lowest set bit at position from or above, below nbits.
func NextSet(words []uint64, nbits, from uint) (uint, bool) {
	if from >= nbits {
		return 0, false
	}
	wi := from / WordBits
	w := words[wi] &^ (1<<(from%WordBits) - 1)
	for {
		if w != 0 {
			i := wi*WordBits + uint(bits.TrailingZeros64(w))
			if i >= nbits {
				return 0, false
			}
			return i, true
		}
		wi++
		if wi >= uint(len(words)) {
			return 0, false
		}
		w = words[wi]
	}
}
