// Package bloom implements a probabilistic membership prefilter.
//
// A Filter answers "definitely not present" or "maybe present". False
// positives happen at a rate set by the filter's width and probe count,
// false negatives never happen. The intended use is the usual one in
// systems code: a cheap gate in front of an expensive lookup.
//
// Bits are numbered LSB0 over uint64 words, the bitmap package's
// convention. Probes use double hashing over a domain separated SHA-256,
// probe i lands on (h1 + i*h2) mod m.
package bloom

import (
	"crypto/sha256"
	"encoding/binary"
	"math"

	"github.com/forestrie/go-kernelkit/bitmap"
)

// hashDomain separates the filter's hashes from any other SHA-256 use
// over the same bytes.
const hashDomain = 0xb0

// Filter is a fixed width bloom filter. Construct with New or
// NewWithEstimate, the zero value is not usable. A Filter must not be
// used from multiple goroutines without external locking.
type Filter struct {
	words []uint64
	nbits uint64
	k     int
	adds  int
}

// New returns a filter nbits wide probed k times per element. Both must
// be positive.
func New(nbits, k int) *Filter {
	if nbits < 1 || k < 1 {
		panic("bloom: width and probe count must be positive")
	}
	return &Filter{
		words: make([]uint64, bitmap.WordsFor(uint(nbits))),
		nbits: uint64(nbits),
		k:     k,
	}
}

// NewWithEstimate sizes a filter for n elements at false positive rate
// fp, using the standard optimum m = -n ln fp / (ln 2)^2 and
// k = (m/n) ln 2.
func NewWithEstimate(n int, fp float64) *Filter {
	if n < 1 || fp <= 0 || fp >= 1 {
		panic("bloom: need n >= 1 and 0 < fp < 1")
	}
	m := math.Ceil(-float64(n) * math.Log(fp) / (math.Ln2 * math.Ln2))
	k := int(math.Round(m / float64(n) * math.Ln2))
	if k < 1 {
		k = 1
	}
	return New(int(m), k)
}

// Add inserts elem.
func (f *Filter) Add(elem []byte) {
	h1, h2 := hashPair(elem)
	for i := 0; i < f.k; i++ {
		bitmap.Set(f.words, uint((h1+uint64(i)*h2)%f.nbits))
	}
	f.adds++
}

// Has reports whether elem may have been added. False means definitely
// not present, true means maybe.
func (f *Filter) Has(elem []byte) bool {
	h1, h2 := hashPair(elem)
	for i := 0; i < f.k; i++ {
		if !bitmap.Test(f.words, uint((h1+uint64(i)*h2)%f.nbits)) {
			return false
		}
	}
	return true
}

// Adds returns how many elements have been added, repeats included.
func (f *Filter) Adds() int { return f.adds }

// Bits returns the filter width in bits.
func (f *Filter) Bits() int { return int(f.nbits) }

// Hashes returns the probe count per element.
func (f *Filter) Hashes() int { return f.k }

// FillRatio returns the fraction of bits set.
func (f *Filter) FillRatio() float64 {
	return float64(bitmap.OnesCount(f.words)) / float64(f.nbits)
}

// Reset clears the filter for reuse.
func (f *Filter) Reset() {
	bitmap.ClearAll(f.words)
	f.adds = 0
}

// hashPair derives the double hashing seeds. h2 is forced nonzero so the
// probe sequence always moves.
func hashPair(elem []byte) (uint64, uint64) {
	h := sha256.New()
	h.Write([]byte{hashDomain})
	h.Write(elem)
	sum := h.Sum(nil)
	h1 := binary.BigEndian.Uint64(sum[0:8])
	h2 := binary.BigEndian.Uint64(sum[8:16])
	if h2 == 0 {
		h2 = 1
	}
	return h1, h2
}
