package idmap

import (
	"math/bits"

	"github.com/forestrie/go-kernelkit/bitmap"
)

const (
	// radixBits is how many key bits one tree level consumes. Everything
	// below derives from it and from the 64 bit key width.
	radixBits = 6
	fanout    = 1 << radixBits
	radixMask = fanout - 1

	// spanWords sizes the per node bitmaps.
	spanWords = (fanout + bitmap.WordBits - 1) / bitmap.WordBits

	// maxHeight is the height spanning every uint64 key. The root node of
	// a tree this tall only addresses its first few slots.
	maxHeight = (64 + radixBits - 1) / radixBits
)

type slotKind uint8

const (
	slotEmpty slotKind = iota
	slotChild
	slotValue
)

// slot is one cell of a node, and also the type of the tree root. The kind
// discriminant says which field is live: interior cells hold children, leaf
// cells hold values, and the root holds either a child or, for a height
// zero map, the value for key zero directly.
type slot[V any] struct {
	kind  slotKind
	child *node[V]
	val   V
}

// node is one radix level. occ tracks which slots are non empty and drives
// both iteration and the collapse cascade. full tracks, for interior nodes
// of a first fit map, which child subtrees are saturated. Leaves never use
// full, their occ is their saturation.
type node[V any] struct {
	slots [fanout]slot[V]
	occ   [spanWords]uint64
	full  [spanWords]uint64

	parent    *node[V]
	parentIdx uint8
}

// saturated reports whether the subtree rooted at n holds every key in its
// span. level is n's distance from the leaves.
func (n *node[V]) saturated(level int) bool {
	if level == 0 {
		return bitmap.Full(n.occ[:], fanout)
	}
	return bitmap.Full(n.full[:], fanout)
}

// digit extracts the slot index key uses at the given level.
func digit(key uint64, level int) uint {
	return uint(key>>(uint(level)*radixBits)) & radixMask
}

// heightFor returns the smallest tree height whose span covers key. Key
// zero is representable at height zero, in the root cell itself.
func heightFor(key uint64) int {
	if key == 0 {
		return 0
	}
	return (bits.Len64(key) + radixBits - 1) / radixBits
}

// topSpan returns how many root node slots are addressable at height h.
// Only the maximum height tree has a partial root, 64 bits of key do not
// divide evenly into 6 bit digits.
func topSpan(h int) uint {
	if h < maxHeight {
		return fanout
	}
	return 1 << (64 - uint(maxHeight-1)*radixBits)
}

// leafKey reconstructs the key for slot idx of leaf n from the parent
// links. The walk is bounded by the tree height.
func leafKey[V any](n *node[V], idx uint) uint64 {
	key := uint64(idx)
	shift := uint(radixBits)
	for ; n.parent != nil; n = n.parent {
		key |= uint64(n.parentIdx) << shift
		shift += radixBits
	}
	return key
}
