package idmap

import (
	"github.com/forestrie/go-kernelkit/bitmap"
)

// Remove deletes key and returns the value it held. Nodes left empty are
// freed on the way back to the root, and removing the last entry returns
// the map to height zero.
func (m *Map[V]) Remove(key uint64) (V, bool) {
	var zero V
	if heightFor(key) > int(m.height) {
		return zero, false
	}
	if m.height == 0 {
		if m.root.kind != slotValue {
			return zero, false
		}
		v := m.root.val
		m.root = slot[V]{}
		m.count--
		m.gen++
		return v, true
	}
	n := m.root.child
	for h := int(m.height) - 1; h >= 1; h-- {
		s := &n.slots[digit(key, h)]
		if s.kind != slotChild {
			return zero, false
		}
		n = s.child
	}
	idx := uint(key & radixMask)
	s := &n.slots[idx]
	if s.kind != slotValue {
		return zero, false
	}
	v := s.val
	*s = slot[V]{}
	if m.firstFit {
		m.clearFullUpward(n)
	}
	bitmap.Clear(n.occ[:], idx)
	m.count--
	m.gen++
	m.collapse(n)
	return v, true
}

// clearFullUpward clears the saturation bits invalidated by removing an
// entry beneath n. An ancestor whose bit is already clear terminates the
// walk, nothing above it can be marked either.
func (m *Map[V]) clearFullUpward(n *node[V]) {
	for p := n.parent; p != nil; p = n.parent {
		if !bitmap.Test(p.full[:], uint(n.parentIdx)) {
			return
		}
		bitmap.Clear(p.full[:], uint(n.parentIdx))
		n = p
	}
}

// collapse frees nodes left empty by a removal, cascading rootward. The
// freed child's saturation bit needs no attention here, a node that just
// emptied cannot have been marked full.
func (m *Map[V]) collapse(n *node[V]) {
	for bitmap.None(n.occ[:]) {
		p, idx := n.parent, uint(n.parentIdx)
		m.freeNode(n)
		if p == nil {
			m.root = slot[V]{}
			m.height = 0
			return
		}
		p.slots[idx] = slot[V]{}
		bitmap.Clear(p.occ[:], idx)
		n = p
	}
}
