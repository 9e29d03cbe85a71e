package idmap

import (
	"fmt"

	"github.com/forestrie/go-kernelkit/bitmap"
)

// Alloc stores v at the lowest free key and returns that key. It panics if
// the map was built without WithFirstFit, that is a programming error, not
// a runtime condition. Freed keys are reused before fresh ones.
func (m *Map[V]) Alloc(v V) (uint64, error) {
	key, _, err := m.alloc(v)
	return key, err
}

// AllocSlot is Alloc returning a handle on the new cell as well.
func (m *Map[V]) AllocSlot(v V) (uint64, *Slot[V], error) {
	key, r, err := m.alloc(v)
	if err != nil {
		return 0, nil, err
	}
	return key, &Slot[V]{m: m, n: r.n, idx: r.idx, gen: m.gen}, nil
}

func (m *Map[V]) alloc(v V) (uint64, slotRef[V], error) {
	if !m.firstFit {
		panic("idmap: Alloc on a map built without WithFirstFit")
	}
	key, ok := m.allocKey()
	if !ok {
		// Saturated at the current height. One more level makes the old
		// span slot 0 of the new root, so the lowest free key is the old
		// capacity.
		if int(m.height) == maxHeight {
			return 0, slotRef[V]{}, ErrKeySpace
		}
		if m.height == 0 {
			key = 1
		} else {
			key = uint64(1) << (uint(m.height) * radixBits)
		}
	}
	r, err := m.createSlot(key)
	if err != nil {
		return 0, slotRef[V]{}, fmt.Errorf("idmap: alloc: %w", err)
	}
	m.storeAt(r, v)
	return key, r, nil
}

// allocKey walks the saturation bits to the lowest free key within the
// current height, reporting false when the tree is completely occupied.
// Nothing is modified, growth and storage are the caller's problem.
func (m *Map[V]) allocKey() (uint64, bool) {
	if m.height == 0 {
		return 0, m.root.kind == slotEmpty
	}
	n := m.root.child
	span := topSpan(int(m.height))
	var key uint64
	for h := int(m.height) - 1; ; h-- {
		var d uint
		var ok bool
		if h == 0 {
			d, ok = bitmap.FirstZero(n.occ[:], span)
		} else {
			d, ok = bitmap.FirstZero(n.full[:], span)
		}
		if !ok {
			// Only the root can be saturated without its parent knowing.
			return 0, false
		}
		key |= uint64(d) << (uint(h) * radixBits)
		if h == 0 {
			return key, true
		}
		s := &n.slots[d]
		if s.kind == slotEmpty {
			// The whole subtree is free, the lowest key in it has zero
			// for every remaining digit.
			return key, true
		}
		n = s.child
		span = fanout
	}
}
