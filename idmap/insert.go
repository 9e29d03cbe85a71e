package idmap

import (
	"fmt"

	"github.com/forestrie/go-kernelkit/bitmap"
)

// Insert stores v at key, growing the tree as needed. It returns
// ErrDuplicateKey if the key is taken, or the gate's error if node
// acquisition is refused. A failed insert leaves the map exactly as it
// was.
func (m *Map[V]) Insert(key uint64, v V) error {
	r, err := m.createSlot(key)
	if err != nil {
		return fmt.Errorf("idmap: insert %d: %w", key, err)
	}
	if m.slotAt(r).kind == slotValue {
		return fmt.Errorf("%w: %d", ErrDuplicateKey, key)
	}
	m.storeAt(r, v)
	return nil
}

// InsertSlot is Insert returning a handle on the new cell.
func (m *Map[V]) InsertSlot(key uint64, v V) (*Slot[V], error) {
	r, err := m.createSlot(key)
	if err != nil {
		return nil, fmt.Errorf("idmap: insert %d: %w", key, err)
	}
	if m.slotAt(r).kind == slotValue {
		return nil, fmt.Errorf("%w: %d", ErrDuplicateKey, key)
	}
	m.storeAt(r, v)
	return &Slot[V]{m: m, n: r.n, idx: r.idx, gen: m.gen}, nil
}

// createSlot returns the cell for key, raising the height and filling in
// the path as needed. Every node the operation could need is acquired
// before the tree is touched, so a refused acquisition returns with the
// map unmodified. A key whose cell already exists allocates nothing, which
// also means a duplicate insert has no side effects.
func (m *Map[V]) createSlot(key uint64) (slotRef[V], error) {
	needed := int(m.height)
	if h := heightFor(key); h > needed {
		needed = h
	}
	if needed == 0 {
		return slotRef[V]{}, nil
	}

	// Count the nodes the path is missing. Growing a non empty tree
	// wraps the old root once per added level, and everything on the key
	// path below the existing structure is fresh.
	wraps := 0
	if needed > int(m.height) && m.root.kind != slotEmpty {
		wraps = needed - int(m.height)
	}
	var missing int
	switch {
	case m.root.kind == slotEmpty:
		missing = needed
	case wraps > 0:
		// The key diverges from the wrapped spine at the new root, its
		// top digit is what forced the growth.
		missing = wraps + needed - 1
	default:
		n := m.root.child
		h := int(m.height) - 1
		for ; h >= 1; h-- {
			s := &n.slots[digit(key, h)]
			if s.kind == slotEmpty {
				break
			}
			n = s.child
		}
		missing = h
	}

	var created [2 * maxHeight]*node[V]
	for i := 0; i < missing; i++ {
		n, err := m.newNode()
		if err != nil {
			for j := i - 1; j >= 0; j-- {
				m.freeNode(created[j])
			}
			return slotRef[V]{}, err
		}
		created[i] = n
	}
	next := 0
	take := func() *node[V] {
		n := created[next]
		next++
		return n
	}

	// From here on nothing can fail. Wrap the old root up to the needed
	// height, slot 0 of each wrap keeps every existing key in place.
	if wraps > 0 {
		prev := m.root
		for w := 0; w < wraps; w++ {
			n := take()
			n.slots[0] = prev
			bitmap.Set(n.occ[:], 0)
			if prev.kind == slotChild {
				prev.child.parent = n
				prev.child.parentIdx = 0
				level := int(m.height) + w
				if m.firstFit && prev.child.saturated(level-1) {
					bitmap.Set(n.full[:], 0)
				}
			}
			prev = slot[V]{kind: slotChild, child: n}
		}
		m.root = prev
	}
	m.height = uint8(needed)

	// Descend to the leaf, linking the acquired nodes into the gaps.
	var n *node[V]
	if m.root.kind == slotEmpty {
		n = take()
		m.root = slot[V]{kind: slotChild, child: n}
	} else {
		n = m.root.child
	}
	for h := needed - 1; h >= 1; h-- {
		d := digit(key, h)
		s := &n.slots[d]
		if s.kind == slotEmpty {
			c := take()
			c.parent = n
			c.parentIdx = uint8(d)
			*s = slot[V]{kind: slotChild, child: c}
			bitmap.Set(n.occ[:], d)
			n = c
		} else {
			n = s.child
		}
	}
	return slotRef[V]{n: n, idx: uint8(key & radixMask)}, nil
}

// storeAt writes v into the empty cell named by r and updates occupancy
// and, in first fit mode, saturation.
func (m *Map[V]) storeAt(r slotRef[V], v V) {
	s := m.slotAt(r)
	s.kind = slotValue
	s.val = v
	m.count++
	m.gen++
	if r.n == nil {
		return
	}
	bitmap.Set(r.n.occ[:], uint(r.idx))
	if m.firstFit && bitmap.Full(r.n.occ[:], fanout) {
		m.propagateFull(r.n)
	}
}

// propagateFull records upward that n's subtree just became saturated,
// stopping at the first ancestor that still has room elsewhere.
func (m *Map[V]) propagateFull(n *node[V]) {
	for p := n.parent; p != nil; p = n.parent {
		bitmap.Set(p.full[:], uint(n.parentIdx))
		if !bitmap.Full(p.full[:], fanout) {
			return
		}
		n = p
	}
}
