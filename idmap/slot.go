package idmap

// Slot is a handle on the cell holding one entry, good for reading and
// replacing the value without another descent. It is invalidated by any
// structural mutation of the map, inserts, removals, allocations and
// drains all count, and using it afterwards panics. Swap itself is not
// structural, a chain of swaps through one handle is fine.
type Slot[V any] struct {
	m   *Map[V]
	n   *node[V]
	idx uint8
	gen uint64
}

func (s *Slot[V]) cell() *slot[V] {
	if s.gen != s.m.gen {
		panic("idmap: slot used after map mutation")
	}
	return s.m.slotAt(slotRef[V]{n: s.n, idx: s.idx})
}

// Value returns the value currently in the cell.
func (s *Slot[V]) Value() V {
	return s.cell().val
}

// Swap replaces the cell's value and returns the previous one. The key
// keeps its identity, only the value changes, so iterators and other
// slots stay valid.
func (s *Slot[V]) Swap(v V) V {
	c := s.cell()
	old := c.val
	c.val = v
	return old
}
