package idmap

import (
	"github.com/forestrie/go-kernelkit/bitmap"
)

// Iterator walks the map in ascending key order. It holds no stack, the
// walk rides the parent links, so it costs nothing to create. Key, Value
// and Slot are valid only while the latest Next has returned true.
//
// The iterator is invalidated by structural mutations like Insert or
// Remove and panics on use afterwards. Replacing values through Slot.Swap
// during the walk is the supported way to update entries mid iteration.
type Iterator[V any] struct {
	m       *Map[V]
	gen     uint64
	n       *node[V]
	idx     uint8
	key     uint64
	started bool
	done    bool
}

// Iter returns an iterator positioned before the first entry.
func (m *Map[V]) Iter() *Iterator[V] {
	return &Iterator[V]{m: m, gen: m.gen}
}

// Next advances to the next entry, returning false when the map is
// exhausted.
func (it *Iterator[V]) Next() bool {
	m := it.m
	if it.gen != m.gen {
		panic("idmap: iterator used after map mutation")
	}
	if it.done {
		return false
	}
	if m.height == 0 {
		if it.started || m.root.kind != slotValue {
			it.done = true
			return false
		}
		it.started = true
		it.key = 0
		return true
	}

	var n *node[V]
	var from uint
	var level int
	if !it.started {
		it.started = true
		n, from, level = m.root.child, 0, int(m.height)-1
	} else {
		n, from, level = it.n, uint(it.idx)+1, 0
	}
	for {
		d, ok := bitmap.NextSet(n.occ[:], fanout, from)
		if !ok {
			if n.parent == nil {
				it.done = true
				return false
			}
			from, n, level = uint(n.parentIdx)+1, n.parent, level+1
			continue
		}
		if level == 0 {
			it.n, it.idx = n, uint8(d)
			it.key = leafKey(n, d)
			return true
		}
		n, from, level = n.slots[d].child, 0, level-1
	}
}

// Key returns the key of the current entry.
func (it *Iterator[V]) Key() uint64 { return it.key }

// Value returns the value of the current entry.
func (it *Iterator[V]) Value() V {
	if it.n == nil {
		return it.m.root.val
	}
	return it.n.slots[it.idx].val
}

// Slot returns a handle on the current entry's cell, for in place
// replacement during the walk.
func (it *Iterator[V]) Slot() *Slot[V] {
	return &Slot[V]{m: it.m, n: it.n, idx: it.idx, gen: it.gen}
}

// Drain empties the map, calling fn, if non nil, with every entry in
// ascending key order, and frees all nodes in one pass. It is the cheap
// way to tear a populated map down, no per key descents and no collapse
// cascades. fn must not touch the map.
func (m *Map[V]) Drain(fn func(key uint64, v V)) {
	defer func() {
		m.root = slot[V]{}
		m.height = 0
		m.count = 0
		m.gen++
	}()
	if m.height == 0 {
		if m.root.kind == slotValue && fn != nil {
			fn(0, m.root.val)
		}
		return
	}
	n := m.root.child
	level := int(m.height) - 1
	from := uint(0)
	for {
		d, ok := bitmap.NextSet(n.occ[:], fanout, from)
		if !ok {
			// Everything beneath n has been visited and freed.
			p, pi := n.parent, uint(n.parentIdx)
			m.freeNode(n)
			if p == nil {
				return
			}
			n, level, from = p, level+1, pi+1
			continue
		}
		if level == 0 {
			if fn != nil {
				fn(leafKey(n, d), n.slots[d].val)
			}
			from = d + 1
			continue
		}
		n, level, from = n.slots[d].child, level-1, 0
	}
}
