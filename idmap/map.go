package idmap

import (
	"github.com/forestrie/go-kernelkit/alloc"
)

// Map is a sparse uint64 keyed map backed by a radix tree. The zero value
// is not usable, construct with New.
type Map[V any] struct {
	root   slot[V]
	height uint8
	count  int

	// gen stamps outstanding Slot and Iterator handles. Structural
	// mutations bump it, which is what makes stale use detectable.
	gen uint64

	firstFit bool
	gate     alloc.Gate
	nodes    *alloc.Pool[node[V]]
}

// New returns an empty map.
func New[V any](opts ...Option) *Map[V] {
	c := config{gate: alloc.Unlimited()}
	for _, o := range opts {
		o(&c)
	}
	return &Map[V]{
		firstFit: c.firstFit,
		gate:     c.gate,
		nodes:    alloc.NewPool[node[V]](),
	}
}

// Len returns the number of entries.
func (m *Map[V]) Len() int { return m.count }

// Height returns the current tree height. Height zero means no nodes are
// allocated at all. Exposed because growth and collapse behaviour is part
// of the map's contract, not an implementation accident.
func (m *Map[V]) Height() int { return int(m.height) }

// Nodes returns the number of tree nodes currently live, which is also
// the map's storage footprint in units of node acquisitions.
func (m *Map[V]) Nodes() int { return m.nodes.InUse() }

// slotRef names a cell: a slot of node n, or the root cell when n is nil.
type slotRef[V any] struct {
	n   *node[V]
	idx uint8
}

func (m *Map[V]) slotAt(r slotRef[V]) *slot[V] {
	if r.n == nil {
		return &m.root
	}
	return &r.n.slots[r.idx]
}

// lookup walks to the cell holding key. It never modifies the tree.
func (m *Map[V]) lookup(key uint64) (slotRef[V], bool) {
	if heightFor(key) > int(m.height) {
		return slotRef[V]{}, false
	}
	if m.height == 0 {
		if m.root.kind != slotValue {
			return slotRef[V]{}, false
		}
		return slotRef[V]{}, true
	}
	n := m.root.child
	for h := int(m.height) - 1; h >= 1; h-- {
		s := &n.slots[digit(key, h)]
		if s.kind != slotChild {
			return slotRef[V]{}, false
		}
		n = s.child
	}
	idx := uint8(key & radixMask)
	if n.slots[idx].kind != slotValue {
		return slotRef[V]{}, false
	}
	return slotRef[V]{n: n, idx: idx}, true
}

// Get returns the value stored at key.
func (m *Map[V]) Get(key uint64) (V, bool) {
	r, ok := m.lookup(key)
	if !ok {
		var zero V
		return zero, false
	}
	return m.slotAt(r).val, true
}

// GetSlot returns a handle on the cell holding key, for in place
// replacement via Slot.Swap. The handle is good until the next structural
// mutation.
func (m *Map[V]) GetSlot(key uint64) (*Slot[V], bool) {
	r, ok := m.lookup(key)
	if !ok {
		return nil, false
	}
	return &Slot[V]{m: m, n: r.n, idx: r.idx, gen: m.gen}, true
}

func (m *Map[V]) newNode() (*node[V], error) {
	if err := m.gate.Acquire(); err != nil {
		return nil, err
	}
	return m.nodes.Get(), nil
}

func (m *Map[V]) freeNode(n *node[V]) {
	m.nodes.Put(n)
	m.gate.Release(1)
}
