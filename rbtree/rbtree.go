// Package rbtree provides an ordered collection over a comparator, backed
// by a red black tree. It is the structure for ordered iteration, nearest
// neighbour style queries and predictable log n updates when keys are not
// the small dense integers idmap wants.
//
// Items are compared by the less function given to New, two items neither
// of which is less than the other are the same item. ReplaceOrInsert and
// Delete return the displaced item, which is how callers keyed on a field
// of a larger struct recover the stored value.
//
// A Tree must not be used from multiple goroutines without external
// locking.
package rbtree

type color uint8

const (
	red color = iota
	black
)

type node[T any] struct {
	left, right, parent *node[T]
	c                   color
	item                T
}

// Tree is an ordered collection of items. Construct with New, the zero
// value is not usable.
type Tree[T any] struct {
	root *node[T]
	// sentinel stands in for every absent child and the root's parent.
	// It is always black, which is what keeps the rebalancing walks free
	// of nil checks.
	sentinel *node[T]
	less     func(a, b T) bool
	size     int
}

// New returns an empty tree ordered by less.
func New[T any](less func(a, b T) bool) *Tree[T] {
	s := &node[T]{c: black}
	s.left, s.right, s.parent = s, s, s
	return &Tree[T]{root: s, sentinel: s, less: less}
}

// Len returns the number of items.
func (t *Tree[T]) Len() int { return t.size }

// Get returns the stored item that sorts equal to item.
func (t *Tree[T]) Get(item T) (T, bool) {
	x := t.root
	for x != t.sentinel {
		switch {
		case t.less(item, x.item):
			x = x.left
		case t.less(x.item, item):
			x = x.right
		default:
			return x.item, true
		}
	}
	var zero T
	return zero, false
}

// Min returns the smallest item.
func (t *Tree[T]) Min() (T, bool) {
	if t.root == t.sentinel {
		var zero T
		return zero, false
	}
	return t.minimum(t.root).item, true
}

// Max returns the largest item.
func (t *Tree[T]) Max() (T, bool) {
	if t.root == t.sentinel {
		var zero T
		return zero, false
	}
	x := t.root
	for x.right != t.sentinel {
		x = x.right
	}
	return x.item, true
}

func (t *Tree[T]) minimum(x *node[T]) *node[T] {
	for x.left != t.sentinel {
		x = x.left
	}
	return x
}

func (t *Tree[T]) rotateLeft(x *node[T]) {
	y := x.right
	x.right = y.left
	if y.left != t.sentinel {
		y.left.parent = x
	}
	y.parent = x.parent
	if x.parent == t.sentinel {
		t.root = y
	} else if x == x.parent.left {
		x.parent.left = y
	} else {
		x.parent.right = y
	}
	y.left = x
	x.parent = y
}

func (t *Tree[T]) rotateRight(x *node[T]) {
	y := x.left
	x.left = y.right
	if y.right != t.sentinel {
		y.right.parent = x
	}
	y.parent = x.parent
	if x.parent == t.sentinel {
		t.root = y
	} else if x == x.parent.right {
		x.parent.right = y
	} else {
		x.parent.left = y
	}
	y.right = x
	x.parent = y
}
