package rbtree

// ReplaceOrInsert adds item, or replaces the stored item sorting equal to
// it. It returns the displaced item if there was one. Replacement touches
// no links, the tree shape only changes when the item is genuinely new.
func (t *Tree[T]) ReplaceOrInsert(item T) (T, bool) {
	var zero T
	parent := t.sentinel
	x := t.root
	for x != t.sentinel {
		parent = x
		switch {
		case t.less(item, x.item):
			x = x.left
		case t.less(x.item, item):
			x = x.right
		default:
			old := x.item
			x.item = item
			return old, true
		}
	}

	n := &node[T]{left: t.sentinel, right: t.sentinel, parent: parent, c: red, item: item}
	switch {
	case parent == t.sentinel:
		t.root = n
	case t.less(item, parent.item):
		parent.left = n
	default:
		parent.right = n
	}
	t.size++
	t.insertFixup(n)
	return zero, false
}

// insertFixup restores the red black properties after hanging the red node
// z off the tree. The loop invariant is the textbook one: the only possible
// violation is z and its parent both red.
func (t *Tree[T]) insertFixup(z *node[T]) {
	for z.parent.c == red {
		if z.parent == z.parent.parent.left {
			uncle := z.parent.parent.right
			if uncle.c == red {
				z.parent.c = black
				uncle.c = black
				z.parent.parent.c = red
				z = z.parent.parent
				continue
			}
			if z == z.parent.right {
				z = z.parent
				t.rotateLeft(z)
			}
			z.parent.c = black
			z.parent.parent.c = red
			t.rotateRight(z.parent.parent)
		} else {
			uncle := z.parent.parent.left
			if uncle.c == red {
				z.parent.c = black
				uncle.c = black
				z.parent.parent.c = red
				z = z.parent.parent
				continue
			}
			if z == z.parent.left {
				z = z.parent
				t.rotateRight(z)
			}
			z.parent.c = black
			z.parent.parent.c = red
			t.rotateLeft(z.parent.parent)
		}
	}
	t.root.c = black
}
