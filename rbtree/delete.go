package rbtree

// Delete removes and returns the stored item sorting equal to item.
func (t *Tree[T]) Delete(item T) (T, bool) {
	z := t.root
	for z != t.sentinel {
		switch {
		case t.less(item, z.item):
			z = z.left
		case t.less(z.item, item):
			z = z.right
		default:
			removed := z.item
			t.deleteNode(z)
			t.size--
			return removed, true
		}
	}
	var zero T
	return zero, false
}

// transplant replaces the subtree rooted at u with the one rooted at v.
// v may be the sentinel, its parent link is set regardless, the delete
// fixup needs it to navigate from an absent child.
func (t *Tree[T]) transplant(u, v *node[T]) {
	switch {
	case u.parent == t.sentinel:
		t.root = v
	case u == u.parent.left:
		u.parent.left = v
	default:
		u.parent.right = v
	}
	v.parent = u.parent
}

func (t *Tree[T]) deleteNode(z *node[T]) {
	y := z
	removedColor := y.c
	var x *node[T]
	switch {
	case z.left == t.sentinel:
		x = z.right
		t.transplant(z, z.right)
	case z.right == t.sentinel:
		x = z.left
		t.transplant(z, z.left)
	default:
		// Two children: the in order successor takes z's place and
		// inherits its color, the fixup then runs where the successor
		// came from.
		y = t.minimum(z.right)
		removedColor = y.c
		x = y.right
		if y.parent == z {
			x.parent = y
		} else {
			t.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		t.transplant(z, y)
		y.left = z.left
		y.left.parent = y
		y.c = z.c
	}
	if removedColor == black {
		t.deleteFixup(x)
	}
}

// deleteFixup restores the red black properties after unlinking a black
// node, pushing the extra blackness on x up the tree until it lands on a
// red node or the root.
func (t *Tree[T]) deleteFixup(x *node[T]) {
	for x != t.root && x.c == black {
		if x == x.parent.left {
			w := x.parent.right
			if w.c == red {
				w.c = black
				x.parent.c = red
				t.rotateLeft(x.parent)
				w = x.parent.right
			}
			if w.left.c == black && w.right.c == black {
				w.c = red
				x = x.parent
				continue
			}
			if w.right.c == black {
				w.left.c = black
				w.c = red
				t.rotateRight(w)
				w = x.parent.right
			}
			w.c = x.parent.c
			x.parent.c = black
			w.right.c = black
			t.rotateLeft(x.parent)
			x = t.root
		} else {
			w := x.parent.left
			if w.c == red {
				w.c = black
				x.parent.c = red
				t.rotateRight(x.parent)
				w = x.parent.left
			}
			if w.right.c == black && w.left.c == black {
				w.c = red
				x = x.parent
				continue
			}
			if w.left.c == black {
				w.right.c = black
				w.c = red
				t.rotateLeft(w)
				w = x.parent.left
			}
			w.c = x.parent.c
			x.parent.c = black
			w.left.c = black
			t.rotateRight(x.parent)
			x = t.root
		}
	}
	x.c = black
}
