package rbtree

// Ascend visits every item in ascending order until fn returns false. The
// tree must not be modified during the walk.
func (t *Tree[T]) Ascend(fn func(item T) bool) {
	t.ascend(t.root, fn)
}

func (t *Tree[T]) ascend(x *node[T], fn func(item T) bool) bool {
	if x == t.sentinel {
		return true
	}
	if !t.ascend(x.left, fn) {
		return false
	}
	if !fn(x.item) {
		return false
	}
	return t.ascend(x.right, fn)
}

// Descend is Ascend in descending order.
func (t *Tree[T]) Descend(fn func(item T) bool) {
	t.descend(t.root, fn)
}

func (t *Tree[T]) descend(x *node[T], fn func(item T) bool) bool {
	if x == t.sentinel {
		return true
	}
	if !t.descend(x.right, fn) {
		return false
	}
	if !fn(x.item) {
		return false
	}
	return t.descend(x.left, fn)
}
