package idmap

import (
	"fmt"
	"io"
	"strings"

	"github.com/forestrie/go-kernelkit/bitmap"
)

// debug utilities

// Dump writes an indented sketch of the tree to w, one line per node with
// the key range it spans, leaf entries folded onto their node's line.
func (m *Map[V]) Dump(w io.Writer) {
	fmt.Fprintf(w, "idmap height=%d len=%d\n", m.height, m.count)
	switch m.root.kind {
	case slotValue:
		fmt.Fprintf(w, "  0: %v\n", m.root.val)
	case slotChild:
		m.dumpNode(w, m.root.child, int(m.height)-1, 0, 1)
	}
}

func (m *Map[V]) dumpNode(w io.Writer, n *node[V], level int, base uint64, depth int) {
	indent := strings.Repeat("  ", depth)
	span := uint64(1) << (uint(level+1) * radixBits)
	if level == 0 {
		ents := make([]string, 0, bitmap.OnesCount(n.occ[:]))
		for d, ok := bitmap.FirstSet(n.occ[:], fanout); ok; d, ok = bitmap.NextSet(n.occ[:], fanout, d+1) {
			ents = append(ents, fmt.Sprintf("%d:%v", base|uint64(d), n.slots[d].val))
		}
		fmt.Fprintf(w, "%sleaf %d..%d  %s\n", indent, base, base+span-1, strings.Join(ents, " "))
		return
	}
	fmt.Fprintf(w, "%snode %d..%d\n", indent, base, base+span-1)
	for d, ok := bitmap.FirstSet(n.occ[:], fanout); ok; d, ok = bitmap.NextSet(n.occ[:], fanout, d+1) {
		m.dumpNode(w, n.slots[d].child, level-1, base|uint64(d)<<(uint(level)*radixBits), depth+1)
	}
}
