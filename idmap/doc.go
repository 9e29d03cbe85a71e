// Package idmap provides a sparse map from uint64 keys to values of any
// type, with an optional first fit mode that picks the lowest free key for
// the caller. It is the structure to reach for when keys are small dense
// integers handed out by the map itself, file descriptor and process table
// style, and when lookup cost must track the magnitude of the key rather
// than the number of entries.
//
// The map is a radix tree over the key bits, consumed six at a time from
// the most significant digit in use, so every node has 64 slots. A tree of
// height h spans keys 0 .. 64^h-1 and a lookup costs h slot hops:
//
//	                    root
//	                     |
//	                 [ node ]              height 2
//	               0/       \2
//	         [ node ]       [ node ]       leaves
//	          0..63         128..191
//
// Unoccupied subtrees have no nodes at all. The tree above holds keys in
// 0..63 and 128..191 and spends nothing on the hole between them.
//
// Two degenerate shapes keep small maps cheap. An empty map has height
// zero and no nodes. A map holding only key zero also has height zero, the
// value lives directly in the root cell, so the fd-zero style case costs
// no node storage at all.
//
// # Growth
//
// Inserting a key beyond the current span raises the height. Each step
// wraps the existing tree in a new root node, hanging the old root off
// slot 0, which preserves every existing key without moving any entry.
// Removal undoes this lazily: when a node loses its last slot it is freed
// and its parent slot cleared, cascading rootward, and a map that empties
// entirely returns to height zero.
//
// # First fit allocation
//
// A map built with WithFirstFit also tracks, per interior slot, whether
// the subtree beneath is completely occupied. Alloc walks these saturation
// bits to the lowest free key in one descent, growing the tree by a level
// when it is full. Freed keys are reused before fresh ones, in kernel id
// allocator fashion.
//
// # Storage and failure
//
// Nodes come from a pool guarded by an alloc.Gate, so a caller can bound
// node acquisition or fail it on a chosen schedule. Every operation is all or
// nothing: the nodes an insert needs are acquired before the structure is
// touched, and a refused acquisition returns the error with the map
// exactly as it was, including its height.
//
// # Handles and iteration
//
// InsertSlot, AllocSlot and GetSlot return a Slot, a handle on the cell
// holding a value. Slot.Swap replaces the value in place without
// invalidating anything, which is how an entry is updated mid iteration.
// Any other successful mutation invalidates all outstanding slots and
// iterators, and using one afterwards panics rather than reading through
// a stale pointer.
//
// A Map must not be used from multiple goroutines without external
// locking.
package idmap
