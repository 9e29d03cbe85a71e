package idmap

import "errors"

var (
	// ErrDuplicateKey is returned by Insert and InsertSlot when the key
	// already holds a value.
	ErrDuplicateKey = errors.New("idmap: key already present")

	// ErrKeySpace is returned by Alloc and AllocSlot when every uint64 key
	// is in use. Callers holding that many entries have other problems,
	// but the condition is reported rather than looping.
	ErrKeySpace = errors.New("idmap: key space exhausted")
)
