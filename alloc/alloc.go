// Package alloc provides the small allocation capabilities the container
// packages in this module are built over.
//
// A Gate stands in for the resource budget a container draws node storage
// from. Containers call Acquire before creating internal state and Release
// when that state is handed back. The container itself never decides whether
// memory is available, the gate does, which keeps exhaustion behaviour a
// property of the caller's configuration rather than of the container. The
// FailAfter gate exercises the recovery paths a container promises when
// storage runs out, at a precisely chosen moment.
//
// A Pool recycles the storage itself: typed get/put over sync.Pool with
// counters, so tests can assert that an aborted operation returned every
// node it took.
package alloc

import "errors"

// ErrExhausted is returned by a gate whose budget is spent. Containers
// surface it unmodified, callers can match it with errors.Is.
var ErrExhausted = errors.New("alloc: exhausted")

// Gate admits or refuses acquisition of one unit of storage. Implementations
// are not synchronized. A gate guards containers that are themselves
// confined to one goroutine, so the caller's confinement covers the gate.
type Gate interface {
	// Acquire claims one unit, or returns ErrExhausted.
	Acquire() error
	// Release returns n previously acquired units. Gates that do not
	// track outstanding units ignore it.
	Release(n int)
}

type unlimited struct{}

// Unlimited returns the gate used when no budget applies. Acquire never
// fails.
func Unlimited() Gate { return unlimited{} }

func (unlimited) Acquire() error { return nil }

func (unlimited) Release(int) {}

type failAfter struct {
	left int
}

// FailAfter returns a gate whose first n acquisitions succeed and whose
// every later acquisition returns ErrExhausted. Release has no effect, the
// gate models a budget that is gone for good once spent. The schedule is
// deterministic, which is the point: pointing n at a known internal
// allocation lets a test fail a container mid-operation.
func FailAfter(n int) Gate { return &failAfter{left: n} }

func (g *failAfter) Acquire() error {
	if g.left <= 0 {
		return ErrExhausted
	}
	g.left--
	return nil
}

func (g *failAfter) Release(int) {}

type quota struct {
	free int
}

// Quota returns a gate with a budget of n outstanding units. Release
// restores capacity, so a container that frees as much as it acquires can
// run indefinitely under a finite quota.
func Quota(n int) Gate { return &quota{free: n} }

func (g *quota) Acquire() error {
	if g.free <= 0 {
		return ErrExhausted
	}
	g.free--
	return nil
}

func (g *quota) Release(n int) { g.free += n }
