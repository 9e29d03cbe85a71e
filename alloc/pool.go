package alloc

import "sync"

// Pool is a typed free list over sync.Pool. Put zeroes the value before
// caching it so a recycled *T always comes back in its zero state, and the
// counters let a test prove a container's storage accounting balances.
//
// The counters are not synchronized. Like Gate, a pool belongs to the
// goroutine that owns the container drawing from it.
type Pool[T any] struct {
	p      sync.Pool
	allocs int
	inUse  int
}

// NewPool returns an empty pool for *T values.
func NewPool[T any]() *Pool[T] {
	pl := &Pool[T]{}
	pl.p.New = func() any {
		pl.allocs++
		return new(T)
	}
	return pl
}

// Get returns a zero-valued *T, recycled if one is cached.
func (pl *Pool[T]) Get() *T {
	pl.inUse++
	return pl.p.Get().(*T)
}

// Put zeroes x and caches it for reuse. x must not be used afterwards.
func (pl *Pool[T]) Put(x *T) {
	var zero T
	*x = zero
	pl.inUse--
	pl.p.Put(x)
}

// InUse reports how many values are currently out of the pool. A container
// that has released everything it took leaves this at zero.
func (pl *Pool[T]) InUse() int { return pl.inUse }

// Allocs reports how many values were created fresh rather than recycled.
func (pl *Pool[T]) Allocs() int { return pl.allocs }
