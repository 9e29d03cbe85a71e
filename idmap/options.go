package idmap

import "github.com/forestrie/go-kernelkit/alloc"

type config struct {
	firstFit bool
	gate     alloc.Gate
}

// Option configures a Map at construction.
type Option func(*config)

// WithFirstFit enables Alloc and AllocSlot and the per subtree saturation
// tracking they rely on. Keyed inserts still work on a first fit map and
// keep the tracking coherent.
func WithFirstFit() Option {
	return func(c *config) { c.firstFit = true }
}

// WithGate sets the gate node acquisitions are charged to. The default is
// alloc.Unlimited.
func WithGate(g alloc.Gate) Option {
	return func(c *config) { c.gate = g }
}
