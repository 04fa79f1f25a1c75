// Package signal implements the engine's value model: named scalar and
// n-dimensional array buffers read and written by operators, plus sliced
// views onto owned arrays. Every signal exposes read/write leases backed by
// a reader-writer lock, so parallel operators may hold concurrent read
// leases while a write lease is exclusive over the whole buffer (or, for a
// view, over its base's buffer) — the scheduler's dependency graph is what
// keeps two operators from racing on overlapping leases in the first
// place; the lock here is the last line of defense, not the scheduling
// contract itself.
package signal

// Numeric is the closed set of element kinds a scalar signal may hold, per
// the engine's three supported arithmetic types.
type Numeric interface {
	~int64 | ~uint64 | ~float64
}

// Signal is the identity- and lifecycle-facing surface every signal kind
// implements, independent of element type: a name, a shape, and reset.
// Operators and probes that need typed access go through the concrete
// *ScalarSignal[T] or *ArraySignal types directly, since Go has no
// trait-object equivalent that could carry a generic Read/Write pair
// through this interface.
type Signal interface {
	Name() string
	Shape() []int
	Reset()
}
