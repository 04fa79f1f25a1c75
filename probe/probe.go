// Package probe implements the engine's non-mutating signal observer: a
// time-series accumulator that, each tick, appends a snapshot of its
// target signal's current value to an append-only sequence.
package probe

// Probe samples its target signal once. The scheduler calls Sample on
// every probe strictly after every operator has stepped, never before or
// concurrently with one.
type Probe interface {
	Sample()
}

// Snapshot is a probe's accumulated series exported as a single
// contiguous rank-(d+1) buffer: leading dimension is the sample count,
// and the remaining dimensions are the target signal's own shape (empty
// for a scalar probe, so Shape is just [n_samples]).
type Snapshot struct {
	Shape []int
	Data  []float64
}
