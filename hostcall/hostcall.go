// Package hostcall defines the contract between the core and the
// embedding runtime's opaque host callbacks, used by the SimNeurons,
// SimProcess, and SimPyFunc operators. The core only passes the
// documented positional arguments, holds GlobalLock for the callback's
// duration, and interprets the return per the calling operator's
// semantics — it never inspects or dispatches on the callback itself.
package hostcall

import "sync"

// Args carries the subset of positional arguments a given operator kind
// passes to its callback. Unused fields are left at their zero value;
// T and Dt are pointers so an
// operator that omits them (SimPyFunc's optional t) can signal absence.
type Args struct {
	Dt     *float64
	T      *float64
	Input  []float64
	State  [][]float64
	Output []float64
}

// Result is a callback's return value: either an array (Present is true
// and Output holds it) or "none", meaning the operator leaves its output
// signal untouched this step.
type Result struct {
	Output  []float64
	Present bool
}

// Callback is the opaque callable a host-callback operator invokes once
// per step. Implementations must not suspend, must not mutate the
// engine's graph, and must treat Args.Output (when non-nil) as the
// buffer to write their result into in place rather than allocating a
// fresh one, per SimNeurons' "callback writes output in-place" contract.
type Callback interface {
	Invoke(args Args) (Result, error)
}

// GlobalLock is the embedding runtime's global execution lock:
// host-callback operators hold it for the duration of their callback
// invocation, serializing SimNeurons, SimProcess, and SimPyFunc against
// each other even though the scheduler still submits them as
// independent, concurrently-eligible tasks.
var GlobalLock sync.Mutex
