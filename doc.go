// Package nengo implements a discrete-time signal-flow simulation
// engine: a fixed compute graph of named signals and dependency-ordered
// operators, stepped one tick at a time.
//
// Every signal (scalar or n-dimensional array) is read and written
// through reader-writer leases rather than exposed directly, so
// independent operators can run concurrently within a tick while the
// dependency graph, not a global lock, is what keeps them from racing on
// overlapping state. Each tick runs every operator exactly once, in an
// order consistent with its declared dependencies, then samples every
// probe against the resulting values.
//
// # Architecture Overview
//
// The engine consists of several key components:
//
//   - signal: scalar and array value storage, with sliced views and
//     read/write lease semantics
//   - operator: the compute node kinds a step executes (reset, time
//     update, copy, elementwise and dot-product accumulation, and
//     host-callback operators for externally supplied neuron/process/
//     function behavior)
//   - scheduler: the per-tick dependency-ordered, concurrency-fanned
//     operator run and probe phase
//   - probe: append-only signal observers sampled once per tick
//   - engine: the stateful façade (construct, run_step, run_steps, reset)
//     wiring the above together
//   - hostcall: the contract and global lock host-callback operators use
//     to invoke externally supplied behavior
//   - simerror: the error taxonomy crossed by every package's public
//     boundary
//
// # Basic Usage
//
//	stepTarget := signal.NewScalarSignal[uint64]("step", 0)
//	timeTarget := signal.NewScalarSignal[float64]("time", 0)
//	nodes := []operator.Node{
//	    {Operator: &operator.TimeUpdate{StepTarget: stepTarget, TimeTarget: timeTarget, Dt: 0.001}},
//	}
//	eng, err := engine.New([]signal.Signal{stepTarget, timeTarget}, nodes, nil, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := eng.RunSteps(100); err != nil {
//	    log.Fatal(err)
//	}
//
// # Package Structure
//
//   - signal: value model and lease semantics
//   - operator: compute node kinds
//   - scheduler: per-tick dependency-ordered execution
//   - probe: signal observers
//   - engine: stateful façade
//   - hostcall: host-callback contract
//   - simerror: error taxonomy
//   - internal/memalign: cache-aligned buffer allocation for array signals
//   - cmd/simrun: example graph runner
package nengo
