// Package scheduler implements the per-step dependency-ordered,
// thread-parallel operator run and the probe phase that strictly follows
// it. It drives a frozen operator list to completion in an order
// consistent with the declared dependency DAG, then samples every probe
// once all operators have finished.
//
// Scheduling strategy: rather than the source's lazily-shared
// per-operator futures (no equivalent exists in Go without building one),
// each operator carries an atomic remaining-dependency counter; an
// operator is dispatched to the worker pool the instant its counter hits
// zero, and finishing it decrements every dependent's counter in turn.
// This atomic-counter-plus-ready-dispatch approach is chosen over
// precomputed Kahn levels because it preserves exact "j happens-before
// i" ordering for graphs of uneven width, rather than batching by depth.
package scheduler

import (
	"sync"
	"sync/atomic"

	"github.com/jgosmann/nengo-go/operator"
	"github.com/jgosmann/nengo-go/probe"
	"github.com/jgosmann/nengo-go/simerror"
)

// Scheduler holds the frozen, validated operator list and the reverse
// dependency edges derived from it.
type Scheduler struct {
	nodes      []operator.Node
	dependents [][]int // dependents[i] = operators that name i as a dependency
}

// New validates that every dependency index is in range and strictly
// less than the node's own position, i.e. the list is already
// topologically ordered, and returns a Scheduler ready to drive steps.
func New(nodes []operator.Node) (*Scheduler, error) {
	dependents := make([][]int, len(nodes))
	for i, n := range nodes {
		for _, dep := range n.Dependencies {
			if dep < 0 || dep >= len(nodes) {
				return nil, &simerror.BadDependencyIndexError{Operator: i, Index: dep, NumNodes: len(nodes)}
			}
			if dep >= i {
				return nil, &simerror.BadDependencyIndexError{Operator: i, Index: dep, NumNodes: len(nodes)}
			}
			dependents[dep] = append(dependents[dep], i)
		}
	}
	return &Scheduler{nodes: nodes, dependents: dependents}, nil
}

// NumOperators returns the number of operators in the frozen list.
func (s *Scheduler) NumOperators() int { return len(s.nodes) }

// RunOperators drives every operator to completion exactly once, in an
// order consistent with the dependency DAG, fanning independent operators
// out across pool. It returns the first operator failure encountered, if
// any; operators downstream of a failed one are skipped (their Step is
// never called) but every operator still "completes" for bookkeeping
// purposes so the call always returns rather than deadlocking on a
// dependent that can never become ready.
func (s *Scheduler) RunOperators(pool *Pool) error {
	n := len(s.nodes)
	if n == 0 {
		return nil
	}

	remaining := make([]int32, n)
	for i, nd := range s.nodes {
		remaining[i] = int32(len(nd.Dependencies))
	}

	var wg sync.WaitGroup
	wg.Add(n)

	var failed int32
	var errMu sync.Mutex
	var firstErr error

	recordFailure := func(i int, cause error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = &simerror.OperatorFailureError{OperatorIndex: i, Cause: cause}
		}
		errMu.Unlock()
		atomic.StoreInt32(&failed, 1)
	}

	var run func(i int)
	complete := func(i int) {
		wg.Done()
		for _, j := range s.dependents[i] {
			if atomic.AddInt32(&remaining[j], -1) == 0 {
				j := j
				pool.Go(func() { run(j) })
			}
		}
	}
	run = func(i int) {
		if atomic.LoadInt32(&failed) != 0 {
			complete(i)
			return
		}
		defer func() {
			if r := recover(); r != nil {
				recordFailure(i, panicError{r})
				complete(i)
			}
		}()
		if err := s.nodes[i].Operator.Step(); err != nil {
			recordFailure(i, err)
		}
		complete(i)
	}

	for i := range s.nodes {
		if remaining[i] == 0 {
			i := i
			pool.Go(func() { run(i) })
		}
	}
	wg.Wait()
	return firstErr
}

// RunProbes samples every probe concurrently, returning once all have
// completed. Probes never run before RunOperators's wait group has
// released, so none observes a torn intra-step write.
func RunProbes(pool *Pool, probes []probe.Probe) {
	var wg sync.WaitGroup
	wg.Add(len(probes))
	for _, p := range probes {
		p := p
		pool.Go(func() {
			defer wg.Done()
			p.Sample()
		})
	}
	wg.Wait()
}

// panicError adapts a recovered panic value into an error.
type panicError struct{ v any }

func (p panicError) Error() string { return "operator panicked: " + errString(p.v) }

func errString(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return "non-error panic value"
}
