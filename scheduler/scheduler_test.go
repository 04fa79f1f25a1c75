package scheduler

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jgosmann/nengo-go/operator"
	"github.com/jgosmann/nengo-go/probe"
)

// recordingOp appends its own label to a shared, mutex-guarded sequence
// each time it steps, so tests can assert on execution order.
type recordingOp struct {
	label string
	seq   *[]string
	mu    *sync.Mutex
}

func (o *recordingOp) Step() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	*o.seq = append(*o.seq, o.label)
	return nil
}

type recordingProbe struct {
	label string
	seq   *[]string
	mu    *sync.Mutex
}

func (p *recordingProbe) Sample() {
	p.mu.Lock()
	defer p.mu.Unlock()
	*p.seq = append(*p.seq, p.label)
}

// TestRunOperatorsRespectsDependencyOrder: B depends on A, each appends a
// label; after one run the sequence is [A, B].
func TestRunOperatorsRespectsDependencyOrder(t *testing.T) {
	var mu sync.Mutex
	var seq []string

	nodes := []operator.Node{
		{Operator: &recordingOp{label: "A", seq: &seq, mu: &mu}, Dependencies: nil},
		{Operator: &recordingOp{label: "B", seq: &seq, mu: &mu}, Dependencies: []int{0}},
	}
	sched, err := New(nodes)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pool := NewPool(4)
	if err := sched.RunOperators(pool); err != nil {
		t.Fatalf("RunOperators: %v", err)
	}
	if got := seq; len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Fatalf("sequence = %v, want [A B]", got)
	}
}

// TestRunOperatorsThenProbesExtendsSequence covers the same scenario
// extended with a probe: [A, B, Probe].
func TestRunOperatorsThenProbesExtendsSequence(t *testing.T) {
	var mu sync.Mutex
	var seq []string

	nodes := []operator.Node{
		{Operator: &recordingOp{label: "A", seq: &seq, mu: &mu}, Dependencies: nil},
		{Operator: &recordingOp{label: "B", seq: &seq, mu: &mu}, Dependencies: []int{0}},
	}
	sched, err := New(nodes)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pool := NewPool(4)
	if err := sched.RunOperators(pool); err != nil {
		t.Fatalf("RunOperators: %v", err)
	}
	probes := []probe.Probe{&recordingProbe{label: "Probe", seq: &seq, mu: &mu}}
	RunProbes(pool, probes)

	want := []string{"A", "B", "Probe"}
	if len(seq) != len(want) {
		t.Fatalf("sequence = %v, want %v", seq, want)
	}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("sequence = %v, want %v", seq, want)
		}
	}
}

// TestRunOperatorsFansOutIndependentOperators runs operators with no
// dependency relationship between them on a pool large enough for all of
// them at once, and checks that one step is recorded per operator.
func TestRunOperatorsFansOutIndependentOperators(t *testing.T) {
	var mu sync.Mutex
	var seq []string

	n := 8
	nodes := make([]operator.Node, n)
	for i := 0; i < n; i++ {
		nodes[i] = operator.Node{Operator: &recordingOp{label: "x", seq: &seq, mu: &mu}}
	}
	sched, err := New(nodes)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pool := NewPool(n)
	if err := sched.RunOperators(pool); err != nil {
		t.Fatalf("RunOperators: %v", err)
	}
	if len(seq) != n {
		t.Fatalf("len(seq) = %d, want %d", len(seq), n)
	}
}

// TestRunOperatorsDoesNotDeadlockWhenReadyRootsFillThePool reproduces the
// shape that deadlocks a pool whose Go blocks the caller on the
// semaphore: with exactly Workers=2 independent roots, each with one
// dependent, both worker slots get claimed by the goroutines stepping
// the roots. If acquiring a slot to dispatch a dependent blocked the
// dispatching goroutine itself (rather than only the newly spawned one),
// neither root's goroutine could ever free its slot, and wg.Wait would
// hang forever.
func TestRunOperatorsDoesNotDeadlockWhenReadyRootsFillThePool(t *testing.T) {
	var mu sync.Mutex
	var seq []string

	nodes := []operator.Node{
		{Operator: &recordingOp{label: "0", seq: &seq, mu: &mu}},
		{Operator: &recordingOp{label: "1", seq: &seq, mu: &mu}},
		{Operator: &recordingOp{label: "2", seq: &seq, mu: &mu}, Dependencies: []int{0}},
		{Operator: &recordingOp{label: "3", seq: &seq, mu: &mu}, Dependencies: []int{1}},
	}
	sched, err := New(nodes)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pool := NewPool(2)

	done := make(chan error, 1)
	go func() { done <- sched.RunOperators(pool) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("RunOperators: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("RunOperators deadlocked with Workers == number of ready roots")
	}
	if len(seq) != 4 {
		t.Fatalf("len(seq) = %d, want 4", len(seq))
	}
}

// TestRunOperatorsDoesNotDeadlockWithSingleWorkerChain checks the
// degenerate Workers=1 case: a single dependency chain must still
// complete rather than hang on its own dispatch.
func TestRunOperatorsDoesNotDeadlockWithSingleWorkerChain(t *testing.T) {
	var mu sync.Mutex
	var seq []string

	nodes := []operator.Node{
		{Operator: &recordingOp{label: "A", seq: &seq, mu: &mu}},
		{Operator: &recordingOp{label: "B", seq: &seq, mu: &mu}, Dependencies: []int{0}},
	}
	sched, err := New(nodes)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pool := NewPool(1)

	done := make(chan error, 1)
	go func() { done <- sched.RunOperators(pool) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("RunOperators: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("RunOperators deadlocked with Workers == 1")
	}
}

// TestNewRejectsOutOfRangeDependency covers invariant 2: a dependency
// index naming a non-existent operator is a construction error.
func TestNewRejectsOutOfRangeDependency(t *testing.T) {
	nodes := []operator.Node{
		{Operator: &recordingOp{label: "A", seq: &[]string{}, mu: &sync.Mutex{}}, Dependencies: []int{5}},
	}
	if _, err := New(nodes); err == nil {
		t.Fatal("New: want error for out-of-range dependency, got nil")
	}
}

// TestNewRejectsForwardDependency covers invariant 1: the operator list
// must already be in a valid topological order, so a dependency index
// greater than or equal to its own position is rejected.
func TestNewRejectsForwardDependency(t *testing.T) {
	var mu sync.Mutex
	var seq []string
	nodes := []operator.Node{
		{Operator: &recordingOp{label: "A", seq: &seq, mu: &mu}, Dependencies: []int{1}},
		{Operator: &recordingOp{label: "B", seq: &seq, mu: &mu}},
	}
	if _, err := New(nodes); err == nil {
		t.Fatal("New: want error for forward dependency, got nil")
	}
}

type failingOp struct{ err error }

func (f *failingOp) Step() error { return f.err }

type countingOp struct{ calls *int32Counter }

type int32Counter struct {
	mu sync.Mutex
	n  int
}

func (c *int32Counter) inc() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
}

func (c *int32Counter) value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func (o *countingOp) Step() error {
	o.calls.inc()
	return nil
}

// TestRunOperatorsSkipsDependentsOfFailedOperatorWithoutDeadlock checks
// that a failing operator's error is surfaced, its dependent is never
// stepped, and the call still returns rather than hanging.
func TestRunOperatorsSkipsDependentsOfFailedOperatorWithoutDeadlock(t *testing.T) {
	wantErr := errors.New("boom")
	counter := &int32Counter{}

	nodes := []operator.Node{
		{Operator: &failingOp{err: wantErr}},
		{Operator: &countingOp{calls: counter}, Dependencies: []int{0}},
	}
	sched, err := New(nodes)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pool := NewPool(4)
	stepErr := sched.RunOperators(pool)
	if stepErr == nil {
		t.Fatal("RunOperators: want error, got nil")
	}
	if !errors.Is(stepErr, wantErr) {
		t.Fatalf("RunOperators error = %v, want wrapping %v", stepErr, wantErr)
	}
	if counter.value() != 0 {
		t.Fatalf("dependent ran %d times, want 0", counter.value())
	}
}

// TestRunOperatorsHandlesEmptyList checks the degenerate zero-operator
// case returns immediately with no error.
func TestRunOperatorsHandlesEmptyList(t *testing.T) {
	sched, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := sched.RunOperators(NewPool(2)); err != nil {
		t.Fatalf("RunOperators: %v", err)
	}
}
