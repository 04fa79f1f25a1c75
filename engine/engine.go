// Package engine wires the signal, operator, probe and scheduler
// packages into the single stateful façade callers drive: construct
// once from a frozen graph, then call RunStep/RunSteps/Reset as the
// simulation's control loop demands.
package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/jgosmann/nengo-go/latch"
	"github.com/jgosmann/nengo-go/operator"
	"github.com/jgosmann/nengo-go/probe"
	"github.com/jgosmann/nengo-go/scheduler"
	"github.com/jgosmann/nengo-go/signal"
	"github.com/jgosmann/nengo-go/simerror"
)

// Engine drives a frozen signal/operator/probe graph one discrete tick
// at a time. All exported methods are safe to call from multiple
// goroutines; RunStep and Reset serialize against each other through the
// engine's own state machine rather than a single coarse lock around the
// whole tick, so a concurrent caller gets ErrStepWhileStepping /
// ErrResetWhileStepping instead of blocking indefinitely behind someone
// else's step.
type Engine struct {
	signals []signal.Signal
	probes  []probe.Probe
	sched   *scheduler.Scheduler
	pool    *scheduler.Pool
	done    *latch.Event
	logger  *slog.Logger

	mu      sync.Mutex
	state   State
	lastErr error
	stepNum int64
}

// New validates and wires signals, nodes and probes into a ready-to-run
// Engine. Construction fails with a *simerror.BadDependencyIndexError if
// any operator names a dependency index that is out of range or does not
// precede it in nodes.
func New(signals []signal.Signal, nodes []operator.Node, probes []probe.Probe, opts *Options) (*Engine, error) {
	sched, err := scheduler.New(nodes)
	if err != nil {
		return nil, err
	}
	return &Engine{
		signals: signals,
		probes:  probes,
		sched:   sched,
		pool:    scheduler.NewPool(opts.workers()),
		done:    latch.NewEvent(),
		logger:  opts.logger(),
		state:   Idle,
	}, nil
}

// State returns the engine's current run state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// StepCount returns the number of steps completed (successfully or not)
// since construction or the last Reset.
func (e *Engine) StepCount() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stepNum
}

// RunStep advances the graph by exactly one tick: every operator
// completes once, in dependency order with independent operators run
// concurrently, then every probe samples the resulting signal values.
// RunStep blocks the calling goroutine until the tick (operator phase
// plus probe phase) finishes, and also sets the engine's completion
// latch so any other goroutine blocked in Wait is released.
//
// Calling RunStep while a step from another goroutine is already in
// flight returns ErrStepWhileStepping without starting a second step.
func (e *Engine) RunStep() error {
	e.mu.Lock()
	switch e.state {
	case Stepping:
		e.mu.Unlock()
		return simerror.ErrStepWhileStepping
	case Failed:
		err := e.lastErr
		e.mu.Unlock()
		return fmt.Errorf("engine: run_step called after a prior fatal failure: %w", err)
	}
	e.state = Stepping
	e.done.Clear()
	e.mu.Unlock()

	e.logger.Debug("step starting", "step", e.stepNum)
	stepErr := e.sched.RunOperators(e.pool)
	if stepErr == nil {
		scheduler.RunProbes(e.pool, e.probes)
	}

	e.mu.Lock()
	e.stepNum++
	if stepErr != nil {
		e.state = Failed
		e.lastErr = stepErr
		e.logger.Error("step failed", "step", e.stepNum, "error", stepErr)
	} else {
		e.state = Idle
		e.logger.Debug("step finished", "step", e.stepNum)
	}
	e.done.Set()
	e.mu.Unlock()

	return stepErr
}

// RunSteps advances the graph by n ticks, stopping at and returning the
// first failed tick's error, if any.
func (e *Engine) RunSteps(n int64) error {
	for i := int64(0); i < n; i++ {
		if err := e.RunStep(); err != nil {
			return err
		}
	}
	return nil
}

// Reset restores every signal to its construction-time initial value and
// returns the engine to Idle, clearing any Failed state and step count.
// It refuses to run while a step is in flight, returning
// ErrResetWhileStepping rather than racing the in-flight step's writes.
func (e *Engine) Reset() error {
	e.mu.Lock()
	if e.state == Stepping {
		e.mu.Unlock()
		return simerror.ErrResetWhileStepping
	}

	for _, s := range e.signals {
		s.Reset()
	}

	e.state = Idle
	e.lastErr = nil
	e.stepNum = 0
	e.mu.Unlock()
	e.logger.Debug("engine reset")
	return nil
}

// Wait blocks until the most recently started step completes. A caller
// that has never started a step blocks until another goroutine does.
func (e *Engine) Wait() {
	e.done.Wait()
}
