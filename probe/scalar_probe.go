package probe

import (
	"sync"

	"github.com/jgosmann/nengo-go/signal"
)

// ScalarSignalProbe accumulates snapshots of a *signal.ScalarSignal[T].
// For a scalar target the exported Snapshot is a length-n_samples vector
// (shape [n]).
type ScalarSignalProbe[T signal.Numeric] struct {
	target *signal.ScalarSignal[T]
	mu     sync.Mutex
	data   []T
}

func NewScalarSignalProbe[T signal.Numeric](target *signal.ScalarSignal[T]) *ScalarSignalProbe[T] {
	return &ScalarSignalProbe[T]{target: target}
}

func (p *ScalarSignalProbe[T]) Sample() {
	v := p.target.Read()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data = append(p.data, v)
}

func (p *ScalarSignalProbe[T]) Snapshot() *Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	data := make([]float64, len(p.data))
	for i, v := range p.data {
		data[i] = float64(v)
	}
	return &Snapshot{Shape: []int{len(p.data)}, Data: data}
}

// Values returns the accumulated samples in their native element type,
// for callers that don't want the float64-widened Snapshot export.
func (p *ScalarSignalProbe[T]) Values() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, len(p.data))
	copy(out, p.data)
	return out
}

func (p *ScalarSignalProbe[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.data)
}
