package probe

import (
	"sync"

	"github.com/jgosmann/nengo-go/signal"
)

// ArraySignalProbe accumulates snapshots of an *signal.ArraySignal. Each
// Sample takes a read lease on the target and appends a deep copy of its
// current contents; Snapshot is a read-only export and never resets the
// internal sequence (clearing history is a caller concern, not the
// engine's — resetting the underlying signal does not clear a probe's
// accumulated history, see DESIGN.md).
type ArraySignalProbe struct {
	target *signal.ArraySignal
	mu     sync.Mutex
	shape  []int
	data   [][]float64
}

// NewArraySignalProbe constructs a probe bound to target. The target
// signal must outlive the probe.
func NewArraySignalProbe(target *signal.ArraySignal) *ArraySignalProbe {
	return &ArraySignalProbe{target: target, shape: target.Shape()}
}

func (p *ArraySignalProbe) Sample() {
	r := p.target.Read()
	sample := make([]float64, len(r.Flat()))
	copy(sample, r.Flat())
	r.Release()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.data = append(p.data, sample)
}

// Snapshot returns the accumulated samples as a rank-(d+1) array: leading
// dimension is the sample count, trailing dimensions are the target's
// shape.
func (p *ArraySignalProbe) Snapshot() *Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	shape := append([]int{len(p.data)}, p.shape...)
	n := 1
	for _, d := range p.shape {
		n *= d
	}
	flat := make([]float64, 0, len(p.data)*n)
	for _, sample := range p.data {
		flat = append(flat, sample...)
	}
	return &Snapshot{Shape: shape, Data: flat}
}

// Len returns the number of samples accumulated so far.
func (p *ArraySignalProbe) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.data)
}
