package signal

import (
	"sync"

	"github.com/jgosmann/nengo-go/internal/memalign"
	"github.com/jgosmann/nengo-go/simerror"
)

// ArraySignal is an n-dimensional rectangular float64 buffer, either owned
// (backing storage materialized locally) or a view onto another, owned
// ArraySignal's buffer plus a per-axis slice. Views are non-transitive: a
// view's base must itself be owned (enforced at construction).
//
// The owned buffer's lock is a plain sync.RWMutex, not reentrant: a
// single goroutine must not hold both a ReadLease and a WriteLease on the
// same owned array (or on a view and its own base) at once, for instance
// by naming the same signal as both a read operand and the write target
// of one operator's Step. Doing so deadlocks on the Write call rather
// than producing a wrong result, so operators must keep their read
// operands and write target on distinct signals.
//
// Array element storage is float64 throughout: every operator that touches
// array signals (ElementwiseInc, DotInc, the host-callback operators) is
// specified over real-valued simulation buffers, and gonum's vector/matrix
// kernels are float64-only, so narrowing from the data model's nominal
// "T, typically f64" to a concrete float64 buffer avoids a generic-over-
// element-kind array type that no operator would ever instantiate for
// int64/uint64 anyway.
type ArraySignal struct {
	name  string
	shape []int

	// owned-only fields.
	mu      sync.RWMutex
	buf     []float64
	initial []float64 // nil if no reset template was supplied

	// view-only fields. base == nil iff this signal is owned.
	base    *ArraySignal
	axes    []AxisSlice
	viewInt []float64 // view's own reset template, nil if none
}

// NewArraySignal constructs an owned array signal. If initial is non-nil
// it is used both as the starting buffer contents and as the reset
// template; its length must equal the product of shape. A 0-d shape is
// promoted to [1].
func NewArraySignal(name string, shape []int, initial []float64) (*ArraySignal, error) {
	shape = normalizeShape(shape)
	n := product(shape)
	buf := memalign.Float64s(n)
	var template []float64
	if initial != nil {
		if len(initial) != n {
			return nil, &simerror.ShapeError{Context: "array signal initial value", Want: shape, Got: []int{len(initial)}}
		}
		template = make([]float64, n)
		copy(template, initial)
		copy(buf, initial)
	}
	return &ArraySignal{name: name, shape: shape, buf: buf, initial: template}, nil
}

func (s *ArraySignal) Name() string { return s.name }

func (s *ArraySignal) Shape() []int {
	out := make([]int, len(s.shape))
	copy(out, s.shape)
	return out
}

// IsView reports whether this signal is a sliced view of another array.
func (s *ArraySignal) IsView() bool { return s.base != nil }

// Rank returns the number of axes (length of Shape()).
func (s *ArraySignal) Rank() int { return len(s.shape) }

// Reset restores an owned array to its initial_value_template (a no-op if
// none was supplied), or, for a view, assigns its own initial_value
// template into the sliced region (a no-op if none was supplied).
func (s *ArraySignal) Reset() {
	if s.IsView() {
		if s.viewInt == nil {
			return
		}
		w := s.Write()
		defer w.Release()
		_ = w.AssignFlat(s.viewInt)
		return
	}
	if s.initial == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(s.buf, s.initial)
}
