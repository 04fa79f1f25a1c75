package signal

import "github.com/jgosmann/nengo-go/simerror"

// forEachIndex walks every multi-index of shape in row-major order,
// invoking fn with the flat row-major position within shape and the
// corresponding flat offset into the base buffer (as given by toBase,
// identity for an owned array).
func forEachIndex(shape []int, toBase func(idx []int) int, fn func(flatPos, baseOffset int)) {
	n := len(shape)
	idx := make([]int, n)
	total := product(shape)
	for pos := 0; pos < total; pos++ {
		fn(pos, toBase(idx))
		for k := n - 1; k >= 0; k-- {
			idx[k]++
			if idx[k] < shape[k] {
				break
			}
			idx[k] = 0
		}
	}
}

func (s *ArraySignal) baseOffsetFn() func(idx []int) int {
	strides := rowMajorStrides(s.base.shape)
	axes := s.axes
	return func(idx []int) int {
		off := 0
		for k, a := range axes {
			off += (a.Start + idx[k]*a.Step) * strides[k]
		}
		return off
	}
}

// ReadLease is a shared read view over an array signal's current contents,
// obtained from (the base of, if a view) its reader-writer lock.
type ReadLease struct {
	sig  *ArraySignal
	data []float64 // owned: direct backing slice; view: a gathered copy
}

// Read takes a shared read lease. For a view, this locks the base for
// reading and gathers the sliced region into a fresh contiguous copy;
// for an owned array it locks the array itself.
func (s *ArraySignal) Read() *ReadLease {
	if s.IsView() {
		s.base.mu.RLock()
		data := make([]float64, product(s.shape))
		toBase := s.baseOffsetFn()
		forEachIndex(s.shape, toBase, func(pos, off int) { data[pos] = s.base.buf[off] })
		return &ReadLease{sig: s, data: data}
	}
	s.mu.RLock()
	return &ReadLease{sig: s, data: s.buf}
}

func (l *ReadLease) Shape() []int { return l.sig.Shape() }

// Flat returns the signal's contents in row-major order. For a view it is
// a private gathered copy that callers may retain after Release; for an
// owned array it aliases the live backing buffer, so callers that need to
// keep data past Release should copy it themselves.
func (l *ReadLease) Flat() []float64 { return l.data }

// Release gives up the read lease.
func (l *ReadLease) Release() {
	if l.sig.IsView() {
		l.sig.base.mu.RUnlock()
		return
	}
	l.sig.mu.RUnlock()
}

// WriteLease is an exclusive, mutable view over an array signal's
// contents. Mutations through Flat, Set, AssignFlat, or AddFlat are
// staged into a scratch buffer for views and committed back into the
// base's strided region on Release; for an owned array they mutate the
// live backing buffer directly and Release is just an unlock.
type WriteLease struct {
	sig  *ArraySignal
	data []float64
}

// Write takes an exclusive write lease.
func (s *ArraySignal) Write() *WriteLease {
	if s.IsView() {
		s.base.mu.Lock()
		data := make([]float64, product(s.shape))
		toBase := s.baseOffsetFn()
		forEachIndex(s.shape, toBase, func(pos, off int) { data[pos] = s.base.buf[off] })
		return &WriteLease{sig: s, data: data}
	}
	s.mu.Lock()
	return &WriteLease{sig: s, data: s.buf}
}

func (l *WriteLease) Shape() []int { return l.sig.Shape() }

// Flat exposes the mutable scratch (or, for an owned array, the live)
// buffer in row-major order. Host-callback operators write their result
// directly into this slice.
func (l *WriteLease) Flat() []float64 { return l.data }

// AssignFlat overwrites the buffer elementwise from data, failing with
// ShapeError if the element counts disagree.
func (l *WriteLease) AssignFlat(data []float64) error {
	if len(data) != len(l.data) {
		return &simerror.ShapeError{Context: "assign_array", Want: l.sig.Shape(), Got: []int{len(data)}}
	}
	copy(l.data, data)
	return nil
}

// AddFlat adds data into the buffer elementwise (the "Inc" half of
// CopyInc/ElementwiseInc/DotInc), failing with ShapeError on a count
// mismatch.
func (l *WriteLease) AddFlat(data []float64) error {
	if len(data) != len(l.data) {
		return &simerror.ShapeError{Context: "increment", Want: l.sig.Shape(), Got: []int{len(data)}}
	}
	for i, v := range data {
		l.data[i] += v
	}
	return nil
}

// Release commits any staged scratch data back into the view's base (a
// no-op scatter shape-check aside for an owned array, since Flat already
// aliased live storage) and releases the lock.
func (l *WriteLease) Release() {
	if l.sig.IsView() {
		toBase := l.sig.baseOffsetFn()
		forEachIndex(l.sig.shape, toBase, func(pos, off int) { l.sig.base.buf[off] = l.data[pos] })
		l.sig.base.mu.Unlock()
		return
	}
	l.sig.mu.Unlock()
}
