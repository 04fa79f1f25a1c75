package signal

import "github.com/jgosmann/nengo-go/simerror"

// rowMajorStrides returns the strides of a dense row-major buffer of the
// given shape, e.g. shape [2,3,4] -> strides [12,4,1].
func rowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	acc := 1
	for k := len(shape) - 1; k >= 0; k-- {
		strides[k] = acc
		acc *= shape[k]
	}
	return strides
}

func product(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

func shapesEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// normalizeShape promotes a 0-d shape (rank 0) to the fixed shape [1], per
// the data model: "an array signal ... shape (possibly empty for a 0-d
// signal, stored internally as shape [1])".
func normalizeShape(shape []int) []int {
	if len(shape) == 0 {
		return []int{1}
	}
	out := make([]int, len(shape))
	copy(out, shape)
	return out
}

// AxisSlice is a single axis's {start, step, end} slice specification, in
// element (not byte) units of the base array.
type AxisSlice struct {
	Start, Step, End int
}

// viewShape derives the logical shape of a view from its per-axis slice
// specs: count_k = ceil((end_k - start_k) / step_k).
func viewShape(axes []AxisSlice) ([]int, error) {
	shape := make([]int, len(axes))
	for k, a := range axes {
		if a.Step <= 0 {
			return nil, &simerror.ShapeError{Context: "view axis step must be positive"}
		}
		if a.End < a.Start {
			return nil, &simerror.ShapeError{Context: "view axis end must be >= start"}
		}
		span := a.End - a.Start
		shape[k] = (span + a.Step - 1) / a.Step
	}
	return shape, nil
}

// ConvertDescriptor converts a native numeric-array view descriptor
// (flat element offset, element strides, logical shape, plus the base
// array's own element strides and shape) into per-axis {start, step, end}
// triples, using pure integer arithmetic so it stays exact regardless of
// the base array's element type:
//
//	start_k = offset / base_strides[k]   (mod previous axes)
//	step_k  = strides[k] / base_strides[k]
//	end_k   = min(start_k + step_k*shape_k, base_shape[k])
func ConvertDescriptor(offset int, strides, shape, baseStrides, baseShape []int) ([]AxisSlice, error) {
	n := len(baseStrides)
	if len(strides) != n || len(shape) != n || len(baseShape) != n {
		return nil, &simerror.ShapeError{Context: "view descriptor rank mismatch"}
	}
	axes := make([]AxisSlice, n)
	remaining := offset
	for k := 0; k < n; k++ {
		if baseStrides[k] == 0 {
			return nil, &simerror.ShapeError{Context: "base stride of zero"}
		}
		start := remaining / baseStrides[k]
		remaining = remaining % baseStrides[k]
		if baseStrides[k] == 0 || strides[k]%baseStrides[k] != 0 {
			return nil, &simerror.ShapeError{Context: "view stride not a multiple of base stride"}
		}
		step := strides[k] / baseStrides[k]
		end := start + step*shape[k]
		if end > baseShape[k] {
			end = baseShape[k]
		}
		axes[k] = AxisSlice{Start: start, Step: step, End: end}
	}
	return axes, nil
}
