package operator

import (
	"github.com/jgosmann/nengo-go/signal"
	"github.com/jgosmann/nengo-go/simerror"
	"gonum.org/v1/gonum/floats"
)

// ElementwiseInc accumulates Target <- Target + (Left ⊙ Right), with
// scalar broadcasting: a single-element operand is broadcast across the
// target's elements. Operands are matched to the target by element count
// in row-major order, not by shape: an operand whose count is neither 1
// nor the target's is a ShapeError, while operands with the target's
// count but a different shape are accepted. No broadcasting beyond the
// single-element case is performed — the source leaves it unspecified,
// and this implementation takes the conservative reading rather than
// guessing a richer broadcast rule.
type ElementwiseInc struct {
	Target, Left, Right *signal.ArraySignal
}

func (e *ElementwiseInc) Step() error {
	lr := e.Left.Read()
	defer lr.Release()
	rr := e.Right.Read()
	defer rr.Release()
	w := e.Target.Write()
	defer w.Release()

	n := len(w.Flat())
	left, err := broadcastTo(lr.Flat(), n)
	if err != nil {
		return err
	}
	right, err := broadcastTo(rr.Flat(), n)
	if err != nil {
		return err
	}

	product := make([]float64, n)
	floats.MulTo(product, left, right)
	return w.AddFlat(product)
}

// broadcastTo returns v unchanged if it already has n elements, a
// length-n slice of v[0] repeated if v is a scalar-shape [1] operand, or
// a ShapeError otherwise.
func broadcastTo(v []float64, n int) ([]float64, error) {
	if len(v) == n {
		return v, nil
	}
	if len(v) == 1 {
		out := make([]float64, n)
		for i := range out {
			out[i] = v[0]
		}
		return out, nil
	}
	return nil, &simerror.ShapeError{Context: "elementwise_inc operand shape", Want: []int{n}, Got: []int{len(v)}}
}
