package operator

import (
	"github.com/jgosmann/nengo-go/signal"
	"github.com/jgosmann/nengo-go/simerror"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DotInc accumulates Target <- Target + (Left · Right). Two rank
// combinations are supported: vector·vector -> scalar, and
// matrix·vector -> vector; any other pair of ranks is a ShapeError. The
// dense linear algebra is delegated to gonum (floats.Dot for
// vector·vector, mat's MulVec for matrix·vector) rather than hand-rolled
// loops.
type DotInc struct {
	Target, Left, Right *signal.ArraySignal
}

func (d *DotInc) Step() error {
	lr := d.Left.Read()
	defer lr.Release()
	rr := d.Right.Read()
	defer rr.Release()
	w := d.Target.Write()
	defer w.Release()

	switch {
	case d.Left.Rank() == 1 && d.Right.Rank() == 1:
		left, right := lr.Flat(), rr.Flat()
		if len(left) != len(right) {
			return &simerror.ShapeError{Context: "dot_inc vector·vector length mismatch", Want: []int{len(left)}, Got: []int{len(right)}}
		}
		return w.AddFlat([]float64{floats.Dot(left, right)})

	case d.Left.Rank() == 2 && d.Right.Rank() == 1:
		leftShape := d.Left.Shape()
		rows, cols := leftShape[0], leftShape[1]
		right := rr.Flat()
		if cols != len(right) {
			return &simerror.ShapeError{Context: "dot_inc matrix·vector inner dimension mismatch", Want: []int{cols}, Got: []int{len(right)}}
		}
		m := mat.NewDense(rows, cols, lr.Flat())
		v := mat.NewVecDense(cols, right)
		var out mat.VecDense
		out.MulVec(m, v)
		result := make([]float64, rows)
		for i := 0; i < rows; i++ {
			result[i] = out.AtVec(i)
		}
		return w.AddFlat(result)

	default:
		return &simerror.ShapeError{Context: "dot_inc supports only vector·vector and matrix·vector"}
	}
}
