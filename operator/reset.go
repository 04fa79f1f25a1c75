package operator

import "github.com/jgosmann/nengo-go/signal"

// ResetScalar writes Value into Target on every step.
type ResetScalar[T signal.Numeric] struct {
	Target *signal.ScalarSignal[T]
	Value  T
}

func (r *ResetScalar[T]) Step() error {
	r.Target.Write(r.Value)
	return nil
}

// ResetArray writes Value into Target on every step. Value's element
// count must match Target's shape; broadcast is not required or
// supported here (the data model only requires an exact-shape constant).
type ResetArray struct {
	Target *signal.ArraySignal
	Value  []float64
}

func (r *ResetArray) Step() error {
	w := r.Target.Write()
	defer w.Release()
	return w.AssignFlat(r.Value)
}
