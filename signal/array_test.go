package signal

import (
	"reflect"
	"testing"
)

func TestScalarResetIdempotent(t *testing.T) {
	s := NewScalarSignal[int64]("x", 5)
	s.Write(42)
	s.Reset()
	s.Reset()
	if got := s.Read(); got != 5 {
		t.Fatalf("Read() = %d, want 5", got)
	}
}

func TestArraySignalResetToTemplate(t *testing.T) {
	sig, err := NewArraySignal("target", []int{2}, []float64{9, 9})
	if err != nil {
		t.Fatalf("NewArraySignal: %v", err)
	}
	w := sig.Write()
	_ = w.AssignFlat([]float64{100, 200})
	w.Release()

	sig.Reset()

	r := sig.Read()
	defer r.Release()
	if got := r.Flat(); !reflect.DeepEqual(got, []float64{9, 9}) {
		t.Fatalf("after reset Flat() = %v, want [9 9]", got)
	}
}

func TestArraySignalAssignShapeMismatch(t *testing.T) {
	sig, err := NewArraySignal("target", []int{2}, nil)
	if err != nil {
		t.Fatalf("NewArraySignal: %v", err)
	}
	w := sig.Write()
	defer w.Release()
	if err := w.AssignFlat([]float64{1, 2, 3}); err == nil {
		t.Fatal("expected ShapeError, got nil")
	}
}

func TestViewOfViewRejected(t *testing.T) {
	base, err := NewArraySignal("base", []int{4}, nil)
	if err != nil {
		t.Fatalf("NewArraySignal: %v", err)
	}
	view, err := NewArrayView("view", base, []AxisSlice{{Start: 0, Step: 1, End: 4}}, nil)
	if err != nil {
		t.Fatalf("NewArrayView: %v", err)
	}
	if _, err := NewArrayView("view_of_view", view, []AxisSlice{{Start: 0, Step: 1, End: 2}}, nil); err == nil {
		t.Fatal("expected ViewOfViewError, got nil")
	}
}

// TestViewWriteReadCoherence: base of shape [4]
// holding [0,1,0,2]; view with slice {start:1,step:2,end:4} of shape [2];
// probing the view gives [1,2]; writing [9,9] through the view causes the
// base to read [0,9,0,9].
func TestViewWriteReadCoherence(t *testing.T) {
	base, err := NewArraySignal("base", []int{4}, []float64{0, 1, 0, 2})
	if err != nil {
		t.Fatalf("NewArraySignal: %v", err)
	}
	view, err := NewArrayView("view", base, []AxisSlice{{Start: 1, Step: 2, End: 4}}, nil)
	if err != nil {
		t.Fatalf("NewArrayView: %v", err)
	}
	if !reflect.DeepEqual(view.Shape(), []int{2}) {
		t.Fatalf("view shape = %v, want [2]", view.Shape())
	}

	r := view.Read()
	got := r.Flat()
	r.Release()
	if !reflect.DeepEqual(got, []float64{1, 2}) {
		t.Fatalf("view read = %v, want [1 2]", got)
	}

	w := view.Write()
	_ = w.AssignFlat([]float64{9, 9})
	w.Release()

	br := base.Read()
	baseGot := br.Flat()
	br.Release()
	if !reflect.DeepEqual(baseGot, []float64{0, 9, 0, 9}) {
		t.Fatalf("base read after view write = %v, want [0 9 0 9]", baseGot)
	}
}

func TestArraySignalZeroDimensionPromotedToShapeOne(t *testing.T) {
	sig, err := NewArraySignal("scalar_like", nil, []float64{3.5})
	if err != nil {
		t.Fatalf("NewArraySignal: %v", err)
	}
	if !reflect.DeepEqual(sig.Shape(), []int{1}) {
		t.Fatalf("shape = %v, want [1]", sig.Shape())
	}
}
