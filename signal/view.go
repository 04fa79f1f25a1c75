package signal

import "github.com/jgosmann/nengo-go/simerror"

// NewArrayView constructs a sliced view onto base, an owned array signal.
// axes must have one entry per base axis. If initial is non-nil it becomes
// the view's own reset template (assigned into the sliced region on
// Reset); a nil initial means Reset on this view is a no-op, per the data
// model.
func NewArrayView(name string, base *ArraySignal, axes []AxisSlice, initial []float64) (*ArraySignal, error) {
	if base.IsView() {
		return nil, &simerror.ViewOfViewError{Name: name}
	}
	if len(axes) != base.Rank() {
		return nil, &simerror.ShapeError{Context: "view slice spec rank must match base rank", Want: base.Shape(), Got: make([]int, len(axes))}
	}
	for k, a := range axes {
		if a.End > base.shape[k] || a.Start < 0 || a.Start > a.End {
			return nil, &simerror.ShapeError{Context: "view axis out of base bounds"}
		}
	}
	shape, err := viewShape(axes)
	if err != nil {
		return nil, err
	}
	if initial != nil && len(initial) != product(shape) {
		return nil, &simerror.ShapeError{Context: "view initial value", Want: shape, Got: []int{len(initial)}}
	}
	var template []float64
	if initial != nil {
		template = make([]float64, len(initial))
		copy(template, initial)
	}
	axesCopy := make([]AxisSlice, len(axes))
	copy(axesCopy, axes)
	return &ArraySignal{
		name:    name,
		shape:   shape,
		base:    base,
		axes:    axesCopy,
		viewInt: template,
	}, nil
}
