package operator

import (
	"fmt"

	"github.com/jgosmann/nengo-go/hostcall"
	"github.com/jgosmann/nengo-go/signal"
	"github.com/jgosmann/nengo-go/simerror"
)

// assignCallbackResult writes data into w, or accumulates it if inc is
// set. A callback is free to return an array of the wrong length (it is
// opaque, externally supplied code), which is a CallbackTypeError rather
// than the plain ShapeError an internal operator's own mismatched operand
// would produce.
func assignCallbackResult(w *signal.WriteLease, data []float64, inc bool, context string) error {
	if len(data) != len(w.Flat()) {
		return &simerror.CallbackTypeError{Context: fmt.Sprintf("%s: callback returned %d elements, want %d", context, len(data), len(w.Flat()))}
	}
	if inc {
		return w.AddFlat(data)
	}
	return w.AssignFlat(data)
}

// SimNeurons invokes a host neuron-model callback with (dt, input_current,
// output, ...state...); the callback writes Output in place. Optional
// extra state signals (e.g. membrane voltage, refractory timers) are
// passed as mutable buffers the callback may also mutate in place.
type SimNeurons struct {
	Dt           float64
	InputCurrent *signal.ArraySignal
	State        []*signal.ArraySignal
	Output       *signal.ArraySignal
	Callback     hostcall.Callback
}

func (s *SimNeurons) Step() error {
	hostcall.GlobalLock.Lock()
	defer hostcall.GlobalLock.Unlock()

	in := s.InputCurrent.Read()
	defer in.Release()
	out := s.Output.Write()
	defer out.Release()

	stateLeases := make([]*signal.WriteLease, len(s.State))
	stateFlat := make([][]float64, len(s.State))
	for i, st := range s.State {
		l := st.Write()
		stateLeases[i] = l
		stateFlat[i] = l.Flat()
	}
	defer func() {
		for _, l := range stateLeases {
			l.Release()
		}
	}()

	dt := s.Dt
	_, err := s.Callback.Invoke(hostcall.Args{
		Dt:     &dt,
		Input:  in.Flat(),
		Output: out.Flat(),
		State:  stateFlat,
	})
	if err != nil {
		return fmt.Errorf("sim_neurons callback: %w", err)
	}
	return nil
}

// SimProcess invokes a host process callback with (t, input?); a
// returned array is assigned or accumulated into Output depending on
// ModeInc, and "none" leaves Output untouched this step.
type SimProcess struct {
	T        *signal.ScalarSignal[float64]
	Input    *signal.ArraySignal // optional, nil if the process takes no array input
	Output   *signal.ArraySignal
	ModeInc  bool
	Callback hostcall.Callback
}

func (p *SimProcess) Step() error {
	hostcall.GlobalLock.Lock()
	defer hostcall.GlobalLock.Unlock()

	t := p.T.Read()
	args := hostcall.Args{T: &t}
	if p.Input != nil {
		in := p.Input.Read()
		defer in.Release()
		args.Input = in.Flat()
	}

	res, err := p.Callback.Invoke(args)
	if err != nil {
		return fmt.Errorf("sim_process callback: %w", err)
	}
	if !res.Present {
		return nil
	}
	w := p.Output.Write()
	defer w.Release()
	return assignCallbackResult(w, res.Output, p.ModeInc, "sim_process")
}

// SimPyFunc invokes a host function callback with the present subset of
// (t, x); a returned array is assigned into Output, and "none" leaves
// Output untouched this step. Both T and X are optional since the
// source's pyfunc operator may be time-only, state-only, or both.
type SimPyFunc struct {
	T        *signal.ScalarSignal[float64] // optional
	X        *signal.ArraySignal           // optional
	Output   *signal.ArraySignal
	Callback hostcall.Callback
}

func (f *SimPyFunc) Step() error {
	hostcall.GlobalLock.Lock()
	defer hostcall.GlobalLock.Unlock()

	var args hostcall.Args
	if f.T != nil {
		t := f.T.Read()
		args.T = &t
	}
	if f.X != nil {
		x := f.X.Read()
		defer x.Release()
		args.Input = x.Flat()
	}

	res, err := f.Callback.Invoke(args)
	if err != nil {
		return fmt.Errorf("sim_pyfunc callback: %w", err)
	}
	if !res.Present {
		return nil
	}
	w := f.Output.Write()
	defer w.Release()
	return assignCallbackResult(w, res.Output, false, "sim_pyfunc")
}
