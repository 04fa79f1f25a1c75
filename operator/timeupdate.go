package operator

import "github.com/jgosmann/nengo-go/signal"

// TimeUpdate advances the simulation clock by one tick: the step counter
// increments by exactly one, and the time signal is recomputed from it as
// step*dt in target-type arithmetic (not accumulated by repeated addition,
// so floating-point error does not compound across a long run).
type TimeUpdate struct {
	StepTarget *signal.ScalarSignal[uint64]
	TimeTarget *signal.ScalarSignal[float64]
	Dt         float64
}

func (t *TimeUpdate) Step() error {
	next := t.StepTarget.Update(func(s uint64) uint64 { return s + 1 })
	t.TimeTarget.Write(float64(next) * t.Dt)
	return nil
}
