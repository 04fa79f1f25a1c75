// Command simrun builds a small example signal graph in code and runs it
// for a fixed number of ticks, printing each probe's accumulated series.
// There is no model file format in this domain (graphs are built by
// calling the engine package directly, the way a host language would
// embed the simulator), so simrun takes no input path: it exists to give
// the engine a runnable demonstration harness, mirroring the shape of the
// source's own runner without a model loader.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/jgosmann/nengo-go/engine"
	"github.com/jgosmann/nengo-go/operator"
	"github.com/jgosmann/nengo-go/probe"
	"github.com/jgosmann/nengo-go/signal"
)

func main() {
	var (
		workers = flag.Int("workers", runtime.NumCPU(), "Number of concurrent worker goroutines per step")
		steps   = flag.Int64("steps", 10, "Number of ticks to run")
		dt      = flag.Float64("dt", 0.001, "Time step size")
		verbose = flag.Bool("verbose", false, "Enable debug-level logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	eng, stepProbe, inputProbe, err := buildExampleGraph(*workers, *dt, logger)
	if err != nil {
		logger.Error("failed to build graph", "error", err)
		os.Exit(1)
	}

	if err := eng.RunSteps(*steps); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("steps: %v\n", stepProbe.Values())
	snap := inputProbe.Snapshot()
	fmt.Printf("input shape: %v\n", snap.Shape)
	fmt.Printf("input data: %v\n", snap.Data)
}

// buildExampleGraph wires a TimeUpdate operator feeding a step counter
// and clock signal, plus an ElementwiseInc operator that accumulates a
// constant per-tick product into a 2-element array signal. The product's
// operands (base, increment) are held on signals distinct from the
// accumulator itself: an operator that both reads and writes the same
// owned signal would try to take a write lease while still holding its
// own read lease, and ArraySignal's lock is not reentrant, so every
// operator here keeps its read operands and write target on separate
// signals.
func buildExampleGraph(workers int, dt float64, logger *slog.Logger) (*engine.Engine, *probe.ScalarSignalProbe[uint64], *probe.ArraySignalProbe, error) {
	stepSignal := signal.NewScalarSignal[uint64]("step", 0)
	timeSignal := signal.NewScalarSignal[float64]("time", 0)

	accum, err := signal.NewArraySignal("accum", []int{2}, []float64{0, 0})
	if err != nil {
		return nil, nil, nil, err
	}
	base, err := signal.NewArraySignal("base", []int{2}, []float64{2, 3})
	if err != nil {
		return nil, nil, nil, err
	}
	increment, err := signal.NewArraySignal("increment", []int{2}, []float64{1, 2})
	if err != nil {
		return nil, nil, nil, err
	}

	nodes := []operator.Node{
		{Operator: &operator.TimeUpdate{StepTarget: stepSignal, TimeTarget: timeSignal, Dt: dt}},
		{Operator: &operator.ElementwiseInc{Target: accum, Left: base, Right: increment}, Dependencies: []int{0}},
	}

	stepProbe := probe.NewScalarSignalProbe(stepSignal)
	inputProbe := probe.NewArraySignalProbe(accum)

	eng, err := engine.New(
		[]signal.Signal{stepSignal, timeSignal, accum, base, increment},
		nodes,
		[]probe.Probe{stepProbe, inputProbe},
		&engine.Options{Workers: workers, Logger: logger},
	)
	if err != nil {
		return nil, nil, nil, err
	}
	return eng, stepProbe, inputProbe, nil
}
