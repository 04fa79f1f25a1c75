package engine

import (
	"log/slog"
	"runtime"
)

// Options configures an Engine's concurrency and logging. A nil *Options
// passed to New is equivalent to DefaultOptions().
type Options struct {
	// Workers bounds how many operators or probes may run concurrently
	// within a single step. Zero or negative selects runtime.GOMAXPROCS(0).
	Workers int
	// Logger receives structured step and reset diagnostics. A nil Logger
	// falls back to slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns an Options sized to the host's GOMAXPROCS using
// the default slog logger.
func DefaultOptions() *Options {
	return &Options{Workers: runtime.GOMAXPROCS(0), Logger: slog.Default()}
}

func (o *Options) workers() int {
	if o == nil || o.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Workers
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}
