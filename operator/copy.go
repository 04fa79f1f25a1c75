package operator

import "github.com/jgosmann/nengo-go/signal"

// Copy assigns Dst <- Src each step, or, when Inc is set, accumulates
// Dst <- Dst + Src. Both encodings of the source's "copy with increment"
// operator are equally faithful to the data model; a boolean field on one
// kind avoids two near-duplicate operator types for a single flag.
type Copy struct {
	Src, Dst *signal.ArraySignal
	Inc      bool
}

func (c *Copy) Step() error {
	r := c.Src.Read()
	defer r.Release()
	w := c.Dst.Write()
	defer w.Release()

	data := r.Flat()
	if c.Inc {
		return w.AddFlat(data)
	}
	return w.AssignFlat(data)
}
