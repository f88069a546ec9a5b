package crossing

import "sync/atomic"

// Cell is a single-writer publish point shared between two domains.
// The owning domain stores into it; the peer domain only ever reads it
// through a DomainRelay. The atomic store/load pair stands in for the
// physical synchronizer's metastability tolerance: a reader always
// observes either the previous or the current published value, never a
// torn intermediate.
type Cell struct {
	v atomic.Uint64
}

// Publish stores a new value. Only the owning domain may call this.
func (c *Cell) Publish(v uint64) {
	c.v.Store(v)
}

func (c *Cell) sample() uint64 {
	return c.v.Load()
}

// DomainRelay transports the value of a Cell into the destination
// domain's step sequence. Each destination step shifts the sampled value
// one stage deeper; the output is the last stage, so a value that has
// been stable at the source lags at the output by exactly the stage
// count.
//
// Multi-bit values carried through a relay must change at most one bit
// per source update (single-bit toggles, or Gray-coded counters). An
// arbitrary multi-bit value sampled mid-transition could otherwise
// surface as a third value that was never published.
type DomainRelay struct {
	src    *Cell
	stages []uint64
}

// NewDomainRelay builds a relay over src with the given stage depth.
// Depth below two provides no settling window and is not allowed by
// ValidateConfig; the constructor clamps to two defensively.
func NewDomainRelay(src *Cell, depth int) *DomainRelay {
	if depth < 2 {
		depth = 2
	}
	return &DomainRelay{
		src:    src,
		stages: make([]uint64, depth),
	}
}

// Tick advances the relay by one destination-domain step.
func (r *DomainRelay) Tick() {
	for i := len(r.stages) - 1; i > 0; i-- {
		r.stages[i] = r.stages[i-1]
	}
	r.stages[0] = r.src.sample()
}

// Out returns the fully settled value, stages steps behind the source.
func (r *DomainRelay) Out() uint64 {
	return r.stages[len(r.stages)-1]
}

// Depth returns the number of relay stages.
func (r *DomainRelay) Depth() int {
	return len(r.stages)
}

// Reset clears all stages. Reset is local to the destination domain and
// does not touch the source Cell, which belongs to the peer.
func (r *DomainRelay) Reset() {
	for i := range r.stages {
		r.stages[i] = 0
	}
}
