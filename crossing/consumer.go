package crossing

import (
	"fmt"
	"sync/atomic"
)

// Consumer is the read-side port of a crossing. All of its state is
// owned by the consumer domain; values shared with the producer pass
// through Cells.
type Consumer struct {
	store   *ringStore
	ptrMask uint64

	rp        uint64
	rpOut     *Cell        // Gray-coded read pointer, read by the producer
	creditOut *Cell        // toggle, flipped once per accepted read
	toggle    uint64
	crossedWP *DomainRelay // Gray-coded write pointer, relayed from the producer

	ready    bool
	outValid bool
	outWord  uint64

	delivered atomic.Uint64

	// trueWrites points at the producer's accepted counter. It feeds
	// the underflow check only and never gates acceptance; occupancy
	// decisions use the lagging crossed pointer alone.
	trueWrites *atomic.Uint64
}

// SetReady signals willingness to accept a word on the next Tick.
func (c *Consumer) SetReady(ready bool) {
	c.ready = ready
}

// Tick advances the consumer domain by one step. A read is accepted
// when ready is set and the crossed occupancy view is non-empty; the
// slot is registered into the output for exactly one step, the read
// pointer advances, and the credit toggle flips.
func (c *Consumer) Tick() {
	c.crossedWP.Tick()

	if c.ready && !c.Empty() {
		if c.delivered.Load() >= c.trueWrites.Load() {
			panic(fmt.Errorf("%w: delivering word %d with only %d true writes",
				ErrUnderflow, c.delivered.Load()+1, c.trueWrites.Load()))
		}
		c.outWord = c.store.read(c.rp)
		c.outValid = true
		c.rp = (c.rp + 1) & c.ptrMask
		c.rpOut.Publish(GrayEncode(c.rp))
		c.toggle ^= 1
		c.creditOut.Publish(c.toggle)
		c.delivered.Add(1)
	} else {
		c.outValid = false
	}
}

// Empty reports the consumer-side emptiness flag: the local read
// pointer equals the crossed write pointer. The crossed value lags, so
// the flag may under-report availability, never over-report it.
func (c *Consumer) Empty() bool {
	return c.rp == GrayDecode(c.crossedWP.Out())
}

// Output returns the registered word and its validity for the current
// step. Valid holds for exactly the one step following an accepted
// read.
func (c *Consumer) Output() (uint64, bool) {
	return c.outWord, c.outValid
}

// Delivered returns the cumulative count of delivered words.
func (c *Consumer) Delivered() uint64 {
	return c.delivered.Load()
}

// Reset returns the consumer domain to its initial state. Domain-local;
// see Crossing.Reset for the supported coordinated form.
func (c *Consumer) Reset() {
	c.rp = 0
	c.rpOut.Publish(0)
	c.toggle = 0
	c.creditOut.Publish(0)
	c.crossedWP.Reset()
	c.ready = false
	c.outValid = false
	c.outWord = 0
	c.delivered.Store(0)
}
