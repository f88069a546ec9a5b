package crossing

import (
	"fmt"
	"sync/atomic"
)

// Producer is the write-side port of a crossing. All of its state is
// owned by the producer domain: the harness must call Tick and Submit
// from a single execution context. The only values shared with the
// consumer domain pass through Cells.
type Producer struct {
	store   *ringStore
	ptrMask uint64 // 2*capacity - 1, pointer kept mod 2C

	wp        uint64
	wpOut     *Cell        // Gray-coded write pointer, read by the consumer
	crossedRP *DomainRelay // Gray-coded read pointer, relayed from the consumer
	credit    *creditTracker

	// accepted is atomic only so the consumer port can consult the
	// true write count for its underflow check; it is mutated by the
	// producer domain alone.
	accepted  atomic.Uint64
	attempted uint64
	refused   uint64
}

// Tick advances the producer domain by one step: the crossed read
// pointer and the credit-return path both take a new sample. Call once
// per producer step, before any Submit for that step.
func (p *Producer) Tick() {
	p.crossedRP.Tick()
	p.credit.tick(GrayDecode(p.crossedRP.Out()))
}

// Submit offers one word. It is accepted only while credits remain; a
// refusal mutates nothing and the caller may retry on a later step.
func (p *Producer) Submit(word uint64) bool {
	p.attempted++
	if p.credit.credits <= 0 {
		p.refused++
		return false
	}
	if p.Full() {
		// Credits replenish from the same crossed pointer the
		// fullness flag reads, so a positive count with the flag
		// set means the exchange lost track of a slot.
		panic(fmt.Errorf("%w: submit with %d credits while full flag set",
			ErrOverrun, p.credit.credits))
	}

	p.store.write(p.wp, word)
	p.accepted.Add(1)
	p.wp = (p.wp + 1) & p.ptrMask
	p.wpOut.Publish(GrayEncode(p.wp))
	p.credit.spend()
	return true
}

// Full reports the producer-side fullness flag: the low address bits of
// the local write pointer equal those of the crossed read pointer while
// the wrap bits differ. The crossed value lags, so the flag may stay set
// after space has truly been freed, never the other way around.
func (p *Producer) Full() bool {
	capacity := p.store.idxMask + 1
	return p.wp^GrayDecode(p.crossedRP.Out()) == capacity
}

// Credits returns the current free-slot budget.
func (p *Producer) Credits() int {
	return p.credit.credits
}

// CreditPulse reports whether the last Tick saw a toggle edge.
func (p *Producer) CreditPulse() bool {
	return p.credit.pulse
}

// CreditReturns returns the number of credits replenished by the last
// Tick. More than one means the consumer completed several reads inside
// one producer sampling interval.
func (p *Producer) CreditReturns() int {
	return p.credit.returned
}

// CreditEvents returns the cumulative count of returned credits.
func (p *Producer) CreditEvents() uint64 {
	return p.credit.returns
}

// Accepted returns the cumulative count of accepted submissions.
func (p *Producer) Accepted() uint64 {
	return p.accepted.Load()
}

// Attempted returns the cumulative count of Submit calls.
func (p *Producer) Attempted() uint64 {
	return p.attempted
}

// Refused returns the cumulative count of refused submissions.
func (p *Producer) Refused() uint64 {
	return p.refused
}

// Reset returns the producer domain to its initial state: pointer zero,
// credits at capacity, relay stages cleared. Reset is domain-local; see
// Crossing.Reset for the supported coordinated form.
func (p *Producer) Reset() {
	p.wp = 0
	p.wpOut.Publish(0)
	p.crossedRP.Reset()
	p.credit.reset()
	p.accepted.Store(0)
	p.attempted = 0
	p.refused = 0
}
