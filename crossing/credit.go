package crossing

import "fmt"

// creditTracker lives in the producer domain. It maintains the
// free-slot budget and edge-detects the relayed consumer toggle.
//
// The consumer flips its toggle once per accepted read. After the relay
// the producer holds one extra step of history; a mismatch between the
// settled sample and the history sample is exposed as a single-step
// pulse. A toggle can carry at most one event per sampling interval:
// when the consumer domain steps faster than the producer, several
// flips land inside one interval and cancel. The budget is therefore
// replenished from the relayed read pointer, which advances once per
// read and survives any burst rate; the toggle stays as the per-event
// indication at the rates it can carry.
type creditTracker struct {
	relay    *DomainRelay
	history  uint64
	seenRP   uint64 // crossed read pointer as of the previous tick
	ptrMask  uint64
	credits  int
	capacity int
	pulse    bool
	returned int // credits replenished by the last tick
	returns  uint64
}

func newCreditTracker(src *Cell, depth, capacity int, ptrMask uint64) *creditTracker {
	return &creditTracker{
		relay:    NewDomainRelay(src, depth),
		ptrMask:  ptrMask,
		credits:  capacity,
		capacity: capacity,
	}
}

// tick advances the credit path by one producer step. crossedRP is the
// decoded read pointer after this step's relay sample. Replenishment is
// applied here, unconditionally and independently of any write accepted
// in the same step; spend applies the -1 on its own. Folding the two
// into one branch is a known way to drop the net effect when both fire
// at once.
func (ct *creditTracker) tick(crossedRP uint64) {
	ct.relay.Tick()
	sample := ct.relay.Out() & 1
	ct.pulse = sample != ct.history
	ct.history = sample

	ct.returned = int((crossedRP - ct.seenRP) & ct.ptrMask)
	ct.seenRP = crossedRP
	if ct.returned > 0 {
		ct.credits += ct.returned
		ct.returns += uint64(ct.returned)
		if ct.credits > ct.capacity {
			panic(fmt.Errorf("%w: credit count %d exceeds capacity %d",
				ErrCreditImbalance, ct.credits, ct.capacity))
		}
	}
}

// spend consumes one credit for an accepted write.
func (ct *creditTracker) spend() {
	ct.credits--
	if ct.credits < 0 {
		panic(fmt.Errorf("%w: credit count went negative", ErrCreditImbalance))
	}
}

func (ct *creditTracker) reset() {
	ct.relay.Reset()
	ct.history = 0
	ct.seenRP = 0
	ct.credits = ct.capacity
	ct.pulse = false
	ct.returned = 0
	ct.returns = 0
}
