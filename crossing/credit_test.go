package crossing

import "testing"

func newTestCrossing(t *testing.T, capacity int) *Crossing {
	t.Helper()
	x, err := New(Config{Capacity: capacity, WordWidth: 32})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return x
}

// TestCreditInitialBudget verifies the producer starts with a full
// budget and refuses once it is spent, without any consumer involved.
func TestCreditInitialBudget(t *testing.T) {
	x := newTestCrossing(t, 16)
	p := x.Producer

	if p.Credits() != 16 {
		t.Fatalf("initial credits: got %d, want 16", p.Credits())
	}
	for i := 0; i < 16; i++ {
		p.Tick()
		if !p.Submit(uint64(i)) {
			t.Fatalf("submit %d refused with %d credits", i, p.Credits())
		}
	}
	if p.Credits() != 0 {
		t.Fatalf("credits after fill: got %d, want 0", p.Credits())
	}
	p.Tick()
	if p.Submit(99) {
		t.Fatalf("submission accepted with zero credits")
	}
	if p.Refused() != 1 {
		t.Fatalf("refused count: got %d, want 1", p.Refused())
	}
}

// TestCreditPulsePerRead verifies one read produces exactly one
// single-step pulse, within the documented producer-step bound.
func TestCreditPulsePerRead(t *testing.T) {
	x := newTestCrossing(t, 16)
	p, c := x.Producer, x.Consumer

	// fill completely with the consumer idle
	for i := 0; i < 16; i++ {
		c.Tick()
		p.Tick()
		if !p.Submit(uint64(0x100 + i)) {
			t.Fatalf("fill submit %d refused", i)
		}
	}
	p.Tick()
	if p.Submit(0x999) {
		t.Fatalf("17th submission accepted at full capacity")
	}

	// release exactly one read
	c.SetReady(true)
	c.Tick()
	if _, ok := c.Output(); !ok {
		t.Fatalf("consumer did not deliver with data available")
	}
	c.SetReady(false)

	// the pulse must land within syncStages+1 producer steps
	bound := x.Config().SyncStages + 1
	pulseAt := -1
	for i := 1; i <= bound; i++ {
		p.Tick()
		if p.CreditPulse() {
			pulseAt = i
			break
		}
	}
	if pulseAt < 0 {
		t.Fatalf("no credit pulse within %d producer steps", bound)
	}
	if p.Credits() != 1 {
		t.Fatalf("credits after pulse: got %d, want 1", p.Credits())
	}

	// exactly one further submission is permitted
	if !p.Submit(0x777) {
		t.Fatalf("submission refused with one credit")
	}
	p.Tick()
	if p.CreditPulse() {
		t.Fatalf("pulse asserted for more than one step")
	}
	if p.Submit(0x778) {
		t.Fatalf("second submission accepted on a single returned credit")
	}
}

// TestCreditSimultaneousPulseAndWrite pins the algebraic-sum rule: a
// returned credit and an accepted write landing on the same producer
// step must net to zero, not drop either delta.
func TestCreditSimultaneousPulseAndWrite(t *testing.T) {
	x := newTestCrossing(t, 16)
	p, c := x.Producer, x.Consumer

	// put a few words in flight so a read can happen while credits remain
	for i := 0; i < 4; i++ {
		c.Tick()
		p.Tick()
		if !p.Submit(uint64(i)) {
			t.Fatalf("warmup submit %d refused", i)
		}
	}

	// one read flips the toggle
	c.SetReady(true)
	c.Tick()
	if _, ok := c.Output(); !ok {
		t.Fatalf("warmup read did not deliver")
	}
	c.SetReady(false)

	// walk producer steps until the pulse lands, submitting on that
	// same step
	for i := 0; i < 8; i++ {
		before := p.Credits()
		p.Tick()
		if !p.CreditPulse() {
			continue
		}
		if !p.Submit(0xAB) {
			t.Fatalf("submit refused on pulse step with %d credits", p.Credits())
		}
		if got := p.Credits(); got != before {
			t.Fatalf("simultaneous +1/-1 net: got %d, want %d", got, before)
		}
		return
	}
	t.Fatalf("credit pulse never observed")
}

// TestCreditConservedWhenReadsOutpaceSampling fills the ring against a
// stalled consumer, then drains every word without a single producer
// step in between. The toggle flips all land inside one sampling
// interval and cancel out; the budget must still recover in full from
// the relayed read pointer.
func TestCreditConservedWhenReadsOutpaceSampling(t *testing.T) {
	x := newTestCrossing(t, 16)
	p, c := x.Producer, x.Consumer

	for i := 0; i < 16; i++ {
		p.Tick()
		if !p.Submit(uint64(0x200 + i)) {
			t.Fatalf("fill submit %d refused", i)
		}
	}
	if p.Credits() != 0 {
		t.Fatalf("credits after fill: got %d, want 0", p.Credits())
	}

	// burst drain: the crossed write pointer needs a few consumer
	// steps to settle, then one read per step
	c.SetReady(true)
	reads := 0
	for i := 0; i < 16+2*x.Config().SyncStages && reads < 16; i++ {
		c.Tick()
		if _, ok := c.Output(); ok {
			reads++
		}
	}
	if reads != 16 {
		t.Fatalf("drained %d of 16", reads)
	}

	// the relayed read pointer settles within SyncStages producer steps
	for i := 0; i < x.Config().SyncStages; i++ {
		p.Tick()
	}
	if p.Credits() != 16 {
		t.Fatalf("credits after burst drain: got %d, want 16", p.Credits())
	}
	if p.CreditEvents() != 16 {
		t.Fatalf("credit events: got %d, want 16", p.CreditEvents())
	}
	if !p.Submit(0x300) {
		t.Fatalf("submission refused with a recovered budget")
	}
}

// TestCreditConservationAfterDrain runs traffic and checks total pulses
// equal total accepted submissions once everything has drained.
func TestCreditConservationAfterDrain(t *testing.T) {
	x := newTestCrossing(t, 16)
	p, c := x.Producer, x.Consumer

	const total = 40
	submitted := 0
	for slot := 0; slot < 400; slot++ {
		c.SetReady(true)
		c.Tick()
		p.Tick()
		if submitted < total && p.Submit(uint64(slot)) {
			submitted++
		}
		if submitted == total && p.CreditEvents() == total {
			break
		}
	}
	if submitted != total {
		t.Fatalf("submitted %d of %d", submitted, total)
	}
	if p.CreditEvents() != total {
		t.Fatalf("credit events: got %d, want %d", p.CreditEvents(), total)
	}
	if p.Credits() != 16 {
		t.Fatalf("credits after drain: got %d, want 16", p.Credits())
	}
	if c.Delivered() != total {
		t.Fatalf("delivered: got %d, want %d", c.Delivered(), total)
	}
}
