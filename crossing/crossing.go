// Package crossing models a dual-domain word FIFO: a fixed-capacity
// ring shared by a producer and a consumer that run on independent,
// unsynchronized step schedules.
//
// Each domain owns exactly one monotonic pointer and exchanges it with
// the peer Gray-coded through a multi-stage relay, so occupancy checks
// only ever see a lagging but never-torn view of the other side. Flow
// control on the write side runs over a credit budget replenished from
// the relayed read pointer, so reads bursting faster than the
// producer's sampling rate are still conserved; a one-bit toggle
// flipped per accepted read crosses alongside it as the per-event
// indication.
//
// The two ports may be driven from separate goroutines as long as each
// port is ticked from a single one; every shared value crosses through
// an atomic publish cell.
package crossing

// Crossing wires one producer port and one consumer port around a
// shared ring.
type Crossing struct {
	Producer *Producer
	Consumer *Consumer

	cfg Config
}

// New builds a crossing from cfg. The configuration is validated first;
// in particular a capacity below the credit round-trip margin is
// rejected here, never discovered at runtime.
func New(cfg Config) (*Crossing, error) {
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	store := newRingStore(cfg.Capacity, cfg.WordWidth)
	ptrMask := uint64(2*cfg.Capacity - 1)

	wpCell := &Cell{}
	rpCell := &Cell{}
	toggleCell := &Cell{}

	producer := &Producer{
		store:     store,
		ptrMask:   ptrMask,
		wpOut:     wpCell,
		crossedRP: NewDomainRelay(rpCell, cfg.SyncStages),
		credit:    newCreditTracker(toggleCell, cfg.SyncStages, cfg.Capacity, ptrMask),
	}
	consumer := &Consumer{
		store:      store,
		ptrMask:    ptrMask,
		rpOut:      rpCell,
		creditOut:  toggleCell,
		crossedWP:  NewDomainRelay(wpCell, cfg.SyncStages),
		trueWrites: &producer.accepted,
	}

	return &Crossing{
		Producer: producer,
		Consumer: consumer,
		cfg:      cfg,
	}, nil
}

// Config returns the validated configuration, defaults populated.
func (x *Crossing) Config() Config {
	return x.cfg
}

// WordMask returns the mask applied to submitted words.
func (x *Crossing) WordMask() uint64 {
	return x.Producer.store.mask()
}

// Reset performs a coordinated reset of both domains. This is the only
// supported reset configuration: resetting one domain while the peer
// keeps stepping leaves the peer's crossed replicas and the credit
// toggle out of agreement, so a one-sided reset must always be followed
// by the peer's before traffic resumes. Call only while neither domain
// is being ticked.
func (x *Crossing) Reset() {
	x.Producer.Reset()
	x.Consumer.Reset()
}
