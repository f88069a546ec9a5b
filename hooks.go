package main

import "sync"

// SubmitContext carries information about one producer submit attempt.
type SubmitContext struct {
	Step          int // producer-local step
	Word          uint64
	Accepted      bool
	CreditsBefore int // budget visible when the attempt was made
}

// DeliverContext carries information about one delivered word.
type DeliverContext struct {
	Step int // consumer-local step
	Word uint64
}

// CreditContext carries information about one detected credit pulse.
type CreditContext struct {
	Step int // producer-local step
}

// SubmitHook observes producer submit attempts.
type SubmitHook func(ctx *SubmitContext)

// DeliverHook observes delivered words.
type DeliverHook func(ctx *DeliverContext)

// CreditHook observes credit-return pulses.
type CreditHook func(ctx *CreditContext)

// ProbeBroker fans simulator events out to registered observers such as
// the scoreboard and the stats collector. Hooks only observe; they
// cannot influence the protocol.
type ProbeBroker struct {
	mu      sync.RWMutex
	submit  []SubmitHook
	deliver []DeliverHook
	credit  []CreditHook
}

// NewProbeBroker creates an empty broker.
func NewProbeBroker() *ProbeBroker {
	return &ProbeBroker{}
}

// OnSubmit registers a submit observer.
func (b *ProbeBroker) OnSubmit(h SubmitHook) {
	if b == nil || h == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.submit = append(b.submit, h)
}

// OnDeliver registers a delivery observer.
func (b *ProbeBroker) OnDeliver(h DeliverHook) {
	if b == nil || h == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deliver = append(b.deliver, h)
}

// OnCredit registers a credit-pulse observer.
func (b *ProbeBroker) OnCredit(h CreditHook) {
	if b == nil || h == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.credit = append(b.credit, h)
}

// EmitSubmit delivers a submit event to all observers.
func (b *ProbeBroker) EmitSubmit(ctx *SubmitContext) {
	if b == nil || ctx == nil {
		return
	}
	b.mu.RLock()
	handlers := make([]SubmitHook, len(b.submit))
	copy(handlers, b.submit)
	b.mu.RUnlock()
	for _, h := range handlers {
		h(ctx)
	}
}

// EmitDeliver delivers a delivery event to all observers.
func (b *ProbeBroker) EmitDeliver(ctx *DeliverContext) {
	if b == nil || ctx == nil {
		return
	}
	b.mu.RLock()
	handlers := make([]DeliverHook, len(b.deliver))
	copy(handlers, b.deliver)
	b.mu.RUnlock()
	for _, h := range handlers {
		h(ctx)
	}
}

// EmitCredit delivers a credit-pulse event to all observers.
func (b *ProbeBroker) EmitCredit(ctx *CreditContext) {
	if b == nil || ctx == nil {
		return
	}
	b.mu.RLock()
	handlers := make([]CreditHook, len(b.credit))
	copy(handlers, b.credit)
	b.mu.RUnlock()
	for _, h := range handlers {
		h(ctx)
	}
}
