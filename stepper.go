package main

import "sync"

// DomainID names one of the two scheduled domains.
type DomainID string

const (
	DomainProducer DomainID = "producer"
	DomainConsumer DomainID = "consumer"
)

type domainState struct {
	period    int // virtual-time units per local step
	priority  int // tie-break order at equal virtual time, lower first
	completed int // local steps finished
}

// DomainScheduler drives two independently periodic domains over a
// shared virtual timeline. Each domain runs in its own goroutine,
// repeatedly calling WaitForStep to obtain its next local step index,
// executing the step, and calling MarkDone. Domain d's k-th step occurs
// at virtual time (k+1)*period(d); the scheduler releases steps in
// strict virtual-time order with a fixed tie-break, so a run's global
// interleaving is deterministic while the domains themselves share no
// step counter.
type DomainScheduler struct {
	mu      sync.Mutex
	cond    *sync.Cond
	domains map[DomainID]*domainState
	horizon int // last virtual time at which steps may start
	stopped bool
}

// NewDomainScheduler creates a scheduler for the producer/consumer pair.
// Periods are in virtual-time units; horizon bounds the timeline. The
// consumer wins virtual-time ties so a word landing and a word being
// consumed at the same instant serialize consistently across runs.
func NewDomainScheduler(producerPeriod, consumerPeriod, horizon int) *DomainScheduler {
	s := &DomainScheduler{
		domains: map[DomainID]*domainState{
			DomainConsumer: {period: consumerPeriod, priority: 0},
			DomainProducer: {period: producerPeriod, priority: 1},
		},
		horizon: horizon,
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// WaitForStep blocks until the domain's next local step is released and
// returns its index. Returns -1 once the domain has no steps left
// within the horizon or the scheduler has been stopped.
func (s *DomainScheduler) WaitForStep(id DomainID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.domains[id]
	if d == nil {
		return -1
	}
	for {
		if s.stopped {
			return -1
		}
		step := d.completed
		at := (step + 1) * d.period
		if at > s.horizon {
			return -1
		}
		if s.eligibleLocked(d, at) {
			return step
		}
		s.cond.Wait()
	}
}

// eligibleLocked reports whether a step at virtual time `at` may run:
// every step of every other domain that precedes it on the timeline
// (earlier time, or equal time with a lower tie-break priority) must
// have completed.
func (s *DomainScheduler) eligibleLocked(d *domainState, at int) bool {
	for _, other := range s.domains {
		if other == d {
			continue
		}
		needed := (at - 1) / other.period
		if at%other.period == 0 && other.priority < d.priority {
			needed = at / other.period
		}
		if other.completed < needed {
			return false
		}
	}
	return true
}

// MarkDone records completion of the domain's step and wakes waiters.
func (s *DomainScheduler) MarkDone(id DomainID, step int) {
	s.mu.Lock()
	d := s.domains[id]
	if d != nil && step == d.completed {
		d.completed = step + 1
		s.cond.Broadcast()
	}
	s.mu.Unlock()
}

// Steps returns the number of completed local steps for a domain.
func (s *DomainScheduler) Steps(id DomainID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d := s.domains[id]; d != nil {
		return d.completed
	}
	return 0
}

// Stop releases all waiters; subsequent WaitForStep calls return -1.
func (s *DomainScheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.cond.Broadcast()
	s.mu.Unlock()
}
