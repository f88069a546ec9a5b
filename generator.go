package main

import "math/rand"

// WordGenerator produces the payload stream for the producer driver.
type WordGenerator interface {
	// Next returns the next word to submit. Called only when the
	// driver decides to attempt a submission.
	Next() uint64

	// Reset restores the generator's initial state.
	Reset()
}

// SequentialWords generates an incrementing word stream, convenient for
// spotting reorder or loss at a glance.
type SequentialWords struct {
	Start uint64
	next  uint64
}

// NewSequentialWords starts an incrementing stream at start.
func NewSequentialWords(start uint64) *SequentialWords {
	return &SequentialWords{Start: start, next: start}
}

func (g *SequentialWords) Next() uint64 {
	w := g.next
	g.next++
	return w
}

func (g *SequentialWords) Reset() {
	g.next = g.Start
}

// RandomWords generates a seeded pseudo-random word stream.
type RandomWords struct {
	seed int64
	rng  *rand.Rand
}

// NewRandomWords creates a generator reproducible from seed.
func NewRandomWords(seed int64) *RandomWords {
	return &RandomWords{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

func (g *RandomWords) Next() uint64 {
	return g.rng.Uint64()
}

func (g *RandomWords) Reset() {
	g.rng = rand.New(rand.NewSource(g.seed))
}

// ReadyPolicy decides the consumer's willingness per local step.
type ReadyPolicy interface {
	Ready(step int) bool
	Reset()
}

// AlwaysReady accepts on every step.
type AlwaysReady struct{}

func (AlwaysReady) Ready(int) bool { return true }
func (AlwaysReady) Reset()         {}

// NeverReady refuses on every step; used to force a full buffer.
type NeverReady struct{}

func (NeverReady) Ready(int) bool { return false }
func (NeverReady) Reset()         {}

// RandomReady toggles readiness pseudo-randomly with the given rate.
type RandomReady struct {
	Rate float64
	seed int64
	rng  *rand.Rand
}

// NewRandomReady creates a policy reproducible from seed.
func NewRandomReady(rate float64, seed int64) *RandomReady {
	return &RandomReady{Rate: rate, seed: seed, rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomReady) Ready(int) bool {
	return p.rng.Float64() < p.Rate
}

func (p *RandomReady) Reset() {
	p.rng = rand.New(rand.NewSource(p.seed))
}
