package main

import (
	"fmt"
	"sync"

	"github.com/eapache/queue"
)

// Scoreboard is the independent referee for a run. It keeps its own
// ordered reference queue of accepted words and checks every delivery
// against it, counts credit pulses for the conservation law, and flags
// any submission accepted with zero credit. It never touches the
// crossing's internals; everything it sees arrives through probe hooks.
type Scoreboard struct {
	mu sync.Mutex

	expected *queue.Queue // accepted words awaiting delivery

	attempted    uint64
	accepted     uint64
	refused      uint64
	delivered    uint64
	creditEvents uint64

	maxInFlight int

	violations []string
}

// NewScoreboard creates an empty scoreboard.
func NewScoreboard() *Scoreboard {
	return &Scoreboard{expected: queue.New()}
}

// Attach registers the scoreboard's observers on the broker.
func (sb *Scoreboard) Attach(broker *ProbeBroker) {
	broker.OnSubmit(sb.onSubmit)
	broker.OnDeliver(sb.onDeliver)
	broker.OnCredit(sb.onCredit)
}

func (sb *Scoreboard) onSubmit(ctx *SubmitContext) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	sb.attempted++
	if !ctx.Accepted {
		sb.refused++
		return
	}
	if ctx.CreditsBefore <= 0 {
		sb.violations = append(sb.violations, fmt.Sprintf(
			"submission accepted at producer step %d with %d credits",
			ctx.Step, ctx.CreditsBefore))
	}
	sb.accepted++
	sb.expected.Add(ctx.Word)
	if n := sb.expected.Length(); n > sb.maxInFlight {
		sb.maxInFlight = n
	}
}

func (sb *Scoreboard) onDeliver(ctx *DeliverContext) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.expected.Length() == 0 {
		sb.violations = append(sb.violations, fmt.Sprintf(
			"word %#x delivered at consumer step %d with nothing outstanding",
			ctx.Word, ctx.Step))
		return
	}
	want := sb.expected.Remove().(uint64)
	sb.delivered++
	if want != ctx.Word {
		sb.violations = append(sb.violations, fmt.Sprintf(
			"order violation at consumer step %d: got %#x, want %#x",
			ctx.Step, ctx.Word, want))
	}
}

func (sb *Scoreboard) onCredit(*CreditContext) {
	sb.mu.Lock()
	sb.creditEvents++
	sb.mu.Unlock()
}

// Outstanding returns the number of accepted words not yet delivered.
func (sb *Scoreboard) Outstanding() int {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.expected.Length()
}

// CheckDrained applies the end-of-run conservation checks. Call after
// both domains have stopped and the run included a full drain.
func (sb *Scoreboard) CheckDrained(finalCredits, capacity int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if n := sb.expected.Length(); n != 0 {
		sb.violations = append(sb.violations, fmt.Sprintf(
			"%d accepted words never delivered", n))
	}
	if sb.creditEvents != sb.accepted {
		sb.violations = append(sb.violations, fmt.Sprintf(
			"credit conservation: %d pulses for %d accepted submissions",
			sb.creditEvents, sb.accepted))
	}
	if finalCredits != capacity {
		sb.violations = append(sb.violations, fmt.Sprintf(
			"final credits %d, want full budget %d", finalCredits, capacity))
	}
}

// Violations returns a copy of all recorded violations.
func (sb *Scoreboard) Violations() []string {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	out := make([]string, len(sb.violations))
	copy(out, sb.violations)
	return out
}

// Counts returns the scoreboard's event totals.
func (sb *Scoreboard) Counts() (attempted, accepted, refused, delivered, creditEvents uint64) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.attempted, sb.accepted, sb.refused, sb.delivered, sb.creditEvents
}

// MaxInFlight returns the high-water mark of accepted-but-undelivered
// words observed during the run.
func (sb *Scoreboard) MaxInFlight() int {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.maxInFlight
}
