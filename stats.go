package main

import "fmt"

// RunStats is the end-of-run snapshot of one simulation.
type RunStats struct {
	Scenario      string   `json:"scenario"`
	ProducerSteps int      `json:"producer_steps"`
	ConsumerSteps int      `json:"consumer_steps"`
	Attempted     uint64   `json:"attempted"`
	Accepted      uint64   `json:"accepted"`
	Refused       uint64   `json:"refused"`
	Delivered     uint64   `json:"delivered"`
	CreditEvents  uint64   `json:"credit_events"`
	FinalCredits  int      `json:"final_credits"`
	MaxInFlight   int      `json:"max_in_flight"`
	Violations    []string `json:"violations,omitempty"`
}

// Passed reports whether the run finished without scoreboard findings.
func (st *RunStats) Passed() bool {
	return st != nil && len(st.Violations) == 0
}

// PrintStats writes a human-readable run summary to stdout.
func PrintStats(st *RunStats) {
	if st == nil {
		fmt.Println("No stats available")
		return
	}
	fmt.Println("=== Run Statistics ===")
	fmt.Printf("Scenario: %s\n", st.Scenario)
	fmt.Printf("Producer Steps: %d\n", st.ProducerSteps)
	fmt.Printf("Consumer Steps: %d\n", st.ConsumerSteps)
	fmt.Printf("Submissions: %d attempted, %d accepted, %d refused\n",
		st.Attempted, st.Accepted, st.Refused)
	fmt.Printf("Delivered: %d\n", st.Delivered)
	fmt.Printf("Credit Events: %d\n", st.CreditEvents)
	fmt.Printf("Final Credits: %d\n", st.FinalCredits)
	fmt.Printf("Max In Flight: %d\n", st.MaxInFlight)

	if len(st.Violations) == 0 {
		fmt.Println("Result: PASS")
		return
	}
	fmt.Printf("Result: FAIL (%d violations)\n", len(st.Violations))
	for _, v := range st.Violations {
		fmt.Printf("  - %s\n", v)
	}
}
