package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sugawarayuuta/sonnet"
)

func runScenario(t *testing.T, name string) *RunStats {
	t.Helper()
	cfg := GetConfigByName(name)
	if cfg == nil {
		t.Fatalf("scenario %q not found", name)
	}
	sim, err := NewSimulator(cfg)
	if err != nil {
		t.Fatalf("NewSimulator(%s): %v", name, err)
	}
	stats := sim.Run()
	if !stats.Passed() {
		t.Fatalf("scenario %s failed: %v", name, stats.Violations)
	}
	return stats
}

// TestScenarioBurstDrain pushes 20 words through a 16-slot crossing
// with the consumer always ready.
func TestScenarioBurstDrain(t *testing.T) {
	stats := runScenario(t, "burst_drain")
	if stats.Accepted != 20 || stats.Delivered != 20 {
		t.Fatalf("accepted=%d delivered=%d, want 20/20", stats.Accepted, stats.Delivered)
	}
	if stats.CreditEvents != 20 {
		t.Fatalf("credit events: got %d, want 20", stats.CreditEvents)
	}
	if stats.FinalCredits != 16 {
		t.Fatalf("final credits: got %d, want 16", stats.FinalCredits)
	}
}

// TestScenarioFullStall fills the ring against a stalled consumer; only
// a capacity's worth of submissions may be accepted, the rest refused.
func TestScenarioFullStall(t *testing.T) {
	stats := runScenario(t, "full_stall")
	if stats.Accepted != 16 {
		t.Fatalf("accepted: got %d, want exactly capacity 16", stats.Accepted)
	}
	if stats.Refused == 0 {
		t.Fatalf("expected refusals at full capacity")
	}
	if stats.Delivered != 16 || stats.CreditEvents != 16 {
		t.Fatalf("drain: delivered=%d credits=%d, want 16/16", stats.Delivered, stats.CreditEvents)
	}
	if stats.MaxInFlight != 16 {
		t.Fatalf("max in flight: got %d, want 16", stats.MaxInFlight)
	}
}

// TestScenarioRandomBackpressure is the long randomized soak: order,
// conservation, and the zero-credit rule all checked by the scoreboard.
func TestScenarioRandomBackpressure(t *testing.T) {
	stats := runScenario(t, "random_backpressure")
	if stats.ProducerSteps < 1500 {
		t.Fatalf("producer steps: got %d, want >= 1500", stats.ProducerSteps)
	}
	if stats.Accepted == 0 {
		t.Fatalf("soak accepted nothing")
	}
	if stats.Accepted != stats.Delivered || stats.Accepted != stats.CreditEvents {
		t.Fatalf("conservation: accepted=%d delivered=%d credits=%d",
			stats.Accepted, stats.Delivered, stats.CreditEvents)
	}
}

// TestScenarioRateRatios runs both extreme step-rate directions.
func TestScenarioRateRatios(t *testing.T) {
	for _, name := range []string{"fast_producer", "fast_consumer"} {
		stats := runScenario(t, name)
		if stats.Accepted == 0 {
			t.Fatalf("%s accepted nothing", name)
		}
		if stats.Accepted != stats.Delivered || stats.Accepted != stats.CreditEvents {
			t.Fatalf("%s conservation: accepted=%d delivered=%d credits=%d",
				name, stats.Accepted, stats.Delivered, stats.CreditEvents)
		}
		if stats.FinalCredits != 16 {
			t.Fatalf("%s final credits: got %d, want 16", name, stats.FinalCredits)
		}
	}
}

// TestScenarioStallRelease drains a full ring between two producer
// samples at the maximum consumer-faster ratio; every credit must come
// back even though the toggle flips coalesce in the relay.
func TestScenarioStallRelease(t *testing.T) {
	stats := runScenario(t, "stall_release")
	if stats.Accepted != 16 || stats.Delivered != 16 {
		t.Fatalf("accepted=%d delivered=%d, want 16/16", stats.Accepted, stats.Delivered)
	}
	if stats.CreditEvents != 16 {
		t.Fatalf("credit events: got %d, want 16", stats.CreditEvents)
	}
	if stats.FinalCredits != 16 {
		t.Fatalf("final credits: got %d, want 16", stats.FinalCredits)
	}
	if stats.MaxInFlight != 16 {
		t.Fatalf("max in flight: got %d, want 16", stats.MaxInFlight)
	}
}

// TestSimulatorDeterministic verifies a seeded run reproduces exactly
// even though the domains run on separate goroutines.
func TestSimulatorDeterministic(t *testing.T) {
	first := runScenario(t, "random_backpressure")
	for i := 0; i < 3; i++ {
		again := runScenario(t, "random_backpressure")
		if first.Accepted != again.Accepted ||
			first.Refused != again.Refused ||
			first.Delivered != again.Delivered ||
			first.MaxInFlight != again.MaxInFlight {
			t.Fatalf("run %d diverged: %+v vs %+v", i, again, first)
		}
	}
}

func TestSimConfigRejections(t *testing.T) {
	if err := ValidateSimConfig(nil); err == nil {
		t.Fatalf("nil config accepted")
	}
	cfg := &SimConfig{Capacity: 16, ProducerPeriod: 1, ConsumerPeriod: 32}
	if err := ValidateSimConfig(cfg); err == nil {
		t.Fatalf("period ratio beyond bound accepted")
	}
	// margin violations surface from the crossing at construction
	if _, err := NewSimulator(&SimConfig{Name: "tiny", Capacity: 8}); err == nil {
		t.Fatalf("capacity below credit round-trip margin accepted")
	}
}

func TestRunReportRoundTrip(t *testing.T) {
	cfg := GetConfigByName("burst_drain")
	sim, err := NewSimulator(cfg)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	stats := sim.Run()

	path := filepath.Join(t.TempDir(), "report.json")
	if err := WriteRunReport(path, BuildRunReport(cfg, stats)); err != nil {
		t.Fatalf("WriteRunReport: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var decoded RunReport
	if err := sonnet.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if decoded.Scenario != "burst_drain" || !decoded.Passed {
		t.Fatalf("decoded report: %+v", decoded)
	}
	if decoded.ConfigHash != computeConfigHash(cfg) {
		t.Fatalf("config hash mismatch")
	}
	if decoded.Stats == nil || decoded.Stats.Accepted != stats.Accepted {
		t.Fatalf("stats did not survive the round trip")
	}
}
