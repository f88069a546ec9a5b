package crossing

import "testing"

func TestValidateConfigDefaults(t *testing.T) {
	cfg := Config{Capacity: 16}
	if err := ValidateConfig(&cfg); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	if cfg.WordWidth != DefaultWordWidth {
		t.Fatalf("WordWidth default: got %d, want %d", cfg.WordWidth, DefaultWordWidth)
	}
	if cfg.SyncStages != DefaultSyncStages {
		t.Fatalf("SyncStages default: got %d, want %d", cfg.SyncStages, DefaultSyncStages)
	}
}

func TestValidateConfigRejections(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"zero capacity", Config{Capacity: 0}},
		{"not power of two", Config{Capacity: 12}},
		{"below margin", Config{Capacity: 8}}, // min for 2 stages is 9
		{"below margin deep relay", Config{Capacity: 16, SyncStages: 5}},
		{"width too wide", Config{Capacity: 16, WordWidth: 65}},
		{"single stage relay", Config{Capacity: 16, SyncStages: 1}},
	}
	for _, tc := range cases {
		cfg := tc.cfg
		if err := ValidateConfig(&cfg); err == nil {
			t.Fatalf("%s: expected rejection, got nil", tc.name)
		}
	}
	if err := ValidateConfig(nil); err == nil {
		t.Fatalf("nil config: expected rejection")
	}
}

func TestMinCapacityFormula(t *testing.T) {
	// round trip (2*stages+1) + stages + guard margin
	if got := MinCapacity(2); got != 9 {
		t.Fatalf("MinCapacity(2) = %d, want 9", got)
	}
	if got := RoundTripSteps(2); got != 5 {
		t.Fatalf("RoundTripSteps(2) = %d, want 5", got)
	}
	// capacity 16 holds up to 3 stages (min 12), not 4 (min 16 is ok)
	if got := MinCapacity(4); got != 15 {
		t.Fatalf("MinCapacity(4) = %d, want 15", got)
	}
}
