package crossing

import (
	"errors"
	"fmt"
)

// Default configuration values.
const (
	DefaultWordWidth  = 32
	DefaultSyncStages = 2

	// guardMargin is the extra headroom required on top of the credit
	// round trip and the relay depth. Without it two reads inside one
	// relay settling window could coalesce into a single detected
	// toggle edge and silently lose a credit.
	guardMargin = 2
)

// Config holds the structural parameters of one crossing.
type Config struct {
	// Capacity is the slot count of the ring. Must be a power of two
	// and at least MinCapacity(SyncStages).
	Capacity int

	// WordWidth is the payload width in bits, 1 to 64. Words are
	// masked to this width on write.
	WordWidth int

	// SyncStages is the relay depth used for every cross-domain
	// signal. Minimum (and default) is 2.
	SyncStages int
}

// RoundTripSteps returns the worst-case producer-step count from an
// accepted read back to the matching credit pulse: the pointer/toggle
// crossing plus the one extra history sample of the edge detector.
func RoundTripSteps(syncStages int) int {
	return 2*syncStages + 1
}

// MinCapacity returns the smallest legal ring capacity for the given
// relay depth.
func MinCapacity(syncStages int) int {
	return RoundTripSteps(syncStages) + syncStages + guardMargin
}

// ValidateConfig applies structural checks to Config and populates
// defaults where required. A capacity below the credit round-trip
// margin is a configuration-time defect and is rejected here rather
// than surfacing as a lost credit at runtime.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	if cfg.WordWidth == 0 {
		cfg.WordWidth = DefaultWordWidth
	}
	if cfg.SyncStages == 0 {
		cfg.SyncStages = DefaultSyncStages
	}

	if cfg.WordWidth < 1 || cfg.WordWidth > 64 {
		return fmt.Errorf("WordWidth must be within [1,64], got %d", cfg.WordWidth)
	}
	if cfg.SyncStages < 2 {
		return fmt.Errorf("SyncStages must be at least 2, got %d", cfg.SyncStages)
	}
	if cfg.Capacity <= 0 {
		return fmt.Errorf("Capacity must be positive, got %d", cfg.Capacity)
	}
	if cfg.Capacity&(cfg.Capacity-1) != 0 {
		return fmt.Errorf("Capacity must be a power of two, got %d", cfg.Capacity)
	}
	if min := MinCapacity(cfg.SyncStages); cfg.Capacity < min {
		return fmt.Errorf("Capacity %d below minimum %d for %d relay stages (round trip %d + stages + margin)",
			cfg.Capacity, min, cfg.SyncStages, RoundTripSteps(cfg.SyncStages))
	}

	return nil
}
