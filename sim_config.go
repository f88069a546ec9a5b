package main

import (
	"errors"
	"fmt"

	"github.com/example/async_fifo_sim/crossing"
)

// Harness defaults and bounds.
const (
	DefaultProducerSteps = 1000
	DefaultSubmitRate    = 1.0

	// MaxPeriodRatio bounds the supported relative step rate between
	// the two domains in either direction.
	MaxPeriodRatio = 16
)

// SimConfig describes one harness run: the crossing parameters plus the
// stimulus driving both domains.
type SimConfig struct {
	Name string `json:"name"`

	// crossing parameters, validated by crossing.ValidateConfig
	Capacity   int `json:"capacity"`
	WordWidth  int `json:"word_width"`
	SyncStages int `json:"sync_stages"`

	// virtual-time units per local step of each domain
	ProducerPeriod int `json:"producer_period"`
	ConsumerPeriod int `json:"consumer_period"`

	// ProducerSteps is the traffic window length in producer-local
	// steps; a drain window in which submission stops and the
	// consumer is forced ready follows automatically.
	ProducerSteps int `json:"producer_steps"`

	// SubmitRate is the probability of attempting a submission per
	// producer step; MaxSubmissions caps accepted submissions
	// (0 means no cap).
	SubmitRate     float64 `json:"submit_rate"`
	MaxSubmissions int     `json:"max_submissions"`

	// ReadyRate sets consumer willingness: >= 1 always ready, <= 0
	// never ready during the traffic window, otherwise a seeded
	// per-step probability.
	ReadyRate float64 `json:"ready_rate"`

	// RandomPayload selects random words instead of sequential ones.
	RandomPayload bool `json:"random_payload"`

	Seed int64 `json:"seed"`
}

// ValidateSimConfig applies structural checks and populates defaults.
// Crossing-level parameters are checked by crossing.New; this covers
// the harness-level fields.
func ValidateSimConfig(cfg *SimConfig) error {
	if cfg == nil {
		return errors.New("sim config is nil")
	}

	if cfg.ProducerPeriod <= 0 {
		cfg.ProducerPeriod = 1
	}
	if cfg.ConsumerPeriod <= 0 {
		cfg.ConsumerPeriod = 1
	}
	if cfg.ProducerSteps <= 0 {
		cfg.ProducerSteps = DefaultProducerSteps
	}
	if cfg.SubmitRate <= 0 {
		cfg.SubmitRate = DefaultSubmitRate
	}

	if cfg.SubmitRate > 1 {
		return fmt.Errorf("SubmitRate must be within (0,1], got %.3f", cfg.SubmitRate)
	}
	if cfg.MaxSubmissions < 0 {
		return fmt.Errorf("MaxSubmissions must be non-negative, got %d", cfg.MaxSubmissions)
	}
	if cfg.ProducerPeriod > cfg.ConsumerPeriod*MaxPeriodRatio ||
		cfg.ConsumerPeriod > cfg.ProducerPeriod*MaxPeriodRatio {
		return fmt.Errorf("period ratio %d:%d exceeds supported bound %d:1",
			cfg.ProducerPeriod, cfg.ConsumerPeriod, MaxPeriodRatio)
	}

	return nil
}

// CrossingConfig returns the crossing-level parameters.
func (cfg *SimConfig) CrossingConfig() crossing.Config {
	return crossing.Config{
		Capacity:   cfg.Capacity,
		WordWidth:  cfg.WordWidth,
		SyncStages: cfg.SyncStages,
	}
}

// Clone returns a copy of the config.
func (cfg *SimConfig) Clone() *SimConfig {
	if cfg == nil {
		return nil
	}
	c := *cfg
	return &c
}
