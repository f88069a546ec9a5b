package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/sugawarayuuta/sonnet"
)

// ConfigHashLength is the hex length of the config fingerprint.
const ConfigHashLength = 16

// RunReport is the machine-readable record of one run, written as JSON.
type RunReport struct {
	Scenario    string     `json:"scenario"`
	ConfigHash  string     `json:"config_hash"`
	Config      *SimConfig `json:"config"`
	Stats       *RunStats  `json:"stats"`
	Passed      bool       `json:"passed"`
	GeneratedAt string     `json:"generated_at"`
}

// BuildRunReport assembles a report from a run's config and stats.
func BuildRunReport(cfg *SimConfig, stats *RunStats) *RunReport {
	return &RunReport{
		Scenario:    cfg.Name,
		ConfigHash:  computeConfigHash(cfg),
		Config:      cfg,
		Stats:       stats,
		Passed:      stats.Passed(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// WriteRunReport marshals the report and writes it to path.
func WriteRunReport(path string, report *RunReport) error {
	data, err := sonnet.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write run report: %w", err)
	}
	return nil
}

// computeConfigHash fingerprints the fields that shape a run, so
// reports from different configurations are distinguishable at a
// glance.
func computeConfigHash(cfg *SimConfig) string {
	if cfg == nil {
		return ""
	}
	hashInput := fmt.Sprintf("%d-%d-%d-%d-%d-%d-%.3f-%d-%.3f-%v-%d",
		cfg.Capacity,
		cfg.WordWidth,
		cfg.SyncStages,
		cfg.ProducerPeriod,
		cfg.ConsumerPeriod,
		cfg.ProducerSteps,
		cfg.SubmitRate,
		cfg.MaxSubmissions,
		cfg.ReadyRate,
		cfg.RandomPayload,
		cfg.Seed)

	hash := sha256.Sum256([]byte(hashInput))
	return hex.EncodeToString(hash[:])[:ConfigHashLength]
}
