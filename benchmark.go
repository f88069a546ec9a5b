package main

import (
	"fmt"
	"time"
)

// BenchmarkResult stores throughput measurements for one run length.
type BenchmarkResult struct {
	TotalSteps      int
	TotalDuration   time.Duration
	StepsPerSec     float64
	DurationPerStep time.Duration
}

// RunBenchmark measures a headless run of the given length in producer
// steps, using the random back-pressure scenario as workload.
func RunBenchmark(producerSteps int, cfg *SimConfig) (*BenchmarkResult, error) {
	run := cfg.Clone()
	run.ProducerSteps = producerSteps

	sim, err := NewSimulator(run)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	stats := sim.Run()
	duration := time.Since(startTime)

	totalSteps := stats.ProducerSteps + stats.ConsumerSteps
	if totalSteps == 0 {
		return nil, fmt.Errorf("benchmark run %q executed no steps", run.Name)
	}
	return &BenchmarkResult{
		TotalSteps:      totalSteps,
		TotalDuration:   duration,
		StepsPerSec:     float64(totalSteps) / duration.Seconds(),
		DurationPerStep: duration / time.Duration(totalSteps),
	}, nil
}

// RunBenchmarkSuite measures several run lengths and prints averages.
func RunBenchmarkSuite() error {
	fmt.Println("=== Crossing Throughput Benchmark ===")
	fmt.Println()

	baseCfg := GetConfigByName("random_backpressure")
	testSizes := []int{10000, 50000, 100000}
	iterations := 3

	for _, steps := range testSizes {
		fmt.Printf("Testing %d producer steps (%d iterations)...\n", steps, iterations)

		var totalStepsPerSec float64
		var totalDuration time.Duration
		for i := 0; i < iterations; i++ {
			result, err := RunBenchmark(steps, baseCfg)
			if err != nil {
				return err
			}
			totalStepsPerSec += result.StepsPerSec
			totalDuration += result.TotalDuration
		}

		fmt.Printf("  avg %.0f steps/sec, avg duration %v\n",
			totalStepsPerSec/float64(iterations),
			totalDuration/time.Duration(iterations))
	}
	return nil
}
