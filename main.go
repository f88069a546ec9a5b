package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	var scenario = flag.String("scenario", "", "Predefined scenario name (see -list)")
	var list = flag.Bool("list", false, "List predefined scenarios and exit")
	var steps = flag.Int("steps", 0, "Override producer-step count for the traffic window")
	var seed = flag.Int64("seed", 0, "Override the stimulus seed")
	var reportPath = flag.String("report", "", "Write a JSON run report to this path")
	var benchmark = flag.Bool("benchmark", false, "Run the throughput benchmark suite")
	var logLevel = flag.String("log", "info", "Log level: error, warn, info, debug")
	flag.Parse()

	GetLogger().SetLevel(ParseLogLevel(*logLevel))

	if *list {
		for _, cfg := range GetPredefinedConfigs() {
			fmt.Printf("%-22s capacity=%d periods=%d:%d steps=%d\n",
				cfg.Name, cfg.Capacity, cfg.ProducerPeriod, cfg.ConsumerPeriod, cfg.ProducerSteps)
		}
		return
	}

	if *benchmark {
		if err := RunBenchmarkSuite(); err != nil {
			GetLogger().Errorf("benchmark: %v", err)
			os.Exit(1)
		}
		return
	}

	configs := GetPredefinedConfigs()
	selected := *scenario
	if selected == "" && len(configs) > 0 {
		selected = configs[0].Name
	}
	cfg := GetConfigByName(selected)
	if cfg == nil {
		GetLogger().Errorf("scenario %q not found, see -list", selected)
		os.Exit(1)
	}
	if *steps > 0 {
		cfg.ProducerSteps = *steps
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	sim, err := NewSimulator(cfg)
	if err != nil {
		GetLogger().Errorf("configure simulator: %v", err)
		os.Exit(1)
	}
	stats := sim.Run()
	PrintStats(stats)

	if *reportPath != "" {
		report := BuildRunReport(cfg, stats)
		if err := WriteRunReport(*reportPath, report); err != nil {
			GetLogger().Errorf("%v", err)
			os.Exit(1)
		}
		GetLogger().Infof("report written to %s", *reportPath)
	}

	if !stats.Passed() {
		os.Exit(1)
	}
}
