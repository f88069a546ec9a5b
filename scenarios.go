package main

// GetPredefinedConfigs returns the built-in scenario configurations.
// The first entry is the default when no scenario is named.
func GetPredefinedConfigs() []*SimConfig {
	return []*SimConfig{
		{
			// capacity-exceeding burst with an eager consumer
			Name:           "burst_drain",
			Capacity:       16,
			WordWidth:      32,
			ProducerPeriod: 1,
			ConsumerPeriod: 1,
			ProducerSteps:  60,
			SubmitRate:     1.0,
			MaxSubmissions: 20,
			ReadyRate:      1.0,
		},
		{
			// fill to capacity against a stalled consumer, then drain
			Name:           "full_stall",
			Capacity:       16,
			WordWidth:      32,
			ProducerPeriod: 1,
			ConsumerPeriod: 1,
			ProducerSteps:  60,
			SubmitRate:     1.0,
			ReadyRate:      0,
		},
		{
			// randomized back-pressure on both sides
			Name:           "random_backpressure",
			Capacity:       16,
			WordWidth:      32,
			ProducerPeriod: 1,
			ConsumerPeriod: 1,
			ProducerSteps:  1500,
			SubmitRate:     0.7,
			ReadyRate:      0.5,
			RandomPayload:  true,
			Seed:           42,
		},
		{
			// fill against a stalled consumer at the extreme
			// consumer-faster ratio, then drain the whole ring
			// between two producer samples
			Name:           "stall_release",
			Capacity:       16,
			WordWidth:      32,
			ProducerPeriod: 16,
			ConsumerPeriod: 1,
			ProducerSteps:  16,
			SubmitRate:     1.0,
			ReadyRate:      0,
		},
		{
			// producer domain steps 8x faster than the consumer
			Name:           "fast_producer",
			Capacity:       16,
			WordWidth:      32,
			ProducerPeriod: 1,
			ConsumerPeriod: 8,
			ProducerSteps:  1200,
			SubmitRate:     1.0,
			ReadyRate:      1.0,
		},
		{
			// consumer domain steps 8x faster than the producer
			Name:           "fast_consumer",
			Capacity:       16,
			WordWidth:      32,
			ProducerPeriod: 8,
			ConsumerPeriod: 1,
			ProducerSteps:  600,
			SubmitRate:     1.0,
			ReadyRate:      0.8,
			Seed:           7,
		},
	}
}

// GetConfigByName returns a copy of the named predefined configuration,
// or nil when no such scenario exists.
func GetConfigByName(name string) *SimConfig {
	for _, cfg := range GetPredefinedConfigs() {
		if cfg.Name == name {
			return cfg.Clone()
		}
	}
	return nil
}
