package main

import (
	"math/rand"
	"sync"

	"github.com/example/async_fifo_sim/crossing"
)

// Simulator drives one crossing with a producer goroutine and a
// consumer goroutine scheduled over a shared virtual timeline. Neither
// loop reads the other's state; everything they exchange flows through
// the crossing's relay cells, and everything the referee sees flows
// through probe hooks.
type Simulator struct {
	cfg    *SimConfig
	cross  *crossing.Crossing
	sched  *DomainScheduler
	broker *ProbeBroker
	board  *Scoreboard

	words     WordGenerator
	ready     ReadyPolicy
	submitRNG *rand.Rand // producer goroutine only

	drainStart int // virtual time after which traffic stops and the consumer drains
	accepted   int // producer-local acceptance count for MaxSubmissions
}

// NewSimulator validates cfg, builds the crossing, and wires the
// scoreboard through the probe broker.
func NewSimulator(cfg *SimConfig) (*Simulator, error) {
	if err := ValidateSimConfig(cfg); err != nil {
		return nil, err
	}
	cross, err := crossing.New(cfg.CrossingConfig())
	if err != nil {
		return nil, err
	}
	xcfg := cross.Config()

	maxPeriod := cfg.ProducerPeriod
	if cfg.ConsumerPeriod > maxPeriod {
		maxPeriod = cfg.ConsumerPeriod
	}
	drainStart := cfg.ProducerSteps * cfg.ProducerPeriod
	// enough trailing steps for a full buffer to drain and the last
	// credit pulses to land, with headroom
	drainWindow := (xcfg.Capacity + 8*xcfg.SyncStages + 16) * maxPeriod

	var words WordGenerator
	if cfg.RandomPayload {
		words = NewRandomWords(cfg.Seed)
	} else {
		words = NewSequentialWords(0x1000)
	}
	var ready ReadyPolicy
	switch {
	case cfg.ReadyRate >= 1:
		ready = AlwaysReady{}
	case cfg.ReadyRate <= 0:
		ready = NeverReady{}
	default:
		ready = NewRandomReady(cfg.ReadyRate, cfg.Seed+1)
	}

	sim := &Simulator{
		cfg:        cfg,
		cross:      cross,
		sched:      NewDomainScheduler(cfg.ProducerPeriod, cfg.ConsumerPeriod, drainStart+drainWindow),
		broker:     NewProbeBroker(),
		board:      NewScoreboard(),
		words:      words,
		ready:      ready,
		submitRNG:  rand.New(rand.NewSource(cfg.Seed + 2)),
		drainStart: drainStart,
	}
	sim.board.Attach(sim.broker)
	return sim, nil
}

// Broker exposes the probe broker so additional observers can attach
// before Run.
func (s *Simulator) Broker() *ProbeBroker {
	return s.broker
}

// Scoreboard exposes the run's referee.
func (s *Simulator) Scoreboard() *Scoreboard {
	return s.board
}

// Crossing exposes the device under test.
func (s *Simulator) Crossing() *crossing.Crossing {
	return s.cross
}

// Run executes the traffic window plus the drain window to completion
// and returns the collected statistics. Structural invariant violations
// inside the crossing panic; scoreboard findings are reported in the
// stats instead.
func (s *Simulator) Run() *RunStats {
	log := GetLogger()
	log.Infof("run %q: capacity=%d periods=%d:%d steps=%d",
		s.cfg.Name, s.cross.Config().Capacity,
		s.cfg.ProducerPeriod, s.cfg.ConsumerPeriod, s.cfg.ProducerSteps)

	var wg sync.WaitGroup
	wg.Add(2)
	go s.producerLoop(&wg)
	go s.consumerLoop(&wg)
	wg.Wait()

	s.board.CheckDrained(s.cross.Producer.Credits(), s.cross.Config().Capacity)
	stats := s.collectStats()
	if len(stats.Violations) == 0 {
		log.Infof("run %q: accepted=%d delivered=%d credits=%d, clean",
			s.cfg.Name, stats.Accepted, stats.Delivered, stats.FinalCredits)
	} else {
		for _, v := range stats.Violations {
			log.Errorf("run %q: %s", s.cfg.Name, v)
		}
	}
	return stats
}

func (s *Simulator) producerLoop(wg *sync.WaitGroup) {
	defer wg.Done()
	p := s.cross.Producer
	for {
		step := s.sched.WaitForStep(DomainProducer)
		if step < 0 {
			return
		}
		p.Tick()
		for n := p.CreditReturns(); n > 0; n-- {
			s.broker.EmitCredit(&CreditContext{Step: step})
		}
		if s.maySubmit(step) {
			creditsBefore := p.Credits()
			word := s.words.Next()
			acceptedNow := p.Submit(word)
			if acceptedNow {
				s.accepted++
			}
			s.broker.EmitSubmit(&SubmitContext{
				Step:          step,
				Word:          word,
				Accepted:      acceptedNow,
				CreditsBefore: creditsBefore,
			})
		}
		s.sched.MarkDone(DomainProducer, step)
	}
}

// maySubmit gates submission attempts: inside the traffic window, under
// the acceptance cap, and passing the per-step rate. Runs on the
// producer goroutine only.
func (s *Simulator) maySubmit(step int) bool {
	if (step+1)*s.cfg.ProducerPeriod > s.drainStart {
		return false
	}
	if s.cfg.MaxSubmissions > 0 && s.accepted >= s.cfg.MaxSubmissions {
		return false
	}
	if s.cfg.SubmitRate >= 1 {
		return true
	}
	return s.submitRNG.Float64() < s.cfg.SubmitRate
}

func (s *Simulator) consumerLoop(wg *sync.WaitGroup) {
	defer wg.Done()
	c := s.cross.Consumer
	for {
		step := s.sched.WaitForStep(DomainConsumer)
		if step < 0 {
			return
		}
		draining := (step+1)*s.cfg.ConsumerPeriod > s.drainStart
		ready := draining || s.ready.Ready(step)
		c.SetReady(ready)
		c.Tick()
		if w, ok := c.Output(); ok {
			s.broker.EmitDeliver(&DeliverContext{Step: step, Word: w})
		}
		s.sched.MarkDone(DomainConsumer, step)
	}
}

func (s *Simulator) collectStats() *RunStats {
	p, c := s.cross.Producer, s.cross.Consumer
	return &RunStats{
		Scenario:      s.cfg.Name,
		ProducerSteps: s.sched.Steps(DomainProducer),
		ConsumerSteps: s.sched.Steps(DomainConsumer),
		Attempted:     p.Attempted(),
		Accepted:      p.Accepted(),
		Refused:       p.Refused(),
		Delivered:     c.Delivered(),
		CreditEvents:  p.CreditEvents(),
		FinalCredits:  p.Credits(),
		MaxInFlight:   s.board.MaxInFlight(),
		Violations:    s.board.Violations(),
	}
}
