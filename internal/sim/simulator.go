package sim

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/dynamo"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/physics"
)

// Simulator owns the body collection of one run and drives it through the
// time horizon. It is single-threaded: the order in which bodies are
// advanced within a timestep is part of its output.
type Simulator struct {
	cfg    Config
	integ  dynamo.Integrator
	bodies []physics.Body

	// snapshot holds the start-of-step collection in Synchronized mode.
	snapshot []physics.Body
	next     []dynamo.State

	t     float64
	steps int

	observers []Observer
	metrics   []Metric
	log       *zap.Logger
}

type Option func(*Simulator)

func WithLogger(log *zap.Logger) Option {
	return func(s *Simulator) {
		if log != nil {
			s.log = log
		}
	}
}

func WithObserver(o Observer) Option {
	return func(s *Simulator) { s.observers = append(s.observers, o) }
}

func WithMetric(m Metric) Option {
	return func(s *Simulator) { s.metrics = append(s.metrics, m) }
}

// New returns a simulator positioned at t = 0. The bodies are copied; the
// caller's slice is never modified.
func New(bodies []physics.Body, cfg Config, integ dynamo.Integrator, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(bodies) == 0 {
		return nil, dynamo.ErrNoBodies
	}
	if integ == nil {
		return nil, errors.New("sim: nil integrator")
	}

	s := &Simulator{
		cfg:    cfg,
		integ:  integ,
		bodies: physics.Clone(bodies),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if cfg.Update == Synchronized {
		s.snapshot = make([]physics.Body, len(bodies))
		s.next = make([]dynamo.State, len(bodies))
	}
	return s, nil
}

func (s *Simulator) Config() Config { return s.cfg }

// Time is the label of the next timestep to be simulated.
func (s *Simulator) Time() float64 { return s.t }

func (s *Simulator) Steps() int { return s.steps }

func (s *Simulator) Done() bool { return s.t > s.cfg.End() }

// Bodies returns a copy of the current collection.
func (s *Simulator) Bodies() []physics.Body {
	return physics.Clone(s.bodies)
}

// SetBodies overwrites the collection without touching the clock. The new
// collection must have the same length.
func (s *Simulator) SetBodies(bodies []physics.Body) error {
	if len(bodies) != len(s.bodies) {
		return fmt.Errorf("%w: want %d bodies, got %d", dynamo.ErrDimensionMismatch, len(s.bodies), len(bodies))
	}
	copy(s.bodies, bodies)
	return nil
}

// Step advances every body by one dt. t is handed to the integrator as the
// start of the step.
func (s *Simulator) Step(t float64) error {
	if s.cfg.Update == Synchronized {
		return s.stepSynchronized(t)
	}
	return s.stepSequential(t)
}

func (s *Simulator) stepSequential(t float64) error {
	for i := range s.bodies {
		field := physics.Field{
			Self:   i,
			Bodies: s.bodies,
			G:      s.cfg.G,
			Policy: s.cfg.ZeroSeparation,
		}
		next := s.integ.Step(field, s.bodies[i].State(), t, s.cfg.Dt)
		if err := s.bodies[i].SetState(next); err != nil {
			return fmt.Errorf("body %d: %w", i+1, err)
		}
	}
	return nil
}

func (s *Simulator) stepSynchronized(t float64) error {
	copy(s.snapshot, s.bodies)
	for i := range s.snapshot {
		field := physics.Field{
			Self:   i,
			Bodies: s.snapshot,
			G:      s.cfg.G,
			Policy: s.cfg.ZeroSeparation,
		}
		s.next[i] = s.integ.Step(field, s.snapshot[i].State(), t, s.cfg.Dt)
	}
	for i := range s.bodies {
		if err := s.bodies[i].SetState(s.next[i]); err != nil {
			return fmt.Errorf("body %d: %w", i+1, err)
		}
	}
	return nil
}

// Next simulates the timestep labelled Time(), emits one record per body to
// sink (which may be nil) and moves the clock forward by dt. ok is false
// once the horizon has been passed; nothing is simulated in that case.
func (s *Simulator) Next(sink Sink) (t float64, ok bool, err error) {
	t = s.t
	if s.Done() {
		return t, false, nil
	}

	if err := s.Step(t); err != nil {
		return t, false, &dynamo.SimError{Time: t, Step: s.steps, Err: err}
	}

	if sink != nil {
		for i := range s.bodies {
			if err := sink.Emit(newRecord(i+1, t, s.bodies[i])); err != nil {
				if !errors.Is(err, dynamo.ErrOutput) {
					err = &dynamo.OutputError{Err: err}
				}
				return t, false, err
			}
		}
	}

	for _, o := range s.observers {
		o.OnStep(t, s.bodies)
	}
	for _, m := range s.metrics {
		m.Observe(t, s.bodies)
	}

	s.steps++
	s.t += s.cfg.Dt
	return t, true, nil
}

// Result summarises a completed run.
type Result struct {
	Steps     int
	Records   int
	FinalTime float64
	Elapsed   time.Duration
	Metrics   map[string]float64
}

// Run simulates from the current time through the end of the horizon.
func (s *Simulator) Run(sink Sink) (*Result, error) {
	for _, m := range s.metrics {
		m.Reset()
		m.Observe(s.t, s.bodies)
	}

	s.log.Debug("simulation started",
		zap.Int("bodies", len(s.bodies)),
		zap.Float64("g", s.cfg.G),
		zap.Float64("horizon", s.cfg.Horizon),
		zap.Float64("dt", s.cfg.Dt),
		zap.Stringer("update", s.cfg.Update),
		zap.Stringer("bound", s.cfg.Bound),
		zap.Stringer("zero_separation", s.cfg.ZeroSeparation),
	)

	start := time.Now()
	result := &Result{Metrics: make(map[string]float64)}

	for {
		t, ok, err := s.Next(sink)
		if err != nil {
			s.log.Error("simulation aborted", zap.Float64("t", t), zap.Error(err))
			return result, err
		}
		if !ok {
			break
		}
		result.Steps++
		result.Records += len(s.bodies)
		result.FinalTime = t
	}

	result.Elapsed = time.Since(start)
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.log.Info("simulation complete",
		zap.Int("steps", result.Steps),
		zap.Int("records", result.Records),
		zap.Float64("final_time", result.FinalTime),
		zap.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}
