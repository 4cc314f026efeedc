package experiment

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/config"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/sim"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/storage"
)

// Experiment ties a run configuration to a set of initial conditions.
type Experiment struct {
	Name   string
	cfg    *config.Config
	params *config.Parameters
	reg    *Registry
	log    *zap.Logger

	simCfg    sim.Config
	simulator *sim.Simulator
}

func New(name string, cfg *config.Config, params *config.Parameters, reg *Registry, log *zap.Logger) *Experiment {
	if log == nil {
		log = zap.NewNop()
	}
	if reg == nil {
		reg = NewRegistry()
	}
	return &Experiment{
		Name:   name,
		cfg:    cfg,
		params: params,
		reg:    reg,
		log:    log,
	}
}

// Setup validates the combination and builds the simulator.
func (e *Experiment) Setup() error {
	s, err := e.NewSimulator()
	if err != nil {
		return err
	}
	e.simulator = s
	return nil
}

// NewSimulator builds a fresh simulator at t = 0 with its own metrics.
// It can be called repeatedly, for instance to restart a live view.
func (e *Experiment) NewSimulator() (*sim.Simulator, error) {
	simCfg, err := e.cfg.SimConfig(e.params.G, e.params.T, e.params.Dt)
	if err != nil {
		return nil, err
	}
	integ, err := e.reg.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return nil, err
	}
	ms, err := e.reg.GetMetrics(e.params.G, e.cfg.Metrics)
	if err != nil {
		return nil, err
	}

	opts := []sim.Option{sim.WithLogger(e.log.With(zap.String("run", e.Name)))}
	for _, m := range ms {
		opts = append(opts, sim.WithMetric(m))
	}

	s, err := sim.New(e.params.Bodies, simCfg, integ, opts...)
	if err != nil {
		return nil, err
	}
	e.simCfg = simCfg
	return s, nil
}

func (e *Experiment) Run(sink sim.Sink) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(sink)
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

// Metadata describes a finished run for the store.
func (e *Experiment) Metadata(res *sim.Result) storage.RunMetadata {
	meta := storage.RunMetadata{
		Name:           e.Name,
		Bodies:         len(e.params.Bodies),
		G:              e.params.G,
		T:              e.params.T,
		Dt:             e.params.Dt,
		Integrator:     e.cfg.Integrator,
		Update:         e.simCfg.Update.String(),
		ZeroSeparation: e.simCfg.ZeroSeparation.String(),
		Horizon:        e.simCfg.Bound.String(),
	}
	if res != nil {
		meta.Steps = res.Steps
		meta.Metrics = res.Metrics
	}
	return meta
}
