package automation

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/dgravesa/go-parallel/parallel"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/config"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/dynamo"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/experiment"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/output"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/physics"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/sim"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/storage"
)

// Scenario defines a scripted sequence of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario. Source is a parameters file
// or "preset:<name>". Empty fields fall back to the base configuration;
// Dt and Duration override the source's dt and T when positive.
type ScenarioStep struct {
	Source         string   `yaml:"source"`
	Integrator     string   `yaml:"integrator"`
	Update         string   `yaml:"update"`
	ZeroSeparation string   `yaml:"zero_separation"`
	Horizon        string   `yaml:"horizon"`
	Dt             float64  `yaml:"dt"`
	Duration       float64  `yaml:"duration"`
	Metrics        []string `yaml:"metrics"`
	SaveAs         string   `yaml:"save_as"`
}

// StepResult is the outcome of one scenario step. RunID is set when the
// step was saved.
type StepResult struct {
	Name   string
	Result *sim.Result
	RunID  string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}

	return &scenario, nil
}

// Runner executes batches of runs against a shared base configuration.
type Runner struct {
	Base     *config.Config
	Registry *experiment.Registry
	Store    *storage.Store
	Log      *zap.Logger
}

func NewRunner(base *config.Config, reg *experiment.Registry, st *storage.Store, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	if reg == nil {
		reg = experiment.NewRegistry()
	}
	return &Runner{Base: base, Registry: reg, Store: st, Log: log}
}

func (r *Runner) configFor(step ScenarioStep) *config.Config {
	cfg := *r.Base
	if step.Integrator != "" {
		cfg.Integrator = step.Integrator
	}
	if step.Update != "" {
		cfg.Update = step.Update
	}
	if step.ZeroSeparation != "" {
		cfg.ZeroSeparation = step.ZeroSeparation
	}
	if step.Horizon != "" {
		cfg.Horizon = step.Horizon
	}
	if step.Metrics != nil {
		cfg.Metrics = step.Metrics
	}
	return &cfg
}

// RunScenario executes all steps in order and stops at the first failure,
// returning the results gathered so far.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		r.Log.Info("scenario step",
			zap.String("scenario", scenario.Name),
			zap.Int("step", i+1),
			zap.Int("of", len(scenario.Steps)),
			zap.String("source", step.Source),
		)

		cfg := r.configFor(step)
		if err := cfg.Validate(); err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		params, name, err := r.Registry.GetParameters(step.Source)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		if step.Dt > 0 {
			params.Dt = step.Dt
		}
		if step.Duration > 0 {
			params.T = step.Duration
		}
		if step.SaveAs != "" {
			name = step.SaveAs
		}

		exp := experiment.New(name, cfg, params, r.Registry, r.Log)
		if err := exp.Setup(); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		var collected *output.Collector
		var sink sim.Sink
		if step.SaveAs != "" && r.Store != nil {
			collected = &output.Collector{}
			sink = collected
		}

		result, err := exp.Run(sink)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: name, Result: result}
		if collected != nil {
			if sr.RunID, err = r.Store.Save(exp.Metadata(result), collected.Records); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// SweepResult holds one point of a timestep sweep
type SweepResult struct {
	Dt          float64
	Steps       int
	EnergyDrift float64
	Elapsed     time.Duration
}

// RunSweep repeats the source with each timestep and reports the energy
// drift of each, as a convergence study for the configured integrator.
func (r *Runner) RunSweep(ctx context.Context, source string, dts []float64) ([]SweepResult, error) {
	cfg := *r.Base
	cfg.Metrics = []string{"energy_drift"}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	results := make([]SweepResult, 0, len(dts))
	for i, dt := range dts {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		params, name, err := r.Registry.GetParameters(source)
		if err != nil {
			return nil, err
		}
		params.Dt = dt

		exp := experiment.New(name, &cfg, params, r.Registry, r.Log)
		if err := exp.Setup(); err != nil {
			return nil, fmt.Errorf("dt=%g: %w", dt, err)
		}
		result, err := exp.Run(nil)
		if err != nil {
			return nil, fmt.Errorf("dt=%g: %w", dt, err)
		}

		results = append(results, SweepResult{
			Dt:          dt,
			Steps:       result.Steps,
			EnergyDrift: result.Metrics["energy_drift"],
			Elapsed:     result.Elapsed,
		})
		r.Log.Debug("sweep point", zap.Int("point", i+1), zap.Int("of", len(dts)), zap.Float64("dt", dt))
	}

	return results, nil
}

// MonteCarloConfig defines Monte Carlo simulation parameters. Trials run
// on Workers goroutines, GOMAXPROCS when zero.
type MonteCarloConfig struct {
	Source       string
	Perturbation float64
	NumTrials    int
	Seed         int64
	Workers      int
}

// MonteCarloResult holds the outcome of one perturbed trial
type MonteCarloResult struct {
	TrialID     int
	Bodies      []physics.Body
	Stable      bool // every body stayed within the stability radius
	EnergyDrift float64
}

// RunMonteCarlo displaces every body's starting position by up to
// Perturbation in each axis and reruns the source for each trial. The
// displacements are drawn up front so a seed reproduces the same trials
// regardless of scheduling.
func (r *Runner) RunMonteCarlo(ctx context.Context, mc *MonteCarloConfig) ([]MonteCarloResult, error) {
	if mc.NumTrials <= 0 {
		return nil, fmt.Errorf("monte carlo needs at least one trial, got %d", mc.NumTrials)
	}

	cfg := *r.Base
	cfg.Metrics = []string{"stability", "energy_drift"}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, name, err := r.Registry.GetParameters(mc.Source)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(mc.Seed))
	if mc.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	trials := make([][]physics.Body, mc.NumTrials)
	for trial := range trials {
		bodies := physics.Clone(base.Bodies)
		for i := range bodies {
			bodies[i].Pos = r2.Add(bodies[i].Pos, r2.Vec{
				X: (rng.Float64() - 0.5) * 2 * mc.Perturbation,
				Y: (rng.Float64() - 0.5) * 2 * mc.Perturbation,
			})
		}
		if i, j, dup := physics.DuplicatePositions(bodies); dup {
			return nil, fmt.Errorf("trial %d: bodies %d and %d coincide: %w", trial, i+1, j+1, dynamo.ErrDuplicatePosition)
		}
		trials[trial] = bodies
	}

	workers := mc.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]MonteCarloResult, mc.NumTrials)
	errs := make([]error, mc.NumTrials)
	var done atomic.Int64

	parallel.WithNumGoroutines(workers).For(mc.NumTrials, func(trial, _ int) {
		if errs[trial] = ctx.Err(); errs[trial] != nil {
			return
		}

		params := &config.Parameters{G: base.G, T: base.T, Dt: base.Dt, Bodies: trials[trial]}
		exp := experiment.New(fmt.Sprintf("%s_mc%d", name, trial), &cfg, params, r.Registry, r.Log)
		if errs[trial] = exp.Setup(); errs[trial] != nil {
			return
		}
		result, err := exp.Run(nil)
		if err != nil {
			errs[trial] = err
			return
		}

		results[trial] = MonteCarloResult{
			TrialID:     trial,
			Bodies:      trials[trial],
			Stable:      result.Metrics["stability"] == 1,
			EnergyDrift: result.Metrics["energy_drift"],
		}

		if n := done.Add(1); n%10 == 0 {
			r.Log.Info("monte carlo progress", zap.Int64("done", n), zap.Int("of", mc.NumTrials))
		}
	})

	for trial, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", trial, err)
		}
	}
	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
