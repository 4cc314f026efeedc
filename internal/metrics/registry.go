package metrics

import (
	"fmt"
	"sort"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/sim"
)

// DefaultStabilityRadius bounds the stability metric when it is requested
// by name.
const DefaultStabilityRadius = 100.0

var constructors = map[string]func(g float64) sim.Metric{
	"energy_drift":           func(g float64) sim.Metric { return NewEnergyDrift(g) },
	"momentum_drift":         func(float64) sim.Metric { return NewMomentumDrift() },
	"angular_momentum_drift": func(float64) sim.Metric { return NewAngularMomentumDrift() },
	"stability":              func(float64) sim.Metric { return NewStability(DefaultStabilityRadius) },
}

// New builds the named metrics for a run with gravitational constant g.
func New(g float64, names ...string) ([]sim.Metric, error) {
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		ctor, ok := constructors[name]
		if !ok {
			return nil, fmt.Errorf("metrics: unknown metric %q (available: %v)", name, Names())
		}
		out = append(out, ctor(g))
	}
	return out, nil
}

func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
