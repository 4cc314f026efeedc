package experiment

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/config"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/dynamo"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/integrators"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/metrics"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/sim"
)

// PresetPrefix selects a built-in preset instead of a parameters file, as
// in "preset:figure8".
const PresetPrefix = "preset:"

type Registry struct {
	presets     map[string]func() *config.Parameters
	integrators map[string]func() (dynamo.Integrator, error)
}

func NewRegistry() *Registry {
	r := &Registry{
		presets:     make(map[string]func() *config.Parameters),
		integrators: make(map[string]func() (dynamo.Integrator, error)),
	}

	for _, name := range config.ListPresets() {
		name := name
		r.presets[name] = func() *config.Parameters { return config.GetPreset(name) }
	}
	for _, name := range integrators.Names() {
		name := name
		r.integrators[name] = func() (dynamo.Integrator, error) { return integrators.New(name) }
	}

	return r
}

// GetParameters resolves source to initial conditions. A source with the
// preset prefix names a built-in preset; anything else is a file path.
func (r *Registry) GetParameters(source string) (*config.Parameters, string, error) {
	if name, ok := strings.CutPrefix(source, PresetPrefix); ok {
		fn, ok := r.presets[name]
		if !ok {
			return nil, "", &dynamo.InputError{Source: source, Err: fmt.Errorf("unknown preset %q (available: %v)", name, r.ListPresets())}
		}
		return fn(), name, nil
	}

	p, err := config.LoadParameters(source)
	if err != nil {
		return nil, "", err
	}
	name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return p, name, nil
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	if name == "" {
		name = integrators.Default
	}
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, integrators.Names())
	}
	return fn()
}

func (r *Registry) GetMetrics(g float64, names []string) ([]sim.Metric, error) {
	if len(names) == 0 {
		return r.DefaultMetrics(g), nil
	}
	return metrics.New(g, names...)
}

func (r *Registry) ListPresets() []string {
	return config.ListPresets()
}

func (r *Registry) DefaultMetrics(g float64) []sim.Metric {
	return []sim.Metric{
		metrics.NewEnergyDrift(g),
		metrics.NewMomentumDrift(),
		metrics.NewAngularMomentumDrift(),
	}
}

// WritePreset saves the named preset as a parameters file.
func (r *Registry) WritePreset(name, path string) error {
	fn, ok := r.presets[name]
	if !ok {
		return fmt.Errorf("unknown preset %q (available: %v)", name, r.ListPresets())
	}

	f, err := os.Create(path)
	if err != nil {
		return &dynamo.OutputError{Sink: path, Err: err}
	}
	if err := config.WriteParameters(f, fn()); err != nil {
		f.Close()
		return &dynamo.OutputError{Sink: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &dynamo.OutputError{Sink: path, Err: err}
	}
	return nil
}
