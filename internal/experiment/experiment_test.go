package experiment

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/config"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/dynamo"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/output"
)

func TestRegistryParameters(t *testing.T) {
	r := NewRegistry()

	p, name, err := r.GetParameters("preset:binary")
	if err != nil {
		t.Fatal(err)
	}
	if name != "binary" || len(p.Bodies) != 2 {
		t.Errorf("unexpected preset %s with %d bodies", name, len(p.Bodies))
	}

	if _, _, err := r.GetParameters("preset:nope"); !errors.Is(err, dynamo.ErrInput) {
		t.Errorf("expected input error for unknown preset, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "trio.txt")
	if err := r.WritePreset("trio", path); err != nil {
		t.Fatal(err)
	}
	p, name, err = r.GetParameters(path)
	if err != nil {
		t.Fatal(err)
	}
	if name != "trio" || len(p.Bodies) != 3 {
		t.Errorf("unexpected file parameters %s with %d bodies", name, len(p.Bodies))
	}

	if _, _, err := r.GetParameters(filepath.Join(t.TempDir(), "missing.txt")); !errors.Is(err, dynamo.ErrInput) {
		t.Errorf("expected input error for missing file, got %v", err)
	}
}

func TestRegistryIntegratorsAndMetrics(t *testing.T) {
	r := NewRegistry()

	if _, err := r.GetIntegrator(""); err != nil {
		t.Errorf("default integrator: %v", err)
	}
	if _, err := r.GetIntegrator("rk45"); err == nil {
		t.Error("expected error for unknown integrator")
	}

	ms, err := r.GetMetrics(1, nil)
	if err != nil || len(ms) != 3 {
		t.Errorf("expected 3 default metrics, got %d (%v)", len(ms), err)
	}
	if _, err := r.GetMetrics(1, []string{"entropy"}); err == nil {
		t.Error("expected error for unknown metric")
	}
}

func TestWritePresetFailure(t *testing.T) {
	err := NewRegistry().WritePreset("orbit", filepath.Join(t.TempDir(), "missing", "p.txt"))
	if !errors.Is(err, dynamo.ErrOutput) {
		t.Errorf("expected output error, got %v", err)
	}
}

func TestExperimentRun(t *testing.T) {
	r := NewRegistry()
	p, name, err := r.GetParameters("preset:binary")
	if err != nil {
		t.Fatal(err)
	}
	p.T, p.Dt = 1, 0.01

	cfg := config.DefaultConfig()
	cfg.Update = "synchronized"
	cfg.Horizon = "exact"

	exp := New(name, cfg, p, r, nil)
	if _, err := exp.Run(nil); err == nil {
		t.Error("expected error before setup")
	}
	if err := exp.Setup(); err != nil {
		t.Fatal(err)
	}

	sink := &output.Collector{}
	res, err := exp.Run(sink)
	if err != nil {
		t.Fatal(err)
	}
	if res.Records != len(sink.Records) || res.Records != res.Steps*2 {
		t.Errorf("records %d, collected %d, steps %d", res.Records, len(sink.Records), res.Steps)
	}
	if drift := res.Metrics["energy_drift"]; drift > 0.5*p.Dt {
		t.Errorf("unexpected energy drift %g", drift)
	}

	meta := exp.Metadata(res)
	if meta.Name != "binary" || meta.Bodies != 2 || meta.Update != "synchronized" || meta.Horizon != "exact" {
		t.Errorf("unexpected metadata %+v", meta)
	}
}

func TestExperimentRejectsBadConfig(t *testing.T) {
	p := config.GetPreset("orbit")
	cfg := config.DefaultConfig()
	cfg.Integrator = "magic"

	if err := New("orbit", cfg, p, nil, nil).Setup(); err == nil {
		t.Error("expected error for unknown integrator")
	}

	cfg = config.DefaultConfig()
	p.Dt = -1
	if err := New("orbit", cfg, p, nil, nil).Setup(); !errors.Is(err, dynamo.ErrNonPositiveConstant) {
		t.Errorf("expected ErrNonPositiveConstant, got %v", err)
	}
}
