package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/config"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/experiment"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/metrics"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/output"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/sim"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/storage"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/viz"
)

// source picks the initial conditions: --preset, then the argument, then
// the configured input file.
func source(args []string) string {
	if preset != "" {
		return experiment.PresetPrefix + preset
	}
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Input
}

func loadExperiment(src string) (*experiment.Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	registry := experiment.NewRegistry()
	params, name, err := registry.GetParameters(src)
	if err != nil {
		return nil, err
	}
	logger.Debug("parameters loaded",
		zap.String("source", src),
		zap.Int("bodies", len(params.Bodies)),
		zap.Float64("g", params.G),
		zap.Float64("t", params.T),
		zap.Float64("dt", params.Dt),
	)

	return experiment.New(name, cfg, params, registry, logger), nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	exp, err := loadExperiment(source(args))
	if err != nil {
		return err
	}
	if err := exp.Setup(); err != nil {
		return err
	}

	out, err := output.Create(cfg.Output, cfg.Format)
	if err != nil {
		return err
	}

	var sink sim.Sink = out
	var collected *output.Collector
	if cfg.Save {
		collected = &output.Collector{}
		sink = output.Tee(out, collected)
	}

	result, runErr := exp.Run(sink)
	if err := out.Close(); runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return runErr
	}

	// keep stdout clean when the trajectory goes there
	w := cmd.OutOrStdout()
	if cfg.Output == "-" {
		w = cmd.ErrOrStderr()
	}

	runID := ""
	if cfg.Save {
		st := storage.New(cfg.DataDir)
		if runID, err = st.Save(exp.Metadata(result), collected.Records); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		logger.Info("run saved", zap.String("id", runID), zap.String("dir", cfg.DataDir))
	}

	printSummary(w, exp.Name, result, runID)
	return nil
}

func printSummary(w io.Writer, name string, result *sim.Result, runID string) {
	fmt.Fprintln(w, viz.HeaderStyle.Render(name))
	fmt.Fprintf(w, "%s %v\n", viz.MetricLabel.Render("completed in"), result.Elapsed.Round(time.Microsecond))
	if runID != "" {
		fmt.Fprintf(w, "%s %s\n", viz.MetricLabel.Render("run id:"), runID)
	}
	fmt.Fprintf(w, "%s %d\n", viz.MetricLabel.Render("steps:"), result.Steps)
	fmt.Fprintf(w, "%s %d\n", viz.MetricLabel.Render("records:"), result.Records)
	if len(result.Metrics) == 0 {
		return
	}
	fmt.Fprintln(w, "\nmetrics:")
	for _, name := range metrics.Names() {
		if val, ok := result.Metrics[name]; ok {
			fmt.Fprintf(w, "  %s %s\n", viz.MetricLabel.Render(name+":"), viz.MetricValue.Render(fmt.Sprintf("%.6e", val)))
		}
	}
}

func initParameters(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	if err := registry.WritePreset(initPreset, initPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote preset %s to %s\n", initPreset, initPath)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, viz.GradientText("presets", viz.CurrentTheme.Primary, viz.CurrentTheme.Secondary))
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "  %-10s %s %s\n", name,
			viz.Subtle.Render(fmt.Sprintf("(%d bodies, T=%g, dt=%g)", len(p.Bodies), p.T, p.Dt)),
			p.Description)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if preset == "" && len(args) == 0 {
		return runPicker(cmd)
	}

	exp, err := loadExperiment(source(args))
	if err != nil {
		return err
	}

	live, err := viz.NewLive(exp.NewSimulator, viz.LiveOptions{
		Title:         exp.Name,
		StepsPerFrame: stepsPerFrame,
		Trails:        trails,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(live, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runPicker(cmd *cobra.Command) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	items := make([]viz.PickerItem, 0, len(config.Presets))
	for _, name := range registry.ListPresets() {
		params, _, err := registry.GetParameters(experiment.PresetPrefix + name)
		if err != nil {
			return err
		}
		exp := experiment.New(name, cfg, params, registry, logger)
		items = append(items, viz.PickerItem{
			Name:        name,
			Description: config.Presets[name].Description,
			Factory:     exp.NewSimulator,
		})
	}

	speed := stepsPerFrame
	if speed <= 0 {
		speed = 10
	}
	picker := viz.NewPicker(items, viz.LiveOptions{StepsPerFrame: speed, Trails: true})
	p := tea.NewProgram(picker, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	var src string
	var names []string
	switch {
	case preset != "":
		src, names = experiment.PresetPrefix+preset, args
	case len(args) > 0:
		src, names = args[0], args[1:]
	default:
		return fmt.Errorf("compare: a parameters file or --preset is required")
	}
	if len(names) == 0 {
		names = []string{"euler", "verlet", "leapfrog", "rk4"}
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-12s  %-12s  %-12s  %-12s  %-12s\n", "integrator", "final_x1", "final_y1", "energy_drift", "time_ms")
	fmt.Fprintln(w, strings.Repeat("-", 66))

	base := *cfg
	for _, name := range names {
		runCfg := base
		runCfg.Integrator = name
		runCfg.Metrics = []string{"energy_drift"}
		cfg = &runCfg

		exp, err := loadExperiment(src)
		if err == nil {
			err = exp.Setup()
		}
		if err != nil {
			fmt.Fprintf(w, "%-12s  error: %v\n", name, err)
			continue
		}

		result, err := exp.Run(nil)
		if err != nil {
			fmt.Fprintf(w, "%-12s  error: %v\n", name, err)
			continue
		}

		final := exp.GetSimulator().Bodies()[0]
		fmt.Fprintf(w, "%-12s  %12.6f  %12.6f  %12.2e  %12.2f\n", name,
			final.Pos.X, final.Pos.Y, result.Metrics["energy_drift"],
			float64(result.Elapsed.Microseconds())/1000)
	}
	cfg = &base

	return nil
}
