package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/analysis"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/experiment"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/output"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/viz"
)

// analyzeRun simulates the input once, then reports the Lyapunov exponent,
// each body's dominant period and a phase portrait of one body.
func analyzeRun(cmd *cobra.Command, args []string) error {
	axes := strings.Split(phaseAxes, ",")
	if len(axes) != 2 {
		return fmt.Errorf("--phase wants two coordinates such as x,vx, got %q", phaseAxes)
	}

	exp, err := loadExperiment(source(args))
	if err != nil {
		return err
	}
	if err := exp.Setup(); err != nil {
		return err
	}

	s := exp.GetSimulator()
	initial, simCfg := s.Bodies(), s.Config()
	if bodyIndex < 1 || bodyIndex > len(initial) {
		return fmt.Errorf("body %d out of range 1..%d", bodyIndex, len(initial))
	}

	collected := &output.Collector{}
	if _, err := exp.Run(collected); err != nil {
		return err
	}

	integ, err := experiment.NewRegistry().GetIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}
	lambda, err := analysis.Lyapunov(initial, simCfg, integ, perturbation)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, viz.HeaderStyle.Render(exp.Name))
	fmt.Fprintf(w, "%s %.6e\n", viz.MetricLabel.Render("lyapunov exponent:"), lambda)

	fmt.Fprintln(w, "\ndominant period (x):")
	for i := 1; i <= len(initial); i++ {
		xs, err := analysis.Series(collected.Records, i, analysis.CoordX)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s %g\n", viz.MetricLabel.Render(fmt.Sprintf("body %d:", i)), analysis.DominantPeriod(xs, simCfg.Dt))
	}

	xAxis, yAxis := analysis.Coordinate(axes[0]), analysis.Coordinate(axes[1])
	portrait, err := analysis.PhasePortrait(collected.Records, bodyIndex, xAxis, yAxis)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nphase portrait of body %d (%s, %s):\n", bodyIndex, xAxis, yAxis)
	fmt.Fprint(w, portrait.ToASCII(60, 20))
	return nil
}
