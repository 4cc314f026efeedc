package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/automation"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/experiment"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/storage"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/viz"
)

func newRunner() *automation.Runner {
	return automation.NewRunner(cfg, experiment.NewRegistry(), storage.New(cfg.DataDir), logger)
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	results, runErr := newRunner().RunScenario(cmd.Context(), scenario)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tNAME\tSTEPS\tRECORDS\tELAPSED\tRUN ID")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%v\t%s\n", i+1, r.Name, r.Result.Steps, r.Result.Records,
			r.Result.Elapsed.Round(time.Microsecond), r.RunID)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

func runSweep(cmd *cobra.Command, args []string) error {
	if len(sweepDts) == 0 {
		return fmt.Errorf("sweep: --dt needs at least one value")
	}

	results, err := newRunner().RunSweep(cmd.Context(), source(args), sweepDts)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-12s  %-10s  %-14s  %-10s\n", "dt", "steps", "energy_drift", "time_ms")
	fmt.Fprintln(w, strings.Repeat("-", 52))
	for _, r := range results {
		fmt.Fprintf(w, "%-12g  %-10d  %-14.4e  %-10.2f\n", r.Dt, r.Steps, r.EnergyDrift,
			float64(r.Elapsed.Microseconds())/1000)
	}
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	results, err := newRunner().RunMonteCarlo(cmd.Context(), &automation.MonteCarloConfig{
		Source:       source(args),
		Perturbation: mcPerturbation,
		NumTrials:    mcTrials,
		Seed:         mcSeed,
		Workers:      mcWorkers,
	})
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	worst := 0.0
	for _, r := range results {
		worst = max(worst, r.EnergyDrift)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s %d\n", viz.MetricLabel.Render("trials:"), len(results))
	fmt.Fprintf(w, "%s %s\n", viz.MetricLabel.Render("stable:"), viz.StatusDone.Render(fmt.Sprint(stable)))
	fmt.Fprintf(w, "%s %s\n", viz.MetricLabel.Render("unstable:"), viz.Warning.Render(fmt.Sprint(unstable)))
	fmt.Fprintf(w, "%s %.4e\n", viz.MetricLabel.Render("worst energy drift:"), worst)
	return nil
}
