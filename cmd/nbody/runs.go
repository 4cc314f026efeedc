package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/dynamo"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/export"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/sim"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/storage"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tBODIES\tT\tDT\tINTEG\tUPDATE\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%g\t%g\t%s\t%s\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.T,
			run.Dt,
			run.Integrator,
			run.Update,
			run.Steps,
		)
	}

	return w.Flush()
}

var fields = []struct {
	name    string
	caption string
	value   func(r sim.Record) float64
}{
	{"x", "x position", func(r sim.Record) float64 { return r.X }},
	{"y", "y position", func(r sim.Record) float64 { return r.Y }},
	{"vx", "x velocity", func(r sim.Record) float64 { return r.VX }},
	{"vy", "y velocity", func(r sim.Record) float64 { return r.VY }},
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(cfg.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	records, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	var body []sim.Record
	for _, r := range records {
		if r.Index == bodyIndex {
			body = append(body, r)
		}
	}
	if len(body) == 0 {
		return fmt.Errorf("no data to plot for body %d (run has %d bodies)", bodyIndex, meta.Bodies)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "run: %s\n", meta.ID)
	fmt.Fprintf(w, "body: %d of %d\n", bodyIndex, meta.Bodies)
	fmt.Fprintf(w, "samples: %d\n\n", len(body))

	plotted := false
	for _, f := range fields {
		if field != "" && field != f.name {
			continue
		}
		data := make([]float64, len(body))
		for i, r := range body {
			data[i] = f.value(r)
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("body %d %s vs time", bodyIndex, f.caption)),
		)
		fmt.Fprintln(w, graph)
		fmt.Fprintln(w)
		plotted = true
	}
	if !plotted {
		return fmt.Errorf("unknown field %q (want x, y, vx or vy)", field)
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	if exportPath == "-" {
		return st.ExportJSON(cmd.OutOrStdout(), args[0])
	}

	f, err := os.Create(exportPath)
	if err != nil {
		return &dynamo.OutputError{Sink: exportPath, Err: err}
	}
	if err := st.ExportJSON(f, args[0]); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return &dynamo.OutputError{Sink: exportPath, Err: err}
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "exported %s to %s\n", args[0], exportPath)
	return nil
}

func svgRun(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	records, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("run %s has no trajectory", args[0])
	}

	var svg string
	if braille {
		canvas := export.TrajectoriesToCanvas(records, svgWidth/8, svgHeight/16)
		svg = export.CanvasToSVG(canvas, 4)
	} else {
		svg = export.TrajectoriesToSVG(records, svgWidth, svgHeight)
	}

	if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
		return &dynamo.OutputError{Sink: svgPath, Err: err}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", svgPath)
	return nil
}
