package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jude-mbroh/n-body-gravity-simulation/internal/config"
	"github.com/jude-mbroh/n-body-gravity-simulation/internal/dynamo"
)

var (
	configFile string
	dataDir    string
	logLevel   string
	logFormat  string

	// run, live, compare and analyze
	preset         string
	outputPath     string
	format         string
	integrator     string
	update         string
	zeroSeparation string
	horizon        string
	metricNames    []string
	save           bool

	// init
	initPreset string
	initPath   string

	// export, svg
	exportPath string
	svgPath    string

	// sweep, montecarlo
	sweepDts       []float64
	mcTrials       int
	mcPerturbation float64
	mcSeed         int64
	mcWorkers      int

	// live
	stepsPerFrame int
	trails        bool

	// analyze
	phaseAxes    string
	perturbation float64

	// plot, svg, analyze
	bodyIndex int
	field     string
	svgWidth  int
	svgHeight int
	braille   bool

	cfg    *config.Config
	logger = zap.NewNop()
)

func main() {
	rootCmd := newRootCmd()
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "nbody: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process status: 2 for output failures,
// 1 for everything else.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, dynamo.ErrOutput):
		return 2
	default:
		return 1
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nbody",
		Short:         "2D gravitational n-body simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// no subcommand opens the preset picker
			return runPicker(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "run configuration file (yaml or toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory for saved runs")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console or json)")

	runCmd := &cobra.Command{
		Use:   "run [parameters]",
		Short: "simulate a parameters file and write the trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultOutput, "trajectory file, - for stdout")
	runCmd.Flags().StringVar(&format, "format", config.DefaultFormat, "trajectory format (text or csv)")
	runCmd.Flags().BoolVar(&save, "save", false, "also store the run in the data directory")

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "write a preset as a parameters file",
		Args:  cobra.NoArgs,
		RunE:  initParameters,
	}
	initCmd.Flags().StringVar(&initPreset, "preset", "figure8", "preset name")
	initCmd.Flags().StringVarP(&initPath, "output", "o", config.DefaultInput, "parameters file to write")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot one body's trajectory component against time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&bodyIndex, "body", 1, "1-based body index")
	plotCmd.Flags().StringVar(&field, "field", "", "component to plot (x, y, vx, vy); all when empty")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&exportPath, "output", "o", "-", "JSON file, - for stdout")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a saved run's trajectories as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  svgRun,
	}
	svgCmd.Flags().StringVarP(&svgPath, "output", "o", "trajectories.svg", "SVG file to write")
	svgCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	svgCmd.Flags().IntVar(&svgHeight, "height", 800, "image height")
	svgCmd.Flags().BoolVar(&braille, "braille", false, "render through the braille canvas")

	liveCmd := &cobra.Command{
		Use:   "live [parameters]",
		Short: "run a simulation with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&stepsPerFrame, "speed", 10, "timesteps per frame")
	liveCmd.Flags().BoolVar(&trails, "trails", true, "draw body trails")

	compareCmd := &cobra.Command{
		Use:   "compare [parameters] [integrators...]",
		Short: "compare integrators on the same initial conditions",
		Args:  cobra.ArbitraryArgs,
		RunE:  compareIntegrators,
	}
	addSimFlags(compareCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [parameters]",
		Short: "estimate chaos and periodicity of a configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}
	addSimFlags(analyzeCmd)
	analyzeCmd.Flags().IntVar(&bodyIndex, "body", 1, "1-based body index for the phase portrait")
	analyzeCmd.Flags().StringVar(&phaseAxes, "phase", "x,vx", "phase portrait coordinates")
	analyzeCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-8, "initial separation for the Lyapunov estimate")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted sequence of simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().StringVar(&integrator, "integrator", "rk4", "default integrator for steps that name none")

	sweepCmd := &cobra.Command{
		Use:   "sweep [parameters]",
		Short: "rerun with several timesteps and report energy drift",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&sweepDts, "dt", []float64{0.1, 0.01, 0.001}, "timesteps to try")

	mcCmd := &cobra.Command{
		Use:   "montecarlo [parameters]",
		Short: "rerun with randomly displaced starting positions",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonteCarlo,
	}
	addSimFlags(mcCmd)
	mcCmd.Flags().IntVar(&mcTrials, "trials", 20, "number of trials")
	mcCmd.Flags().Float64Var(&mcPerturbation, "perturbation", 0.01, "largest displacement per axis")
	mcCmd.Flags().Int64Var(&mcSeed, "seed", 0, "random seed, 0 for time based")
	mcCmd.Flags().IntVar(&mcWorkers, "workers", 0, "concurrent trials, 0 for GOMAXPROCS")

	rootCmd.AddCommand(runCmd, initCmd, presetsCmd, listCmd, plotCmd, exportCmd, svgCmd,
		liveCmd, compareCmd, analyzeCmd, batchCmd, sweepCmd, mcCmd)
	return rootCmd
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use a built-in preset instead of a parameters file")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	cmd.Flags().StringVar(&update, "update", "sequential", "body update order (sequential or synchronized)")
	cmd.Flags().StringVar(&zeroSeparation, "zero-separation", "reset", "coincident body policy (reset or skip)")
	cmd.Flags().StringVar(&horizon, "horizon", "extended", "last timestep (extended: T+dt, exact: T)")
	cmd.Flags().StringSliceVar(&metricNames, "metrics", nil, "metrics to report")
}

// setup loads the configuration file, applies flags that were set
// explicitly and builds the logger.
func setup(cmd *cobra.Command) error {
	cfg = config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = logFormat
	}
	if flags.Changed("output") && cmd.Name() == "run" {
		cfg.Output = outputPath
	}
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("update") {
		cfg.Update = update
	}
	if flags.Changed("zero-separation") {
		cfg.ZeroSeparation = zeroSeparation
	}
	if flags.Changed("horizon") {
		cfg.Horizon = horizon
	}
	if flags.Changed("metrics") {
		cfg.Metrics = metricNames
	}
	if flags.Changed("save") {
		cfg.Save = save
	}

	l, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	logger = l
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
