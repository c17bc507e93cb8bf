package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/blockpi/internal/analysis"
	"github.com/san-kum/blockpi/internal/automation"
	"github.com/san-kum/blockpi/internal/config"
	"github.com/san-kum/blockpi/internal/control"
	"github.com/san-kum/blockpi/internal/export"
	"github.com/san-kum/blockpi/internal/loop"
	"github.com/san-kum/blockpi/internal/metrics"
	"github.com/san-kum/blockpi/internal/sim"
	"github.com/san-kum/blockpi/internal/viz"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	logLevel   string
	logFile    string
	configFile string
	preset     string
	massA      float64
	massB      float64
	speed      float64
	maxTicks   int
	frameRate  int
	plot       bool
	traceFmt   string
	digits     int
	outFile    string
	svgSize    int
	ascii      bool
	frameTick  int

	log = logrus.New()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "blockpi",
		Short: "count block collisions to compute digits of pi",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
		RunE: runLive,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	addSceneFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scene until no more collisions can happen",
		RunE:  runHeadless,
	}
	addSceneFlags(runCmd)
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot block velocities")
	runCmd.Flags().StringVar(&traceFmt, "trace", "", "write the trace to stdout (csv or json)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a scene in the terminal",
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)

	digitsCmd := &cobra.Command{
		Use:   "digits",
		Short: "simulate mass ratios 100^k and compare with pi",
		RunE:  runDigits,
	}
	addSceneFlags(digitsCmd)
	digitsCmd.Flags().IntVar(&digits, "digits", 4, fmt.Sprintf("number of digits (1-%d)", analysis.MaxSweepDigits))

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMASS A\tMASS B\tEXPECTED")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				n, err := analysis.PredictCollisions(cfg.MassA, cfg.MassB)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%g\t%g\t%d\n", name, cfg.MassA, cfg.MassB, n)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if outFile != "" {
				if err := config.Save(outFile, cfg); err != nil {
					return err
				}
				log.WithField("path", outFile).Info("config written")
				return nil
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}
	configCmd.Flags().StringVarP(&outFile, "out", "o", "", "write to file instead of stdout")

	phaseCmd := &cobra.Command{
		Use:   "phase",
		Short: "phase space plot of a run as SVG",
		RunE:  runPhase,
	}
	addSceneFlags(phaseCmd)
	phaseCmd.Flags().IntVar(&svgSize, "size", 400, "SVG width and height")
	phaseCmd.Flags().BoolVar(&ascii, "ascii", false, "plot in the terminal instead")

	frameCmd := &cobra.Command{
		Use:   "frame",
		Short: "render the scene at a given tick as SVG",
		RunE:  runFrame,
	}
	addSceneFlags(frameCmd)
	frameCmd.Flags().IntVar(&frameTick, "tick", 0, "tick to render")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run every step of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	rootCmd.AddCommand(runCmd, liveCmd, digitsCmd, presetsCmd, configCmd, phaseCmd, frameCmd, batchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&massA, "mass-a", config.DefaultMassA, "mass of the block next to the wall")
	cmd.Flags().Float64Var(&massB, "mass-b", config.DefaultMassB, "mass of the incoming block")
	cmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "speed multiplier")
	cmd.Flags().IntVar(&maxTicks, "max-ticks", config.DefaultMaxTicks, "give up after this many ticks")
	cmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate for live view")
}

func setupLogging() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		log.SetOutput(f)
	} else {
		log.SetOutput(os.Stderr)
	}
	return nil
}

// loadScene resolves the scene: preset, then config file, then any flag the
// user set explicitly.
func loadScene(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("mass-a") {
		cfg.MassA = massA
	}
	if flags.Changed("mass-b") {
		cfg.MassB = massB
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("max-ticks") {
		cfg.MaxTicks = maxTicks
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"mass_a": cfg.MassA,
		"mass_b": cfg.MassB,
		"speed":  cfg.Speed,
	}).Debug("scene loaded")
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	if traceFmt != "" && traceFmt != "csv" && traceFmt != "json" {
		return fmt.Errorf("unknown trace format: %s (csv or json)", traceFmt)
	}
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}
	s, err := sim.New(cfg)
	if err != nil {
		return err
	}

	simulator := sim.NewSimulator(log)
	for _, m := range metrics.Default() {
		simulator.AddMetric(m)
	}
	var trace *sim.Trace
	if plot || traceFmt != "" {
		trace = sim.NewTrace(1, 0)
		simulator.AddObserver(trace)
	}

	ctx, cancel := signalContext()
	defer cancel()

	result, err := simulator.Run(ctx, s, cfg.Speed, cfg.MaxTicks)
	if err != nil && !errors.Is(err, sim.ErrNotSettled) {
		return err
	}

	switch traceFmt {
	case "csv":
		return export.WriteCSV(os.Stdout, trace.Samples)
	case "json":
		return export.WriteJSON(os.Stdout, export.NewTraceData(result, trace))
	}

	printResult(os.Stdout, cfg, result)
	if plot {
		a, b := trace.Velocities()
		graph := asciigraph.PlotMany([][]float64{a, b},
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Magenta, asciigraph.Cyan),
			asciigraph.SeriesLegends("A", "B"),
			asciigraph.Caption("velocity"),
		)
		fmt.Println()
		fmt.Println(graph)
	}
	return nil
}

func printResult(w io.Writer, cfg *config.Config, result *sim.Result) {
	fmt.Fprintf(w, "masses:     %g / %g\n", cfg.MassA, cfg.MassB)
	fmt.Fprintf(w, "collisions: %d\n", result.Collisions)
	if predicted, err := analysis.PredictCollisions(cfg.MassA, cfg.MassB); err == nil {
		fmt.Fprintf(w, "predicted:  %d\n", predicted)
	}
	fmt.Fprintf(w, "ticks:      %d\n", result.Ticks)
	if result.Settled {
		fmt.Fprintln(w, "settled:    yes")
	} else {
		fmt.Fprintln(w, "settled:    no (tick budget exhausted)")
	}
	fmt.Fprintf(w, "fingerprint: %016x\n", result.Fingerprint)

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	slices.Sort(names)
	fmt.Fprintln(w, "\nmetrics:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %.6g\n", name, result.Metrics[name])
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}
	s, err := sim.New(cfg)
	if err != nil {
		return err
	}

	// The alt screen owns the terminal; stderr logging would tear it.
	if logFile == "" {
		log.SetOutput(io.Discard)
	}

	masses := control.NewTextMass(cfg.MassA, cfg.MassB)
	slider := control.NewSlider(cfg.SpeedMin, cfg.SpeedMax, cfg.Speed)
	driver := &loop.Driver{
		State:  sim.NewGuarded(s),
		Masses: masses,
		Speed:  slider,
		FPS:    cfg.FPS,
		Log:    log,
	}

	ctx, cancel := signalContext()
	defer cancel()

	driverErr := make(chan error, 1)
	go func() { driverErr <- driver.Run(ctx) }()

	p := tea.NewProgram(viz.NewModel(driver, masses, slider), tea.WithAltScreen(), tea.WithContext(ctx))
	_, runErr := p.Run()
	cancel()

	if err := <-driverErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return runErr
	}
	return nil
}

func runDigits(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	rows, err := analysis.Sweep(ctx, cfg, digits, cfg.Speed, log)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DIGITS\tMASS B/A\tCOLLISIONS\tPREDICTED\tPI\tTICKS\tMATCH")
	for _, r := range rows {
		match := "yes"
		if !r.Matches {
			match = "no"
		}
		fmt.Fprintf(w, "%d\t%g\t%d\t%d\t%s\t%d\t%s\n",
			r.Digits, r.MassB/r.MassA, r.Collisions, r.Predicted, analysis.PiDigits(r.Digits), r.Ticks, match)
	}
	return w.Flush()
}

func runPhase(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}
	s, err := sim.New(cfg)
	if err != nil {
		return err
	}

	trace := sim.NewTrace(1, 0)
	simulator := sim.NewSimulator(log)
	simulator.AddObserver(trace)

	ctx, cancel := signalContext()
	defer cancel()

	if _, err := simulator.Run(ctx, s, cfg.Speed, cfg.MaxTicks); err != nil && !errors.Is(err, sim.ErrNotSettled) {
		return err
	}

	portrait := analysis.NewPhasePortrait(cfg.MassA, cfg.MassB, trace.Samples)
	log.WithField("max_radius_error", portrait.MaxRadiusError()).Debug("phase portrait built")
	if ascii {
		fmt.Print(portrait.ToASCII(60, 30))
		return nil
	}
	return export.PhaseSVG(os.Stdout, portrait, svgSize)
}

func runFrame(cmd *cobra.Command, args []string) error {
	if frameTick < 0 {
		return fmt.Errorf("tick must not be negative, got %d", frameTick)
	}
	cfg, err := loadScene(cmd)
	if err != nil {
		return err
	}
	s, err := sim.New(cfg)
	if err != nil {
		return err
	}
	for s.Ticks < frameTick {
		s.Step(cfg.Speed)
	}

	canvas := viz.NewCanvas(80, 16)
	viz.DrawScene(canvas, s.Snapshot())
	_, err = fmt.Fprintln(os.Stdout, export.CanvasToSVG(canvas, 4))
	return err
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunScenario(ctx, scenario, log)
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tMASS A\tMASS B\tCOLLISIONS\tEXPECT\tTICKS\tSTATUS")
	failed := 0
	for _, r := range results {
		expect := "-"
		if r.Step.Expect != nil {
			expect = fmt.Sprint(*r.Step.Expect)
		}
		status := "ok"
		if r.Failed() {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(w, "%s\t%g\t%g\t%d\t%s\t%d\t%s\n",
			r.Step.Name, r.Result.Final.A.Mass, r.Result.Final.B.Mass, r.Result.Collisions, expect, r.Result.Ticks, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d steps failed", failed, len(results))
	}
	return nil
}
