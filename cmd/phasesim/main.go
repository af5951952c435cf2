package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/rubenzuurman/phase-transition-simulation/internal/analysis"
	"github.com/rubenzuurman/phase-transition-simulation/internal/automation"
	"github.com/rubenzuurman/phase-transition-simulation/internal/config"
	"github.com/rubenzuurman/phase-transition-simulation/internal/experiment"
	"github.com/rubenzuurman/phase-transition-simulation/internal/report"
	"github.com/rubenzuurman/phase-transition-simulation/internal/sim"
	"github.com/rubenzuurman/phase-transition-simulation/internal/viz"
)

var (
	dt          float64
	duration    float64
	seed        int64
	forcing     string
	collision   string
	msd         string
	recordEvery int
	// Config file
	configFile string
	// Preset name
	preset string
	// run output
	asJSON bool
	asCSV  bool
	noPlot bool
	// sweep
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	// montecarlo
	trials int
	// config
	format string
)

// main registers the commands and exits with status 1 if one fails.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "phasesim",
		Short: "random-walk particle ensembles in reflective boxes",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run all ensembles and report their diffusion coefficients",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&asJSON, "json", false, "write the run as JSON to stdout")
	runCmd.Flags().BoolVar(&asCSV, "csv", false, "write the recorded series as CSV to stdout")
	runCmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip the D(t) chart")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "step the ensembles live with a statistics monitor",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "sweep dt, duration or an ensemble parameter (force, radius, width, height, particles)",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first parameter value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 20000, "last parameter value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "repeat a run over independent seeds",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addSimFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file.yaml]",
		Short: "run a scripted sequence of configurations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tENSEMBLES\tPARTICLES\tDURATION\tWALLS")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%.1fs\t%s\n",
					name, len(cfg.Ensembles), cfg.TotalParticles(), cfg.Duration, walls(cfg))
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return config.Write(cmd.OutOrStdout(), cfg, format)
		},
	}
	addSimFlags(configCmd)
	configCmd.Flags().StringVar(&format, "format", "yaml", "output format (yaml, toml)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure ticks per second for each preset",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}

	rootCmd.AddCommand(runCmd, liveCmd, sweepCmd, monteCarloCmd, scenarioCmd, presetsCmd, configCmd, benchCmd)
	return rootCmd
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed; ensemble i uses seed+i")
	cmd.Flags().StringVar(&forcing, "forcing", config.DefaultForcing, "forcing policy (axis, angle)")
	cmd.Flags().StringVar(&collision, "collision", config.DefaultCollision, "wall collision strategy (segment, axis)")
	cmd.Flags().StringVar(&msd, "msd", config.DefaultMSD, "MSD convention (euclidean, legacy)")
	cmd.Flags().IntVar(&recordEvery, "record-every", 1, "record a sample every N ticks")
}

// resolveConfig starts from the preset, replaces it with the config file
// if one is given, and applies the flags the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
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
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("forcing") {
		cfg.Forcing = forcing
	}
	if flags.Changed("collision") {
		cfg.Collision = collision
	}
	if flags.Changed("msd") {
		cfg.MSD = msd
	}
	if flags.Changed("record-every") {
		cfg.RecordEvery = recordEvery
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	quiet := asJSON || asCSV
	if !quiet {
		fmt.Fprintf(out, "running %d ensembles (%d particles) for %.2fs at dt=%g...\n",
			len(cfg.Ensembles), cfg.TotalParticles(), cfg.Duration, cfg.Dt)
	}
	start := time.Now()

	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	switch {
	case asJSON:
		return report.WriteJSON(out, exp.Config(), result)
	case asCSV:
		return report.WriteCSV(out, result)
	}

	fmt.Fprintf(out, "completed in %v\n", time.Since(start))
	fmt.Fprintf(out, "steps: %d\n\n", result.StepsTaken)
	for _, e := range result.Errors {
		fmt.Fprintf(out, "error: %v\n", e)
	}

	if err := printSummary(out, analysis.Summarize(result)); err != nil {
		return err
	}
	if !noPlot {
		plotDiffusion(out, result)
	}
	return nil
}

func printSummary(out io.Writer, summaries []analysis.Summary) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ENSEMBLE\tN\tMSD\tD\tFITTED D\tCONTAINED\tSPEED\tENERGY")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.4f\t%s\t%.3f\t%.2f\t%.4g\n",
			s.Name,
			s.Particles,
			s.MSD,
			s.Diffusion,
			formatOptional(s.Fitted),
			s.Metrics["containment"],
			s.Metrics["mean_speed"],
			s.Metrics["kinetic_energy"],
		)
	}
	return w.Flush()
}

func formatOptional(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func plotDiffusion(out io.Writer, result *sim.Result) {
	for _, s := range result.Series {
		if len(s.Diffusion) < 2 {
			continue
		}
		graph := asciigraph.Plot(s.Diffusion,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("D(t) %s, %d particles", s.Name, s.Particles)),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	registry := experiment.NewRegistry()
	factory := func() (*sim.Simulator, error) {
		return experiment.Build(cfg, registry)
	}
	return viz.Run(factory, cfg.Dt)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Base:      cfg,
		ParamName: args[0],
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	}
	results, err := automation.RunSweep(cmd.Context(), sweep, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprint(w, args[0])
	for _, e := range cfg.Ensembles {
		fmt.Fprintf(w, "\tD %s", e.Name)
	}
	fmt.Fprintln(w)
	for _, r := range results {
		fmt.Fprintf(w, "%g", r.ParamValue)
		for _, s := range r.Summaries {
			fmt.Fprintf(w, "\t%.4f", s.Diffusion)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	mc := &automation.MonteCarloConfig{Base: cfg, NumTrials: trials, Seed: cfg.Seed}
	results, err := automation.RunMonteCarlo(cmd.Context(), mc, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ENSEMBLE\tTRIALS\tMEAN D\tSTD D\tMIN D\tMAX D")
	for _, s := range automation.MonteCarloStats(results) {
		fmt.Fprintf(w, "%s\t%d\t%.4f\t%.4f\t%.4f\t%.4f\n", s.Name, s.Trials, s.Mean, s.StdDev, s.Min, s.Max)
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if scenario.Description != "" {
		fmt.Fprintf(out, "%s: %s\n", scenario.Name, scenario.Description)
	}

	results, err := automation.RunScenario(cmd.Context(), scenario, cmd.ErrOrStderr())
	for _, r := range results {
		fmt.Fprintf(out, "\n== %s (%s, %d steps)\n", r.Step, r.Config.Name, r.Result.StepsTaken)
		if perr := printSummary(out, r.Summaries); perr != nil {
			return perr
		}
	}
	return err
}

func runBench(cmd *cobra.Command, args []string) error {
	const ticks = 200

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tPARTICLES\tTICKS\tTIME\tTICKS/SEC\tPARTICLE UPDATES/SEC")

	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		s, err := experiment.Build(cfg, experiment.NewRegistry())
		if err != nil {
			return err
		}

		start := time.Now()
		for i := 0; i < ticks; i++ {
			s.Step(cfg.Dt)
		}
		elapsed := time.Since(start)

		rate := float64(ticks) / elapsed.Seconds()
		fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\t%.3g\n",
			name, cfg.TotalParticles(), ticks, elapsed.Round(time.Microsecond), rate, rate*float64(cfg.TotalParticles()))
	}
	return w.Flush()
}

func walls(cfg *config.Config) string {
	on := 0
	for _, e := range cfg.Ensembles {
		if e.Borders {
			on++
		}
	}
	switch on {
	case 0:
		return "off"
	case len(cfg.Ensembles):
		return "on"
	}
	return "mixed"
}
