package automation

import (
	"context"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/rubenzuurman/phase-transition-simulation/internal/analysis"
	"github.com/rubenzuurman/phase-transition-simulation/internal/config"
	"github.com/rubenzuurman/phase-transition-simulation/internal/dynamo"
	"github.com/rubenzuurman/phase-transition-simulation/internal/experiment"
	"github.com/rubenzuurman/phase-transition-simulation/internal/sim"
)

// Scenario defines a scripted sequence of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario. The base configuration comes
// from Config if set, otherwise Preset, otherwise the defaults; the other
// fields override it when non-zero.
type ScenarioStep struct {
	Name      string             `yaml:"name"`
	Preset    string             `yaml:"preset"`
	Config    string             `yaml:"config"`
	Duration  float64            `yaml:"duration"`
	Dt        float64            `yaml:"dt"`
	Seed      int64              `yaml:"seed"`
	Forcing   string             `yaml:"forcing"`
	Collision string             `yaml:"collision"`
	MSD       string             `yaml:"msd"`
	Params    map[string]float64 `yaml:"params"`
}

// StepResult is the outcome of one scenario step
type StepResult struct {
	Step      string
	Config    *config.Config
	Result    *sim.Result
	Summaries []analysis.Summary
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, dynamo.InvalidArgument("scenario %s has no steps", path)
	}

	return &scenario, nil
}

// Resolve builds the configuration a step runs with.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case s.Config != "":
		c, err := config.Load(s.Config)
		if err != nil {
			return nil, err
		}
		cfg = c
	case s.Preset != "":
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, dynamo.InvalidArgument("unknown preset %q", s.Preset)
		}
	default:
		cfg = config.DefaultConfig()
	}

	if s.Duration != 0 {
		cfg.Duration = s.Duration
	}
	if s.Dt != 0 {
		cfg.Dt = s.Dt
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if s.Forcing != "" {
		cfg.Forcing = s.Forcing
	}
	if s.Collision != "" {
		cfg.Collision = s.Collision
	}
	if s.MSD != "" {
		cfg.MSD = s.MSD
	}
	for k, v := range s.Params {
		if err := cfg.SetAll(k, v); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// RunScenario executes all steps in order, writing progress to w.
func RunScenario(ctx context.Context, scenario *Scenario, w io.Writer) ([]StepResult, error) {
	w = orDiscard(w)
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		fmt.Fprintf(w, "Running step %d/%d: %s\n", i+1, len(scenario.Steps), name)

		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		result, err := run(ctx, cfg)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		results = append(results, StepResult{
			Step:      name,
			Config:    cfg,
			Result:    result,
			Summaries: analysis.Summarize(result),
		})
	}

	return results, nil
}

func run(ctx context.Context, cfg *config.Config) (*sim.Result, error) {
	exp := experiment.New(cfg)
	if err := exp.Setup(); err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	result, err := exp.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}
	return result, nil
}

// ParameterSweep runs the base configuration across a range of values of
// one parameter. ParamName is "dt", "duration" or any per-ensemble
// parameter accepted by config.Config.SetAll.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds the outcome at one parameter value
type SweepResult struct {
	ParamValue float64
	Summaries  []analysis.Summary
}

// Values returns the parameter values visited, evenly spaced and inclusive
// of both ends. A single step uses ParamMin.
func (p *ParameterSweep) Values() []float64 {
	if p.NumSteps <= 0 {
		return nil
	}
	values := make([]float64, p.NumSteps)
	if p.NumSteps == 1 {
		values[0] = p.ParamMin
		return values
	}
	step := (p.ParamMax - p.ParamMin) / float64(p.NumSteps-1)
	for i := range values {
		values[i] = p.ParamMin + float64(i)*step
	}
	values[p.NumSteps-1] = p.ParamMax
	return values
}

// RunSweep executes a parameter sweep, writing progress to w.
func RunSweep(ctx context.Context, sweep *ParameterSweep, w io.Writer) ([]SweepResult, error) {
	if sweep.Base == nil {
		return nil, dynamo.InvalidArgument("sweep has no base configuration")
	}
	if sweep.NumSteps < 1 {
		return nil, dynamo.InvalidArgument("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	w = orDiscard(w)

	values := sweep.Values()
	results := make([]SweepResult, 0, len(values))
	for i, v := range values {
		cfg := sweep.Base.Clone()
		if err := setParam(cfg, sweep.ParamName, v); err != nil {
			return nil, err
		}

		result, err := run(ctx, cfg)
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.ParamName, v, err)
		}

		results = append(results, SweepResult{
			ParamValue: v,
			Summaries:  analysis.Summarize(result),
		})

		fmt.Fprintf(w, "Sweep %d/%d: %s=%.4f\n", i+1, len(values), sweep.ParamName, v)
	}

	return results, nil
}

func setParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "dt":
		cfg.Dt = v
	case "duration":
		cfg.Duration = v
	default:
		return cfg.SetAll(name, v)
	}
	return nil
}

// MonteCarloConfig repeats the base configuration over independent seeds.
type MonteCarloConfig struct {
	Base      *config.Config
	NumTrials int
	Seed      int64
}

// MonteCarloResult holds one trial
type MonteCarloResult struct {
	TrialID   int
	Seed      int64
	Summaries []analysis.Summary
}

// RunMonteCarlo executes NumTrials runs. Trial k uses base seed
// Seed + k·len(Ensembles), so no two ensembles in any trial share a source.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, w io.Writer) ([]MonteCarloResult, error) {
	if cfg.Base == nil {
		return nil, dynamo.InvalidArgument("monte carlo has no base configuration")
	}
	if cfg.NumTrials < 1 {
		return nil, dynamo.InvalidArgument("monte carlo needs at least one trial, got %d", cfg.NumTrials)
	}
	w = orDiscard(w)

	stride := int64(len(cfg.Base.Ensembles))
	if stride == 0 {
		stride = 1
	}
	results := make([]MonteCarloResult, 0, cfg.NumTrials)

	for trial := 0; trial < cfg.NumTrials; trial++ {
		trialCfg := cfg.Base.Clone()
		trialCfg.Seed = cfg.Seed + int64(trial)*stride

		result, err := run(ctx, trialCfg)
		if err != nil {
			return results, fmt.Errorf("trial %d: %w", trial, err)
		}

		results = append(results, MonteCarloResult{
			TrialID:   trial,
			Seed:      trialCfg.Seed,
			Summaries: analysis.Summarize(result),
		})

		if (trial+1)%10 == 0 || trial+1 == cfg.NumTrials {
			fmt.Fprintf(w, "Monte Carlo: %d/%d trials complete\n", trial+1, cfg.NumTrials)
		}
	}

	return results, nil
}

// EnsembleStats summarises one ensemble's final diffusion coefficient
// across trials.
type EnsembleStats struct {
	Name   string
	Trials int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// MonteCarloStats computes summary statistics per ensemble, in the order
// the ensembles appear in the first trial.
func MonteCarloStats(results []MonteCarloResult) []EnsembleStats {
	if len(results) == 0 {
		return nil
	}

	stats := make([]EnsembleStats, 0, len(results[0].Summaries))
	for i, first := range results[0].Summaries {
		values := make([]float64, 0, len(results))
		for _, r := range results {
			if i < len(r.Summaries) {
				values = append(values, r.Summaries[i].Diffusion)
			}
		}

		s := EnsembleStats{Name: first.Name, Trials: len(values), Min: values[0], Max: values[0]}
		if len(values) > 1 {
			s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
		} else {
			s.Mean = values[0]
		}
		for _, v := range values {
			if v < s.Min {
				s.Min = v
			}
			if v > s.Max {
				s.Max = v
			}
		}
		stats = append(stats, s)
	}
	return stats
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
