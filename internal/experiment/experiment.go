package experiment

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/rubenzuurman/phase-transition-simulation/internal/config"
	"github.com/rubenzuurman/phase-transition-simulation/internal/dynamo"
	"github.com/rubenzuurman/phase-transition-simulation/internal/physics"
	"github.com/rubenzuurman/phase-transition-simulation/internal/sim"
)

// Experiment turns a configuration into a ready-to-run simulator.
type Experiment struct {
	cfg       *config.Config
	registry  *Registry
	simulator *sim.Simulator
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
	}
}

// Setup validates the configuration and builds one ensemble per entry.
// Ensemble i draws from its own source seeded with Seed+i, so adding an
// ensemble never changes the trajectories of the ones before it.
func (e *Experiment) Setup() error {
	s, err := Build(e.cfg, e.registry)
	if err != nil {
		return err
	}
	e.simulator = s
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.SimConfig())
}

// SimConfig is the driver configuration derived from the experiment.
func (e *Experiment) SimConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Dt = e.cfg.Dt
	cfg.Duration = e.cfg.Duration
	cfg.RecordEvery = e.cfg.RecordEvery
	return cfg
}

// Simulator returns the underlying simulator for adding observers.
func (e *Experiment) Simulator() *sim.Simulator {
	return e.simulator
}

func (e *Experiment) Config() *config.Config {
	return e.cfg
}

// Build validates cfg and assembles a simulator with default metrics.
func Build(cfg *config.Config, r *Registry) (*sim.Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	strategies, err := r.Resolve(cfg.Forcing, cfg.Collision, cfg.MSD)
	if err != nil {
		return nil, err
	}

	s := sim.New()
	for i, ec := range cfg.Ensembles {
		ens, err := NewEnsemble(ec, strategies, dynamo.NewRand(cfg.Seed+int64(i)))
		if err != nil {
			return nil, fmt.Errorf("ensemble %q: %w", ec.Name, err)
		}
		if err := s.Add(ec.Name, ens, DefaultMetrics(ec)...); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NewEnsemble builds a single ensemble from its configuration.
func NewEnsemble(ec config.EnsembleConfig, s Strategies, rng dynamo.RandSource) (*physics.Ensemble, error) {
	return physics.New(physics.Params{
		Width:     ec.Width,
		Height:    ec.Height,
		Particles: ec.Particles,
		Radius:    ec.Radius,
		Origin:    r2.Vec{X: ec.X, Y: ec.Y},
		Force:     ec.Force,
		Borders:   ec.Borders,
		Forcing:   s.Forcing,
		Collider:  s.Collider,
		MSD:       s.MSD,
	}, rng)
}
