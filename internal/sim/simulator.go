package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/rubenzuurman/phase-transition-simulation/internal/dynamo"
	"github.com/rubenzuurman/phase-transition-simulation/internal/physics"
)

type entry struct {
	name    string
	ens     *physics.Ensemble
	metrics []Metric
}

// Simulator advances a set of named ensembles together on one clock. The
// ensembles are updated one after another in the order they were added.
type Simulator struct {
	entries   []entry
	observers []Observer
	t         float64
	step      int
}

func New() *Simulator {
	return &Simulator{
		entries:   make([]entry, 0),
		observers: make([]Observer, 0),
	}
}

// Add registers an ensemble under a unique name together with the metrics
// that observe it. Metrics must not be shared between ensembles.
func (s *Simulator) Add(name string, e *physics.Ensemble, metrics ...Metric) error {
	if e == nil {
		return dynamo.InvalidArgument("ensemble %q is nil", name)
	}
	for _, en := range s.entries {
		if en.name == name {
			return dynamo.InvalidArgument("duplicate ensemble name %q", name)
		}
	}
	s.entries = append(s.entries, entry{name: name, ens: e, metrics: metrics})
	return nil
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Len() int      { return len(s.entries) }
func (s *Simulator) Time() float64 { return s.t }
func (s *Simulator) Steps() int    { return s.step }

func (s *Simulator) Names() []string {
	names := make([]string, len(s.entries))
	for i, en := range s.entries {
		names[i] = en.name
	}
	return names
}

func (s *Simulator) Ensembles() []*physics.Ensemble {
	out := make([]*physics.Ensemble, len(s.entries))
	for i, en := range s.entries {
		out[i] = en.ens
	}
	return out
}

func (s *Simulator) Ensemble(name string) (*physics.Ensemble, bool) {
	for _, en := range s.entries {
		if en.name == name {
			return en.ens, true
		}
	}
	return nil, false
}

// Step advances every ensemble by dt and notifies metrics and observers.
// Metrics skip an ensemble whose state is no longer finite.
func (s *Simulator) Step(dt float64) {
	for _, en := range s.entries {
		en.ens.Update(dt)
	}
	s.t += dt
	s.step++

	for _, en := range s.entries {
		// non-finite state is reported by checkState, not averaged in
		if len(en.metrics) == 0 || !en.ens.Valid() {
			continue
		}
		for _, m := range en.metrics {
			m.Observe(en.ens, s.t)
		}
	}
	if len(s.observers) > 0 {
		ens := s.Ensembles()
		for _, obs := range s.observers {
			obs.OnStep(s.step, s.t, ens)
		}
	}
}

// Run steps the simulator for round(Duration/Dt) ticks, recording the MSD
// and diffusion coefficient of every ensemble. Cancellation is checked once
// per tick; the partial result is returned with the context error.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	every := cfg.RecordEvery
	if every == 0 {
		every = 1
	}

	samples := steps/every + 2
	result := &Result{
		Times:  make([]float64, 0, samples),
		Series: make([]Series, len(s.entries)),
		Errors: make([]error, 0),
	}
	for i, en := range s.entries {
		result.Series[i] = Series{
			Name:      en.name,
			Particles: en.ens.N(),
			MSD:       make([]float64, 0, samples),
			Diffusion: make([]float64, 0, samples),
			Metrics:   make(map[string]float64),
		}
		for _, m := range en.metrics {
			m.Reset()
		}
	}
	defer s.collectMetrics(result)

	s.record(result)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s.Step(cfg.Dt)

		if cfg.ValidateState {
			if err := s.checkState(); err != nil {
				result.Errors = append(result.Errors, err)
				break
			}
		}
		result.StepsTaken++

		if (i+1)%every == 0 || i == steps-1 {
			s.record(result)
		}
	}

	return result, nil
}

// RunWithCallback steps like Run but records nothing. fn is called after
// every tick and stops the run by returning false.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, fn func(step int, t float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.Step(cfg.Dt)

		if cfg.ValidateState {
			if err := s.checkState(); err != nil {
				return err
			}
		}
		if !fn(s.step, s.t) {
			return nil
		}
	}
	return nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return dynamo.InvalidArgument("dt must be positive, got %f", cfg.Dt)
	}
	if !(cfg.Duration > 0) || math.IsInf(cfg.Duration, 0) {
		return dynamo.InvalidArgument("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.RecordEvery < 0 {
		return dynamo.InvalidArgument("record interval must not be negative, got %d", cfg.RecordEvery)
	}
	if len(s.entries) == 0 {
		return dynamo.InvalidArgument("no ensembles to simulate")
	}
	return nil
}

func (s *Simulator) checkState() error {
	for _, en := range s.entries {
		if !en.ens.Valid() {
			return dynamo.SimError{
				Time:    s.t,
				Step:    s.step,
				Message: fmt.Sprintf("ensemble %q: invalid state (NaN/Inf)", en.name),
				Wrapped: dynamo.ErrInvalidState,
			}
		}
	}
	return nil
}

func (s *Simulator) record(r *Result) {
	r.Times = append(r.Times, s.t)
	for i, en := range s.entries {
		r.Series[i].MSD = append(r.Series[i].MSD, en.ens.MSD())
		r.Series[i].Diffusion = append(r.Series[i].Diffusion, en.ens.DiffusionCoefficient())
	}
}

func (s *Simulator) collectMetrics(r *Result) {
	for i, en := range s.entries {
		for _, m := range en.metrics {
			r.Series[i].Metrics[m.Name()] = m.Value()
		}
	}
}
