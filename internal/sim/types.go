package sim

import "github.com/rubenzuurman/phase-transition-simulation/internal/physics"

// Metric accumulates a scalar over the ticks of one ensemble.
type Metric interface {
	Name() string
	Observe(e *physics.Ensemble, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every tick with all ensembles in the order
// they were added.
type Observer interface {
	OnStep(step int, t float64, ensembles []*physics.Ensemble)
}

type Config struct {
	Dt            float64
	Duration      float64
	RecordEvery   int // record a sample every N ticks; 0 means every tick
	ValidateState bool
}

// DefaultConfig runs ten simulated seconds at 100 ticks per second.
func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		RecordEvery:   1,
		ValidateState: true,
	}
}

// Series is the recorded history of one named ensemble.
type Series struct {
	Name      string
	Particles int
	MSD       []float64
	Diffusion []float64
	Metrics   map[string]float64
}

// Final returns the last recorded diffusion coefficient.
func (s Series) Final() float64 {
	if len(s.Diffusion) == 0 {
		return 0
	}
	return s.Diffusion[len(s.Diffusion)-1]
}

type Result struct {
	Times      []float64
	Series     []Series
	StepsTaken int
	Errors     []error
}

// Lookup returns the series recorded for the named ensemble.
func (r *Result) Lookup(name string) (Series, bool) {
	for _, s := range r.Series {
		if s.Name == name {
			return s, true
		}
	}
	return Series{}, false
}
