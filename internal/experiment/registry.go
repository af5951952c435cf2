package experiment

import (
	"fmt"
	"math"
	"sort"

	"github.com/rubenzuurman/phase-transition-simulation/internal/config"
	"github.com/rubenzuurman/phase-transition-simulation/internal/dynamo"
	"github.com/rubenzuurman/phase-transition-simulation/internal/metrics"
	"github.com/rubenzuurman/phase-transition-simulation/internal/physics"
	"github.com/rubenzuurman/phase-transition-simulation/internal/sim"
)

// ContainmentSlack is the containment tolerance as a fraction of the
// smaller box side.
const ContainmentSlack = 0.01

// Strategies is the resolved set of per-tick policies shared by all
// ensembles of one run.
type Strategies struct {
	Forcing  physics.Forcing
	Collider physics.Collider
	MSD      physics.MSDConvention
}

type Registry struct {
	forcings  map[string]physics.Forcing
	colliders map[string]func() physics.Collider
	msds      map[string]physics.MSDConvention
}

func NewRegistry() *Registry {
	r := &Registry{
		forcings:  make(map[string]physics.Forcing),
		colliders: make(map[string]func() physics.Collider),
		msds:      make(map[string]physics.MSDConvention),
	}

	r.forcings[physics.ForcingAxis.String()] = physics.ForcingAxis
	r.forcings[physics.ForcingAngle.String()] = physics.ForcingAngle

	r.colliders["segment"] = func() physics.Collider { return physics.SegmentCollider{} }
	r.colliders["axis"] = func() physics.Collider { return physics.AxisCollider{} }

	r.msds[physics.MSDEuclidean.String()] = physics.MSDEuclidean
	r.msds[physics.MSDLegacy.String()] = physics.MSDLegacy

	return r
}

func (r *Registry) GetForcing(name string) (physics.Forcing, error) {
	if name == "" {
		name = config.DefaultForcing
	}
	f, ok := r.forcings[name]
	if !ok {
		return 0, fmt.Errorf("%w: forcing %q", dynamo.ErrUnknownStrategy, name)
	}
	return f, nil
}

func (r *Registry) GetCollider(name string) (physics.Collider, error) {
	if name == "" {
		name = config.DefaultCollision
	}
	fn, ok := r.colliders[name]
	if !ok {
		return nil, fmt.Errorf("%w: collision %q", dynamo.ErrUnknownStrategy, name)
	}
	return fn(), nil
}

func (r *Registry) GetMSD(name string) (physics.MSDConvention, error) {
	if name == "" {
		name = config.DefaultMSD
	}
	m, ok := r.msds[name]
	if !ok {
		return 0, fmt.Errorf("%w: msd %q", dynamo.ErrUnknownStrategy, name)
	}
	return m, nil
}

// Resolve looks up all three strategies by name. Empty names select the
// defaults.
func (r *Registry) Resolve(forcing, collision, msd string) (Strategies, error) {
	var s Strategies
	var err error
	if s.Forcing, err = r.GetForcing(forcing); err != nil {
		return Strategies{}, err
	}
	if s.Collider, err = r.GetCollider(collision); err != nil {
		return Strategies{}, err
	}
	if s.MSD, err = r.GetMSD(msd); err != nil {
		return Strategies{}, err
	}
	return s, nil
}

func (r *Registry) ListForcings() []string  { return sortedKeys(r.forcings) }
func (r *Registry) ListColliders() []string { return sortedKeys(r.colliders) }
func (r *Registry) ListMSD() []string       { return sortedKeys(r.msds) }

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns fresh metric instances for one ensemble.
func DefaultMetrics(ec config.EnsembleConfig) []sim.Metric {
	return []sim.Metric{
		metrics.NewContainment(ContainmentSlack * math.Min(ec.Width, ec.Height)),
		metrics.NewMeanSpeed(),
		metrics.NewKineticEnergy(),
	}
}
