package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/rubenzuurman/phase-transition-simulation/internal/dynamo"
	"github.com/rubenzuurman/phase-transition-simulation/internal/geom"
)

// Params configures a new Ensemble.
type Params struct {
	Width     float64 // box extent along x
	Height    float64 // box extent along y
	Particles int
	Radius    float64 // disk radius; sets the kick magnitude, never used for contact
	Origin    r2.Vec  // box centre in the shared world frame
	Force     float64 // magnitude of the random driving force
	Borders   bool    // reflective walls on or off

	Forcing  Forcing
	Collider Collider // nil means SegmentCollider
	MSD      MSDConvention

	// Positions and Velocities optionally fix the initial state in the
	// box-local frame. Without Positions particles are scattered uniformly
	// in the box; without Velocities they start at rest.
	Positions  []r2.Vec
	Velocities []r2.Vec
}

// Ensemble is a population of non-interacting particles performing a
// random walk in a box centred on the local origin.
type Ensemble struct {
	width, height float64
	radius        float64
	origin        r2.Vec
	force         float64
	borders       bool
	box           r2.Box
	kick          float64

	forcing  Forcing
	collider Collider
	msdConv  MSDConvention
	rng      dynamo.RandSource

	pos   []r2.Vec
	vel   []r2.Vec
	start []r2.Vec
	next  []r2.Vec

	elapsed   float64
	msd       float64
	diffusion float64
}

// New validates p and builds an ensemble. A nil rng is replaced by a
// time-seeded source.
func New(p Params, rng dynamo.RandSource) (*Ensemble, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = dynamo.NewTimeRand()
	}
	collider := p.Collider
	if collider == nil {
		collider = SegmentCollider{}
	}

	n := p.Particles
	e := &Ensemble{
		width:    p.Width,
		height:   p.Height,
		radius:   p.Radius,
		origin:   p.Origin,
		force:    p.Force,
		borders:  p.Borders,
		box:      geom.CenteredBox(p.Width, p.Height),
		kick:     KickMagnitude(p.Force, p.Radius),
		forcing:  p.Forcing,
		collider: collider,
		msdConv:  p.MSD,
		rng:      rng,
		pos:      make([]r2.Vec, n),
		vel:      make([]r2.Vec, n),
		start:    make([]r2.Vec, n),
		next:     make([]r2.Vec, n),
	}

	if p.Positions != nil {
		copy(e.pos, p.Positions)
	} else {
		for i := range e.pos {
			e.pos[i] = r2.Vec{
				X: rng.Float64()*p.Width - p.Width/2,
				Y: rng.Float64()*p.Height - p.Height/2,
			}
		}
	}
	if p.Velocities != nil {
		copy(e.vel, p.Velocities)
	}
	copy(e.start, e.pos)

	return e, nil
}

func (p Params) validate() error {
	switch {
	case p.Particles <= 0:
		return dynamo.InvalidArgument("particle count must be positive, got %d", p.Particles)
	case !positive(p.Width) || !positive(p.Height):
		return dynamo.InvalidArgument("box size must be positive, got %gx%g", p.Width, p.Height)
	case !positive(p.Radius):
		return dynamo.InvalidArgument("particle radius must be positive, got %g", p.Radius)
	case p.Force < 0 || math.IsNaN(p.Force) || math.IsInf(p.Force, 0):
		return dynamo.InvalidArgument("force magnitude must be finite and non-negative, got %g", p.Force)
	case p.Forcing != ForcingAxis && p.Forcing != ForcingAngle:
		return dynamo.InvalidArgument("unknown forcing %d", p.Forcing)
	case p.MSD != MSDEuclidean && p.MSD != MSDLegacy:
		return dynamo.InvalidArgument("unknown msd convention %d", p.MSD)
	case p.Positions != nil && len(p.Positions) != p.Particles:
		return dynamo.InvalidArgument("got %d initial positions for %d particles", len(p.Positions), p.Particles)
	case p.Velocities != nil && len(p.Velocities) != p.Particles:
		return dynamo.InvalidArgument("got %d initial velocities for %d particles", len(p.Velocities), p.Particles)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// Update advances the ensemble by one tick of length dt.
//
// Each pass runs over the whole population before the next starts: kicks,
// tentative positions, wall reflection, final positions. Reflection is
// decided on the tentative path of the pre-reflection velocity, and the
// reflected velocity is then applied over the full dt.
func (e *Ensemble) Update(dt float64) {
	for i := range e.vel {
		e.vel[i] = r2.Add(e.vel[i], e.forcing.Kick(e.rng, e.kick))
	}

	for i := range e.pos {
		e.next[i] = r2.Add(e.pos[i], r2.Scale(dt, e.vel[i]))
	}

	if e.borders {
		for i := range e.pos {
			hit := e.collider.Collide(e.box, e.pos[i], e.next[i])
			// a particle left outside by a previous tick is turned back
			hit |= geom.Outside(e.box, e.pos[i])
			if hit != 0 {
				e.vel[i] = reflect(e.vel[i], hit)
			}
		}
	}

	for i := range e.pos {
		e.pos[i] = r2.Add(e.pos[i], r2.Scale(dt, e.vel[i]))
	}

	e.elapsed += dt
	e.msd = e.msdConv.Mean(e.pos, e.start)
	e.diffusion = Diffusion(e.msd, e.elapsed)
}

func (e *Ensemble) N() int                        { return len(e.pos) }
func (e *Ensemble) Width() float64                { return e.width }
func (e *Ensemble) Height() float64               { return e.height }
func (e *Ensemble) Radius() float64               { return e.radius }
func (e *Ensemble) Force() float64                { return e.force }
func (e *Ensemble) Origin() r2.Vec                { return e.origin }
func (e *Ensemble) Borders() bool                 { return e.borders }
func (e *Ensemble) Box() r2.Box                   { return e.box }
func (e *Ensemble) Elapsed() float64              { return e.elapsed }
func (e *Ensemble) MSD() float64                  { return e.msd }
func (e *Ensemble) DiffusionCoefficient() float64 { return e.diffusion }
func (e *Ensemble) KickMagnitude() float64        { return e.kick }
func (e *Ensemble) Forcing() Forcing              { return e.forcing }
func (e *Ensemble) Collider() Collider            { return e.collider }
func (e *Ensemble) MSDConvention() MSDConvention  { return e.msdConv }

// Position returns particle i in the box-local frame.
func (e *Ensemble) Position(i int) r2.Vec { return e.pos[i] }

// Velocity returns particle i's velocity.
func (e *Ensemble) Velocity(i int) r2.Vec { return e.vel[i] }

// WorldPosition returns particle i offset by the box origin.
func (e *Ensemble) WorldPosition(i int) r2.Vec { return r2.Add(e.origin, e.pos[i]) }

// Positions returns a copy of all box-local positions.
func (e *Ensemble) Positions() []r2.Vec { return clone(e.pos) }

// Velocities returns a copy of all velocities.
func (e *Ensemble) Velocities() []r2.Vec { return clone(e.vel) }

// StartingPositions returns a copy of the positions at construction.
func (e *Ensemble) StartingPositions() []r2.Vec { return clone(e.start) }

// Each calls fn for every particle in order without copying.
func (e *Ensemble) Each(fn func(i int, pos, vel r2.Vec)) {
	for i := range e.pos {
		fn(i, e.pos[i], e.vel[i])
	}
}

// Valid reports whether every position and velocity is finite.
func (e *Ensemble) Valid() bool {
	for i := range e.pos {
		if !finite(e.pos[i]) || !finite(e.vel[i]) {
			return false
		}
	}
	return true
}

func finite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

func clone(v []r2.Vec) []r2.Vec {
	c := make([]r2.Vec, len(v))
	copy(c, v)
	return c
}

func (e *Ensemble) GetParams() map[string]float64 {
	borders := 0.0
	if e.borders {
		borders = 1
	}
	return map[string]float64{"force": e.force, "radius": e.radius, "borders": borders}
}

// SetParam changes force, radius or borders (non-zero enables). The kick
// magnitude follows force and radius immediately.
func (e *Ensemble) SetParam(name string, v float64) error {
	switch name {
	case "force":
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return dynamo.InvalidArgument("force magnitude must be finite and non-negative, got %g", v)
		}
		e.force = v
	case "radius":
		if !positive(v) {
			return dynamo.InvalidArgument("particle radius must be positive, got %g", v)
		}
		e.radius = v
	case "borders":
		e.borders = v != 0
	default:
		return dynamo.InvalidArgument("unknown parameter %q", name)
	}
	e.kick = KickMagnitude(e.force, e.radius)
	return nil
}
