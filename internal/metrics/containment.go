package metrics

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/rubenzuurman/phase-transition-simulation/internal/geom"
	"github.com/rubenzuurman/phase-transition-simulation/internal/physics"
)

// Containment is the fraction of particle observations that lie inside the
// box grown by a tolerance. With reflective walls it should stay at 1 for a
// tolerance of max speed times dt.
type Containment struct {
	name      string
	tolerance float64
	inside    int
	samples   int
}

func NewContainment(tolerance float64) *Containment {
	return &Containment{
		name:      "containment",
		tolerance: tolerance,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(e *physics.Ensemble, t float64) {
	box := e.Box()
	e.Each(func(_ int, pos, _ r2.Vec) {
		c.samples++
		if geom.Contains(box, pos, c.tolerance) {
			c.inside++
		}
	})
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return float64(c.inside) / float64(c.samples)
}

func (c *Containment) Reset() {
	c.inside = 0
	c.samples = 0
}
