package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/rubenzuurman/phase-transition-simulation/internal/dynamo"
)

// Forcing selects how the direction of each tick's kick is drawn. Both
// policies add a kick of the same fixed magnitude straight to the velocity,
// without a dt factor.
type Forcing int

const (
	// ForcingAxis picks uniformly among +x, -x, +y and -y.
	ForcingAxis Forcing = iota
	// ForcingAngle picks a uniform angle in [0, 2π).
	ForcingAngle
)

var axisDirections = [4]r2.Vec{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
}

// Kick draws one velocity increment of length mag.
func (f Forcing) Kick(rng dynamo.RandSource, mag float64) r2.Vec {
	if f == ForcingAngle {
		sin, cos := math.Sincos(2 * math.Pi * rng.Float64())
		return r2.Vec{X: cos * mag, Y: sin * mag}
	}
	return r2.Scale(mag, axisDirections[rng.Intn(len(axisDirections))])
}

func (f Forcing) String() string {
	switch f {
	case ForcingAxis:
		return "axis"
	case ForcingAngle:
		return "angle"
	}
	return "unknown"
}

// KickMagnitude is the velocity increment produced by a constant force
// acting as a pressure over a disk of the given radius.
func KickMagnitude(force, radius float64) float64 {
	return force / (math.Pi * radius * radius)
}
