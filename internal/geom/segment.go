package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// A Segment is a closed line segment from its first to its second point.
type Segment [2]r2.Vec

// Intersects reports whether a and b share at least one point, touching
// endpoints included.
//
// Both segments are rotated into a frame where a points along +y. In that
// frame a vertical b is the only case needing special handling; every other
// b is tested by the side of a's line its endpoints fall on and by the
// ordinate where b's line meets a's abscissa.
func Intersects(a, b Segment) bool {
	d := r2.Sub(a[1], a[0])
	l := math.Hypot(d.X, d.Y)
	if l == 0 {
		if b[0] == b[1] {
			return a[0] == b[0]
		}
		return Intersects(b, a)
	}

	// unit components keep axis-aligned input exact under rotation
	u := r2.Vec{X: d.X / l, Y: d.Y / l}
	a0, a1 := toFrame(a[0], u), toFrame(a[1], u)
	b0, b1 := toFrame(b[0], u), toFrame(b[1], u)

	ax := a0.X
	aMin, aMax := math.Min(a0.Y, a1.Y), math.Max(a0.Y, a1.Y)

	if b0.X == b1.X {
		if b0.X != ax {
			return false
		}
		bMin, bMax := math.Min(b0.Y, b1.Y), math.Max(b0.Y, b1.Y)
		return math.Max(aMin, bMin) <= math.Min(aMax, bMax)
	}

	s0, s1 := b0.X-ax, b1.X-ax
	if (s0 > 0 && s1 > 0) || (s0 < 0 && s1 < 0) {
		return false
	}

	t := s0 / (s0 - s1)
	y := b0.Y + t*(b1.Y-b0.Y)
	return y >= aMin && y <= aMax
}

// toFrame expresses p in the frame whose +y axis is the unit vector u.
func toFrame(p, u r2.Vec) r2.Vec {
	return r2.Vec{
		X: p.X*u.Y - p.Y*u.X,
		Y: p.X*u.X + p.Y*u.Y,
	}
}
