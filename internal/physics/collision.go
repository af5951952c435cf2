package physics

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/rubenzuurman/phase-transition-simulation/internal/geom"
)

// Collider finds the walls a particle's tentative path crosses.
type Collider interface {
	Collide(box r2.Box, from, to r2.Vec) geom.Wall
	Name() string
}

// SegmentCollider tests the path against every edge with the general
// segment intersection test. It works for any edge orientation.
type SegmentCollider struct{}

func (SegmentCollider) Collide(box r2.Box, from, to r2.Vec) geom.Wall {
	path := geom.Segment{from, to}
	var hit geom.Wall
	for _, e := range geom.Edges(box) {
		if geom.Intersects(e.Segment, path) {
			hit |= e.Wall
		}
	}
	return hit
}

func (SegmentCollider) Name() string { return "segment" }

// AxisCollider uses the closed-form exit classification, valid only for
// axis-aligned boxes. It never reports more than one wall.
type AxisCollider struct{}

func (AxisCollider) Collide(box r2.Box, from, to r2.Vec) geom.Wall {
	return geom.ExitWall(box, from, to)
}

func (AxisCollider) Name() string { return "axis" }

// reflect negates the velocity components that point out through a wall in
// hit. Each axis flips at most once.
func reflect(v r2.Vec, hit geom.Wall) r2.Vec {
	if (hit.Has(geom.WallLeft) && v.X < 0) || (hit.Has(geom.WallRight) && v.X > 0) {
		v.X = -v.X
	}
	if (hit.Has(geom.WallBottom) && v.Y < 0) || (hit.Has(geom.WallTop) && v.Y > 0) {
		v.Y = -v.Y
	}
	return v
}
