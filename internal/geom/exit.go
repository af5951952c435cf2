package geom

import "gonum.org/v1/gonum/spatial/r2"

// ExitWall classifies the path from→to against an axis-aligned box without
// the general intersection test. A path leaving through a vertical wall is
// checked against that wall's y-span at the crossing; outside the span it
// is re-classified as the adjacent horizontal wall (the path went through
// the corner region). Horizontal walls are handled symmetrically.
//
// At most one wall is returned. A path that does not move from the inner
// side of a wall line to its outer side returns 0.
func ExitWall(b r2.Box, from, to r2.Vec) Wall {
	switch {
	case to.X > b.Max.X && from.X <= b.Max.X:
		return crossVertical(b, from, to, b.Max.X, WallRight)
	case to.X < b.Min.X && from.X >= b.Min.X:
		return crossVertical(b, from, to, b.Min.X, WallLeft)
	case to.Y > b.Max.Y && from.Y <= b.Max.Y:
		return crossHorizontal(b, from, to, b.Max.Y, WallTop)
	case to.Y < b.Min.Y && from.Y >= b.Min.Y:
		return crossHorizontal(b, from, to, b.Min.Y, WallBottom)
	}
	return 0
}

// crossVertical evaluates the path's line at x. to.X != from.X is
// guaranteed by the caller.
func crossVertical(b r2.Box, from, to r2.Vec, x float64, w Wall) Wall {
	y := from.Y + (x-from.X)*(to.Y-from.Y)/(to.X-from.X)
	switch {
	case y > b.Max.Y:
		return WallTop
	case y < b.Min.Y:
		return WallBottom
	}
	return w
}

func crossHorizontal(b r2.Box, from, to r2.Vec, y float64, w Wall) Wall {
	x := from.X + (y-from.Y)*(to.X-from.X)/(to.Y-from.Y)
	switch {
	case x > b.Max.X:
		return WallRight
	case x < b.Min.X:
		return WallLeft
	}
	return w
}
