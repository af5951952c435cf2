package geom

import (
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// Wall is a set of box edges.
type Wall uint8

const (
	WallLeft Wall = 1 << iota
	WallRight
	WallBottom
	WallTop

	// AllWalls is the set of every edge.
	AllWalls = WallLeft | WallRight | WallBottom | WallTop
)

// Has reports whether every wall in x is in w.
func (w Wall) Has(x Wall) bool { return x != 0 && w&x == x }

func (w Wall) String() string {
	if w == 0 {
		return "none"
	}
	names := make([]string, 0, 4)
	for _, e := range []struct {
		w    Wall
		name string
	}{{WallLeft, "left"}, {WallRight, "right"}, {WallBottom, "bottom"}, {WallTop, "top"}} {
		if w.Has(e.w) {
			names = append(names, e.name)
		}
	}
	return strings.Join(names, "|")
}

// An Edge is one side of a box.
type Edge struct {
	Wall    Wall
	Segment Segment
}

// CenteredBox returns the box [-w/2, w/2] × [-h/2, h/2].
func CenteredBox(w, h float64) r2.Box {
	return r2.Box{
		Min: r2.Vec{X: -w / 2, Y: -h / 2},
		Max: r2.Vec{X: w / 2, Y: h / 2},
	}
}

// Edges returns the four sides of b, each running in the increasing
// coordinate direction.
func Edges(b r2.Box) [4]Edge {
	bl := b.Min
	br := r2.Vec{X: b.Max.X, Y: b.Min.Y}
	tl := r2.Vec{X: b.Min.X, Y: b.Max.Y}
	tr := b.Max
	return [4]Edge{
		{WallLeft, Segment{bl, tl}},
		{WallRight, Segment{br, tr}},
		{WallBottom, Segment{bl, br}},
		{WallTop, Segment{tl, tr}},
	}
}

// Outside returns the walls whose outer half-plane strictly contains p.
func Outside(b r2.Box, p r2.Vec) Wall {
	var w Wall
	if p.X < b.Min.X {
		w |= WallLeft
	}
	if p.X > b.Max.X {
		w |= WallRight
	}
	if p.Y < b.Min.Y {
		w |= WallBottom
	}
	if p.Y > b.Max.Y {
		w |= WallTop
	}
	return w
}

// Contains reports whether p lies in b grown by tol on every side.
func Contains(b r2.Box, p r2.Vec, tol float64) bool {
	return p.X >= b.Min.X-tol && p.X <= b.Max.X+tol &&
		p.Y >= b.Min.Y-tol && p.Y <= b.Max.Y+tol
}
