package geom_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/rubenzuurman/phase-transition-simulation/internal/geom"
)

func seg(x0, y0, x1, y1 float64) geom.Segment {
	return geom.Segment{{X: x0, Y: y0}, {X: x1, Y: y1}}
}

var _ = Describe("Intersects", func() {
	DescribeTable("crossing and non-crossing pairs",
		func(a, b geom.Segment, want bool) {
			Expect(geom.Intersects(a, b)).To(Equal(want))
			Expect(geom.Intersects(b, a)).To(Equal(want), "intersection must be symmetric")
		},
		Entry("perpendicular cross", seg(0, -1, 0, 1), seg(-1, 0, 1, 0), true),
		Entry("diagonal cross", seg(0, 0, 2, 2), seg(0, 2, 2, 0), true),
		Entry("disjoint parallel", seg(0, 0, 1, 0), seg(0, 1, 1, 1), false),
		Entry("lines cross beyond a's span", seg(0, 0, 0, 1), seg(-1, 2, 1, 2), false),
		Entry("same side of a", seg(0, 0, 0, 10), seg(1, 1, 2, 5), false),
		Entry("touching at an endpoint", seg(0, 0, 1, 0), seg(1, 0, 2, 1), true),
		Entry("endpoint resting on a's interior", seg(0, -1, 0, 1), seg(0, 0, 1, 1), true),
		Entry("T junction", seg(-1, 0, 1, 0), seg(0, 0, 0, 5), true),
		Entry("collinear overlapping horizontal", seg(0, 0, 2, 0), seg(1, 0, 3, 0), true),
		Entry("collinear overlapping vertical", seg(0, 0, 0, 2), seg(0, 1, 0, 3), true),
		Entry("collinear contained", seg(0, 0, 0, 10), seg(0, 2, 0, 3), true),
		Entry("collinear disjoint", seg(0, 0, 2, 0), seg(3, 0, 4, 0), false),
		Entry("collinear touching", seg(0, 0, 2, 0), seg(2, 0, 4, 0), true),
		Entry("collinear diagonal overlap", seg(0, 0, 2, 2), seg(1, 1, 3, 3), true),
		Entry("parallel diagonal offset", seg(0, 0, 2, 2), seg(1, 0, 3, 2), false),
		Entry("reversed direction", seg(0, 1, 0, -1), seg(1, 0, -1, 0), true),
	)

	Context("with degenerate segments", func() {
		It("treats a zero-length segment as a point on the other", func() {
			Expect(geom.Intersects(seg(1, 1, 1, 1), seg(0, 0, 2, 2))).To(BeTrue())
			Expect(geom.Intersects(seg(0, 0, 2, 2), seg(1, 1, 1, 1))).To(BeTrue())
		})

		It("rejects a point off the other segment", func() {
			Expect(geom.Intersects(seg(1, 0, 1, 0), seg(0, 0, 0, 2))).To(BeFalse())
		})

		It("compares two points for equality", func() {
			Expect(geom.Intersects(seg(3, 4, 3, 4), seg(3, 4, 3, 4))).To(BeTrue())
			Expect(geom.Intersects(seg(3, 4, 3, 4), seg(3, 5, 3, 5))).To(BeFalse())
		})
	})

	Context("against box walls", func() {
		box := geom.CenteredBox(100, 100)
		edges := geom.Edges(box)

		It("detects a path leaving through the right wall only", func() {
			path := geom.Segment{{X: 49, Y: 0}, {X: 51, Y: 0}}
			hit := geom.Wall(0)
			for _, e := range edges {
				if geom.Intersects(e.Segment, path) {
					hit |= e.Wall
				}
			}
			Expect(hit).To(Equal(geom.WallRight))
		})

		It("is exact when the path ends on the wall", func() {
			path := geom.Segment{{X: 10, Y: 49}, {X: 10, Y: 50}}
			Expect(geom.Intersects(edges[3].Segment, path)).To(BeTrue())
		})

		It("only reports the wall crossed inside its span near a corner", func() {
			path := geom.Segment{{X: 49, Y: 49}, {X: 51.5, Y: 50.5}}
			hit := geom.Wall(0)
			for _, e := range edges {
				if geom.Intersects(e.Segment, path) {
					hit |= e.Wall
				}
			}
			Expect(hit).To(Equal(geom.WallRight))
		})
	})
})

var _ = Describe("ExitWall", func() {
	box := geom.CenteredBox(100, 100)

	DescribeTable("classification",
		func(from, to r2.Vec, want geom.Wall) {
			Expect(geom.ExitWall(box, from, to)).To(Equal(want))
		},
		Entry("stays inside", r2.Vec{X: 0, Y: 0}, r2.Vec{X: 10, Y: 10}, geom.Wall(0)),
		Entry("right wall", r2.Vec{X: 49, Y: 0}, r2.Vec{X: 51, Y: 0}, geom.WallRight),
		Entry("left wall", r2.Vec{X: -49, Y: 5}, r2.Vec{X: -52, Y: 6}, geom.WallLeft),
		Entry("top wall", r2.Vec{X: 3, Y: 49}, r2.Vec{X: 4, Y: 51}, geom.WallTop),
		Entry("bottom wall", r2.Vec{X: 3, Y: -49}, r2.Vec{X: 4, Y: -51}, geom.WallBottom),
		Entry("corner region inside right span", r2.Vec{X: 49, Y: 49}, r2.Vec{X: 51.5, Y: 50.5}, geom.WallRight),
		Entry("corner region re-classified to top", r2.Vec{X: 49, Y: 49}, r2.Vec{X: 50.5, Y: 51.5}, geom.WallTop),
		Entry("corner region re-classified to bottom", r2.Vec{X: -49, Y: -49}, r2.Vec{X: -50.5, Y: -51.5}, geom.WallBottom),
		Entry("already outside moving further out", r2.Vec{X: 55, Y: 0}, r2.Vec{X: 60, Y: 0}, geom.Wall(0)),
		Entry("ends exactly on the wall", r2.Vec{X: 49, Y: 0}, r2.Vec{X: 50, Y: 0}, geom.Wall(0)),
	)

	It("agrees with the segment test on single-wall exits", func() {
		paths := []geom.Segment{
			{{X: 49, Y: 0}, {X: 51, Y: 0}},
			{{X: 0, Y: -49}, {X: 1, Y: -53}},
			{{X: 49, Y: 49}, {X: 51.5, Y: 50.5}},
			{{X: 49, Y: 49}, {X: 50.5, Y: 51.5}},
		}
		for _, p := range paths {
			var hit geom.Wall
			for _, e := range geom.Edges(box) {
				if geom.Intersects(e.Segment, p) {
					hit |= e.Wall
				}
			}
			Expect(geom.ExitWall(box, p[0], p[1])).To(Equal(hit), "path %v", p)
		}
	})
})

var _ = Describe("box helpers", func() {
	box := geom.CenteredBox(10, 4)

	It("builds a centred box", func() {
		Expect(box.Min).To(Equal(r2.Vec{X: -5, Y: -2}))
		Expect(box.Max).To(Equal(r2.Vec{X: 5, Y: 2}))
	})

	It("reports the walls a point lies beyond", func() {
		Expect(geom.Outside(box, r2.Vec{})).To(Equal(geom.Wall(0)))
		Expect(geom.Outside(box, r2.Vec{X: 6, Y: 3})).To(Equal(geom.WallRight | geom.WallTop))
		Expect(geom.Outside(box, r2.Vec{X: -6, Y: -3})).To(Equal(geom.WallLeft | geom.WallBottom))
		Expect(geom.Outside(box, r2.Vec{X: 5, Y: 2})).To(Equal(geom.Wall(0)))
	})

	It("checks containment with tolerance", func() {
		Expect(geom.Contains(box, r2.Vec{X: 5.05, Y: 0}, 0)).To(BeFalse())
		Expect(geom.Contains(box, r2.Vec{X: 5.05, Y: 0}, 0.1)).To(BeTrue())
	})

	It("names wall sets", func() {
		Expect(geom.Wall(0).String()).To(Equal("none"))
		Expect((geom.WallLeft | geom.WallTop).String()).To(Equal("left|top"))
		Expect(geom.AllWalls.Has(geom.WallBottom)).To(BeTrue())
		Expect(geom.WallLeft.Has(geom.Wall(0))).To(BeFalse())
	})
})
