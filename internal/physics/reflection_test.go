package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/rubenzuurman/phase-transition-simulation/internal/dynamo"
	"github.com/rubenzuurman/phase-transition-simulation/internal/physics"
)

// single builds a one-particle ensemble in a 100x100 box with no driving
// force, so only wall reflection changes its velocity.
func single(c physics.Collider, pos, vel r2.Vec) *physics.Ensemble {
	e, err := physics.New(physics.Params{
		Width: 100, Height: 100, Particles: 1, Radius: 4,
		Borders:    true,
		Collider:   c,
		Positions:  []r2.Vec{pos},
		Velocities: []r2.Vec{vel},
	}, &dynamo.Sequence{})
	Expect(err).NotTo(HaveOccurred())
	return e
}

var _ = Describe("Wall reflection", func() {
	colliders := []physics.Collider{physics.SegmentCollider{}, physics.AxisCollider{}}

	for _, c := range colliders {
		c := c

		Context("with the "+c.Name()+" collider", func() {
			It("bounces a particle heading through the right wall", func() {
				e := single(c, r2.Vec{X: 49}, r2.Vec{X: 10})
				e.Update(0.2)

				Expect(e.Velocity(0).X).To(BeNumerically("<", 0))
				Expect(e.Velocity(0).Y).To(BeZero())
				Expect(e.Position(0).X).To(BeNumerically("~", 47, 1e-9))
				Expect(geomInside(e, 0)).To(BeTrue())
			})

			It("keeps the component parallel to the wall", func() {
				e := single(c, r2.Vec{X: 49}, r2.Vec{X: 10, Y: 3})
				e.Update(0.2)

				Expect(e.Velocity(0)).To(Equal(r2.Vec{X: -10, Y: 3}))
				Expect(e.Position(0).X).To(BeNumerically("~", 47, 1e-9))
				Expect(e.Position(0).Y).To(BeNumerically("~", 0.6, 1e-9))
			})

			DescribeTable("near a corner only the wall actually crossed flips",
				func(vel, want r2.Vec) {
					e := single(c, r2.Vec{X: 49, Y: 49}, vel)
					e.Update(0.2)
					Expect(e.Velocity(0)).To(Equal(want))
				},
				Entry("crossing the right wall below the corner", r2.Vec{X: 12.5, Y: 7.5}, r2.Vec{X: -12.5, Y: 7.5}),
				Entry("crossing the top wall left of the corner", r2.Vec{X: 7.5, Y: 12.5}, r2.Vec{X: 7.5, Y: -12.5}),
			)

			It("turns back a particle left outside by a previous tick", func() {
				e := single(c, r2.Vec{X: 49, Y: 49}, r2.Vec{X: 12.5, Y: 7.5})
				e.Update(0.2)
				Expect(e.Position(0).Y).To(BeNumerically(">", 50))

				e.Update(0.2)
				Expect(e.Velocity(0)).To(Equal(r2.Vec{X: -12.5, Y: -7.5}))
				Expect(e.Position(0).X).To(BeNumerically("~", 44, 1e-9))
				Expect(e.Position(0).Y).To(BeNumerically("~", 49, 1e-9))
			})

			It("does not flip a particle moving inward across a wall", func() {
				e := single(c, r2.Vec{X: 51, Y: 0}, r2.Vec{X: -10})
				e.Update(0.2)
				Expect(e.Velocity(0)).To(Equal(r2.Vec{X: -10}))
			})

			It("leaves a particle away from the walls alone", func() {
				e := single(c, r2.Vec{}, r2.Vec{X: 5, Y: -5})
				e.Update(0.5)
				Expect(e.Velocity(0)).To(Equal(r2.Vec{X: 5, Y: -5}))
			})
		})
	}

	It("ignores walls when borders are off", func() {
		e, err := physics.New(physics.Params{
			Width: 100, Height: 100, Particles: 1, Radius: 4,
			Positions:  []r2.Vec{{X: 49}},
			Velocities: []r2.Vec{{X: 10}},
		}, &dynamo.Sequence{})
		Expect(err).NotTo(HaveOccurred())

		e.Update(0.2)
		Expect(e.Velocity(0).X).To(Equal(10.0))
		Expect(e.Position(0).X).To(BeNumerically("~", 51, 1e-9))
	})
})

func geomInside(e *physics.Ensemble, i int) bool {
	b, p := e.Box(), e.Position(i)
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}
