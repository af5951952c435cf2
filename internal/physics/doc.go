// Package physics provides the random-walk particle ensemble.
//
// An [Ensemble] holds N point particles in a reflective box. Every call to
// [Ensemble.Update] gives each particle a fixed-magnitude velocity kick in a
// random direction, moves it, reflects it off the walls it crossed and
// refreshes the mean-squared displacement and diffusion coefficient.
//
// The per-tick behaviour is assembled from three strategies:
//
//   - [Forcing]: how kick directions are drawn ([ForcingAxis], [ForcingAngle])
//   - [Collider]: how wall crossings are found ([SegmentCollider], [AxisCollider])
//   - [MSDConvention]: how displacement is averaged ([MSDEuclidean], [MSDLegacy])
//
// Ensembles implement [dynamo.Configurable] so the driving force, particle
// radius and borders can be tuned between ticks:
//
//	e, _ := physics.New(physics.Params{Width: 1000, Height: 1000, Particles: 50, Radius: 4, Force: 1e4, Borders: true}, rng)
//	for i := 0; i < 600; i++ {
//	    e.Update(0.01)
//	}
//	d := e.DiffusionCoefficient()
package physics
