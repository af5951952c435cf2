// Package dynamo provides the core primitives shared by the particle
// ensemble and its driver.
//
//   - [RandSource]: injectable random source used for scatter and kicks
//   - [Sequence]: deterministic [RandSource] for reproducible runs and tests
//   - [Configurable]: runtime parameter access by name
//   - [SimError]: error annotated with the step and time it occurred at
//
// # Example
//
//	rng := dynamo.NewRand(42)
//	e, err := physics.New(physics.Params{Width: 100, Height: 100, Particles: 50, Radius: 1, Force: 10}, rng)
//
// # Thread Safety
//
// Random sources are NOT thread-safe. Give every ensemble its own source.
package dynamo
