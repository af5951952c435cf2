// Package geom provides the segment and box primitives used for wall
// collisions.
//
//   - [Intersects]: general segment intersection test, exact for
//     axis-aligned segments
//   - [ExitWall]: closed-form crossing classifier for axis-aligned boxes
//   - [Edges], [Outside], [Contains]: box helpers keyed by [Wall]
//
// All functions are pure. Degenerate input (zero-length segments,
// coincident endpoints) yields a boolean, never a panic.
package geom
