// Package viz provides a live terminal monitor for running ensembles.
//
// The monitor is a Bubble Tea program that steps a simulator at a fixed
// frame rate and shows per-ensemble statistics: particle count, mean
// squared displacement, diffusion coefficient and mean speed, plus a chart
// of the selected ensemble's diffusion coefficient over time. It never
// draws particles.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	Tab   - Select the next ensemble
//	Up/K  - Increase the selected ensemble's force (+5%)
//	Down/J - Decrease the selected ensemble's force (-5%)
//	B     - Toggle the selected ensemble's walls
//	R     - Rebuild all ensembles from scratch
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
