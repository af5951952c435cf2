package physics

import "gonum.org/v1/gonum/spatial/r2"

// MSDConvention selects how a particle's displacement enters the mean.
type MSDConvention int

const (
	// MSDEuclidean averages Δx² + Δy².
	MSDEuclidean MSDConvention = iota
	// MSDLegacy averages Δx² + Δy·Δx, reproducing the mixed-axis
	// accumulation of the first implementation. It can go negative.
	MSDLegacy
)

func (c MSDConvention) String() string {
	switch c {
	case MSDEuclidean:
		return "euclidean"
	case MSDLegacy:
		return "legacy"
	}
	return "unknown"
}

// Mean returns the mean displacement term over all particles.
// pos and start must have equal, non-zero length.
func (c MSDConvention) Mean(pos, start []r2.Vec) float64 {
	sum := 0.0
	for i := range pos {
		d := r2.Sub(pos[i], start[i])
		if c == MSDLegacy {
			sum += d.X*d.X + d.Y*d.X
		} else {
			sum += d.X*d.X + d.Y*d.Y
		}
	}
	return sum / float64(len(pos))
}

// Diffusion applies the 2D Einstein relation MSD = 4Dt. It is 0 before any
// time has elapsed.
func Diffusion(msd, elapsed float64) float64 {
	if elapsed == 0 {
		return 0
	}
	return msd / (4 * elapsed)
}
