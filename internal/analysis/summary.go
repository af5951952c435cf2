package analysis

import (
	"math"

	"github.com/rubenzuurman/phase-transition-simulation/internal/sim"
)

// Summary condenses one recorded series.
type Summary struct {
	Name      string
	Particles int
	MSD       float64 // last recorded MSD
	Diffusion float64 // last recorded running D
	Fitted    float64 // slope-based D, NaN when the series is too short
	Metrics   map[string]float64
}

// Summarize reduces every series of a result, in order.
func Summarize(r *sim.Result) []Summary {
	out := make([]Summary, len(r.Series))
	for i, s := range r.Series {
		sum := Summary{
			Name:      s.Name,
			Particles: s.Particles,
			Diffusion: s.Final(),
			Fitted:    math.NaN(),
			Metrics:   s.Metrics,
		}
		if n := len(s.MSD); n > 0 {
			sum.MSD = s.MSD[n-1]
		}
		if d, err := EstimateDiffusion(r.Times, s.MSD); err == nil {
			sum.Fitted = d
		}
		out[i] = sum
	}
	return out
}
