package analysis

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// ErrInsufficientData is returned when a fit has fewer than two points or
// no spread in x.
var ErrInsufficientData = errors.New("analysis: insufficient data for fit")

// Fit is a least-squares line y = Intercept + Slope·x.
type Fit struct {
	Slope     float64
	Intercept float64
	R2        float64
}

// LinearFit fits a straight line through (x[i], y[i]).
func LinearFit(x, y []float64) (Fit, error) {
	if len(x) != len(y) {
		return Fit{}, fmt.Errorf("analysis: got %d x values and %d y values", len(x), len(y))
	}
	if len(x) < 2 {
		return Fit{}, ErrInsufficientData
	}
	if stat.Variance(x, nil) == 0 {
		return Fit{}, ErrInsufficientData
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)
	r2 := 1.0
	if stat.Variance(y, nil) != 0 {
		r2 = stat.RSquared(x, y, nil, alpha, beta)
	}
	return Fit{Slope: beta, Intercept: alpha, R2: r2}, nil
}

// EstimateDiffusion returns a quarter of the MSD(t) slope, the 2D
// diffusion coefficient from MSD = 4Dt.
func EstimateDiffusion(times, msd []float64) (float64, error) {
	fit, err := LinearFit(times, msd)
	if err != nil {
		return 0, err
	}
	return fit.Slope / 4, nil
}
