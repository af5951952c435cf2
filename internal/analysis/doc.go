// Package analysis fits recorded mean squared displacement histories.
//
// The ensemble reports a running diffusion coefficient D = MSD/(4t), which
// is sensitive to the early ballistic regime. Fitting a line to MSD(t) and
// taking a quarter of the slope gives an estimate that ignores any constant
// offset:
//
//	d, err := analysis.EstimateDiffusion(result.Times, series.MSD)
//	if errors.Is(err, analysis.ErrInsufficientData) {
//	    // run longer or record more often
//	}
package analysis
