package analysis

import (
	"errors"
	"math"
	"testing"
)

func TestLinearFit(t *testing.T) {
	tests := []struct {
		name      string
		x, y      []float64
		slope     float64
		intercept float64
	}{
		{"two points", []float64{0, 1}, []float64{1, 3}, 2, 1},
		{"exact line", []float64{0, 1, 2, 3, 4}, []float64{-1, 2, 5, 8, 11}, 3, -1},
		{"flat", []float64{1, 2, 3}, []float64{4, 4, 4}, 0, 4},
		{"symmetric noise", []float64{0, 1, 2, 3}, []float64{1, -1, 1, -1}, -0.4, 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fit, err := LinearFit(tt.x, tt.y)
			if err != nil {
				t.Fatalf("fit failed: %v", err)
			}
			if math.Abs(fit.Slope-tt.slope) > 1e-9 {
				t.Errorf("slope = %v, want %v", fit.Slope, tt.slope)
			}
			if math.Abs(fit.Intercept-tt.intercept) > 1e-9 {
				t.Errorf("intercept = %v, want %v", fit.Intercept, tt.intercept)
			}
			if fit.R2 < 0 || fit.R2 > 1+1e-12 {
				t.Errorf("R2 out of range: %v", fit.R2)
			}
		})
	}
}

func TestLinearFit_PerfectR2(t *testing.T) {
	fit, err := LinearFit([]float64{0, 1, 2}, []float64{0, 2, 4})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(fit.R2-1) > 1e-12 {
		t.Errorf("R2 = %v, want 1", fit.R2)
	}
}

func TestLinearFit_Errors(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
	}{
		{"empty", nil, nil},
		{"single point", []float64{1}, []float64{2}},
		{"no spread in x", []float64{2, 2, 2}, []float64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LinearFit(tt.x, tt.y); !errors.Is(err, ErrInsufficientData) {
				t.Errorf("expected ErrInsufficientData, got %v", err)
			}
		})
	}

	if _, err := LinearFit([]float64{1, 2}, []float64{1}); err == nil {
		t.Error("expected error for mismatched lengths")
	}
}

func TestEstimateDiffusion(t *testing.T) {
	// MSD = 4Dt with D = 2.5, plus a constant offset
	times := []float64{0, 0.5, 1, 1.5, 2}
	msd := make([]float64, len(times))
	for i, tm := range times {
		msd[i] = 10*tm + 3
	}

	d, err := EstimateDiffusion(times, msd)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(d-2.5) > 1e-9 {
		t.Errorf("D = %v, want 2.5", d)
	}

	if _, err := EstimateDiffusion([]float64{0}, []float64{0}); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}
