package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/rubenzuurman/phase-transition-simulation/internal/dynamo"
	"github.com/rubenzuurman/phase-transition-simulation/internal/physics"
)

func fixed(t *testing.T, radius float64, pos, vel []r2.Vec) *physics.Ensemble {
	t.Helper()
	e, err := physics.New(physics.Params{
		Width: 10, Height: 10, Particles: len(pos), Radius: radius,
		Positions: pos, Velocities: vel,
	}, &dynamo.Sequence{})
	if err != nil {
		t.Fatalf("new ensemble: %v", err)
	}
	return e
}

func TestContainment(t *testing.T) {
	tests := []struct {
		name string
		tol  float64
		pos  []r2.Vec
		want float64
	}{
		{"all inside", 0, []r2.Vec{{}, {X: 4, Y: -4}}, 1},
		{"on the wall counts", 0, []r2.Vec{{X: 5, Y: 5}}, 1},
		{"one of four outside", 0, []r2.Vec{{}, {X: 1}, {Y: 1}, {X: 6}}, 0.75},
		{"tolerance absorbs overshoot", 1, []r2.Vec{{X: 5.5}, {Y: -5.9}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewContainment(tt.tol)
			m.Observe(fixed(t, 1, tt.pos, nil), 0)
			if got := m.Value(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Value() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContainmentReset(t *testing.T) {
	m := NewContainment(0)
	if m.Value() != 1 {
		t.Errorf("empty containment = %v, want 1", m.Value())
	}
	m.Observe(fixed(t, 1, []r2.Vec{{X: 20}}, nil), 0)
	if m.Value() != 0 {
		t.Errorf("expected 0, got %v", m.Value())
	}
	m.Reset()
	if m.Value() != 1 {
		t.Error("expected 1 after reset")
	}
}

func TestMeanSpeed(t *testing.T) {
	m := NewMeanSpeed()
	if m.Value() != 0 {
		t.Error("expected zero before observing")
	}

	e := fixed(t, 1, []r2.Vec{{}, {}}, []r2.Vec{{X: 3, Y: 4}, {X: 0, Y: -1}})
	m.Observe(e, 0)
	if got := m.Value(); math.Abs(got-3) > 1e-12 {
		t.Errorf("mean speed = %v, want 3", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestKineticEnergy(t *testing.T) {
	m := NewKineticEnergy()

	e := fixed(t, 2, []r2.Vec{{}, {}}, []r2.Vec{{X: 1}, {Y: 3}})
	m.Observe(e, 0)

	// m = 4π; energies 2π and 18π
	want := 10 * math.Pi
	if got := m.Value(); math.Abs(got-want) > 1e-9 {
		t.Errorf("kinetic energy = %v, want %v", got, want)
	}

	still := fixed(t, 2, []r2.Vec{{}}, nil)
	m.Observe(still, 0)
	if got := m.Value(); math.Abs(got-want/2) > 1e-9 {
		t.Errorf("averaged energy = %v, want %v", got, want/2)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestMetricNames(t *testing.T) {
	names := map[string]bool{}
	for _, n := range []string{NewContainment(0).Name(), NewMeanSpeed().Name(), NewKineticEnergy().Name()} {
		if names[n] {
			t.Errorf("duplicate metric name %q", n)
		}
		names[n] = true
	}
}
