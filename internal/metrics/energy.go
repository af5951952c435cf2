package metrics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/rubenzuurman/phase-transition-simulation/internal/physics"
)

// KineticEnergy averages the mean per-particle kinetic energy over
// observations. Particles are disks of unit areal density, so m = πr².
type KineticEnergy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{
		name: "kinetic_energy",
	}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(e *physics.Ensemble, t float64) {
	if e.N() == 0 {
		return
	}
	mass := math.Pi * e.Radius() * e.Radius()
	sum := 0.0
	e.Each(func(_ int, _, vel r2.Vec) {
		sum += 0.5 * mass * r2.Dot(vel, vel)
	})
	k.totalEnergy += sum / float64(e.N())
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.totalEnergy / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.totalEnergy = 0
	k.samples = 0
}
