package systems

import (
	"fmt"
	"math"

	"github.com/san-kum/odelab/internal/vec"
)

// Kepler is the planar two-body problem in normalized units. State is
// (x, y, vx, vy); the default state is an e=0.6 orbit starting at perihelion,
// a standard stress case for adaptive steppers because the speed near
// perihelion forces the step size down by orders of magnitude.
type Kepler struct {
	Mu           float64
	Eccentricity float64
}

func NewKepler() *Kepler {
	return &Kepler{Mu: 1.0, Eccentricity: 0.6}
}

func (k *Kepler) Name() string { return "kepler" }
func (k *Kepler) Dim() int     { return 4 }

func (k *Kepler) Derive(y vec.VecN, _ float64) vec.VecN {
	r := math.Hypot(y[0], y[1])
	r3 := r * r * r
	return vec.VecN{y[2], y[3], -k.Mu * y[0] / r3, -k.Mu * y[1] / r3}
}

func (k *Kepler) DefaultState() vec.VecN {
	e := k.Eccentricity
	return vec.VecN{1 - e, 0, 0, math.Sqrt(k.Mu * (1 + e) / (1 - e))}
}

// Energy is the specific orbital energy, conserved along any orbit.
func (k *Kepler) Energy(y vec.VecN) float64 {
	r := math.Hypot(y[0], y[1])
	v2 := y[2]*y[2] + y[3]*y[3]
	return 0.5*v2 - k.Mu/r
}

func (k *Kepler) GetParams() map[string]float64 {
	return map[string]float64{"mu": k.Mu, "eccentricity": k.Eccentricity}
}

func (k *Kepler) SetParam(name string, value float64) error {
	switch name {
	case "mu":
		k.Mu = value
	case "eccentricity":
		k.Eccentricity = value
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}
