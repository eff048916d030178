package systems

import (
	"fmt"

	"github.com/san-kum/odelab/internal/vec"
)

// Oscillator is a mass on a spring with optional viscous damping. State is
// (position, velocity).
type Oscillator struct {
	Mass      float64
	Stiffness float64
	Damping   float64
}

func NewOscillator() *Oscillator {
	return &Oscillator{
		Mass:      1.0,
		Stiffness: 1.0,
		Damping:   0.0,
	}
}

func (o *Oscillator) Name() string { return "oscillator" }
func (o *Oscillator) Dim() int     { return 2 }

func (o *Oscillator) Derive(y vec.VecN, _ float64) vec.VecN {
	x := y[0]
	v := y[1]
	return vec.VecN{v, (-o.Stiffness*x - o.Damping*v) / o.Mass}
}

func (o *Oscillator) DefaultState() vec.VecN { return vec.VecN{1.0, 0.0} }

// Energy is conserved when Damping is zero.
func (o *Oscillator) Energy(y vec.VecN) float64 {
	return 0.5*o.Mass*y[1]*y[1] + 0.5*o.Stiffness*y[0]*y[0]
}

func (o *Oscillator) GetParams() map[string]float64 {
	return map[string]float64{"mass": o.Mass, "stiffness": o.Stiffness, "damping": o.Damping}
}

func (o *Oscillator) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		o.Mass = value
	case "stiffness":
		o.Stiffness = value
	case "damping":
		o.Damping = value
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}
