package systems

import (
	"fmt"

	"github.com/san-kum/odelab/internal/vec"
)

// Decay is first-order exponential decay, dy/dt = -rate * y. The closed-form
// solution y0 * exp(-rate*t) makes it the standard accuracy probe.
type Decay struct {
	Rate float64
}

func NewDecay() *Decay { return &Decay{Rate: 1.0} }

func (d *Decay) Name() string { return "decay" }
func (d *Decay) Dim() int     { return 1 }

func (d *Decay) Derive(y vec.VecN, _ float64) vec.VecN {
	return vec.VecN{-d.Rate * y[0]}
}

func (d *Decay) DefaultState() vec.VecN { return vec.VecN{1.0} }

func (d *Decay) GetParams() map[string]float64 {
	return map[string]float64{"rate": d.Rate}
}

func (d *Decay) SetParam(name string, value float64) error {
	if name != "rate" {
		return fmt.Errorf("unknown parameter: %s", name)
	}
	d.Rate = value
	return nil
}
