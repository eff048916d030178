package systems

import (
	"fmt"

	"github.com/san-kum/odelab/internal/vec"
)

// Lorenz is the classic chaotic attractor; the default parameters sit in the
// chaotic regime.
type Lorenz struct{ sigma, rho, beta float64 }

func NewLorenz() *Lorenz { return &Lorenz{10.0, 28.0, 8.0 / 3.0} }

func (l *Lorenz) Name() string { return "lorenz" }
func (l *Lorenz) Dim() int     { return 3 }

func (l *Lorenz) Derive(y vec.VecN, _ float64) vec.VecN {
	return vec.VecN{l.sigma * (y[1] - y[0]), y[0]*(l.rho-y[2]) - y[1], y[0]*y[1] - l.beta*y[2]}
}

func (l *Lorenz) DefaultState() vec.VecN { return vec.VecN{1.0, 1.0, 1.0} }

func (l *Lorenz) GetParams() map[string]float64 {
	return map[string]float64{"sigma": l.sigma, "rho": l.rho, "beta": l.beta}
}

func (l *Lorenz) SetParam(name string, value float64) error {
	switch name {
	case "sigma":
		l.sigma = value
	case "rho":
		l.rho = value
	case "beta":
		l.beta = value
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}
