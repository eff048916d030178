// Package systems provides the library of ODE models the lab integrates.
package systems

import (
	"fmt"

	"github.com/san-kum/odelab/internal/vec"
)

// System describes one ODE right-hand side together with the metadata the
// registry and CLI need: a stable name, the state dimension, a sensible
// default initial state, and tunable parameters.
type System interface {
	Name() string
	Dim() int
	Derive(y vec.VecN, t float64) vec.VecN
	DefaultState() vec.VecN
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Hamiltonian is implemented by systems with a conserved energy, used by the
// drift metric to judge integration quality.
type Hamiltonian interface {
	Energy(y vec.VecN) float64
}

// Func adapts a bare derivative to the System interface, for one-off
// models with no parameters worth naming.
type Func struct {
	name string
	y0   vec.VecN
	f    func(y vec.VecN, t float64) vec.VecN
}

// NewFunc wraps f as a system. The default state fixes the dimension.
func NewFunc(name string, y0 vec.VecN, f func(y vec.VecN, t float64) vec.VecN) *Func {
	return &Func{name: name, y0: y0.Clone(), f: f}
}

func (s *Func) Name() string { return s.name }

func (s *Func) Dim() int { return len(s.y0) }

func (s *Func) Derive(y vec.VecN, t float64) vec.VecN { return s.f(y, t) }

func (s *Func) DefaultState() vec.VecN { return s.y0.Clone() }

func (s *Func) GetParams() map[string]float64 { return nil }

func (s *Func) SetParam(name string, value float64) error {
	return fmt.Errorf("unknown parameter: %s", name)
}
