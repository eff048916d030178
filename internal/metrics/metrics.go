// Package metrics scores integration runs. Observers consume trajectory
// samples one at a time and reduce them to a single number, which the
// experiment runner collects into the run report.
package metrics

import (
	"fmt"
	"math"

	"github.com/san-kum/odelab/internal/systems"
	"github.com/san-kum/odelab/internal/vec"
)

// Observer accumulates one scalar measure over trajectory samples.
type Observer interface {
	Name() string
	Observe(y vec.VecN, t float64)
	Value() float64
	Reset()
}

// EnergyDrift tracks the worst relative drift of a conserved energy
// along the trajectory. Systems without a Hamiltonian score zero.
type EnergyDrift struct {
	name          string
	sys           systems.System
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(sys systems.System) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", sys: sys}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(y vec.VecN, t float64) {
	h, ok := e.sys.(systems.Hamiltonian)
	if !ok {
		return
	}

	energy := h.Energy(y)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// Bounded reports the fraction of samples whose components all stay
// below a threshold in magnitude.
type Bounded struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewBounded(threshold float64) *Bounded {
	return &Bounded{name: "bounded", threshold: threshold}
}

func (b *Bounded) Name() string { return b.name }

func (b *Bounded) Observe(y vec.VecN, t float64) {
	b.samples++
	for _, val := range y {
		if math.Abs(val) > b.threshold {
			b.violations++
			break
		}
	}
}

func (b *Bounded) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Bounded) Reset() {
	b.violations = 0
	b.samples = 0
}

// Range tracks the spread of one state component.
type Range struct {
	name      string
	component int
	min, max  float64
	samples   int
}

func NewRange(component int) *Range {
	return &Range{name: fmt.Sprintf("range_x%d", component), component: component}
}

func (r *Range) Name() string { return r.name }

func (r *Range) Observe(y vec.VecN, t float64) {
	if r.component >= len(y) {
		return
	}
	v := y[r.component]
	if r.samples == 0 {
		r.min, r.max = v, v
	} else {
		r.min = math.Min(r.min, v)
		r.max = math.Max(r.max, v)
	}
	r.samples++
}

func (r *Range) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return r.max - r.min
}

func (r *Range) Reset() {
	r.min, r.max = 0, 0
	r.samples = 0
}
