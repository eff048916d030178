package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/odelab/internal/metrics"
	"github.com/san-kum/odelab/internal/solver"
	"github.com/san-kum/odelab/internal/systems"
)

// Registry maps the names used in configs and on the command line to
// fresh system and method instances.
type Registry struct {
	systems map[string]func() systems.System
	methods map[string]func() *solver.Tableau
}

func NewRegistry() *Registry {
	r := &Registry{
		systems: make(map[string]func() systems.System),
		methods: make(map[string]func() *solver.Tableau),
	}

	r.systems["decay"] = func() systems.System { return systems.NewDecay() }
	r.systems["oscillator"] = func() systems.System { return systems.NewOscillator() }
	r.systems["lorenz"] = func() systems.System { return systems.NewLorenz() }
	r.systems["kepler"] = func() systems.System { return systems.NewKepler() }
	r.systems["tank"] = func() systems.System { return systems.NewTank() }

	r.methods["dopri5"] = solver.DormandPrince
	r.methods["bs32"] = solver.BogackiShampine

	return r
}

// GetSystem returns a fresh instance, so callers can tune parameters
// without affecting other runs.
func (r *Registry) GetSystem(name string) (systems.System, error) {
	fn, ok := r.systems[name]
	if !ok {
		return nil, fmt.Errorf("unknown system: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetMethod(name string) (*solver.Tableau, error) {
	fn, ok := r.methods[name]
	if !ok {
		return nil, fmt.Errorf("unknown method: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListSystems() []string {
	names := make([]string, 0, len(r.systems))
	for name := range r.systems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListMethods() []string {
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultObservers builds the standard metric set for a system.
func (r *Registry) DefaultObservers(sys systems.System) []metrics.Observer {
	return []metrics.Observer{
		metrics.NewEnergyDrift(sys),
		metrics.NewBounded(1e6),
		metrics.NewRange(0),
	}
}
