package experiment

import (
	"context"
	"math"
	"sync"

	"github.com/san-kum/odelab/internal/solver"
)

// SweepPoint is the outcome of one tolerance in a sweep. MaxDiff is the
// worst deviation from a tight reference run over the shared output
// grid, NaN when the reference itself failed.
type SweepPoint struct {
	Tol     float64
	Stats   solver.Stats
	Metrics map[string]float64
	MaxDiff float64
	Err     error
}

// Sweep runs the same configuration across several tolerances in
// parallel and reports cost and accuracy per tolerance. Accuracy is
// measured against a reference run at 1e-12.
func Sweep(ctx context.Context, registry *Registry, base Config, tols []float64) []SweepPoint {
	refCfg := base
	refCfg.Tol = 1e-12
	refRes, refErr := New(refCfg, registry).Run(ctx)

	points := make([]SweepPoint, len(tols))
	var wg sync.WaitGroup
	for i, tol := range tols {
		wg.Add(1)
		go func(i int, tol float64) {
			defer wg.Done()
			cfg := base
			cfg.Tol = tol
			res, err := New(cfg, registry).Run(ctx)
			if err != nil {
				points[i] = SweepPoint{Tol: tol, Err: err, MaxDiff: math.NaN()}
				return
			}
			point := SweepPoint{
				Tol:     tol,
				Stats:   res.Stats,
				Metrics: res.Metrics,
				MaxDiff: math.NaN(),
			}
			if refErr == nil {
				worst := 0.0
				for j := range res.States {
					diff := res.States[j].Sub(refRes.States[j]).InfNorm()
					worst = math.Max(worst, diff)
				}
				point.MaxDiff = worst
			}
			points[i] = point
		}(i, tol)
	}
	wg.Wait()
	return points
}
