// Package optim searches system parameters for the configuration that
// minimizes a run metric.
package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/odelab/internal/experiment"
)

// GridSearch exhaustively evaluates every combination of candidate
// parameter values.
type GridSearch struct {
	names  []string
	values [][]float64
}

// NewGridSearch pairs parameter names with their candidate values.
func NewGridSearch(names []string, values [][]float64) (*GridSearch, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("optim: no parameters to search")
	}
	if len(names) != len(values) {
		return nil, fmt.Errorf("optim: %d names for %d value lists", len(names), len(values))
	}
	for i, vs := range values {
		if len(vs) == 0 {
			return nil, fmt.Errorf("optim: no candidate values for %s", names[i])
		}
	}
	return &GridSearch{names: names, values: values}, nil
}

// Combinations returns the number of runs a Search performs.
func (g *GridSearch) Combinations() int {
	n := 1
	for _, vs := range g.values {
		n *= len(vs)
	}
	return n
}

// Search runs base once per combination, overriding the searched
// parameters, and returns the combination minimizing the named metric.
// Combinations whose run fails or does not report the metric are
// skipped; ties keep the earliest combination in grid order.
func (g *GridSearch) Search(ctx context.Context, registry *experiment.Registry, base experiment.Config, metric string) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	g.walk(ctx, registry, base, metric, 0, make(map[string]float64), &best, &bestParams)

	if bestParams == nil {
		return nil, 0, fmt.Errorf("optim: no combination produced metric %q", metric)
	}
	return bestParams, best, nil
}

func (g *GridSearch) walk(ctx context.Context, registry *experiment.Registry, base experiment.Config, metric string, depth int, current map[string]float64, best *float64, bestParams *map[string]float64) {
	if depth == len(g.names) {
		cfg := base
		cfg.Params = make(map[string]float64, len(base.Params)+len(current))
		for k, v := range base.Params {
			cfg.Params[k] = v
		}
		for k, v := range current {
			cfg.Params[k] = v
		}
		result, err := experiment.New(cfg, registry).Run(ctx)
		if err != nil {
			return
		}
		val, ok := result.Metrics[metric]
		if !ok || math.IsNaN(val) {
			return
		}
		if val < *best {
			*best = val
			picked := make(map[string]float64, len(current))
			for k, v := range current {
				picked[k] = v
			}
			*bestParams = picked
		}
		return
	}

	for _, v := range g.values[depth] {
		current[g.names[depth]] = v
		g.walk(ctx, registry, base, metric, depth+1, current, best, bestParams)
	}
	delete(current, g.names[depth])
}
