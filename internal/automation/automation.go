// Package automation runs scripted batches: multi-step scenarios loaded
// from YAML, parameter sweeps, and Monte Carlo ensembles over perturbed
// initial states.
package automation

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/odelab/internal/dataset"
	"github.com/san-kum/odelab/internal/experiment"
	"github.com/san-kum/odelab/internal/storage"
	"github.com/san-kum/odelab/internal/vec"
)

// Scenario is a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run in a scenario. SaveAs labels the stored run;
// empty means the result is not persisted.
type ScenarioStep struct {
	System  string             `yaml:"system"`
	Method  string             `yaml:"method"`
	Tol     float64            `yaml:"tol"`
	Start   float64            `yaml:"start"`
	End     float64            `yaml:"end"`
	Samples int                `yaml:"samples"`
	Y0      []float64          `yaml:"y0"`
	Params  map[string]float64 `yaml:"params"`
	SaveAs  string             `yaml:"save_as"`
}

func (s ScenarioStep) config() experiment.Config {
	return experiment.Config{
		System:  s.System,
		Method:  s.Method,
		Tol:     s.Tol,
		Start:   s.Start,
		End:     s.End,
		Samples: s.Samples,
		Y0:      s.Y0,
		Params:  s.Params,
	}
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}

	return &scenario, nil
}

// RunScenario executes all steps in order. Steps with SaveAs set are
// persisted to the store when one is given.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, store *storage.Store, logger *zap.Logger) ([]*experiment.Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	results := make([]*experiment.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		logger.Info("scenario step",
			zap.String("scenario", scenario.Name),
			zap.Int("step", i+1),
			zap.Int("total", len(scenario.Steps)),
			zap.String("system", step.System))

		result, err := experiment.New(step.config(), registry).WithLogger(logger).Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, step.System, err)
		}

		if step.SaveAs != "" && store != nil {
			runID, err := store.Save(step.SaveAs, step.config(), result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			logger.Info("scenario step saved", zap.String("run", runID), zap.String("label", step.SaveAs))
		}

		results = append(results, result)
	}

	return results, nil
}

// ParameterSweep varies one system parameter over a linear range.
type ParameterSweep struct {
	Base      experiment.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds the outcome for one parameter value.
type SweepResult struct {
	ParamValue float64
	FinalState vec.VecN
	Metrics    map[string]float64
	Evals      int
}

// RunSweep executes a parameter sweep sequentially, preserving order.
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, have %d", sweep.NumSteps)
	}

	values := dataset.Uniform(sweep.ParamMin, sweep.ParamMax, sweep.NumSteps)
	results := make([]SweepResult, 0, sweep.NumSteps)

	for _, value := range values {
		cfg := sweep.Base
		cfg.Params = make(map[string]float64, len(sweep.Base.Params)+1)
		for k, v := range sweep.Base.Params {
			cfg.Params[k] = v
		}
		cfg.Params[sweep.ParamName] = value

		result, err := experiment.New(cfg, registry).Run(ctx)
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.ParamName, value, err)
		}

		results = append(results, SweepResult{
			ParamValue: value,
			FinalState: result.States[len(result.States)-1],
			Metrics:    result.Metrics,
			Evals:      result.Stats.Evals,
		})
	}

	return results, nil
}

// MonteCarloConfig describes an ensemble over perturbed initial states.
type MonteCarloConfig struct {
	Base         experiment.Config
	Perturbation float64
	NumTrials    int
	Seed         int64
}

// MonteCarloResult is one trial outcome. Stable means every component
// of the final state stayed below 1e6 in magnitude.
type MonteCarloResult struct {
	TrialID    int
	InitState  vec.VecN
	FinalState vec.VecN
	Stable     bool
}

// RunMonteCarlo executes NumTrials runs with uniformly perturbed
// initial states. A zero seed picks one from the clock.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry) ([]MonteCarloResult, error) {
	sys, err := registry.GetSystem(cfg.Base.System)
	if err != nil {
		return nil, err
	}

	base := vec.VecN(cfg.Base.Y0)
	if len(base) == 0 {
		base = sys.DefaultState()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		y0 := make(vec.VecN, len(base))
		for i, v := range base {
			y0[i] = v + (rng.Float64()-0.5)*2*cfg.Perturbation
		}

		trialCfg := cfg.Base
		trialCfg.Y0 = []float64(y0)

		result, err := experiment.New(trialCfg, registry).Run(ctx)
		if err != nil {
			return results, fmt.Errorf("trial %d: %w", trial, err)
		}

		final := result.States[len(result.States)-1]
		stable := true
		for _, v := range final {
			if v > 1e6 || v < -1e6 {
				stable = false
				break
			}
		}

		results = append(results, MonteCarloResult{
			TrialID:    trial,
			InitState:  y0,
			FinalState: final,
			Stable:     stable,
		})
	}

	return results, nil
}

// MonteCarloStats counts stable and unstable trials.
func MonteCarloStats(results []MonteCarloResult) (stableCount, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
