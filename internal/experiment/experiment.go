package experiment

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/odelab/internal/dataset"
	"github.com/san-kum/odelab/internal/metrics"
	"github.com/san-kum/odelab/internal/solver"
	"github.com/san-kum/odelab/internal/vec"
)

// Config names everything one integration run needs. Zero values fall
// back to the system default state and the solver defaults.
type Config struct {
	System      string
	Method      string
	Tol         float64
	Start       float64
	End         float64
	Samples     int
	Y0          []float64
	InitialStep float64
	MaxReject   int
	Params      map[string]float64
}

// Result is one finished run: the sampled trajectory plus solver
// statistics and metric scores.
type Result struct {
	System  string
	Method  string
	Times   []float64
	States  []vec.VecN
	Stats   solver.Stats
	Metrics map[string]float64
	Elapsed time.Duration
}

type Experiment struct {
	cfg       Config
	registry  *Registry
	observers []metrics.Observer
	logger    *zap.Logger
}

func New(cfg Config, registry *Registry) *Experiment {
	return &Experiment{cfg: cfg, registry: registry, logger: zap.NewNop()}
}

// WithLogger attaches a logger; the default discards everything.
func (e *Experiment) WithLogger(logger *zap.Logger) *Experiment {
	e.logger = logger
	return e
}

// AddObserver replaces the registry default metric set with a custom one.
func (e *Experiment) AddObserver(o metrics.Observer) {
	e.observers = append(e.observers, o)
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	sys, err := e.registry.GetSystem(e.cfg.System)
	if err != nil {
		return nil, err
	}
	for name, value := range e.cfg.Params {
		if err := sys.SetParam(name, value); err != nil {
			return nil, err
		}
	}
	tab, err := e.registry.GetMethod(e.cfg.Method)
	if err != nil {
		return nil, err
	}

	y0 := sys.DefaultState()
	if len(e.cfg.Y0) > 0 {
		y0 = vec.VecN(e.cfg.Y0).Clone()
	}
	if y0.Len() != sys.Dim() {
		return nil, fmt.Errorf("initial state has %d components, %s needs %d",
			y0.Len(), sys.Name(), sys.Dim())
	}
	if e.cfg.Samples < 2 {
		return nil, fmt.Errorf("need at least 2 samples, have %d", e.cfg.Samples)
	}
	if !(e.cfg.End > e.cfg.Start) {
		return nil, fmt.Errorf("bad time span [%g, %g]", e.cfg.Start, e.cfg.End)
	}
	times := dataset.Uniform(e.cfg.Start, e.cfg.End, e.cfg.Samples)

	canceled := false
	nan := make(vec.VecN, sys.Dim())
	for i := range nan {
		nan[i] = math.NaN()
	}
	f := func(y vec.VecN, t float64) vec.VecN {
		if ctx.Err() != nil {
			canceled = true
			return nan
		}
		return sys.Derive(y, t)
	}

	opts := solver.DefaultOptions()
	opts.Tableau = tab
	if e.cfg.Tol != 0 {
		opts.Tol = e.cfg.Tol
	}
	if e.cfg.InitialStep != 0 {
		opts.InitialStep = e.cfg.InitialStep
	}
	if e.cfg.MaxReject != 0 {
		opts.MaxReject = e.cfg.MaxReject
	}
	started := time.Now()
	states, stats, err := solver.Integrate(times, y0, f, opts)
	elapsed := time.Since(started)
	if canceled {
		return nil, ctx.Err()
	}
	if err != nil {
		e.logger.Warn("integration failed",
			zap.String("system", sys.Name()),
			zap.String("method", tab.Name),
			zap.Error(err))
		return nil, err
	}

	observers := e.observers
	if len(observers) == 0 {
		observers = e.registry.DefaultObservers(sys)
	}
	for _, o := range observers {
		o.Reset()
	}
	for i := range states {
		for _, o := range observers {
			o.Observe(states[i], times[i])
		}
	}
	scores := make(map[string]float64, len(observers))
	for _, o := range observers {
		scores[o.Name()] = o.Value()
	}

	e.logger.Info("run complete",
		zap.String("system", sys.Name()),
		zap.String("method", tab.Name),
		zap.Float64("tol", opts.Tol),
		zap.Int("accepted", stats.Accepted),
		zap.Int("rejected", stats.Rejected),
		zap.Int("evals", stats.Evals),
		zap.Duration("elapsed", elapsed))

	return &Result{
		System:  sys.Name(),
		Method:  tab.Name,
		Times:   times,
		States:  states,
		Stats:   stats,
		Metrics: scores,
		Elapsed: elapsed,
	}, nil
}
