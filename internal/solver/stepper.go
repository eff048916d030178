package solver

import (
	"math"

	"github.com/san-kum/odelab/internal/vec"
)

// frame is the most recently accepted step, kept for dense sampling.
type frame[V vec.Vector[V]] struct {
	t float64
	h float64
	y V
}

// stepper carries one integration's mutable state. The FSAL stage lives in
// the named field last: it is only written when a step is accepted, so a
// rejected attempt automatically retries with the correct seed.
type stepper[V vec.Vector[V]] struct {
	tab     *Tableau
	f       Derivative[V]
	t       float64
	h       float64
	y       V
	k       []V
	last    V // derivative at (y, t); final stage of the previous accepted step
	prev    frame[V]
	stats   Stats
	rejects int // consecutive
	opts    Options
}

func newStepper[V vec.Vector[V]](f Derivative[V], t0, h0 float64, y0 V, opts Options) *stepper[V] {
	return &stepper[V]{
		tab:  opts.Tableau,
		f:    f,
		t:    t0,
		h:    h0,
		y:    y0,
		k:    make([]V, opts.Tableau.Stages),
		opts: opts,
	}
}

// seed evaluates the derivative at the initial condition, priming the FSAL
// reuse chain. Counts as the one evaluation every integration pays up front.
func (s *stepper[V]) seed() error {
	s.last = s.f(s.y, s.t)
	s.stats.Evals++
	if s.last.Len() != s.y.Len() {
		return ErrDimensionMismatch
	}
	if !finite(s.last.InfNorm()) {
		return ErrNonFiniteState
	}
	return nil
}

// attempt runs one trial step from (t, y) with the current step size. On
// acceptance the stepper advances and the completed step stays available
// through prev/k for interpolation; on rejection only the step size and the
// rejection counters change.
func (s *stepper[V]) attempt() (bool, error) {
	tab := s.tab
	h := s.h

	s.k[0] = s.last
	for i := 1; i < tab.Stages; i++ {
		sum := s.y.Zero()
		row := tab.A[i]
		for j := range row {
			sum = sum.Add(s.k[j].Scale(row[j]))
		}
		s.k[i] = s.f(s.y.Add(sum.Scale(h)), s.t+tab.C[i]*h)
	}
	s.stats.Evals += tab.Stages - 1

	incr := s.y.Zero()
	errSum := s.y.Zero()
	for i := 0; i < tab.Stages; i++ {
		incr = incr.Add(s.k[i].Scale(tab.BHat[i]))
		errSum = errSum.Add(s.k[i].Scale(tab.BHat[i] - tab.B[i]))
	}
	e := errSum.Scale(h).InfNorm()
	if !finite(e) {
		return false, ErrNonFiniteState
	}

	accepted := e < s.opts.Tol
	if accepted {
		s.prev = frame[V]{t: s.t, h: h, y: s.y}
		s.y = s.y.Add(incr.Scale(h))
		s.t += h
		s.last = s.k[tab.Stages-1]
		s.rejects = 0
		s.stats.Accepted++
	} else {
		s.rejects++
		s.stats.Rejected++
		if s.rejects >= s.opts.MaxReject {
			return false, ErrToleranceUnreachable
		}
	}

	// Step-size update. The error is floored so an estimate that underflows
	// to zero cannot divide the tolerance by zero.
	floored := e
	if floored < errFloor {
		floored = errFloor
	}
	scale := safety * math.Pow(s.opts.Tol/floored, 1.0/float64(tab.Order+1))
	if scale < s.opts.MinScale {
		scale = s.opts.MinScale
	}
	if scale > s.opts.MaxScale {
		scale = s.opts.MaxScale
	}
	s.h = h * scale
	if s.t+s.h == s.t {
		return accepted, ErrStepUnderflow
	}
	return accepted, nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
